package services

import (
	"fmt"
	"strings"
)

// markerReserve leaves room for the truncation markers themselves.
const markerReserve = 100

// SmartTruncate cuts text down to at most roughly maxChars while keeping
// the parts most likely to name a document:
//
//   - the first 60% of the budget (headers, document type, dates)
//   - the last 20% (signatures, totals, conclusions)
//   - a 20% sample from the middle, starting at the 1/3 offset
//
// The three spans are joined with markers stating how many characters
// were elided. This is a deliberate heuristic for scanned correspondence,
// not a general summariser. Text within budget is returned unchanged.
func SmartTruncate(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}

	firstSize := int(float64(maxChars) * 0.60)
	lastSize := int(float64(maxChars) * 0.20)
	middleSize := maxChars - firstSize - lastSize - markerReserve
	if middleSize < 0 {
		middleSize = 0
	}

	firstPart := text[:firstSize]
	lastPart := text[len(text)-lastSize:]

	middleStart := len(text) / 3
	middleEnd := middleStart + middleSize
	if middleEnd > len(text) {
		middleEnd = len(text)
	}
	middlePart := text[middleStart:middleEnd]

	var b strings.Builder
	b.WriteString(firstPart)
	fmt.Fprintf(&b, "\n\n[... %d characters truncated ...]\n\n", len(text)-maxChars)
	b.WriteString(middlePart)
	b.WriteString("\n\n[... continued ...]\n\n")
	b.WriteString(lastPart)
	return b.String()
}
