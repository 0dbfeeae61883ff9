package services

import (
	"regexp"
	"sort"
	"strings"
)

// maxKeywords caps the keyword signature returned for a document.
const maxKeywords = 20

// wordRe tokenises runs of at least three alphabetic characters.
var wordRe = regexp.MustCompile(`\b[a-z]{3,}\b`)

// stopwords are common English function words plus domain-generic terms
// that appear on nearly every scanned document and carry no signal.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "that": {}, "this": {}, "with": {},
	"from": {}, "have": {}, "has": {}, "are": {}, "was": {}, "were": {},
	"been": {}, "being": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "shall": {},
	"can": {}, "need": {}, "please": {},
	"page": {}, "date": {}, "amount": {}, "total": {}, "number": {},
	"account": {}, "name": {},
}

// ExtractKeywords returns up to 20 of the most frequent significant
// terms in the text, ordered by descending frequency with ties broken
// by first occurrence. This list is the document's signature for
// pattern matching.
func ExtractKeywords(text string) []string {
	words := wordRe.FindAllString(strings.ToLower(text), -1)

	counts := make(map[string]int, len(words))
	order := make([]string, 0, len(words))
	for _, w := range words {
		if _, seen := counts[w]; !seen {
			order = append(order, w)
		}
		counts[w]++
	}

	// Stable sort preserves first-occurrence order among equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	keywords := make([]string, 0, maxKeywords)
	for _, w := range order {
		if _, stop := stopwords[w]; stop {
			continue
		}
		keywords = append(keywords, w)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

// Signature patterns: header-like capitalised phrases, account numbers,
// and a closed set of document-type nouns.
var signatureRes = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^([A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+){0,3})`),
	regexp.MustCompile(`(?i)account[:\s#]*(\d{4,})`),
	regexp.MustCompile(`(?i)\b(invoice|statement|bill|receipt|notice|letter|report)\b`),
}

// ExtractSignature scans the first 2000 characters for distinctive
// identifiers and returns up to 10 deduplicated, lowercased hits.
// Currently advisory: matching scores keywords only.
func ExtractSignature(text string) []string {
	if len(text) > fingerprintWindow {
		text = text[:fingerprintWindow]
	}

	seen := make(map[string]struct{})
	var signatures []string
	for _, re := range signatureRes {
		matches := re.FindAllStringSubmatch(text, -1)
		for i, m := range matches {
			if i == 3 {
				break
			}
			sig := strings.ToLower(m[1])
			if _, dup := seen[sig]; dup {
				continue
			}
			seen[sig] = struct{}{}
			signatures = append(signatures, sig)
			if len(signatures) == 10 {
				return signatures
			}
		}
	}
	return signatures
}
