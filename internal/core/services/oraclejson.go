package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
)

// Oracle replies are expected to be a bare JSON object but often arrive
// wrapped in prose or markdown fences. Recovery is layered: direct
// parse, then fenced code block, then a regex search for an embedded
// object carrying the expected keys. Only when every layer fails is the
// reply reported as malformed, with a truncated copy retained for
// diagnostics.

var fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// parseOracleObject extracts a JSON object from an oracle reply.
// requiredKeys, when given, anchor the last-resort embedded-object
// search so an unrelated object in the prose is not picked up.
func parseOracleObject(reply string, requiredKeys ...string) (map[string]any, error) {
	reply = strings.TrimSpace(reply)

	var obj map[string]any
	if err := json.Unmarshal([]byte(reply), &obj); err == nil {
		return obj, nil
	}

	if m := fencedJSONRe.FindStringSubmatch(reply); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &obj); err == nil {
			return obj, nil
		}
	}

	if len(requiredKeys) > 0 {
		pattern := `\{[^{}]*`
		for _, key := range requiredKeys {
			pattern += `"` + regexp.QuoteMeta(key) + `"[^{}]*`
		}
		pattern += `\}`
		if embeddedRe, err := regexp.Compile("(?s)" + pattern); err == nil {
			if m := embeddedRe.FindString(reply); m != "" {
				if err := json.Unmarshal([]byte(m), &obj); err == nil {
					return obj, nil
				}
			}
		}
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrMalformedReply, truncateForDiag(reply, 200))
}

// truncateForDiag caps a raw reply for inclusion in error messages.
func truncateForDiag(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
