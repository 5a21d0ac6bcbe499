// Package moderation defines the classification contract: the verdict model,
// the fixed policy prompt, and the Classifier interface providers implement.
package moderation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Content categories the classifier may return.
const (
	CategoryNudity    = "NUDITY"
	CategoryCasinoAds = "CASINO_ADS"
	CategorySpam      = "SPAM"
	CategoryViolence  = "VIOLENCE"
	CategorySafe      = "SAFE"
	CategoryError     = "ERROR"
)

// violationCategories are the categories that trigger delete + ban.
var violationCategories = map[string]bool{
	CategoryNudity:    true,
	CategoryCasinoAds: true,
	CategorySpam:      true,
	CategoryViolence:  true,
}

// Verdict is the classifier's structured judgment on one message.
// Models answer with either a category or an explicit violation boolean
// (some return both); Flagged reconciles the two.
type Verdict struct {
	Category  string `json:"category"`
	Reason    string `json:"reason,omitempty"`
	Violation *bool  `json:"violation,omitempty"`
}

// Flagged reports whether the verdict calls for moderation action.
// An explicit violation boolean wins; otherwise the category decides.
// Unknown or empty categories are safe.
func (v Verdict) Flagged() bool {
	if v.Violation != nil {
		return *v.Violation
	}
	return violationCategories[strings.ToUpper(strings.TrimSpace(v.Category))]
}

// Safe is an explicit no-violation verdict.
func Safe(reason string) Verdict {
	return Verdict{Category: CategorySafe, Reason: reason}
}

// Errored is the fail-open verdict used when classification cannot be
// trusted. Never flagged, but distinguishable from SAFE in metrics.
func Errored(reason string) Verdict {
	return Verdict{Category: CategoryError, Reason: reason}
}

// ParseVerdict extracts a Verdict from raw model output. Models often wrap
// JSON in markdown code fences; those are stripped first. Malformed output
// or output carrying neither a category nor a violation flag is an error —
// the caller is expected to fail open.
func ParseVerdict(raw string) (Verdict, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var v Verdict
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return Verdict{}, fmt.Errorf("unmarshaling verdict %q: %w", truncate(cleaned, 120), err)
	}
	if v.Category == "" && v.Violation == nil {
		return Verdict{}, fmt.Errorf("verdict carries neither category nor violation flag")
	}
	v.Category = strings.ToUpper(strings.TrimSpace(v.Category))
	return v, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
