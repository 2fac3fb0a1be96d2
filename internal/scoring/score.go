// Package scoring computes a heuristic quality score for generated resume
// content. The checks and weights are load-bearing: stored resumes carry
// historical scores, so the buckets must not drift.
package scoring

import (
	"encoding/json"
	"regexp"
)

// Bucket weights. Each check is independent and additive; the total is capped
// at 100.
const (
	fullWeight    = 20
	partialWeight = 10
	maxScore      = 100
)

var (
	achievementVerbs = regexp.MustCompile(`(?i)increased|improved|reduced|achieved|led|managed|created`)
	quantifiers      = regexp.MustCompile(`(?i)\d+%|\d+ percent|\d+ times`)
)

// Score computes a quality score in [0,100] for normalized resume content.
// It is a pure function of the content: no I/O, order-independent, and
// recomputed whenever the content changes.
func Score(content map[string]any) int {
	score := 0

	// Comprehensive summary.
	if summary := content["summary"]; present(summary) {
		if sectionLength(summary) > 100 {
			score += fullWeight
		} else {
			score += partialWeight
		}
	}

	// Quantifiable achievements in the experience section. Both checks run
	// over the section's JSON serialization, matching how stored scores were
	// originally computed.
	experienceText := serialize(content["experience"])
	if achievementVerbs.MatchString(experienceText) {
		score += fullWeight
	}
	if quantifiers.MatchString(experienceText) {
		score += fullWeight
	}

	// Skills relevance. A string section is measured in characters, not skill
	// items; a list counts its items. Preserved as-is for score compatibility.
	if skills := content["skills"]; present(skills) {
		if sectionLength(skills) > 5 {
			score += fullWeight
		} else {
			score += partialWeight
		}
	}

	// Education details.
	if education := content["education"]; present(education) {
		if len(serialize(education)) > 50 {
			score += fullWeight
		} else {
			score += partialWeight
		}
	}

	return min(score, maxScore)
}

// present reports whether a section exists with usable content. An empty
// string does not count; empty lists and objects do.
func present(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

// sectionLength measures a section: character count for strings, item count
// for lists, serialized length for anything else.
func sectionLength(v any) int {
	switch s := v.(type) {
	case string:
		return len(s)
	case []any:
		return len(s)
	}
	return len(serialize(v))
}

// serialize returns the JSON encoding of a section, or empty on failure.
func serialize(v any) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
