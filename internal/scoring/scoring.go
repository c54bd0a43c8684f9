// Package scoring is the contact intelligence engine: pure functions that
// validate raw submissions, compute the 0-100 intelligence score, and derive
// advisory labels from a score. It performs no I/O and holds no state.
package scoring

import (
	"strings"

	"github.com/contactintel/backend/internal/model"
)

// Scorer computes the intelligence score of an already-validated contact.
// Implementations must be deterministic and return a value in [0,100].
//
// Two rubrics ship with this package. They predate each other in different
// call sites of the system and intentionally do not agree; callers must pick
// one by name rather than rely on a single canonical formula.
type Scorer interface {
	Score(c *model.Contact) int
}

// CompletenessRubric weighs each field of the record:
// 25 name + 25 email + 25 phone + 15 message + 5 category + 5 priority.
// The weights sum to exactly 100. This is the rubric the API uses when
// persisting contacts.
type CompletenessRubric struct{}

func (CompletenessRubric) Score(c *model.Contact) int {
	s := 0
	if strings.TrimSpace(c.Name) != "" {
		s += 25
	}
	if emailPattern.MatchString(c.Email) {
		s += 25
	}
	if digitCount(c.Phone) >= 10 {
		s += 25
	}
	if strings.TrimSpace(c.Message) != "" {
		s += 15
	}
	if c.Category.Valid() {
		s += 5
	}
	if c.Priority.Valid() {
		s += 5
	}
	return clamp(s)
}

// EngagementRubric weighs reachability and message effort:
// 30 email + 30 phone + 20 if the message exceeds 20 characters, plus a flat
// 20 base, capped at 100. Presence alone counts; no format checks.
type EngagementRubric struct{}

func (EngagementRubric) Score(c *model.Contact) int {
	s := 20
	if c.Email != "" {
		s += 30
	}
	if c.Phone != "" {
		s += 30
	}
	if len(c.Message) > 20 {
		s += 20
	}
	return clamp(s)
}

// ByName returns the rubric registered under name ("completeness" or
// "engagement"). The second return is false for unknown names.
func ByName(name string) (Scorer, bool) {
	switch name {
	case "completeness":
		return CompletenessRubric{}, true
	case "engagement":
		return EngagementRubric{}, true
	}
	return nil, false
}

// Classify maps a score to an advisory (category label, priority label) pair.
// The labels are a derived view for display; they are never persisted and are
// distinct from the user-chosen Category/Priority enum fields.
func Classify(score int) (category, priority string) {
	switch {
	case score >= 80:
		return "Professional Lead", "High"
	case score >= 50:
		return "Potential Contact", "Medium"
	default:
		return "Casual", "Low"
	}
}

func clamp(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
