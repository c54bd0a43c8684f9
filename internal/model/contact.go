package model

import "time"

// Category classifies a contact by relationship type. It is user-chosen,
// distinct from the advisory label derived from the intelligence score.
type Category string

const (
	CategoryLead    Category = "Lead"
	CategoryClient  Category = "Client"
	CategoryPartner Category = "Partner"
	CategoryVendor  Category = "Vendor"
)

// Valid reports whether c is one of the allowed category values.
func (c Category) Valid() bool {
	switch c {
	case CategoryLead, CategoryClient, CategoryPartner, CategoryVendor:
		return true
	}
	return false
}

// Priority is the user-chosen follow-up priority of a contact.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Valid reports whether p is one of the allowed priority values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Contact is a validated, normalized contact record.
// Email is stored lowercase and trimmed; Phone is stored verbatim as submitted.
// Score is always computed server-side from the other fields.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	Category  Category  `json:"category"`
	Priority  Priority  `json:"priority"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactListOptions carries filter, sort and pagination parameters for listing contacts.
type ContactListOptions struct {
	// Category filters by category. Empty string returns all categories.
	Category string
	// SortBy is "created_at" (default) or "score"; both descending.
	SortBy string
	Limit  int
	Offset int
}

// ContactStats summarizes the stored contact set.
type ContactStats struct {
	Total        int            `json:"total"`
	AverageScore float64        `json:"average_score"`
	ByCategory   map[string]int `json:"by_category"`
}
