package scoring

import (
	"regexp"
	"strings"

	"github.com/contactintel/backend/internal/model"
)

// emailPattern accepts local@domain.tld shapes: non-whitespace local part,
// literal @, non-whitespace domain, literal dot, non-whitespace TLD.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ErrorCode identifies the kind of validation violation on a field.
type ErrorCode string

const (
	MissingField  ErrorCode = "missing_field"
	TooShort      ErrorCode = "too_short"
	InvalidFormat ErrorCode = "invalid_format"
	InvalidEnum   ErrorCode = "invalid_enum"
)

// FieldError is a single validation violation, attributable to one field.
type FieldError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// FieldErrors maps a field name to its first violation. Validation collects
// violations across all fields; per field, the first check to fail wins.
type FieldErrors map[string]FieldError

// Input is a raw, untrusted contact submission. All values are strings as
// received from the caller; absent optional fields are empty strings.
type Input struct {
	Name     string
	Email    string
	Phone    string
	Message  string
	Category string
	Priority string
}

// Validate checks in against the contact rules and returns either a normalized
// record ready for scoring and storage, or the full set of field violations.
// It never returns both. The normalized record has no ID, timestamps or score;
// those are assigned downstream.
func Validate(in Input) (*model.Contact, FieldErrors) {
	errs := FieldErrors{}

	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		errs["name"] = FieldError{MissingField, "Name is required"}
	case len([]rune(name)) < 2:
		errs["name"] = FieldError{TooShort, "Name must be at least 2 characters"}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	switch {
	case email == "":
		errs["email"] = FieldError{MissingField, "Email is required"}
	case !emailPattern.MatchString(email):
		errs["email"] = FieldError{InvalidFormat, "Invalid email format"}
	}

	// Phone is stored verbatim; only the digit count is checked.
	switch {
	case strings.TrimSpace(in.Phone) == "":
		errs["phone"] = FieldError{MissingField, "Phone is required"}
	case digitCount(in.Phone) < 10:
		errs["phone"] = FieldError{TooShort, "Phone must be at least 10 digits"}
	}

	category := model.CategoryLead
	if in.Category != "" {
		category = model.Category(in.Category)
		if !category.Valid() {
			errs["category"] = FieldError{InvalidEnum, "Category must be one of Lead, Client, Partner, Vendor"}
		}
	}

	priority := model.PriorityMedium
	if in.Priority != "" {
		priority = model.Priority(in.Priority)
		if !priority.Valid() {
			errs["priority"] = FieldError{InvalidEnum, "Priority must be one of Low, Medium, High"}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &model.Contact{
		Name:     name,
		Email:    email,
		Phone:    in.Phone,
		Message:  in.Message,
		Category: category,
		Priority: priority,
	}, nil
}

// digitCount returns the number of ASCII digit characters in s.
func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
