package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/pkg/apperrors"
)

// Field limits
const (
	NameMaxLength        = 50
	PasswordMinLength    = 6
	TitleMaxLength       = 100
	DescriptionMaxLength = 1000
)

// EmailPattern matches a local part, an @ and a dotted domain
var EmailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// StringValidation is a chainable rule set for one string field
type StringValidation struct {
	Field    string
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a required string validation
func NewStringValidation(field, value string) *StringValidation {
	return &StringValidation{
		Field:    field,
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// Optional allows an empty value
func (v *StringValidation) Optional() *StringValidation {
	v.Required = false
	return v
}

// Validate returns a validation error naming the field, or nil
func (v *StringValidation) Validate() error {
	value := strings.TrimSpace(v.Value)
	if value == "" {
		if v.Required {
			return apperrors.NewValidationError(v.Field, v.Field+" is required")
		}
		return nil
	}

	n := utf8.RuneCountInString(value)
	if v.MinLen > 0 && n < v.MinLen {
		return apperrors.NewValidationError(v.Field, v.Field+" is too short")
	}
	if v.MaxLen > 0 && n > v.MaxLen {
		return apperrors.NewValidationError(v.Field, v.Field+" is too long")
	}
	if v.Pattern != nil && !v.Pattern.MatchString(value) {
		return apperrors.NewValidationError(v.Field, v.Field+" is invalid")
	}
	return nil
}

// All returns the first failing rule
func All(rules ...*StringValidation) error {
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeEmail lower-cases and trims an address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateSignup checks the fields of a new account
func ValidateSignup(name, email, password string, role models.RoleType) error {
	err := All(
		NewStringValidation("name", name).WithMaxLength(NameMaxLength),
		NewStringValidation("email", email).WithPattern(EmailPattern),
		NewStringValidation("password", password).WithMinLength(PasswordMinLength),
	)
	if err != nil {
		return err
	}
	if !role.Valid() {
		return apperrors.NewValidationError("role", "role must be one of: student event-member admin")
	}
	return nil
}

// ValidateEvent checks a complete event, as stored after create or a merged update
func ValidateEvent(e *models.Event) error {
	err := All(
		NewStringValidation("title", e.Title).WithMaxLength(TitleMaxLength),
		NewStringValidation("description", e.Description).WithMaxLength(DescriptionMaxLength),
		NewStringValidation("time", e.Time),
		NewStringValidation("venue", e.Venue),
	)
	if err != nil {
		return err
	}
	if !e.Category.Valid() {
		return apperrors.NewValidationError("category", "category must be one of: technical cultural sports workshop")
	}
	if !e.Status.Valid() {
		return apperrors.NewValidationError("status", "status must be one of: upcoming ongoing completed cancelled")
	}
	if e.Capacity < 1 {
		return apperrors.NewValidationError("capacity", "capacity must be at least 1")
	}
	if e.Date.IsZero() {
		return apperrors.NewValidationError("date", "date is required")
	}
	return nil
}
