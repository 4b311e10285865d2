package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/pkg/apperrors"
)

func validEvent() *models.Event {
	return &models.Event{
		Title:       "TechFest 2025",
		Description: "Annual technical festival",
		Category:    models.CategoryTechnical,
		Date:        time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Time:        "10:00 AM",
		Venue:       "Main Auditorium",
		Capacity:    100,
		Status:      models.StatusUpcoming,
	}
}

func TestValidateEvent(t *testing.T) {
	if err := ValidateEvent(validEvent()); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}

	mutations := map[string]func(e *models.Event){
		"title too long":   func(e *models.Event) { e.Title = strings.Repeat("x", 101) },
		"empty venue":      func(e *models.Event) { e.Venue = "  " },
		"bad category":     func(e *models.Event) { e.Category = "party" },
		"bad status":       func(e *models.Event) { e.Status = "archived" },
		"zero capacity":    func(e *models.Event) { e.Capacity = 0 },
		"missing date":     func(e *models.Event) { e.Date = time.Time{} },
		"long description": func(e *models.Event) { e.Description = strings.Repeat("d", 1001) },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			e := validEvent()
			mutate(e)
			if err := ValidateEvent(e); !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestValidateSignup(t *testing.T) {
	if err := ValidateSignup("Jane", "jane@student.edu", "secret", models.RoleStudent); err != nil {
		t.Fatalf("valid signup rejected: %v", err)
	}

	cases := []struct {
		name, email, password string
		role                  models.RoleType
		field                 string
	}{
		{"", "a@b.co", "secret", models.RoleStudent, "name"},
		{strings.Repeat("n", 51), "a@b.co", "secret", models.RoleStudent, "name"},
		{"Jane", "not-an-email", "secret", models.RoleStudent, "email"},
		{"Jane", "a@b.co", "12345", models.RoleStudent, "password"},
		{"Jane", "a@b.co", "secret", "teacher", "role"},
	}
	for _, c := range cases {
		err := ValidateSignup(c.name, c.email, c.password, c.role)
		var ce *apperrors.CustomError
		if !errors.As(err, &ce) || ce.Details["field"] != c.field {
			t.Errorf("ValidateSignup(%q, %q, %q, %q) = %v, want field %s", c.name, c.email, c.password, c.role, err, c.field)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  John@Student.EDU "); got != "john@student.edu" {
		t.Errorf("got %q", got)
	}
}
