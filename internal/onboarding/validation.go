package onboarding

import (
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"memberdesk/internal/pricing"
)

// ValidationErrors maps a form field to what is wrong with it
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, v[field]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Add records a problem with a field, keeping the first message per field
func (v ValidationErrors) Add(field, message string) {
	if _, exists := v[field]; !exists {
		v[field] = message
	}
}

// Err returns nil when nothing was recorded
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func validateApplicant(errs ValidationErrors, prefix string, a Applicant, requireEmail bool, now time.Time) {
	if strings.TrimSpace(a.FirstName) == "" {
		errs.Add(prefix+"first_name", "first name is required")
	}
	if strings.TrimSpace(a.LastName) == "" {
		errs.Add(prefix+"last_name", "last name is required")
	}

	switch {
	case requireEmail && strings.TrimSpace(a.Email) == "":
		errs.Add(prefix+"email", "email is required")
	case strings.TrimSpace(a.Email) != "":
		if _, err := mail.ParseAddress(a.Email); err != nil {
			errs.Add(prefix+"email", "email address is not valid")
		}
	}

	dob, ok := pricing.ParseDateOfBirth(a.DateOfBirth)
	switch {
	case strings.TrimSpace(a.DateOfBirth) == "":
		errs.Add(prefix+"date_of_birth", "date of birth is required")
	case !ok:
		errs.Add(prefix+"date_of_birth", "use the format YYYY-MM-DD")
	case dob.After(now):
		errs.Add(prefix+"date_of_birth", "date of birth is in the future")
	}
}
