package pricing

import (
	"strings"
	"time"
)

// AgeCategory is the canonical age classification used for both rate-table
// pricing and plan lookup.
type AgeCategory string

const (
	// CategoryChild covers everyone under 13, including infants
	CategoryChild AgeCategory = "child"
	// CategoryTeen covers ages 13 through 17
	CategoryTeen AgeCategory = "teen"
	// CategoryAdult covers ages 18 through 64
	CategoryAdult AgeCategory = "adult"
	// CategorySenior covers ages 65 and over
	CategorySenior AgeCategory = "senior"
)

// Category thresholds, in whole years.
const (
	TeenAge   = 13
	AdultAge  = 18
	SeniorAge = 65
)

// IsMinor reports whether the category prices as a child on the rate table.
func (c AgeCategory) IsMinor() bool {
	return c == CategoryChild || c == CategoryTeen
}

func (c AgeCategory) String() string {
	return string(c)
}

var dobLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// ParseDateOfBirth parses a birth date in any of the accepted layouts.
func ParseDateOfBirth(dob string) (time.Time, bool) {
	dob = strings.TrimSpace(dob)
	if dob == "" {
		return time.Time{}, false
	}

	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, dob); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// Age returns the number of whole years between dob and now. Blank,
// malformed and future dates yield 0.
func Age(dob string, now time.Time) int {
	born, ok := ParseDateOfBirth(dob)
	if !ok {
		return 0
	}

	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}

	if age < 0 {
		return 0
	}
	return age
}

// CategoryForAge maps an age in years to its category.
func CategoryForAge(age int) AgeCategory {
	switch {
	case age >= SeniorAge:
		return CategorySenior
	case age >= AdultAge:
		return CategoryAdult
	case age >= TeenAge:
		return CategoryTeen
	default:
		return CategoryChild
	}
}

// Classify returns the age category for a date of birth as of now.
func Classify(dob string, now time.Time) AgeCategory {
	return CategoryForAge(Age(dob, now))
}
