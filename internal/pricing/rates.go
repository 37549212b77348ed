package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Tenure is the billing term a member signs up for.
type Tenure string

const (
	// Tenure12Month is billed monthly; its rates are per month
	Tenure12Month Tenure = "12mo"
	// Tenure6Month is paid in full up front
	Tenure6Month Tenure = "6mo"
	// Tenure3Month is paid in full up front
	Tenure3Month Tenure = "3mo"
)

// Tenures lists the supported terms, longest first.
var Tenures = []Tenure{Tenure12Month, Tenure6Month, Tenure3Month}

// Months returns the length of the term.
func (t Tenure) Months() int {
	switch t {
	case Tenure12Month:
		return 12
	case Tenure6Month:
		return 6
	case Tenure3Month:
		return 3
	}
	return 0
}

// Label is the human readable description of the term.
func (t Tenure) Label() string {
	switch t {
	case Tenure12Month:
		return "12 months (billed monthly)"
	case Tenure6Month:
		return "6 months (paid in full)"
	case Tenure3Month:
		return "3 months (paid in full)"
	}
	return string(t)
}

// Valid reports whether t is one of the supported terms.
func (t Tenure) Valid() bool {
	return t.Months() != 0
}

// ParseTenure accepts "12mo", "12", "12m" and similar spellings.
func ParseTenure(raw string) (Tenure, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimSuffix(strings.TrimSuffix(strings.TrimSuffix(s, "months"), "mo"), "m")
	s = strings.TrimSpace(s)

	for _, t := range Tenures {
		if fmt.Sprint(t.Months()) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tenure %q (must be one of 12mo, 6mo, 3mo)", raw)
}

// TenureForMonths maps a term length back to its tenure.
func TenureForMonths(months int) (Tenure, bool) {
	for _, t := range Tenures {
		if t.Months() == months {
			return t, true
		}
	}
	return "", false
}

// RateClass selects a column of the rate table.
type RateClass string

const (
	RateIndividual     RateClass = "individual"
	RateIndividualPlus RateClass = "individual_plus"
	RateSenior         RateClass = "senior"
	RateAddAdult       RateClass = "add_adult"
	RateAddChild       RateClass = "add_child"
)

// RateTable maps tenure and rate class to a price.
type RateTable map[Tenure]map[RateClass]decimal.Decimal

// Lookup returns the price for a cell. A missing row or column returns false.
func (rt RateTable) Lookup(tenure Tenure, class RateClass) (decimal.Decimal, bool) {
	row, ok := rt[tenure]
	if !ok {
		return decimal.Zero, false
	}
	price, ok := row[class]
	return price, ok
}

// DefaultRates is the published membership price list.
var DefaultRates = RateTable{
	Tenure12Month: {
		RateIndividual:     decimal.RequireFromString("41.50"),
		RateIndividualPlus: decimal.RequireFromString("57.00"),
		RateSenior:         decimal.RequireFromString("37.35"),
		RateAddAdult:       decimal.RequireFromString("35.00"),
		RateAddChild:       decimal.RequireFromString("20.00"),
	},
	Tenure6Month: {
		RateIndividual:     decimal.RequireFromString("373.50"),
		RateIndividualPlus: decimal.RequireFromString("513.00"),
		RateSenior:         decimal.RequireFromString("336.15"),
		RateAddAdult:       decimal.RequireFromString("315.00"),
		RateAddChild:       decimal.RequireFromString("180.00"),
	},
	Tenure3Month: {
		RateIndividual:     decimal.RequireFromString("199.20"),
		RateIndividualPlus: decimal.RequireFromString("273.60"),
		RateSenior:         decimal.RequireFromString("179.28"),
		RateAddAdult:       decimal.RequireFromString("168.00"),
		RateAddChild:       decimal.RequireFromString("90.00"),
	},
}
