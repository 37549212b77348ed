package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Calculator prices individual household members from a rate table.
type Calculator struct {
	rates RateTable
	now   func() time.Time
}

// Option configures a Calculator
type Option func(*Calculator)

// WithClock overrides the time source used for age calculations.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		c.now = now
	}
}

// NewCalculator creates a calculator over rates. A nil table uses DefaultRates.
func NewCalculator(rates RateTable, opts ...Option) *Calculator {
	if rates == nil {
		rates = DefaultRates
	}

	c := &Calculator{
		rates: rates,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Now returns the calculator's current time.
func (c *Calculator) Now() time.Time {
	return c.now()
}

// RateClassFor picks the rate-table column for a member.
func RateClassFor(category AgeCategory, isHead bool, totalMembers int) RateClass {
	if totalMembers <= 1 {
		if category == CategorySenior {
			return RateSenior
		}
		return RateIndividual
	}

	switch {
	case isHead:
		return RateIndividualPlus
	case category.IsMinor():
		return RateAddChild
	default:
		return RateAddAdult
	}
}

// CalculateMemberPrice returns the price of one household member. RCEB
// funded members are always free, and an unknown tenure prices at zero.
func (c *Calculator) CalculateMemberPrice(dob string, isHead bool, totalMembers int, tenure Tenure, isRCEB bool) decimal.Decimal {
	if isRCEB {
		return decimal.Zero
	}

	class := RateClassFor(Classify(dob, c.now()), isHead, totalMembers)
	price, ok := c.rates.Lookup(tenure, class)
	if !ok || price.IsNegative() {
		return decimal.Zero
	}
	return price.Round(2)
}

var defaultCalculator = NewCalculator(DefaultRates)

// CalculateMemberPrice prices a member on DefaultRates as of the current time.
func CalculateMemberPrice(dob string, isHead bool, totalMembers int, tenure Tenure, isRCEB bool) decimal.Decimal {
	return defaultCalculator.CalculateMemberPrice(dob, isHead, totalMembers, tenure, isRCEB)
}
