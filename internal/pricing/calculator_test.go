package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedCalculator() *Calculator {
	return NewCalculator(DefaultRates, WithClock(func() time.Time { return refNow }))
}

// dobForAge returns a birth date that makes someone exactly age years old at refNow.
func dobForAge(age int) string {
	return refNow.AddDate(-age, 0, -1).Format("2006-01-02")
}

func assertPrice(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.StringFixed(2))
}

func TestCalculateMemberPrice(t *testing.T) {
	calc := fixedCalculator()

	tests := []struct {
		name    string
		age     int
		isHead  bool
		members int
		tenure  Tenure
		want    string
	}{
		{"solo senior monthly", 70, true, 1, Tenure12Month, "37.35"},
		{"solo senior non-head flag ignored", 70, false, 1, Tenure12Month, "37.35"},
		{"solo adult", 40, true, 1, Tenure12Month, "41.50"},
		{"solo child uses individual", 8, true, 1, Tenure3Month, "199.20"},
		{"head of two, six months, adult", 30, true, 2, Tenure6Month, "513.00"},
		{"head of two, six months, senior", 80, true, 2, Tenure6Month, "513.00"},
		{"head of two, six months, child", 10, true, 2, Tenure6Month, "513.00"},
		{"added child, three months", 10, false, 3, Tenure3Month, "90.00"},
		{"added teen prices as child", 15, false, 3, Tenure3Month, "90.00"},
		{"added adult, monthly", 40, false, 3, Tenure12Month, "35.00"},
		{"added senior prices as adult", 70, false, 3, Tenure12Month, "35.00"},
		{"zero members treated as solo", 40, false, 0, Tenure6Month, "373.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.CalculateMemberPrice(dobForAge(tt.age), tt.isHead, tt.members, tt.tenure, false)
			assertPrice(t, tt.want, got)
		})
	}
}

func TestCalculateMemberPriceRCEBIsAlwaysFree(t *testing.T) {
	calc := fixedCalculator()

	for _, tenure := range append(Tenures, Tenure("bogus")) {
		for _, members := range []int{0, 1, 2, 5} {
			for _, head := range []bool{true, false} {
				for _, dob := range []string{"", "garbage", dobForAge(5), dobForAge(40), dobForAge(90)} {
					got := calc.CalculateMemberPrice(dob, head, members, tenure, true)
					assert.True(t, got.IsZero(), "tenure=%s members=%d head=%v dob=%q", tenure, members, head, dob)
				}
			}
		}
	}
}

func TestCalculateMemberPriceUnknownTenure(t *testing.T) {
	calc := fixedCalculator()
	assert.True(t, calc.CalculateMemberPrice(dobForAge(40), true, 1, "24mo", false).IsZero())

	sparse := RateTable{Tenure12Month: {RateIndividual: decimal.RequireFromString("10")}}
	calc = NewCalculator(sparse, WithClock(func() time.Time { return refNow }))
	assert.True(t, calc.CalculateMemberPrice(dobForAge(70), true, 1, Tenure12Month, false).IsZero())
	assertPrice(t, "10.00", calc.CalculateMemberPrice(dobForAge(40), true, 1, Tenure12Month, false))
}

func TestRateClassFor(t *testing.T) {
	assert.Equal(t, RateSenior, RateClassFor(CategorySenior, false, 1))
	assert.Equal(t, RateIndividual, RateClassFor(CategoryTeen, true, 1))
	assert.Equal(t, RateIndividualPlus, RateClassFor(CategoryChild, true, 4))
	assert.Equal(t, RateAddAdult, RateClassFor(CategorySenior, false, 2))
	assert.Equal(t, RateAddChild, RateClassFor(CategoryTeen, false, 2))
}

func TestParseTenure(t *testing.T) {
	for input, want := range map[string]Tenure{
		"12mo":     Tenure12Month,
		"12":       Tenure12Month,
		" 6MO ":    Tenure6Month,
		"6 months": Tenure6Month,
		"3m":       Tenure3Month,
	} {
		got, err := ParseTenure(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseTenure("1mo")
	assert.Error(t, err)
}

func TestTenureForMonths(t *testing.T) {
	tenure, ok := TenureForMonths(6)
	assert.True(t, ok)
	assert.Equal(t, Tenure6Month, tenure)

	_, ok = TenureForMonths(1)
	assert.False(t, ok)
}
