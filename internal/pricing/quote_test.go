package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver() *Resolver {
	return NewResolver(
		[]PlanRecord{
			plan("basic-adult", "basic", "monthly", "adult", "private", "45"),
			plan("basic-child", "basic", "monthly", "child", "private", "25"),
			plan("basic-rceb", "basic", "monthly", "adult", "rceb", "0"),
		},
		[]PlanRecord{
			plan("swim-any", "swim", "monthly", "*", "*", "12.50"),
		},
	)
}

func TestQuoteRateTableHousehold(t *testing.T) {
	quoter := NewQuoter(fixedCalculator(), testResolver())
	household := Household{Members: []Member{
		{Name: "Head", DateOfBirth: dobForAge(40), IsHead: true, Tenure: Tenure12Month, MembershipID: "basic", SubscriptionTypeID: "monthly"},
		{Name: "Partner", DateOfBirth: dobForAge(38), Tenure: Tenure12Month, MembershipID: "basic", SubscriptionTypeID: "monthly", ServiceIDs: []string{"swim"}},
		{Name: "Kid", DateOfBirth: dobForAge(9), Tenure: Tenure12Month, MembershipID: "basic", SubscriptionTypeID: "monthly"},
	}}

	quote := quoter.Quote(household, SourceRateTable)

	require.Len(t, quote.Lines, 3)
	assertPrice(t, "57.00", quote.Lines[0].Membership.Amount)
	assert.Equal(t, RateIndividualPlus, quote.Lines[0].RateClass)
	assertPrice(t, "35.00", quote.Lines[1].Membership.Amount)
	require.Len(t, quote.Lines[1].Services, 1)
	assertPrice(t, "12.50", quote.Lines[1].Services[0].Price.Amount)
	assertPrice(t, "47.50", quote.Lines[1].Subtotal)
	assertPrice(t, "20.00", quote.Lines[2].Membership.Amount)
	assert.Equal(t, CategoryChild, quote.Lines[2].Category)
	assertPrice(t, "124.50", quote.Total)

	// plan ids are resolved even when pricing from the rate table
	assert.Equal(t, "basic-adult", quote.Lines[0].MembershipPlanID)
	assert.Equal(t, "basic-child", quote.Lines[2].MembershipPlanID)
}

func TestQuotePlansSourceExcludesUnpricedMembers(t *testing.T) {
	quoter := NewQuoter(fixedCalculator(), testResolver())
	household := Household{Members: []Member{
		{Name: "Head", DateOfBirth: dobForAge(40), IsHead: true, MembershipID: "basic", SubscriptionTypeID: "monthly"},
		{Name: "Other", DateOfBirth: dobForAge(40), MembershipID: "premium", SubscriptionTypeID: "monthly", ServiceIDs: []string{"sauna"}},
	}}

	quote := quoter.Quote(household, SourcePlans)

	assertPrice(t, "45", quote.Lines[0].Membership.Amount)
	assert.False(t, quote.Lines[1].Membership.Valid)
	assert.Equal(t, "-", quote.Lines[1].Membership.String())
	assert.Equal(t, "-", quote.Lines[1].Services[0].Price.String())
	assertPrice(t, "45", quote.Total)
}

func TestQuoteRCEBMemberIsFreeButKeepsPlanIDs(t *testing.T) {
	quoter := NewQuoter(fixedCalculator(), testResolver())
	household := Household{Members: []Member{
		{Name: "Funded", DateOfBirth: dobForAge(30), IsHead: true, RCEB: true, Tenure: Tenure6Month, MembershipID: "basic", SubscriptionTypeID: "monthly", ServiceIDs: []string{"swim", "sauna"}},
	}}

	for _, source := range []Source{SourceRateTable, SourcePlans} {
		quote := quoter.Quote(household, source)
		line := quote.Lines[0]
		assert.True(t, quote.Total.IsZero(), source)
		assert.Equal(t, "basic-rceb", line.MembershipPlanID)
		assert.Equal(t, RuleExact, line.MembershipRule)
		assert.Equal(t, "swim-any", line.Services[0].PlanID)
		for _, charge := range line.Services {
			assert.Equal(t, "0.00", charge.Price.String())
		}
	}
}

func TestQuoteWithoutPlans(t *testing.T) {
	quote := NewQuoter(fixedCalculator(), nil).Quote(Household{Members: []Member{
		{DateOfBirth: dobForAge(70), IsHead: true, Tenure: Tenure12Month},
	}}, SourceRateTable)

	assertPrice(t, "37.35", quote.Total)
	assert.Empty(t, quote.Lines[0].MembershipPlanID)
}
