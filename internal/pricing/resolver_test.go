package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plan(id, product, sub, age, funding, price string) PlanRecord {
	return PlanRecord{
		ID:                 id,
		ProductID:          product,
		SubscriptionTypeID: sub,
		AgeGroup:           age,
		FundingType:        funding,
		Price:              decimal.RequireFromString(price),
	}
}

func TestResolveFallsBackToGenericSubscriptionRecord(t *testing.T) {
	records := []PlanRecord{
		plan("p1", "m1", "s1", "adult", "private", "100"),
		plan("p2", "m1", "s1", "*", "*", "80"),
	}

	res, ok := Resolve(records, PlanQuery{
		ProductID:          "m1",
		SubscriptionTypeID: "s1",
		AgeGroup:           CategorySenior,
		FundingType:        FundingPrivate,
	}, MembershipRules)

	require.True(t, ok)
	assert.Equal(t, RuleSubscription, res.Rule)
	assert.Equal(t, "p2", res.Plan.ID)
	assertPrice(t, "80", res.Plan.Price)
}

func TestResolveExactMatchIsCaseInsensitive(t *testing.T) {
	records := []PlanRecord{
		plan("generic", "m1", "s1", "", "", "80"),
		plan("senior", "m1", "s1", "Senior", "PRIVATE", "60"),
	}

	res, ok := Resolve(records, PlanQuery{"m1", "s1", CategorySenior, FundingPrivate}, MembershipRules)
	require.True(t, ok)
	assert.Equal(t, RuleExact, res.Rule)
	assert.Equal(t, "senior", res.Plan.ID)
}

func TestResolveSubscriptionRuleUsesFirstRecordWithoutGeneric(t *testing.T) {
	records := []PlanRecord{
		plan("other", "m2", "s1", "adult", "private", "10"),
		plan("adult", "m1", "s1", "adult", "private", "100"),
		plan("child", "m1", "s1", "child", "private", "50"),
	}

	res, ok := Resolve(records, PlanQuery{"m1", "s1", CategorySenior, FundingRCEB}, MembershipRules)
	require.True(t, ok)
	assert.Equal(t, RuleSubscription, res.Rule)
	assert.Equal(t, "adult", res.Plan.ID)
}

func TestResolveTeenFallsBackToChildRecord(t *testing.T) {
	records := []PlanRecord{
		plan("adult", "m1", "s1", "adult", "private", "100"),
		plan("child", "m1", "s1", "child", "private", "50"),
	}
	now := time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)
	teen := Classify("2011-01-01", now)
	require.Equal(t, CategoryTeen, teen)

	for name, rules := range map[string][]MatchRule{"membership": MembershipRules, "service": ServiceRules} {
		t.Run(name, func(t *testing.T) {
			res, ok := Resolve(records, PlanQuery{"m1", "s1", teen, FundingPrivate}, rules)
			require.True(t, ok)
			assert.Equal(t, RuleMinor, res.Rule)
			assert.Equal(t, "child", res.Plan.ID)
			assertPrice(t, "50", res.Plan.Price)
		})
	}

	records = append(records, plan("teen", "m1", "s1", "teen", "private", "70"))
	res, ok := Resolve(records, PlanQuery{"m1", "s1", teen, FundingPrivate}, MembershipRules)
	require.True(t, ok)
	assert.Equal(t, RuleExact, res.Rule)
	assert.Equal(t, "teen", res.Plan.ID)

	res, ok = Resolve(records[:2], PlanQuery{"m1", "s1", CategoryAdult, FundingRCEB}, MembershipRules)
	require.True(t, ok)
	assert.Equal(t, RuleSubscription, res.Rule)
}

func TestResolveMembershipNeverMatchesOnProductAlone(t *testing.T) {
	records := []PlanRecord{plan("p1", "m1", "s2", "adult", "private", "100")}

	_, ok := Resolve(records, PlanQuery{"m1", "s1", CategoryAdult, FundingPrivate}, MembershipRules)
	assert.False(t, ok)
}

func TestResolveServiceFallsBackToProduct(t *testing.T) {
	records := []PlanRecord{
		plan("swim-a", "swim", "s2", "adult", "private", "15"),
		plan("yoga", "yoga", "s1", "adult", "private", "20"),
	}
	resolver := NewResolver(nil, records)

	res, ok := resolver.Service(PlanQuery{"swim", "s1", CategoryAdult, FundingPrivate})
	require.True(t, ok)
	assert.Equal(t, RuleProduct, res.Rule)
	assert.Equal(t, "swim-a", res.Plan.ID)

	_, ok = resolver.Service(PlanQuery{"sauna", "s1", CategoryAdult, FundingPrivate})
	assert.False(t, ok)
}

func TestResolveEmptyCatalog(t *testing.T) {
	_, ok := NewResolver(nil, nil).Membership(PlanQuery{ProductID: "m1"})
	assert.False(t, ok)

	var resolver *Resolver
	_, ok = resolver.Service(PlanQuery{ProductID: "m1"})
	assert.False(t, ok)
}

func TestPlanRecordGeneric(t *testing.T) {
	assert.True(t, plan("", "", "", "", "", "0").Generic())
	assert.True(t, plan("", "", "", " * ", "*", "0").Generic())
	assert.False(t, plan("", "", "", "*", "rceb", "0").Generic())
}
