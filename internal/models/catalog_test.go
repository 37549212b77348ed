package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memberdesk/internal/pricing"
)

const catalogJSON = `{
  "memberships": [{"id": "m-basic", "name": "Basic"}, {"id": "m-plus", "name": "Plus"}],
  "subscription_types": [
    {"id": "st-12", "name": "Annual", "months": 12},
    {"id": "st-3", "name": "Quarter", "months": 3}
  ],
  "services": [{"id": "svc-swim", "name": "Swim Lessons"}],
  "membership_plans": [
    {"id": "mp-1", "membership_id": "m-basic", "subscription_type_id": "st-12", "age_group": "adult", "funding_type": "private", "price": 41.5},
    {"id": "mp-2", "membership_id": "m-basic", "subscription_type_id": "st-12", "age_group": "*", "funding_type": "*", "price": "30.00"}
  ],
  "service_plans": [
    {"id": "sp-1", "service_id": "svc-swim", "subscription_type_id": "st-3", "age_group": "child", "funding_type": "private", "price": 15}
  ]
}`

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	var c Catalog
	require.NoError(t, json.Unmarshal([]byte(catalogJSON), &c))
	return &c
}

func TestCatalogLookups(t *testing.T) {
	c := loadCatalog(t)

	m, err := c.Membership("m-plus")
	require.NoError(t, err)
	assert.Equal(t, "Plus", m.Name)

	m, err = c.Membership("basic")
	require.NoError(t, err)
	assert.Equal(t, "m-basic", m.ID)

	_, err = c.Membership("gold")
	assert.True(t, errors.Is(err, ErrNotFound))

	s, err := c.Service("swim lessons")
	require.NoError(t, err)
	assert.Equal(t, "svc-swim", s.ID)
	assert.Equal(t, "Swim Lessons", c.ServiceName("svc-swim"))
	assert.Equal(t, "svc-none", c.ServiceName("svc-none"))
}

func TestCatalogSubscriptionTypeFor(t *testing.T) {
	c := loadCatalog(t)

	st, err := c.SubscriptionTypeFor(pricing.Tenure3Month)
	require.NoError(t, err)
	assert.Equal(t, "st-3", st.ID)

	tenure, ok := st.Tenure()
	assert.True(t, ok)
	assert.Equal(t, pricing.Tenure3Month, tenure)

	_, err = c.SubscriptionTypeFor(pricing.Tenure6Month)
	assert.ErrorIs(t, err, ErrSubscriptionTypeNotFound)
}

func TestCatalogResolver(t *testing.T) {
	resolver := loadCatalog(t).Resolver()

	res, ok := resolver.Membership(pricing.PlanQuery{
		ProductID:          "m-basic",
		SubscriptionTypeID: "st-12",
		AgeGroup:           pricing.CategorySenior,
		FundingType:        pricing.FundingPrivate,
	})
	require.True(t, ok)
	assert.Equal(t, "mp-2", res.Plan.ID)
	assert.Equal(t, "30.00", res.Plan.Price.StringFixed(2))

	res, ok = resolver.Service(pricing.PlanQuery{
		ProductID:          "svc-swim",
		SubscriptionTypeID: "st-12",
		AgeGroup:           pricing.CategoryChild,
		FundingType:        pricing.FundingPrivate,
	})
	require.True(t, ok)
	assert.Equal(t, pricing.RuleProduct, res.Rule)
	assert.Equal(t, "15.00", res.Plan.Price.StringFixed(2))
}

func TestStaffUserIsAdmin(t *testing.T) {
	assert.True(t, (&StaffUser{Role: "admin"}).IsAdmin())
	assert.False(t, (&StaffUser{Role: "front_desk"}).IsAdmin())

	var u *StaffUser
	assert.False(t, u.IsAdmin())
}
