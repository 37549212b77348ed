package models

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"memberdesk/internal/pricing"
)

// Membership is a purchasable membership product
type Membership struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// SubscriptionType is a billing term offered for memberships and services
type SubscriptionType struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Months int    `json:"months"`
}

// Tenure returns the pricing tenure for the subscription type
func (s SubscriptionType) Tenure() (pricing.Tenure, bool) {
	return pricing.TenureForMonths(s.Months)
}

// Service is an add-on service such as swim lessons or personal training
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// MembershipPlan prices a membership for one term, age group and funding type
type MembershipPlan struct {
	ID                 string          `json:"id"`
	MembershipID       string          `json:"membership_id"`
	SubscriptionTypeID string          `json:"subscription_type_id"`
	AgeGroup           string          `json:"age_group"`
	FundingType        string          `json:"funding_type"`
	Price              decimal.Decimal `json:"price"`
}

// ServicePlan prices a service for one term, age group and funding type
type ServicePlan struct {
	ID                 string          `json:"id"`
	ServiceID          string          `json:"service_id"`
	SubscriptionTypeID string          `json:"subscription_type_id"`
	AgeGroup           string          `json:"age_group"`
	FundingType        string          `json:"funding_type"`
	Price              decimal.Decimal `json:"price"`
}

// Catalog holds everything needed to price and enroll a household
type Catalog struct {
	Memberships       []Membership       `json:"memberships"`
	SubscriptionTypes []SubscriptionType `json:"subscription_types"`
	Services          []Service          `json:"services"`
	MembershipPlans   []MembershipPlan   `json:"membership_plans"`
	ServicePlans      []ServicePlan      `json:"service_plans"`
}

// Membership finds a membership by ID, or by name when no ID matches
func (c *Catalog) Membership(idOrName string) (Membership, error) {
	if m, ok := lo.Find(c.Memberships, func(m Membership) bool { return m.ID == idOrName }); ok {
		return m, nil
	}
	if m, ok := lo.Find(c.Memberships, func(m Membership) bool { return strings.EqualFold(m.Name, idOrName) }); ok {
		return m, nil
	}
	return Membership{}, fmt.Errorf("membership %q: %w", idOrName, ErrNotFound)
}

// Service finds a service by ID, or by name when no ID matches
func (c *Catalog) Service(idOrName string) (Service, error) {
	if s, ok := lo.Find(c.Services, func(s Service) bool { return s.ID == idOrName }); ok {
		return s, nil
	}
	if s, ok := lo.Find(c.Services, func(s Service) bool { return strings.EqualFold(s.Name, idOrName) }); ok {
		return s, nil
	}
	return Service{}, fmt.Errorf("service %q: %w", idOrName, ErrNotFound)
}

// ServiceName returns the display name for a service ID, falling back to the ID
func (c *Catalog) ServiceName(id string) string {
	if c == nil {
		return id
	}
	if s, ok := lo.Find(c.Services, func(s Service) bool { return s.ID == id }); ok {
		return s.Name
	}
	return id
}

// SubscriptionTypeFor returns the subscription type that bills the given tenure
func (c *Catalog) SubscriptionTypeFor(tenure pricing.Tenure) (SubscriptionType, error) {
	st, ok := lo.Find(c.SubscriptionTypes, func(s SubscriptionType) bool { return s.Months == tenure.Months() })
	if !ok {
		return SubscriptionType{}, fmt.Errorf("%s: %w", tenure, ErrSubscriptionTypeNotFound)
	}
	return st, nil
}

// Resolver builds a plan resolver over the catalog's plans
func (c *Catalog) Resolver() *pricing.Resolver {
	memberships := lo.Map(c.MembershipPlans, func(p MembershipPlan, _ int) pricing.PlanRecord {
		return pricing.PlanRecord{
			ID:                 p.ID,
			ProductID:          p.MembershipID,
			SubscriptionTypeID: p.SubscriptionTypeID,
			AgeGroup:           p.AgeGroup,
			FundingType:        p.FundingType,
			Price:              p.Price,
		}
	})
	services := lo.Map(c.ServicePlans, func(p ServicePlan, _ int) pricing.PlanRecord {
		return pricing.PlanRecord{
			ID:                 p.ID,
			ProductID:          p.ServiceID,
			SubscriptionTypeID: p.SubscriptionTypeID,
			AgeGroup:           p.AgeGroup,
			FundingType:        p.FundingType,
			Price:              p.Price,
		}
	})
	return pricing.NewResolver(memberships, services)
}
