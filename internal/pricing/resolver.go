package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FundingType identifies who pays for a membership.
type FundingType string

const (
	FundingPrivate FundingType = "private"
	FundingRCEB    FundingType = "rceb"
)

// FundingFor maps the RCEB flag to a funding type.
func FundingFor(rceb bool) FundingType {
	if rceb {
		return FundingRCEB
	}
	return FundingPrivate
}

// Wildcard marks a plan record that applies to any age group or funding type.
const Wildcard = "*"

// PlanRecord is a priced membership or service plan.
type PlanRecord struct {
	ID                 string
	ProductID          string
	SubscriptionTypeID string
	AgeGroup           string
	FundingType        string
	Price              decimal.Decimal
}

// Generic reports whether the record applies to every age group and funding type.
func (r PlanRecord) Generic() bool {
	return isWildcard(r.AgeGroup) && isWildcard(r.FundingType)
}

func isWildcard(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == Wildcard
}

// PlanQuery describes the plan wanted for one member.
type PlanQuery struct {
	ProductID          string
	SubscriptionTypeID string
	AgeGroup           AgeCategory
	FundingType        FundingType
}

// RuleKind tags which fallback rule produced a match.
type RuleKind string

const (
	RuleExact        RuleKind = "exact"
	RuleMinor        RuleKind = "minor"
	RuleSubscription RuleKind = "subscription"
	RuleProduct      RuleKind = "product"
)

// MatchRule is one entry of the ordered fallback search. When Prefer is set,
// matching records that also satisfy it are tried before the rest.
type MatchRule struct {
	Kind   RuleKind
	Match  func(PlanRecord, PlanQuery) bool
	Prefer func(PlanRecord) bool
}

func (rule MatchRule) find(records []PlanRecord, q PlanQuery) (PlanRecord, bool) {
	var fallback *PlanRecord
	for i := range records {
		r := records[i]
		if !rule.Match(r, q) {
			continue
		}
		if rule.Prefer == nil || rule.Prefer(r) {
			return r, true
		}
		if fallback == nil {
			fallback = &records[i]
		}
	}

	if fallback != nil {
		return *fallback, true
	}
	return PlanRecord{}, false
}

func matchesExact(r PlanRecord, q PlanQuery) bool {
	return matchesSubscription(r, q) &&
		strings.EqualFold(strings.TrimSpace(r.AgeGroup), string(q.AgeGroup)) &&
		strings.EqualFold(strings.TrimSpace(r.FundingType), string(q.FundingType))
}

// matchesMinor lets a teen fall back to child records for catalogs that
// only label child, adult and senior plans.
func matchesMinor(r PlanRecord, q PlanQuery) bool {
	if q.AgeGroup != CategoryTeen {
		return false
	}
	q.AgeGroup = CategoryChild
	return matchesExact(r, q)
}

func matchesSubscription(r PlanRecord, q PlanQuery) bool {
	return r.ProductID == q.ProductID && r.SubscriptionTypeID == q.SubscriptionTypeID
}

func matchesProduct(r PlanRecord, q PlanQuery) bool {
	return r.ProductID == q.ProductID
}

// MembershipRules is the fallback order for membership plans.
var MembershipRules = []MatchRule{
	{Kind: RuleExact, Match: matchesExact},
	{Kind: RuleMinor, Match: matchesMinor},
	{Kind: RuleSubscription, Match: matchesSubscription, Prefer: PlanRecord.Generic},
}

// ServiceRules is the fallback order for service plans. Services may be
// priced per product regardless of term.
var ServiceRules = []MatchRule{
	{Kind: RuleExact, Match: matchesExact},
	{Kind: RuleMinor, Match: matchesMinor},
	{Kind: RuleSubscription, Match: matchesSubscription, Prefer: PlanRecord.Generic},
	{Kind: RuleProduct, Match: matchesProduct},
}

// Resolution is the outcome of a plan search.
type Resolution struct {
	Plan PlanRecord
	Rule RuleKind
}

// Resolve walks rules in order and returns on the first rule that matches.
func Resolve(records []PlanRecord, q PlanQuery, rules []MatchRule) (Resolution, bool) {
	for _, rule := range rules {
		if r, ok := rule.find(records, q); ok {
			return Resolution{Plan: r, Rule: rule.Kind}, true
		}
	}
	return Resolution{}, false
}

// Resolver holds the plan catalogs for membership and service lookups.
type Resolver struct {
	memberships []PlanRecord
	services    []PlanRecord
}

// NewResolver creates a resolver over the given plan records.
func NewResolver(memberships, services []PlanRecord) *Resolver {
	return &Resolver{
		memberships: memberships,
		services:    services,
	}
}

// Membership resolves a membership plan.
func (r *Resolver) Membership(q PlanQuery) (Resolution, bool) {
	if r == nil {
		return Resolution{}, false
	}
	return Resolve(r.memberships, q, MembershipRules)
}

// Service resolves a service plan.
func (r *Resolver) Service(q PlanQuery) (Resolution, bool) {
	if r == nil {
		return Resolution{}, false
	}
	return Resolve(r.services, q, ServiceRules)
}
