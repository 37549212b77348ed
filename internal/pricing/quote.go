package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price is an amount that may be absent when no plan could be resolved.
type Price struct {
	Amount decimal.Decimal
	Valid  bool
}

// PriceOf wraps a known amount.
func PriceOf(amount decimal.Decimal) Price {
	return Price{Amount: amount.Round(2), Valid: true}
}

// NoPrice is the absent price. It renders as "-" and is left out of totals.
var NoPrice = Price{}

func (p Price) String() string {
	if !p.Valid {
		return "-"
	}
	return p.Amount.StringFixed(2)
}

// Member is one person on a household quote.
type Member struct {
	Name               string
	DateOfBirth        string
	IsHead             bool
	RCEB               bool
	Tenure             Tenure
	MembershipID       string
	SubscriptionTypeID string
	ServiceIDs         []string
}

// Household is the set of people priced together. The head should be first.
type Household struct {
	Members []Member
}

// Size is the member count used to pick the multi-member tier.
func (h Household) Size() int {
	return len(h.Members)
}

// Source selects where membership charges come from.
type Source string

const (
	// SourceRateTable prices memberships from the published rate table
	SourceRateTable Source = "rate-table"
	// SourcePlans prices memberships from resolved membership plans
	SourcePlans Source = "plans"
)

// ServiceCharge is a priced add-on service for a member.
type ServiceCharge struct {
	ServiceID string
	PlanID    string
	Rule      RuleKind
	Price     Price
}

// QuoteLine is one member's share of a quote.
type QuoteLine struct {
	Member           Member
	Category         AgeCategory
	RateClass        RateClass
	MembershipPlanID string
	MembershipRule   RuleKind
	Membership       Price
	Services         []ServiceCharge
	Subtotal         decimal.Decimal
}

// Quote is the priced household.
type Quote struct {
	Source Source
	Lines  []QuoteLine
	Total  decimal.Decimal
}

// Quoter combines rate-table pricing and plan resolution into household quotes.
type Quoter struct {
	calc  *Calculator
	plans *Resolver
}

// NewQuoter creates a quoter. plans may be nil, in which case plan lookups
// never match.
func NewQuoter(calc *Calculator, plans *Resolver) *Quoter {
	if calc == nil {
		calc = NewCalculator(DefaultRates)
	}
	return &Quoter{
		calc:  calc,
		plans: plans,
	}
}

// Quote prices every member of h independently.
func (q *Quoter) Quote(h Household, source Source) Quote {
	quote := Quote{
		Source: source,
		Lines:  make([]QuoteLine, 0, len(h.Members)),
		Total:  decimal.Zero,
	}

	now := q.calc.Now()
	size := h.Size()
	for _, m := range h.Members {
		line := q.quoteMember(m, size, source, now)
		quote.Lines = append(quote.Lines, line)
		quote.Total = quote.Total.Add(line.Subtotal)
	}

	quote.Total = quote.Total.Round(2)
	return quote
}

func (q *Quoter) quoteMember(m Member, size int, source Source, now time.Time) QuoteLine {
	category := Classify(m.DateOfBirth, now)
	line := QuoteLine{
		Member:    m,
		Category:  category,
		RateClass: RateClassFor(category, m.IsHead, size),
		Subtotal:  decimal.Zero,
	}

	query := PlanQuery{
		ProductID:          m.MembershipID,
		SubscriptionTypeID: m.SubscriptionTypeID,
		AgeGroup:           category,
		FundingType:        FundingFor(m.RCEB),
	}

	plan, planFound := q.plans.Membership(query)
	if planFound {
		line.MembershipPlanID = plan.Plan.ID
		line.MembershipRule = plan.Rule
	}

	switch {
	case m.RCEB:
		line.Membership = PriceOf(decimal.Zero)
	case source == SourcePlans && planFound:
		line.Membership = PriceOf(plan.Plan.Price)
	case source == SourcePlans:
		line.Membership = NoPrice
	default:
		line.Membership = PriceOf(q.calc.CalculateMemberPrice(m.DateOfBirth, m.IsHead, size, m.Tenure, false))
	}

	for _, serviceID := range m.ServiceIDs {
		charge := ServiceCharge{ServiceID: serviceID, Price: NoPrice}
		query.ProductID = serviceID
		if res, ok := q.plans.Service(query); ok {
			charge.PlanID = res.Plan.ID
			charge.Rule = res.Rule
			charge.Price = PriceOf(res.Plan.Price)
		}
		if m.RCEB {
			charge.Price = PriceOf(decimal.Zero)
		}
		line.Services = append(line.Services, charge)
	}

	if line.Membership.Valid {
		line.Subtotal = line.Subtotal.Add(line.Membership.Amount)
	}
	for _, charge := range line.Services {
		if charge.Price.Valid {
			line.Subtotal = line.Subtotal.Add(charge.Price.Amount)
		}
	}

	return line
}
