package onboarding

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"memberdesk/internal/models"
	"memberdesk/internal/pricing"
)

// Gateway is the slice of the REST API used to enroll a household
type Gateway interface {
	CreateClient(ctx context.Context, req models.ClientRequest) (*models.Client, error)
	AddFamilyMember(ctx context.Context, clientID string, req models.FamilyMemberRequest) (*models.FamilyMember, error)
	CreateSubscription(ctx context.Context, req models.SubscriptionRequest) (*models.Subscription, error)
	SignContract(ctx context.Context, clientID string, req models.ContractRequest) (*models.Contract, error)
}

// Receipt records what was created. On a partial failure it holds whatever
// was created before the error.
type Receipt struct {
	Client        *models.Client
	FamilyMembers []*models.FamilyMember
	Subscriptions []*models.Subscription
	Contract      *models.Contract
	Quote         pricing.Quote
}

// Submitter turns an enrollment into API calls
type Submitter struct {
	gateway Gateway
	catalog *models.Catalog
	quoter  *pricing.Quoter
	source  pricing.Source
	log     *zap.Logger
	now     func() time.Time
}

// SubmitterOption configures a Submitter
type SubmitterOption func(*Submitter)

// WithSubmitClock overrides the time used for start dates and signatures
func WithSubmitClock(now func() time.Time) SubmitterOption {
	return func(s *Submitter) {
		s.now = now
	}
}

// NewSubmitter creates a submitter pricing memberships from source
func NewSubmitter(gateway Gateway, catalog *models.Catalog, quoter *pricing.Quoter, source pricing.Source, logger *zap.Logger, opts ...SubmitterOption) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Submitter{
		gateway: gateway,
		catalog: catalog,
		quoter:  quoter,
		source:  source,
		log:     logger.Named("onboarding"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prepare validates the enrollment, prices it and checks that every member
// and service resolves to a plan. Nothing is sent to the server.
func (s *Submitter) Prepare(e Enrollment) (pricing.Quote, error) {
	if err := e.Validate(s.catalog, s.now()); err != nil {
		return pricing.Quote{}, err
	}

	quote := s.quoter.Quote(e.Household(s.catalog), s.source)
	for _, line := range quote.Lines {
		if line.MembershipPlanID == "" {
			return quote, fmt.Errorf("membership for %s (%s, %s): %w",
				line.Member.Name, line.Category, pricing.FundingFor(line.Member.RCEB), models.ErrPlanNotFound)
		}
		for _, charge := range line.Services {
			if charge.PlanID == "" {
				return quote, fmt.Errorf("service %s for %s: %w",
					s.catalog.ServiceName(charge.ServiceID), line.Member.Name, models.ErrPlanNotFound)
			}
		}
	}

	return quote, nil
}

// Submit creates the client, family members, one subscription per member and
// the signed contract, in that order.
func (s *Submitter) Submit(ctx context.Context, e Enrollment) (*Receipt, error) {
	quote, err := s.Prepare(e)
	if err != nil {
		return nil, err
	}
	receipt := &Receipt{Quote: quote}

	client, err := s.gateway.CreateClient(ctx, models.ClientRequest{
		Profile:      e.Primary.Profile(),
		MembershipID: e.MembershipID,
		Tenure:       string(e.Tenure),
	})
	if err != nil {
		return receipt, err
	}
	receipt.Client = client
	s.log.Info("client created", zap.String("client_id", client.ID), zap.String("name", e.Primary.FullName()))

	for _, member := range e.Family {
		created, err := s.gateway.AddFamilyMember(ctx, client.ID, models.FamilyMemberRequest{Profile: member.Profile()})
		if err != nil {
			return receipt, fmt.Errorf("%s: %w", member.FullName(), err)
		}
		receipt.FamilyMembers = append(receipt.FamilyMembers, created)
		s.log.Info("family member added", zap.String("client_id", client.ID), zap.String("family_member_id", created.ID))
	}

	startDate := s.now().Format("2006-01-02")
	for i, line := range quote.Lines {
		req := models.SubscriptionRequest{
			ClientID:           client.ID,
			MembershipPlanID:   line.MembershipPlanID,
			SubscriptionTypeID: line.Member.SubscriptionTypeID,
			ServicePlanIDs:     lo.Map(line.Services, func(c pricing.ServiceCharge, _ int) string { return c.PlanID }),
			Price:              line.Subtotal.StringFixed(2),
			StartDate:          startDate,
		}
		if i > 0 {
			req.FamilyMemberID = receipt.FamilyMembers[i-1].ID
		}

		sub, err := s.gateway.CreateSubscription(ctx, req)
		if err != nil {
			return receipt, fmt.Errorf("subscription for %s: %w", line.Member.Name, err)
		}
		receipt.Subscriptions = append(receipt.Subscriptions, sub)
		s.log.Info("subscription created",
			zap.String("subscription_id", sub.ID),
			zap.String("membership_plan_id", line.MembershipPlanID),
			zap.String("price", req.Price),
		)
	}

	signature := e.Signature
	if signature.SignedAt.IsZero() {
		signature.SignedAt = s.now()
	}
	contract, err := s.gateway.SignContract(ctx, client.ID, models.ContractRequest{
		TermsVersion: TermsVersion,
		SignerName:   signature.Name,
		SignedAt:     signature.SignedAt,
		Total:        quote.Total.StringFixed(2),
	})
	if err != nil {
		return receipt, err
	}
	receipt.Contract = contract
	s.log.Info("contract signed", zap.String("client_id", client.ID), zap.String("contract_id", contract.ID))

	return receipt, nil
}
