package onboarding

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"memberdesk/internal/models"
	"memberdesk/internal/pricing"
)

// Step is a page of the onboarding wizard
type Step int

const (
	StepPrimary Step = iota
	StepHousehold
	StepMembership
	StepServices
	StepReview
	StepAgreement
	StepSubmit
)

// Steps lists the wizard pages in order
var Steps = []Step{StepPrimary, StepHousehold, StepMembership, StepServices, StepReview, StepAgreement, StepSubmit}

func (s Step) String() string {
	switch s {
	case StepPrimary:
		return "Primary member"
	case StepHousehold:
		return "Household"
	case StepMembership:
		return "Membership"
	case StepServices:
		return "Services"
	case StepReview:
		return "Review"
	case StepAgreement:
		return "Agreement"
	case StepSubmit:
		return "Submit"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Applicant is one person being enrolled
type Applicant struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	DateOfBirth  string
	Relationship string
	RCEB         bool
	ServiceIDs   []string
}

// FullName joins first and last name
func (a Applicant) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Profile converts the applicant to its API representation
func (a Applicant) Profile() models.Profile {
	return models.Profile{
		FirstName:    strings.TrimSpace(a.FirstName),
		LastName:     strings.TrimSpace(a.LastName),
		Email:        strings.TrimSpace(a.Email),
		Phone:        strings.TrimSpace(a.Phone),
		DateOfBirth:  strings.TrimSpace(a.DateOfBirth),
		RCEBFlag:     a.RCEB,
		Relationship: a.Relationship,
		ServiceIDs:   a.ServiceIDs,
	}
}

// Enrollment is everything collected for one household
type Enrollment struct {
	Primary      Applicant
	Family       []Applicant
	MembershipID string
	Tenure       pricing.Tenure
	Signature    Signature
}

// Members returns the primary member followed by the family
func (e Enrollment) Members() []Applicant {
	return append([]Applicant{e.Primary}, e.Family...)
}

// Household builds the pricing input. Everyone shares the primary member's
// membership and term.
func (e Enrollment) Household(catalog *models.Catalog) pricing.Household {
	subscriptionTypeID := ""
	if catalog != nil {
		if st, err := catalog.SubscriptionTypeFor(e.Tenure); err == nil {
			subscriptionTypeID = st.ID
		}
	}

	members := lo.Map(e.Members(), func(a Applicant, i int) pricing.Member {
		return pricing.Member{
			Name:               a.FullName(),
			DateOfBirth:        a.DateOfBirth,
			IsHead:             i == 0,
			RCEB:               a.RCEB,
			Tenure:             e.Tenure,
			MembershipID:       e.MembershipID,
			SubscriptionTypeID: subscriptionTypeID,
			ServiceIDs:         a.ServiceIDs,
		}
	})
	return pricing.Household{Members: members}
}

// Validate checks every step
func (e Enrollment) Validate(catalog *models.Catalog, now time.Time) error {
	errs := ValidationErrors{}
	for _, step := range Steps {
		validateStep(errs, step, e, catalog, now)
	}
	return errs.Err()
}

func validateStep(errs ValidationErrors, step Step, e Enrollment, catalog *models.Catalog, now time.Time) {
	switch step {
	case StepPrimary:
		validateApplicant(errs, "", e.Primary, true, now)

	case StepHousehold:
		for i, member := range e.Family {
			validateApplicant(errs, fmt.Sprintf("family[%d].", i), member, false, now)
		}

	case StepMembership:
		if e.MembershipID == "" {
			errs.Add("membership", "choose a membership")
		} else if catalog != nil {
			if _, err := catalog.Membership(e.MembershipID); err != nil {
				errs.Add("membership", "unknown membership")
			}
		}
		if !e.Tenure.Valid() {
			errs.Add("tenure", "choose 12, 6 or 3 months")
		} else if catalog != nil {
			if _, err := catalog.SubscriptionTypeFor(e.Tenure); err != nil {
				errs.Add("tenure", "this term is not offered")
			}
		}

	case StepServices:
		if catalog == nil {
			return
		}
		for i, member := range e.Members() {
			for _, id := range member.ServiceIDs {
				if _, err := catalog.Service(id); err != nil {
					errs.Add(fmt.Sprintf("services[%d]", i), fmt.Sprintf("unknown service %q", id))
				}
			}
		}

	case StepAgreement:
		if !e.Signature.HasContent() {
			errs.Add("signature", "type your full name to sign")
		}
	}
}

// Wizard holds the form state of the multi-step onboarding flow
type Wizard struct {
	step       Step
	enrollment Enrollment
	catalog    *models.Catalog
	now        func() time.Time
}

// WizardOption configures a Wizard
type WizardOption func(*Wizard)

// WithClock overrides the wizard's time source
func WithClock(now func() time.Time) WizardOption {
	return func(w *Wizard) {
		w.now = now
	}
}

// NewWizard starts a wizard on the first step with the 12 month term preselected
func NewWizard(catalog *models.Catalog, opts ...WizardOption) *Wizard {
	w := &Wizard{
		step:    StepPrimary,
		catalog: catalog,
		now:     time.Now,
		enrollment: Enrollment{
			Tenure: pricing.Tenure12Month,
		},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Step returns the current step
func (w *Wizard) Step() Step {
	return w.step
}

// Now is the wizard's current time
func (w *Wizard) Now() time.Time {
	return w.now()
}

// Catalog returns the catalog the wizard was started with
func (w *Wizard) Catalog() *models.Catalog {
	return w.catalog
}

// Enrollment returns a copy of the collected data
func (w *Wizard) Enrollment() Enrollment {
	e := w.enrollment
	e.Family = append([]Applicant(nil), w.enrollment.Family...)
	return e
}

// SetPrimary replaces the primary member's details, keeping their services
func (w *Wizard) SetPrimary(a Applicant) {
	a.ServiceIDs = w.enrollment.Primary.ServiceIDs
	w.enrollment.Primary = a
}

// AddFamilyMember validates and appends a household member
func (w *Wizard) AddFamilyMember(a Applicant) error {
	errs := ValidationErrors{}
	validateApplicant(errs, "", a, false, w.now())
	if err := errs.Err(); err != nil {
		return err
	}

	w.enrollment.Family = append(w.enrollment.Family, a)
	return nil
}

// RemoveFamilyMember drops the i-th family member
func (w *Wizard) RemoveFamilyMember(i int) error {
	if i < 0 || i >= len(w.enrollment.Family) {
		return fmt.Errorf("no family member at position %d", i+1)
	}
	w.enrollment.Family = append(w.enrollment.Family[:i], w.enrollment.Family[i+1:]...)
	return nil
}

// SelectMembership picks the household's membership
func (w *Wizard) SelectMembership(id string) error {
	if w.catalog != nil {
		m, err := w.catalog.Membership(id)
		if err != nil {
			return err
		}
		id = m.ID
	}
	w.enrollment.MembershipID = id
	return nil
}

// SetTenure picks the billing term
func (w *Wizard) SetTenure(t pricing.Tenure) error {
	if !t.Valid() {
		return fmt.Errorf("unknown tenure %q", t)
	}
	w.enrollment.Tenure = t
	return nil
}

// ToggleService adds or removes a service for a member. Member 0 is the primary.
func (w *Wizard) ToggleService(member int, serviceID string) error {
	target, err := w.member(member)
	if err != nil {
		return err
	}

	if lo.Contains(target.ServiceIDs, serviceID) {
		target.ServiceIDs = lo.Without(target.ServiceIDs, serviceID)
	} else {
		target.ServiceIDs = append(target.ServiceIDs, serviceID)
	}
	return nil
}

// HasService reports whether a member has selected a service
func (w *Wizard) HasService(member int, serviceID string) bool {
	target, err := w.member(member)
	if err != nil {
		return false
	}
	return lo.Contains(target.ServiceIDs, serviceID)
}

func (w *Wizard) member(i int) (*Applicant, error) {
	if i == 0 {
		return &w.enrollment.Primary, nil
	}
	if i < 0 || i > len(w.enrollment.Family) {
		return nil, fmt.Errorf("no household member at position %d", i+1)
	}
	return &w.enrollment.Family[i-1], nil
}

// Sign records the typed signature
func (w *Wizard) Sign(name string) {
	w.enrollment.Signature = Sign(name, w.now())
}

// ValidateStep returns the problems blocking a step
func (w *Wizard) ValidateStep(step Step) ValidationErrors {
	errs := ValidationErrors{}
	validateStep(errs, step, w.enrollment, w.catalog, w.now())
	return errs
}

// Next validates the current step and advances. It stays on the last step.
func (w *Wizard) Next() error {
	if err := w.ValidateStep(w.step).Err(); err != nil {
		return err
	}
	if w.step < StepSubmit {
		w.step++
	}
	return nil
}

// Back returns to the previous step
func (w *Wizard) Back() {
	if w.step > StepPrimary {
		w.step--
	}
}

// Household is the current pricing input
func (w *Wizard) Household() pricing.Household {
	return w.enrollment.Household(w.catalog)
}

// Quote prices the household as currently entered
func (w *Wizard) Quote(q *pricing.Quoter, source pricing.Source) pricing.Quote {
	return q.Quote(w.Household(), source)
}
