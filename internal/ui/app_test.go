package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memberdesk/internal/models"
	"memberdesk/internal/onboarding"
	"memberdesk/internal/pricing"
)

var testNow = time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

type fakeSubmitter struct {
	got *onboarding.Enrollment
	err error
}

func (f *fakeSubmitter) Submit(ctx context.Context, e onboarding.Enrollment) (*onboarding.Receipt, error) {
	f.got = &e
	if f.err != nil {
		return nil, f.err
	}
	return &onboarding.Receipt{
		Client:        &models.Client{ID: "client-1"},
		Subscriptions: []*models.Subscription{{ID: "s1"}, {ID: "s2"}},
		Quote:         pricing.Quote{Total: decimal.RequireFromString("89.50")},
	}, nil
}

func newTestModel(t *testing.T, submitter Submitter) Model {
	t.Helper()
	catalog := &models.Catalog{
		Memberships:       []models.Membership{{ID: "m-basic", Name: "Basic"}},
		SubscriptionTypes: []models.SubscriptionType{{ID: "st-12", Months: 12}, {ID: "st-6", Months: 6}},
		Services:          []models.Service{{ID: "svc-swim", Name: "Swim Lessons"}},
		ServicePlans: []models.ServicePlan{
			{ID: "sp-swim", ServiceID: "svc-swim", SubscriptionTypeID: "st-12", AgeGroup: "*", FundingType: "*", Price: decimal.RequireFromString("12.50")},
		},
	}
	wizard := onboarding.NewWizard(catalog, onboarding.WithClock(clock))
	quoter := pricing.NewQuoter(pricing.NewCalculator(nil, pricing.WithClock(clock)), catalog.Resolver())

	m := NewModel(context.Background(), wizard, quoter, pricing.SourceRateTable, submitter)
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated
}

func typeText(t *testing.T, m Model, text string) Model {
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func key(t *testing.T, m Model, k tea.KeyType) Model {
	return update(t, m, tea.KeyMsg{Type: k})
}

func TestViewBeforeWindowSize(t *testing.T) {
	wizard := onboarding.NewWizard(nil)
	m := NewModel(context.Background(), wizard, pricing.NewQuoter(nil, nil), pricing.SourceRateTable, nil)
	assert.Equal(t, "Initializing...", m.View())
}

func TestPrimaryStepShowsValidationErrors(t *testing.T) {
	m := newTestModel(t, nil)
	m = key(t, m, tea.KeyEnter)

	assert.Equal(t, onboarding.StepPrimary, m.Wizard().Step())
	assert.Contains(t, m.View(), "first name is required")
	assert.Contains(t, m.View(), "Please fix the highlighted fields")
}

func TestWizardWalkthroughSubmits(t *testing.T) {
	submitter := &fakeSubmitter{}
	m := newTestModel(t, submitter)

	m = typeText(t, m, "Ada")
	m = key(t, m, tea.KeyTab)
	m = typeText(t, m, "Lovelace")
	m = key(t, m, tea.KeyTab)
	m = typeText(t, m, "ada@example.com")
	m = key(t, m, tea.KeyTab)
	m = key(t, m, tea.KeyTab)
	m = typeText(t, m, "1980-12-10")
	m = key(t, m, tea.KeyEnter)
	require.Equal(t, onboarding.StepHousehold, m.Wizard().Step())

	m = typeText(t, m, "Byron")
	m = key(t, m, tea.KeyTab)
	m = typeText(t, m, "Lovelace")
	m = key(t, m, tea.KeyTab)
	m = typeText(t, m, "2016-03-01")
	m = key(t, m, tea.KeyEnter)
	require.Len(t, m.Wizard().Enrollment().Family, 1)
	assert.Contains(t, m.View(), "Byron Lovelace, 2016-03-01, child")

	m = key(t, m, tea.KeyEnter)
	require.Equal(t, onboarding.StepMembership, m.Wizard().Step())

	m = key(t, m, tea.KeyEnter)
	require.Equal(t, onboarding.StepServices, m.Wizard().Step())
	assert.Equal(t, "m-basic", m.Wizard().Enrollment().MembershipID)

	m = key(t, m, tea.KeyDown)
	m = key(t, m, tea.KeySpace)
	assert.True(t, m.Wizard().HasService(1, "svc-swim"))
	m = key(t, m, tea.KeyEnter)
	require.Equal(t, onboarding.StepReview, m.Wizard().Step())
	assert.Contains(t, m.View(), "$89.50")
	assert.Contains(t, m.View(), "Swim Lessons $12.50")

	m = key(t, m, tea.KeyEnter)
	require.Equal(t, onboarding.StepAgreement, m.Wizard().Step())
	m = key(t, m, tea.KeyEnter)
	assert.Equal(t, onboarding.StepAgreement, m.Wizard().Step())

	m = typeText(t, m, "Ada Lovelace")
	m = key(t, m, tea.KeyEnter)
	require.Equal(t, onboarding.StepSubmit, m.Wizard().Step())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.True(t, m.Submitting)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Creating membership")

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(submittedMsg); ok {
			m = update(t, m, msg)
		}
	}

	assert.False(t, m.Submitting)
	require.NotNil(t, m.Receipt)
	assert.Contains(t, m.View(), "Enrollment complete")
	assert.Contains(t, m.View(), "client-1")

	require.NotNil(t, submitter.got)
	assert.Equal(t, "Ada Lovelace", submitter.got.Signature.Name)
	assert.Equal(t, []string{"svc-swim"}, submitter.got.Family[0].ServiceIDs)
}

func TestTenureSwitcherAndBack(t *testing.T) {
	m := newTestModel(t, nil)
	m.Wizard().SetPrimary(onboarding.Applicant{FirstName: "Ada", LastName: "L", Email: "ada@example.com", DateOfBirth: "1980-12-10"})
	require.NoError(t, m.Wizard().Next())
	require.NoError(t, m.Wizard().Next())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlB})
	assert.Equal(t, onboarding.StepHousehold, m.Wizard().Step())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	require.Equal(t, onboarding.StepMembership, m.Wizard().Step())

	m = key(t, m, tea.KeyRight)
	assert.Equal(t, pricing.Tenure6Month, m.Wizard().Enrollment().Tenure)
	m = key(t, m, tea.KeyLeft)
	m = key(t, m, tea.KeyLeft)
	assert.Equal(t, pricing.Tenure3Month, m.Wizard().Enrollment().Tenure)
	assert.Contains(t, m.View(), "[3 months (paid in full)]")
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
