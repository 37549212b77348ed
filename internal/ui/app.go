package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"

	"memberdesk/internal/models"
	"memberdesk/internal/onboarding"
	"memberdesk/internal/pricing"
	"memberdesk/internal/ui/components"
	"memberdesk/internal/util"
)

// Submitter sends a completed enrollment to the server
type Submitter interface {
	Submit(ctx context.Context, e onboarding.Enrollment) (*onboarding.Receipt, error)
}

// Primary member form fields
const (
	fieldFirstName = iota
	fieldLastName
	fieldEmail
	fieldPhone
	fieldDOB
)

// Family member form fields
const (
	familyFirstName = iota
	familyLastName
	familyDOB
	familyRelationship
)

// Model is the onboarding wizard screen
type Model struct {
	ctx       context.Context
	wizard    *onboarding.Wizard
	quoter    *pricing.Quoter
	source    pricing.Source
	submitter Submitter

	primaryInputs []textinput.Model
	primaryRCEB   bool
	familyInputs  []textinput.Model
	familyRCEB    bool
	focus         int

	memberships components.ChoiceListModel

	serviceMember int
	serviceCursor int

	terms     viewport.Model
	signature textinput.Model

	Spinner    spinner.Model
	Submitting bool
	Receipt    *onboarding.Receipt
	Err        error

	Problems ValidationView
	Width    int
	Height   int
	Ready    bool
}

// ValidationView is what the form shows under the current step
type ValidationView struct {
	Message string
	Fields  onboarding.ValidationErrors
}

// NewModel creates the wizard screen for a loaded catalog
func NewModel(ctx context.Context, wizard *onboarding.Wizard, quoter *pricing.Quoter, source pricing.Source, submitter Submitter) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := Model{
		ctx:       ctx,
		wizard:    wizard,
		quoter:    quoter,
		source:    source,
		submitter: submitter,
		primaryInputs: []textinput.Model{
			newInput("First name", 64),
			newInput("Last name", 64),
			newInput("name@example.com", 128),
			newInput("(555) 555-1234", 32),
			newInput("YYYY-MM-DD", 10),
		},
		familyInputs: []textinput.Model{
			newInput("First name", 64),
			newInput("Last name", 64),
			newInput("YYYY-MM-DD", 10),
			newInput("spouse, child, ...", 32),
		},
		memberships: components.NewChoiceListModel("Memberships", 60, 12),
		terms:       viewport.New(72, 12),
		signature:   newInput("Type your full name", 128),
		Spinner:     s,
	}

	if catalog := wizard.Catalog(); catalog != nil {
		m.memberships.SetChoices(lo.Map(catalog.Memberships, func(mb models.Membership, _ int) components.ChoiceItem {
			return components.ChoiceItem{ID: mb.ID, Name: mb.Name, Detail: mb.Description}
		}))
	}
	m.terms.SetContent(onboarding.Terms)
	m.focusStep()

	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	return ti
}

// Wizard returns the wizard driven by the screen
func (m Model) Wizard() *onboarding.Wizard {
	return m.wizard
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.memberships.SetSize(msg.Width-4, max(msg.Height-12, 6))
		m.terms.Width = min(msg.Width-4, 80)
		m.terms.Height = max(msg.Height-16, 6)
		m.Ready = true
		return m, nil

	case spinner.TickMsg:
		if !m.Submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case submittedMsg:
		m.Submitting = false
		m.Receipt = msg.receipt
		m.Err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.Submitting {
		return m, nil
	}
	if m.Receipt != nil || m.Err != nil {
		if msg.String() == "enter" || msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	step := m.wizard.Step()
	filtering := step == onboarding.StepMembership && m.memberships.List.SettingFilter()

	switch msg.String() {
	case "ctrl+n":
		return m.advance()
	case "ctrl+b":
		m.commit()
		m.wizard.Back()
		m.Problems = ValidationView{}
		m.focusStep()
		return m, nil
	}

	if filtering {
		var cmd tea.Cmd
		m.memberships, cmd = m.memberships.Update(msg)
		return m, cmd
	}

	switch step {
	case onboarding.StepPrimary:
		return m.handlePrimaryKey(msg)
	case onboarding.StepHousehold:
		return m.handleHouseholdKey(msg)
	case onboarding.StepMembership:
		return m.handleMembershipKey(msg)
	case onboarding.StepServices:
		return m.handleServicesKey(msg)
	case onboarding.StepReview:
		if msg.String() == "enter" {
			return m.advance()
		}
	case onboarding.StepAgreement:
		return m.handleAgreementKey(msg)
	case onboarding.StepSubmit:
		if msg.String() == "enter" {
			return m.submit()
		}
	}

	return m, nil
}

func (m Model) handlePrimaryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.moveFocus(m.primaryInputs, 1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(m.primaryInputs, -1)
		return m, nil
	case "ctrl+r":
		m.primaryRCEB = !m.primaryRCEB
		return m, nil
	case "enter":
		return m.advance()
	}

	var cmd tea.Cmd
	m.primaryInputs[m.focus], cmd = m.primaryInputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleHouseholdKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.moveFocus(m.familyInputs, 1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(m.familyInputs, -1)
		return m, nil
	case "ctrl+r":
		m.familyRCEB = !m.familyRCEB
		return m, nil
	case "ctrl+d":
		family := m.wizard.Enrollment().Family
		if len(family) > 0 {
			_ = m.wizard.RemoveFamilyMember(len(family) - 1)
		}
		return m, nil
	case "enter":
		if m.familyFormEmpty() {
			return m.advance()
		}
		return m.addFamilyMember()
	}

	var cmd tea.Cmd
	m.familyInputs[m.focus], cmd = m.familyInputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleMembershipKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right":
		tenures := pricing.Tenures
		current := lo.IndexOf(tenures, m.wizard.Enrollment().Tenure)
		next := current + 1
		if msg.String() == "left" {
			next = current - 1
		}
		next = (next + len(tenures)) % len(tenures)
		_ = m.wizard.SetTenure(tenures[next])
		return m, nil
	case "enter":
		if m.memberships.Selected != nil {
			if err := m.wizard.SelectMembership(m.memberships.Selected.ID); err != nil {
				m.Problems = ValidationView{Message: err.Error()}
				return m, nil
			}
		}
		return m.advance()
	}

	var cmd tea.Cmd
	m.memberships, cmd = m.memberships.Update(msg)
	return m, cmd
}

func (m Model) handleServicesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	members := len(m.wizard.Enrollment().Members())
	services := m.services()

	switch msg.String() {
	case "up", "shift+tab":
		m.serviceMember = (m.serviceMember - 1 + members) % members
	case "down", "tab":
		m.serviceMember = (m.serviceMember + 1) % members
	case "left":
		if len(services) > 0 {
			m.serviceCursor = (m.serviceCursor - 1 + len(services)) % len(services)
		}
	case "right":
		if len(services) > 0 {
			m.serviceCursor = (m.serviceCursor + 1) % len(services)
		}
	case " ", "x":
		if len(services) > 0 {
			_ = m.wizard.ToggleService(m.serviceMember, services[m.serviceCursor].ID)
		}
	case "enter":
		return m.advance()
	}
	return m, nil
}

func (m Model) handleAgreementKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "pgdown", "pgup":
		var cmd tea.Cmd
		m.terms, cmd = m.terms.Update(msg)
		return m, cmd
	case "enter":
		return m.advance()
	}

	var cmd tea.Cmd
	m.signature, cmd = m.signature.Update(msg)
	return m, cmd
}

// commit copies the visible form into the wizard
func (m *Model) commit() {
	switch m.wizard.Step() {
	case onboarding.StepPrimary:
		m.wizard.SetPrimary(onboarding.Applicant{
			FirstName:   m.primaryInputs[fieldFirstName].Value(),
			LastName:    m.primaryInputs[fieldLastName].Value(),
			Email:       m.primaryInputs[fieldEmail].Value(),
			Phone:       m.primaryInputs[fieldPhone].Value(),
			DateOfBirth: m.primaryInputs[fieldDOB].Value(),
			RCEB:        m.primaryRCEB,
		})
	case onboarding.StepAgreement:
		m.wizard.Sign(m.signature.Value())
	}
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	m.commit()
	if err := m.wizard.Next(); err != nil {
		m.Problems = problemsFor(err)
		return m, nil
	}
	m.Problems = ValidationView{}
	m.focusStep()
	return m, nil
}

func (m Model) addFamilyMember() (tea.Model, tea.Cmd) {
	err := m.wizard.AddFamilyMember(onboarding.Applicant{
		FirstName:    m.familyInputs[familyFirstName].Value(),
		LastName:     m.familyInputs[familyLastName].Value(),
		DateOfBirth:  m.familyInputs[familyDOB].Value(),
		Relationship: m.familyInputs[familyRelationship].Value(),
		RCEB:         m.familyRCEB,
	})
	if err != nil {
		m.Problems = problemsFor(err)
		return m, nil
	}

	for i := range m.familyInputs {
		m.familyInputs[i].Reset()
	}
	m.familyRCEB = false
	m.Problems = ValidationView{}
	m.focusStep()
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.submitter == nil {
		m.Err = errors.New("no server connection")
		return m, nil
	}
	m.Submitting = true
	return m, tea.Batch(m.Spinner.Tick, submitEnrollment(m.ctx, m.submitter, m.wizard.Enrollment()))
}

func (m Model) familyFormEmpty() bool {
	return lo.EveryBy(m.familyInputs, func(ti textinput.Model) bool {
		return strings.TrimSpace(ti.Value()) == ""
	})
}

func (m *Model) moveFocus(inputs []textinput.Model, delta int) {
	inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(inputs)) % len(inputs)
	inputs[m.focus].Focus()
}

// focusStep focuses the first input of the current step
func (m *Model) focusStep() {
	for i := range m.primaryInputs {
		m.primaryInputs[i].Blur()
	}
	for i := range m.familyInputs {
		m.familyInputs[i].Blur()
	}
	m.signature.Blur()
	m.focus = 0

	switch m.wizard.Step() {
	case onboarding.StepPrimary:
		m.primaryInputs[0].Focus()
	case onboarding.StepHousehold:
		m.familyInputs[0].Focus()
	case onboarding.StepMembership:
		if id := m.wizard.Enrollment().MembershipID; id != "" {
			m.memberships.Select(id)
		}
	case onboarding.StepServices:
		m.serviceMember = 0
		m.serviceCursor = 0
	case onboarding.StepAgreement:
		m.signature.Focus()
	}
}

func (m Model) services() []models.Service {
	if catalog := m.wizard.Catalog(); catalog != nil {
		return catalog.Services
	}
	return nil
}

// Quote prices the household as currently entered
func (m Model) Quote() pricing.Quote {
	return m.wizard.Quote(m.quoter, m.source)
}

func problemsFor(err error) ValidationView {
	var fields onboarding.ValidationErrors
	if errors.As(err, &fields) {
		return ValidationView{Message: "Please fix the highlighted fields", Fields: fields}
	}
	return ValidationView{Message: err.Error()}
}

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Initializing..."
	}

	var body string
	switch m.wizard.Step() {
	case onboarding.StepPrimary:
		body = m.viewPrimary()
	case onboarding.StepHousehold:
		body = m.viewHousehold()
	case onboarding.StepMembership:
		body = m.viewMembership()
	case onboarding.StepServices:
		body = m.viewServices()
	case onboarding.StepReview:
		body = m.viewReview()
	case onboarding.StepAgreement:
		body = m.viewAgreement()
	case onboarding.StepSubmit:
		body = m.viewSubmit()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("New member onboarding"),
		m.viewSteps(),
		"",
		body,
		m.viewProblems(),
		helpStyle.Render(m.help()),
	)
}

func (m Model) viewSteps() string {
	current := m.wizard.Step()
	parts := lo.Map(onboarding.Steps, func(s onboarding.Step, i int) string {
		label := fmt.Sprintf("%d. %s", i+1, s)
		if s == current {
			return currentStepStyle.Render(label)
		}
		return stepStyle.Render(label)
	})
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) viewPrimary() string {
	labels := []string{"First name", "Last name", "Email", "Phone", "Date of birth"}
	keys := []string{"first_name", "last_name", "email", "phone", "date_of_birth"}

	var b strings.Builder
	for i, input := range m.primaryInputs {
		b.WriteString(formRow(labels[i], input.View(), m.Problems.Fields[keys[i]]))
	}
	b.WriteString(formRow("RCEB funded", checkbox(m.primaryRCEB), ""))
	return b.String()
}

func (m Model) viewHousehold() string {
	e := m.wizard.Enrollment()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Primary: %s\n", e.Primary.FullName()))
	if len(e.Family) == 0 {
		b.WriteString(mutedStyle.Render("No family members yet") + "\n")
	}
	for i, member := range e.Family {
		rceb := ""
		if member.RCEB {
			rceb = " (RCEB)"
		}
		b.WriteString(fmt.Sprintf("  %d. %s, %s, %s%s\n", i+1, member.FullName(), member.DateOfBirth,
			pricing.Classify(member.DateOfBirth, m.wizard.Now()), rceb))
	}

	b.WriteString("\nAdd a family member\n")
	labels := []string{"First name", "Last name", "Date of birth", "Relationship"}
	keys := []string{"first_name", "last_name", "date_of_birth", "relationship"}
	for i, input := range m.familyInputs {
		b.WriteString(formRow(labels[i], input.View(), m.Problems.Fields[keys[i]]))
	}
	b.WriteString(formRow("RCEB funded", checkbox(m.familyRCEB), ""))
	return b.String()
}

func (m Model) viewMembership() string {
	e := m.wizard.Enrollment()
	tenures := lo.Map(pricing.Tenures, func(t pricing.Tenure, _ int) string {
		if t == e.Tenure {
			return cursorStyle.Render("[" + t.Label() + "]")
		}
		return mutedStyle.Render(" " + t.Label() + " ")
	})

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.memberships.View(),
		"",
		"Term: "+strings.Join(tenures, " "),
	)
}

func (m Model) viewServices() string {
	services := m.services()
	if len(services) == 0 {
		return mutedStyle.Render("No add-on services are offered")
	}

	var b strings.Builder
	for i, member := range m.wizard.Enrollment().Members() {
		name := member.FullName()
		if i == m.serviceMember {
			name = cursorStyle.Render("> " + name)
		} else {
			name = "  " + name
		}
		b.WriteString(name + "\n")

		for j, service := range services {
			box := checkbox(m.wizard.HasService(i, service.ID)) + " " + service.Name
			if i == m.serviceMember && j == m.serviceCursor {
				box = cursorStyle.Render(box)
			}
			b.WriteString("    " + box)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewReview() string {
	return renderQuote(m.Quote(), m.wizard.Catalog())
}

func (m Model) viewAgreement() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		termsStyle.Render(m.terms.View()),
		"",
		formRow("Signature", m.signature.View(), m.Problems.Fields["signature"]),
	)
}

func (m Model) viewSubmit() string {
	switch {
	case m.Submitting:
		return fmt.Sprintf("%s Creating membership...", m.Spinner.View())
	case m.Err != nil:
		return errorStyle.Render("Enrollment failed: " + m.Err.Error())
	case m.Receipt != nil:
		lines := []string{successStyle.Render("Enrollment complete")}
		if m.Receipt.Client != nil {
			lines = append(lines, fmt.Sprintf("Client ID: %s", m.Receipt.Client.ID))
		}
		lines = append(lines,
			fmt.Sprintf("Subscriptions: %d", len(m.Receipt.Subscriptions)),
			fmt.Sprintf("Total: %s", util.FormatMoney(m.Receipt.Quote.Total)),
		)
		return strings.Join(lines, "\n")
	}

	e := m.wizard.Enrollment()
	return fmt.Sprintf("Ready to enroll %d member(s) for %s.\nTotal: %s",
		len(e.Members()), e.Tenure.Label(), totalStyle.Render(util.FormatMoney(m.Quote().Total)))
}

func (m Model) viewProblems() string {
	if m.Problems.Message == "" {
		return ""
	}
	return errorStyle.Render(m.Problems.Message)
}

func (m Model) help() string {
	if m.Receipt != nil || m.Err != nil {
		return "enter: quit"
	}

	switch m.wizard.Step() {
	case onboarding.StepPrimary:
		return "tab: next field • ctrl+r: RCEB • enter: continue • ctrl+c: quit"
	case onboarding.StepHousehold:
		return "tab: next field • enter: add member (empty form continues) • ctrl+d: remove last • ctrl+b: back"
	case onboarding.StepMembership:
		return "↑/↓: membership • ←/→: term • /: filter • enter: continue • ctrl+b: back"
	case onboarding.StepServices:
		return "↑/↓: member • ←/→: service • space: toggle • enter: continue • ctrl+b: back"
	case onboarding.StepAgreement:
		return "pgup/pgdown: scroll • type your name and press enter to sign • ctrl+b: back"
	case onboarding.StepSubmit:
		return "enter: submit • ctrl+b: back • ctrl+c: quit"
	}
	return "enter: continue • ctrl+b: back • ctrl+c: quit"
}

// renderQuote draws a quote as a table with a total row
func renderQuote(q pricing.Quote, catalog *models.Catalog) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("Member", "Category", "Membership", "Services", "Subtotal")

	for _, line := range q.Lines {
		services := lo.Map(line.Services, func(c pricing.ServiceCharge, _ int) string {
			return fmt.Sprintf("%s %s", catalog.ServiceName(c.ServiceID), util.FormatPrice(c.Price))
		})
		t.Row(
			line.Member.Name,
			string(line.Category),
			util.FormatPrice(line.Membership),
			strings.Join(services, ", "),
			util.FormatMoney(line.Subtotal),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		t.Render(),
		totalStyle.Render("Total: "+util.FormatMoney(q.Total)),
	)
}

func formRow(label, input, problem string) string {
	row := labelStyle.Render(label) + input
	if problem != "" {
		row += "  " + errorStyle.Render(problem)
	}
	return row + "\n"
}

func checkbox(on bool) string {
	if on {
		return selectedStyle.Render("[x]")
	}
	return "[ ]"
}

// Messages
type submittedMsg struct {
	receipt *onboarding.Receipt
	err     error
}

// Commands
func submitEnrollment(ctx context.Context, submitter Submitter, e onboarding.Enrollment) tea.Cmd {
	return func() tea.Msg {
		receipt, err := submitter.Submit(ctx, e)
		return submittedMsg{receipt: receipt, err: err}
	}
}
