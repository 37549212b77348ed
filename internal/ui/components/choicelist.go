package components

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ChoiceItem is one selectable catalog entry
type ChoiceItem struct {
	ID     string
	Name   string
	Detail string
}

// FilterValue returns the filter value for the item
func (i ChoiceItem) FilterValue() string {
	return i.Name
}

// Title returns the title for the item
func (i ChoiceItem) Title() string {
	return i.Name
}

// Description returns the description for the item
func (i ChoiceItem) Description() string {
	return i.Detail
}

// ChoiceListModel is a filterable list of catalog entries
type ChoiceListModel struct {
	List     list.Model
	Choices  []ChoiceItem
	Selected *ChoiceItem
}

// NewChoiceListModel creates an empty list with a title
func NewChoiceListModel(title string, width, height int) ChoiceListModel {
	listModel := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	listModel.Title = title
	listModel.SetShowStatusBar(false)
	listModel.SetShowHelp(false)
	listModel.SetFilteringEnabled(true)
	listModel.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true).
		MarginLeft(2)

	return ChoiceListModel{
		List:    listModel,
		Choices: []ChoiceItem{},
	}
}

// SetChoices replaces the entries, sorted by name
func (m *ChoiceListModel) SetChoices(choices []ChoiceItem) {
	m.Choices = append([]ChoiceItem(nil), choices...)
	sort.SliceStable(m.Choices, func(i, j int) bool {
		return strings.ToLower(m.Choices[i].Name) < strings.ToLower(m.Choices[j].Name)
	})

	items := make([]list.Item, len(m.Choices))
	for i, choice := range m.Choices {
		items[i] = choice
	}
	m.List.SetItems(items)
	m.syncSelected()
}

// Select moves the cursor to the entry with the given ID
func (m *ChoiceListModel) Select(id string) {
	for i, choice := range m.Choices {
		if choice.ID == id {
			m.List.Select(i)
			break
		}
	}
	m.syncSelected()
}

// SetSize resizes the list
func (m *ChoiceListModel) SetSize(width, height int) {
	m.List.SetSize(width, height)
}

// Update handles list navigation and filtering
func (m ChoiceListModel) Update(msg tea.Msg) (ChoiceListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	m.syncSelected()
	return m, cmd
}

func (m *ChoiceListModel) syncSelected() {
	if item, ok := m.List.SelectedItem().(ChoiceItem); ok {
		m.Selected = &item
	} else {
		m.Selected = nil
	}
}

// View renders the list
func (m ChoiceListModel) View() string {
	return m.List.View()
}
