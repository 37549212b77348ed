package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoiceListSortsAndSelects(t *testing.T) {
	m := NewChoiceListModel("Memberships", 40, 12)
	m.SetChoices([]ChoiceItem{
		{ID: "m-3", Name: "senior"},
		{ID: "m-1", Name: "Basic"},
		{ID: "m-2", Name: "Premium"},
	})

	require.NotNil(t, m.Selected)
	assert.Equal(t, "m-1", m.Selected.ID)
	assert.Equal(t, []string{"Basic", "Premium", "senior"}, []string{m.Choices[0].Name, m.Choices[1].Name, m.Choices[2].Name})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "m-2", m.Selected.ID)

	m.Select("m-3")
	assert.Equal(t, "m-3", m.Selected.ID)
}

func TestChoiceListEmpty(t *testing.T) {
	m := NewChoiceListModel("Services", 40, 12)
	m.SetChoices(nil)
	assert.Nil(t, m.Selected)
}
