package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/model"
)

func (m Model) handleEntryKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.entryInput.Blur()
		m.Mode = ModeNormal
		return m, nil
	case "enter":
		m.submitEntry()
		return m, nil
	}
	var cmd tea.Cmd
	m.entryInput, cmd = m.entryInput.Update(msg)
	return m, cmd
}

// submitEntry adds the form text as a new task and keeps the form focused.
// Blank input does nothing at all.
func (m *Model) submitEntry() {
	text := model.NormalizeText(m.entryInput.Value())
	if text == "" {
		return
	}
	t, added, err := m.store.Add(m.ctx, text)
	if added {
		m.SelectedTaskID = t.ID
		m.entryInput.Reset()
	}
	m.report(added, err, "added: "+t.Text)
}
