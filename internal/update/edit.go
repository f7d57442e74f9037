package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) startEdit() (Model, tea.Cmd) {
	t, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	m.Mode = ModeEdit
	m.Edit = EditState{TaskID: t.ID, Original: t.Text}
	m.editInput.SetValue(t.Text)
	m.editInput.CursorEnd()
	cmd := m.editInput.Focus()
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveEdit()
		m.Status = StatusBar{Text: "edit discarded"}
		return m, nil
	case "enter", "tab", "shift+tab":
		m.commitEdit()
		return m, nil
	case "up":
		m.commitEdit()
		m.moveCursor(-1)
		return m, nil
	case "down":
		m.commitEdit()
		m.moveCursor(1)
		return m, nil
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

// commitEdit saves changed, non-blank text. Anything else reverts the
// row without touching storage.
func (m *Model) commitEdit() {
	id := m.Edit.TaskID
	text := m.editInput.Value()
	m.leaveEdit()
	changed, err := m.store.Update(m.ctx, id, text)
	if !changed && err == nil {
		m.Status = StatusBar{Text: "no changes"}
		return
	}
	m.report(changed, err, "updated task")
}

func (m *Model) leaveEdit() {
	m.editInput.Blur()
	m.editInput.SetValue("")
	m.Edit = EditState{}
	m.Mode = ModeNormal
}
