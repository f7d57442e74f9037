package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.executePaletteCommand(m.commandInput.Value())
		m.closePalette()
		return m, nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	return m, cmd
}

func (m *Model) closePalette() {
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	m.Mode = ModeNormal
}

func (m *Model) executePaletteCommand(raw string) {
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			t, added, err := m.store.Add(m.ctx, a.Text)
			if added {
				m.SelectedTaskID = t.ID
			}
			return commands.Result{Message: "added: " + t.Text}, err
		},
		Edit: func(a commands.EditArgs) (commands.Result, error) {
			t, ok := m.selectedTask()
			if !ok {
				return commands.Result{}, noSelection()
			}
			changed, err := m.store.Update(m.ctx, t.ID, a.Text)
			if !changed && err == nil {
				return commands.Result{Message: "no changes"}, nil
			}
			return commands.Result{Message: "updated task"}, err
		},
		Toggle: func() (commands.Result, error) {
			t, ok := m.selectedTask()
			if !ok {
				return commands.Result{}, noSelection()
			}
			_, err := m.store.Toggle(m.ctx, t.ID)
			return commands.Result{Message: toggledText(t)}, err
		},
		Delete: func() (commands.Result, error) {
			t, ok := m.selectedTask()
			if !ok {
				return commands.Result{}, noSelection()
			}
			_, err := m.store.Delete(m.ctx, t.ID)
			return commands.Result{Message: "deleted: " + t.Text}, err
		},
		Filter: func(a commands.FilterArgs) (commands.Result, error) {
			m.Filter.Set(a.Filter)
			return commands.Result{Message: fmt.Sprintf("showing %s tasks", a.Filter)}, nil
		},
		Clear: func(a commands.ClearArgs) (commands.Result, error) {
			if a.Scope == commands.ClearAll {
				n := m.store.Len()
				_, err := m.store.ClearAll(m.ctx)
				return commands.Result{Message: fmt.Sprintf("cleared %d task(s)", n)}, err
			}
			n := m.store.Stats().Done
			_, err := m.store.ClearDone(m.ctx)
			return commands.Result{Message: fmt.Sprintf("cleared %d completed", n)}, err
		},
	})
	m.report(true, err, res.Message)
}

func noSelection() error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
}
