package update

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/tasks"
	"github.com/sandeepkv93/taskpad/internal/views"
)

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.handle(msg)
	next.syncList()
	return next, cmd
}

func (m Model) handle(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(typed.Width, typed.Height)
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.Mode {
		case ModeEntry:
			return m.handleEntryKey(typed)
		case ModeEdit:
			return m.handleEditKey(typed)
		case ModePalette:
			return m.handlePaletteKey(typed)
		default:
			return m.handleNormalKey(typed)
		}
	case SetFilterMsg:
		m.setFilter(typed.Filter)
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}

	// cursor blink and friends go to whichever input has focus
	var cmd tea.Cmd
	switch m.Mode {
	case ModeEntry:
		m.entryInput, cmd = m.entryInput.Update(msg)
	case ModeEdit:
		m.editInput, cmd = m.editInput.Update(msg)
	case ModePalette:
		m.commandInput, cmd = m.commandInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) resize(width, height int) {
	if width > 0 {
		m.width = width
	}
	m.listViewport.Width = m.width - 4
	if height > 0 {
		h := height - chromeHeight
		if h < 3*views.RowHeight {
			h = 3 * views.RowHeight
		}
		m.listViewport.Height = h
	}
	pw := m.width / 3
	if pw > 40 {
		pw = 40
	}
	m.progressBar.Width = pw
	m.resizeInputs()
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	armed := m.clearAllArmed
	m.clearAllArmed = false
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = !m.HelpVisible
	case key.Matches(msg, m.Keys.Palette):
		m.Mode = ModePalette
		m.commandInput.SetValue("")
		cmd := m.commandInput.Focus()
		return m, cmd
	case key.Matches(msg, m.Keys.Add):
		m.Mode = ModeEntry
		cmd := m.entryInput.Focus()
		return m, cmd
	case key.Matches(msg, m.Keys.Edit):
		return m.startEdit()
	case key.Matches(msg, m.Keys.Toggle):
		if t, ok := m.selectedTask(); ok {
			changed, err := m.store.Toggle(m.ctx, t.ID)
			m.report(changed, err, toggledText(t))
		}
	case key.Matches(msg, m.Keys.Delete):
		if t, ok := m.selectedTask(); ok {
			changed, err := m.store.Delete(m.ctx, t.ID)
			m.report(changed, err, "deleted: "+t.Text)
		}
	case key.Matches(msg, m.Keys.FilterAll):
		m.setFilter(model.FilterAll)
	case key.Matches(msg, m.Keys.FilterAct):
		m.setFilter(model.FilterActive)
	case key.Matches(msg, m.Keys.FilterDone):
		m.setFilter(model.FilterDone)
	case key.Matches(msg, m.Keys.FilterNext):
		m.setFilter(m.Filter.Current.Next())
	case key.Matches(msg, m.Keys.ClearDone):
		before := m.store.Stats().Done
		changed, err := m.store.ClearDone(m.ctx)
		m.report(changed, err, fmt.Sprintf("cleared %d completed", before))
	case key.Matches(msg, m.Keys.ClearAll):
		if !armed {
			m.clearAllArmed = true
			m.Status = StatusBar{Text: fmt.Sprintf("press X again to delete all %d task(s)", m.store.Len()), IsError: true}
			return m, nil
		}
		changed, err := m.store.ClearAll(m.ctx)
		m.report(changed, err, "cleared all tasks")
	case key.Matches(msg, m.Keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.Keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.Keys.Top):
		m.moveCursor(-len(m.visible()))
	case key.Matches(msg, m.Keys.Bottom):
		m.moveCursor(len(m.visible()))
	case msg.String() == "esc":
		m.Status = StatusBar{}
	}
	return m, nil
}

func toggledText(t model.Task) string {
	if t.Done {
		return "reopened: " + t.Text
	}
	return "completed: " + t.Text
}

func (m *Model) setFilter(f model.Filter) {
	if m.Filter.Set(f) {
		m.Status = StatusBar{Text: fmt.Sprintf("showing %s tasks", f)}
	}
}

func (m *Model) moveCursor(delta int) {
	vis := m.visible()
	if len(vis) == 0 {
		return
	}
	m.Cursor = clamp(m.Cursor+delta, 0, len(vis)-1)
	m.SelectedTaskID = vis[m.Cursor].ID
}

// report turns a store result into status bar text. A failed save keeps
// the in-memory change, so the message says so.
func (m *Model) report(changed bool, err error, okText string) {
	switch {
	case errors.Is(err, tasks.ErrSaveFailed):
		m.LastError = err
		m.Status = StatusBar{Text: "could not save tasks (changes kept in memory)", IsError: true}
	case err != nil:
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	case changed && okText != "":
		m.Status = StatusBar{Text: okText}
	}
}

// syncList clamps the selection to the visible tasks and rebuilds the
// list viewport from scratch.
func (m *Model) syncList() {
	vis := m.visible()
	idx := -1
	for i, t := range vis {
		if t.ID == m.SelectedTaskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		idx = clamp(m.Cursor, 0, len(vis)-1)
	}
	if len(vis) == 0 {
		m.Cursor = 0
		m.SelectedTaskID = ""
	} else {
		m.Cursor = idx
		m.SelectedTaskID = vis[idx].ID
	}

	if m.Mode == ModeEdit && m.Edit.TaskID != m.SelectedTaskID {
		m.leaveEdit()
	}

	rows := make([]views.RowData, 0, len(vis))
	for i, t := range vis {
		row := views.RowData{
			ID:       t.ID,
			Text:     t.Text,
			Done:     t.Done,
			Created:  views.FormatCreated(t.CreatedAt, m.dateLayout),
			Selected: i == m.Cursor,
		}
		if m.Mode == ModeEdit && t.ID == m.Edit.TaskID {
			row.Editing = true
			row.EditView = m.editInput.View()
		}
		rows = append(rows, row)
	}
	m.listViewport.SetContent(views.RenderList(views.ListData{
		Filter: string(m.Filter.Current),
		Rows:   rows,
	}))

	top := m.Cursor * views.RowHeight
	switch {
	case top < m.listViewport.YOffset:
		m.listViewport.SetYOffset(top)
	case top+views.RowHeight > m.listViewport.YOffset+m.listViewport.Height:
		m.listViewport.SetYOffset(top + views.RowHeight - m.listViewport.Height)
	}
}

func (m Model) View() string {
	stats := m.store.Stats()
	ratio := 0.0
	if stats.Total > 0 {
		ratio = float64(stats.Done) / float64(stats.Total)
	}
	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
	}
	return views.RenderApp(views.AppData{
		Header: fmt.Sprintf("taskpad | filter: %s | mode: %s", m.Filter.Current, m.Mode),
		Form: views.RenderEntryForm(views.FormData{
			InputView: m.entryInput.View(),
			Focused:   m.Mode == ModeEntry,
		}),
		Chips: views.RenderFilterChips(m.Filter.Chips()),
		Stats: views.RenderStats(views.StatsData{
			Total:        stats.Total,
			Active:       stats.Active,
			Done:         stats.Done,
			ProgressView: m.progressBar.ViewAs(ratio),
		}),
		List:       m.listViewport.View(),
		Palette:    views.RenderCommandPalette(m.Mode == ModePalette, m.commandInput.View()),
		Help:       m.renderHelpIfVisible(),
		StatusLine: status,
		IsError:    m.Status.IsError,
		Footer:     m.renderFooter(),
		Width:      m.width - 2,
	})
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
