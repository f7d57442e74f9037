package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RowHeight is the number of lines each task row occupies in RenderList.
const RowHeight = 2

var (
	selectedStyle = lipgloss.NewStyle().Bold(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dangerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	chipStyle     = lipgloss.NewStyle().Padding(0, 1)
	pressedStyle  = lipgloss.NewStyle().Bold(true).Reverse(true)

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

type FormData struct {
	InputView string
	Focused   bool
}

type StatsData struct {
	Total        int
	Active       int
	Done         int
	ProgressView string
}

type ChipData struct {
	Key     string
	Label   string
	Pressed bool
}

type RowData struct {
	ID       string
	Text     string
	Done     bool
	Created  string
	Selected bool
	Editing  bool
	EditView string
}

type ListData struct {
	Filter string
	Rows   []RowData
}

type HelpPanelData struct {
	Markdown string
	HelpView string
}

func RenderEntryForm(data FormData) string {
	label := "new task"
	if data.Focused {
		label = "new task (enter to add, esc to leave)"
	}
	return mutedStyle.Render(label) + "\n" + data.InputView
}

func RenderStats(data StatsData) string {
	counts := fmt.Sprintf("total %d  active %d  %s %d",
		data.Total, data.Active, successStyle.Render("done"), data.Done)
	if data.ProgressView == "" {
		return counts
	}
	return counts + "\n" + data.ProgressView
}

// RenderFilterChips draws every chip; the pressed one is bracketed.
func RenderFilterChips(chips []ChipData) string {
	parts := make([]string, 0, len(chips))
	for _, c := range chips {
		label := fmt.Sprintf("%s %s", c.Key, c.Label)
		if c.Pressed {
			parts = append(parts, pressedStyle.Render("["+label+"]"))
			continue
		}
		parts = append(parts, chipStyle.Render(label))
	}
	return "filter: " + strings.Join(parts, " ")
}

// EmptyMessage is shown in place of rows when the visible list is empty.
func EmptyMessage(filter string) string {
	if filter == "" || filter == "all" {
		return "No tasks yet. Add one above!"
	}
	return fmt.Sprintf("No %q tasks right now.", filter)
}

// RenderList rebuilds the whole list from data on every call.
func RenderList(data ListData) string {
	if len(data.Rows) == 0 {
		return mutedStyle.Render(EmptyMessage(data.Filter))
	}
	var b strings.Builder
	for i, row := range data.Rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderRow(row))
	}
	return b.String()
}

func renderRow(row RowData) string {
	cursor := "  "
	if row.Selected {
		cursor = selectedStyle.Render("> ")
	}
	box := mutedStyle.Render(boxUnchecked)
	if row.Done {
		box = successStyle.Render(boxChecked)
	}

	var text string
	switch {
	case row.Editing:
		text = row.EditView
	case row.Done:
		text = doneStyle.Render(row.Text)
	case row.Selected:
		text = selectedStyle.Render(row.Text)
	default:
		text = row.Text
	}

	line := fmt.Sprintf("%s%s %s  %s", cursor, box, text, dangerStyle.Render("[del]"))
	meta := "    " + mutedStyle.Render("Created: "+row.Created)
	return line + "\n" + meta
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command:\n" + inputView
}

func RenderHelpPanel(data HelpPanelData) string {
	out := RenderMarkdown(data.Markdown)
	if data.HelpView != "" {
		out = strings.TrimSpace(out + "\n\n" + data.HelpView)
	}
	return out
}

// FormatCreated renders a creation time in the local zone.
func FormatCreated(t time.Time, layout string) string {
	if t.IsZero() {
		return "unknown"
	}
	if layout == "" {
		layout = "Jan 02, 2006, 03:04 PM"
	}
	return t.Local().Format(layout)
}
