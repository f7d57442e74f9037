package update

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/taskpad/internal/views"
)

type KeyMap struct {
	Add        key.Binding
	Toggle     key.Binding
	Delete     key.Binding
	Edit       key.Binding
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	FilterAll  key.Binding
	FilterAct  key.Binding
	FilterDone key.Binding
	FilterNext key.Binding
	ClearDone  key.Binding
	ClearAll   key.Binding
	Palette    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add:        key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle done")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Edit:       key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/up", "move up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/down", "move down")),
		Top:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		FilterAll:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterAct:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		FilterDone: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "done")),
		FilterNext: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next filter")),
		ClearDone:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear completed")),
		ClearAll:   key.NewBinding(key.WithKeys("X"), key.WithHelp("X X", "clear all")),
		Palette:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.FilterNext, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Edit, k.Toggle, k.Delete},
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.FilterAll, k.FilterAct, k.FilterDone, k.FilterNext},
		{k.ClearDone, k.ClearAll, k.Palette, k.Help, k.Quit},
	}
}

const helpMarkdown = `# taskpad

Tasks are saved after every change.

| context | keys | action |
|---------|------|--------|
| list | a / i | focus the new-task field |
| list | enter / e | edit the selected task |
| list | space / x | toggle done |
| list | d | delete |
| list | 1 2 3 / f | filter all, active, done |
| list | C | clear completed |
| list | X, then X again | clear all |
| new task | enter / esc | add / leave field |
| edit | enter, tab, up, down | save |
| edit | esc | discard |

Commands (press /): ` + "`add <text>`, `edit <text>`, `toggle`, `delete`, `filter <all|active|done>`, `clear <done|all>`"

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	h := m.helpModel
	h.ShowAll = true
	return views.RenderHelpPanel(views.HelpPanelData{
		Markdown: helpMarkdown,
		HelpView: h.View(m.Keys),
	})
}

func (m Model) renderFooter() string {
	return m.helpModel.ShortHelpView(m.Keys.ShortHelp())
}
