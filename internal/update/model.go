package update

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/tasks"
	"github.com/sandeepkv93/taskpad/internal/views"
)

type Mode string

const (
	ModeNormal  Mode = "normal"
	ModeEntry   Mode = "entry"
	ModeEdit    Mode = "edit"
	ModePalette Mode = "palette"
)

const (
	defaultWidth      = 100
	defaultListHeight = 10 * views.RowHeight
	// lines used by everything except the list panel
	chromeHeight = 16
)

// FilterState is the current view selector. It is never persisted.
type FilterState struct {
	Current model.Filter
}

// Set switches to f. Unknown values are ignored.
func (s *FilterState) Set(f model.Filter) bool {
	if !f.IsValid() {
		return false
	}
	s.Current = f
	return true
}

func (s FilterState) Chips() []views.ChipData {
	labels := map[model.Filter]string{
		model.FilterAll:    "All",
		model.FilterActive: "Active",
		model.FilterDone:   "Done",
	}
	out := make([]views.ChipData, 0, len(model.Filters))
	for i, f := range model.Filters {
		out = append(out, views.ChipData{
			Key:     string(rune('1' + i)),
			Label:   labels[f],
			Pressed: f == s.Current,
		})
	}
	return out
}

type StatusBar struct {
	Text    string
	IsError bool
}

type EditState struct {
	TaskID   string
	Original string
}

type SetFilterMsg struct {
	Filter model.Filter
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type Options struct {
	DateLayout string
}

type Model struct {
	Filter         FilterState
	Mode           Mode
	Cursor         int
	SelectedTaskID string
	Edit           EditState
	Status         StatusBar
	HelpVisible    bool
	Quitting       bool
	LastError      error
	Keys           KeyMap

	// set by the first X; a second X clears everything
	clearAllArmed bool

	ctx        context.Context
	store      *tasks.Store
	dateLayout string
	width      int

	entryInput   textinput.Model
	editInput    textinput.Model
	commandInput textinput.Model
	listViewport viewport.Model
	progressBar  progress.Model
	helpModel    help.Model
}

// NewModel builds the controller around an already opened store.
func NewModel(ctx context.Context, store *tasks.Store, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		Filter:     FilterState{Current: model.FilterAll},
		Mode:       ModeNormal,
		Keys:       DefaultKeyMap(),
		ctx:        ctx,
		store:      store,
		dateLayout: strings.TrimSpace(opts.DateLayout),
		width:      defaultWidth,
	}
	m.initBubbleComponents()
	m.syncList()
	return m
}

func (m *Model) initBubbleComponents() {
	m.entryInput = textinput.New()
	m.entryInput.Prompt = "add> "
	m.entryInput.Placeholder = "What needs doing?"
	m.entryInput.CharLimit = model.MaxTextLength

	m.editInput = textinput.New()
	m.editInput.Prompt = "edit> "
	m.editInput.CharLimit = model.MaxTextLength

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256

	m.listViewport = viewport.New(m.width-4, defaultListHeight)
	m.progressBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(32))
	m.helpModel = help.New()
	m.resizeInputs()
}

func (m *Model) resizeInputs() {
	w := m.width - 12
	if w < 20 {
		w = 20
	}
	m.entryInput.Width = w
	m.editInput.Width = w
	m.commandInput.Width = w
}

// Store exposes the backing store, mostly for tests and shutdown.
func (m Model) Store() *tasks.Store { return m.store }

func (m Model) visible() []model.Task {
	return m.store.Visible(m.Filter.Current)
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.SelectedTaskID == "" {
		return model.Task{}, false
	}
	return m.store.Get(m.SelectedTaskID)
}
