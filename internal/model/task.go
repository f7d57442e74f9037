package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTextLength caps task text on both create and edit.
const MaxTextLength = 120

var (
	ErrInvalidFilter = errors.New("model: invalid filter")
	ErrTextTooLong   = errors.New("model: task text too long")
)

type Filter string

const (
	FilterAll    Filter = "all"
	FilterActive Filter = "active"
	FilterDone   Filter = "done"
)

// Filters lists every filter in chip order.
var Filters = []Filter{FilterAll, FilterActive, FilterDone}

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterDone:
		return true
	default:
		return false
	}
}

// Next cycles all -> active -> done -> all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterDone
	default:
		return FilterAll
	}
}

// Matches reports whether a task belongs in the view selected by f.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Done
	case FilterDone:
		return t.Done
	default:
		return true
	}
}

func ParseFilter(raw string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(raw)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
	return f, nil
}

// Task is the persisted record. The json tags are the on-disk layout and
// must stay compatible with blobs written by earlier sessions.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt"`
}

func NormalizeText(raw string) string {
	return strings.TrimSpace(raw)
}

// CheckText validates already-normalized text.
func CheckText(text string) error {
	if text == "" {
		return errors.New("model: task text is required")
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return fmt.Errorf("%w: %d > %d", ErrTextTooLong, utf8.RuneCountInString(text), MaxTextLength)
	}
	return nil
}

// Validate checks the structural invariants of a stored record. Length is
// not checked here so that older, longer records still load.
func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task createdAt is required")
	}
	return nil
}
