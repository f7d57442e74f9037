// Package tasks owns the in-memory task collection. Every mutation
// replaces the collection wholesale and persists it before returning.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/taskpad/internal/model"
)

// ErrSaveFailed wraps persistence errors. The in-memory change is kept
// when it is returned.
var ErrSaveFailed = errors.New("tasks: save failed")

// Persister is the storage side of the store. storage.TaskAdapter
// satisfies it.
type Persister interface {
	Load(ctx context.Context) []model.Task
	Save(ctx context.Context, tasks []model.Task) error
}

type Stats struct {
	Total  int
	Active int
	Done   int
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(next func() string) Option {
	return func(s *Store) { s.newID = next }
}

type Store struct {
	persister Persister
	tasks     []model.Task
	now       func() time.Time
	newID     func() string
}

// Open rehydrates the collection from p.
func Open(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	if p == nil {
		return nil, errors.New("tasks: nil persister")
	}
	s := &Store{
		persister: p,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tasks = p.Load(ctx)
	if s.tasks == nil {
		s.tasks = []model.Task{}
	}
	log.Printf("tasks: loaded %d task(s)", len(s.tasks))
	return s, nil
}

// Tasks returns a copy of the collection, newest first.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int { return len(s.tasks) }

func (s *Store) Get(id string) (model.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// Add prepends a new task. Blank or overlong text is a silent no-op.
func (s *Store) Add(ctx context.Context, text string) (model.Task, bool, error) {
	text = model.NormalizeText(text)
	if model.CheckText(text) != nil {
		return model.Task{}, false, nil
	}
	id := s.newID()
	for s.indexOf(id) >= 0 {
		id = s.newID()
	}
	t := model.Task{
		ID:        id,
		Text:      text,
		Done:      false,
		CreatedAt: s.now().UTC(),
	}
	next := make([]model.Task, 0, len(s.tasks)+1)
	next = append(next, t)
	next = append(next, s.tasks...)
	return t, true, s.commit(ctx, next)
}

func (s *Store) Toggle(ctx context.Context, id string) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	next := s.Tasks()
	next[i].Done = !next[i].Done
	return true, s.commit(ctx, next)
}

// Update replaces a task's text. Blank, overlong or unchanged text is a
// no-op, as is an unknown id.
func (s *Store) Update(ctx context.Context, id, text string) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	text = model.NormalizeText(text)
	if model.CheckText(text) != nil || text == s.tasks[i].Text {
		return false, nil
	}
	next := s.Tasks()
	next[i].Text = text
	return true, s.commit(ctx, next)
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	if s.indexOf(id) < 0 {
		return false, nil
	}
	return true, s.commit(ctx, s.filter(func(t model.Task) bool { return t.ID != id }))
}

// ClearDone drops completed tasks and saves, even when nothing was
// removed. The bool reports whether memory changed.
func (s *Store) ClearDone(ctx context.Context) (bool, error) {
	next := s.filter(func(t model.Task) bool { return !t.Done })
	changed := len(next) != len(s.tasks)
	return changed, s.commit(ctx, next)
}

// ClearAll empties the collection and always saves.
func (s *Store) ClearAll(ctx context.Context) (bool, error) {
	changed := len(s.tasks) > 0
	return changed, s.commit(ctx, []model.Task{})
}

// Visible is the read-only view selected by f, in collection order.
// Unknown filters behave like FilterAll.
func (s *Store) Visible(f model.Filter) []model.Task {
	if !f.IsValid() {
		f = model.FilterAll
	}
	return s.filter(f.Matches)
}

func (s *Store) Stats() Stats {
	st := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Done {
			st.Done++
		}
	}
	st.Active = st.Total - st.Done
	return st
}

// commit swaps in next and persists it. Memory is updated even when the
// save fails.
func (s *Store) commit(ctx context.Context, next []model.Task) error {
	s.tasks = next
	if err := s.persister.Save(ctx, s.Tasks()); err != nil {
		log.Printf("tasks: save %d task(s): %v", len(next), err)
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return nil
}

func (s *Store) filter(keep func(model.Task) bool) []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
