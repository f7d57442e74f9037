package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/sandeepkv93/taskpad/internal/model"
)

// DefaultTaskKey is the fixed identifier the task blob lives under.
const DefaultTaskKey = "todo_app_v1"

// TaskAdapter reads and writes the whole task collection as one JSON
// array under a single key.
type TaskAdapter struct {
	kv  KV
	key string
}

func NewTaskAdapter(kv KV, key string) (*TaskAdapter, error) {
	if kv == nil {
		return nil, errors.New("storage: nil kv")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultTaskKey
	}
	if err := checkKey(key); err != nil {
		return nil, err
	}
	return &TaskAdapter{kv: kv, key: key}, nil
}

func (a *TaskAdapter) Key() string { return a.key }

// Load never fails. A missing key, unreadable blob, or anything that is
// not a JSON array comes back as an empty collection. Inside the array,
// records that do not decode, lack an id or text, or repeat an id are
// dropped one by one.
func (a *TaskAdapter) Load(ctx context.Context) []model.Task {
	raw, ok, err := a.kv.Get(ctx, a.key)
	if err != nil {
		log.Printf("storage: load %s: %v; starting empty", a.key, err)
		return []model.Task{}
	}
	if !ok || len(strings.TrimSpace(string(raw))) == 0 {
		return []model.Task{}
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Printf("storage: load %s: not a task array: %v; starting empty", a.key, err)
		return []model.Task{}
	}

	out := make([]model.Task, 0, len(records))
	seen := make(map[string]bool, len(records))
	dropped := 0
	for _, rec := range records {
		var t model.Task
		if err := json.Unmarshal(rec, &t); err != nil {
			dropped++
			continue
		}
		if strings.TrimSpace(t.ID) == "" || strings.TrimSpace(t.Text) == "" || seen[t.ID] {
			dropped++
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	if dropped > 0 {
		log.Printf("storage: load %s: dropped %d malformed record(s)", a.key, dropped)
	}
	return out
}

// Save overwrites the blob with the full collection.
func (a *TaskAdapter) Save(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := a.kv.Put(ctx, a.key, b); err != nil {
		return fmt.Errorf("save %s: %w", a.key, err)
	}
	return nil
}
