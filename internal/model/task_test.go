package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Text:      "Buy milk",
		CreatedAt: now,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRequiredFields(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		task Task
		want string
	}{
		{"missing id", Task{Text: "x", CreatedAt: now}, "model: task id is required"},
		{"blank text", Task{ID: "a", Text: "   ", CreatedAt: now}, "model: task text is required"},
		{"zero created", Task{ID: "a", Text: "x"}, "model: task createdAt is required"},
	}
	for _, tc := range cases {
		err := tc.task.Validate()
		if err == nil || err.Error() != tc.want {
			t.Fatalf("%s: expected %q, got %v", tc.name, tc.want, err)
		}
	}
}

func TestCheckTextLength(t *testing.T) {
	if err := CheckText(strings.Repeat("a", MaxTextLength)); err != nil {
		t.Fatalf("expected text at the cap to pass: %v", err)
	}
	err := CheckText(strings.Repeat("a", MaxTextLength+1))
	if err == nil || !errors.Is(err, ErrTextTooLong) {
		t.Fatalf("expected ErrTextTooLong, got: %v", err)
	}
	// runes, not bytes
	if err := CheckText(strings.Repeat("é", MaxTextLength)); err != nil {
		t.Fatalf("expected multibyte text at the cap to pass: %v", err)
	}
	if err := CheckText(""); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestFilterParseAndCycle(t *testing.T) {
	f, err := ParseFilter(" Active ")
	if err != nil || f != FilterActive {
		t.Fatalf("expected active filter, got %q err=%v", f, err)
	}
	if _, err := ParseFilter("later"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got: %v", err)
	}
	if FilterAll.Next() != FilterActive || FilterActive.Next() != FilterDone || FilterDone.Next() != FilterAll {
		t.Fatal("unexpected filter cycle order")
	}
}

func TestFilterMatches(t *testing.T) {
	open := Task{ID: "1", Text: "open"}
	closed := Task{ID: "2", Text: "closed", Done: true}
	if !FilterAll.Matches(open) || !FilterAll.Matches(closed) {
		t.Fatal("all should match everything")
	}
	if !FilterActive.Matches(open) || FilterActive.Matches(closed) {
		t.Fatal("active should only match open tasks")
	}
	if FilterDone.Matches(open) || !FilterDone.Matches(closed) {
		t.Fatal("done should only match closed tasks")
	}
}

func TestTaskJSONLayout(t *testing.T) {
	raw := `{"id":"9f1c","text":"Buy milk","done":true,"createdAt":"2026-02-09T12:30:00.000Z"}`
	var task Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if task.ID != "9f1c" || task.Text != "Buy milk" || !task.Done {
		t.Fatalf("unexpected decoded task: %#v", task)
	}
	if !task.CreatedAt.Equal(time.Date(2026, 2, 9, 12, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected createdAt: %v", task.CreatedAt)
	}

	out, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"id"`, `"text"`, `"done"`, `"createdAt"`} {
		if !strings.Contains(string(out), key) {
			t.Fatalf("expected %s in %s", key, out)
		}
	}
}
