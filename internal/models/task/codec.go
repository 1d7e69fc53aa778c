package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StorageKey - единственный ключ, под которым лежит снапшот.
const StorageKey = "tlist-storage"

const SnapshotVersion = 0

type envelope struct {
	State   *State `json:"state"`
	Version int    `json:"version"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// Encode сериализует состояние в запись снапшота.
func Encode(s *State) ([]byte, error) {
	if s == nil {
		s = NewState()
	}
	data, err := json.Marshal(envelope{State: s, Version: SnapshotVersion})
	if err != nil {
		return nil, fmt.Errorf("сериализация состояния: %w", err)
	}
	return data, nil
}

// Decode читает запись снапшота. Пустая запись даёт пустое состояние.
func Decode(data []byte) (*State, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewState(), nil
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("десериализация состояния: %w", err)
	}
	if env.State == nil {
		return NewState(), nil
	}
	return env.State, nil
}

func (s *State) UnmarshalJSON(data []byte) error {
	type alias State
	aux := struct {
		*alias
		ActiveView     string          `json:"activeView"`
		ActiveCategory json.RawMessage `json:"activeCategory"`
	}{alias: (*alias)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	s.ActiveView = View(aux.ActiveView)
	if !s.ActiveView.Valid() {
		s.ActiveView = ViewAll
	}
	s.ActiveCategory = parseID(aux.ActiveCategory)

	if s.Tasks == nil {
		s.Tasks = []Task{}
	}
	if s.DailyTasks == nil {
		s.DailyTasks = []DailyTask{}
	}
	if s.Categories == nil {
		s.Categories = []Category{}
	}
	return nil
}

// Даты, которые не парсятся, считаются отсутствующими.
func (t *Task) UnmarshalJSON(data []byte) error {
	type alias Task
	aux := struct {
		*alias
		CreatedAt json.RawMessage `json:"createdAt"`
		DueDate   json.RawMessage `json:"dueDate"`
		Priority  string          `json:"priority"`
		Category  json.RawMessage `json:"category"`
	}{alias: (*alias)(t)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if created := parseDate(aux.CreatedAt); created != nil {
		t.CreatedAt = *created
	} else {
		t.CreatedAt = time.Time{}
	}
	t.DueDate = parseDate(aux.DueDate)
	t.Category = parseID(aux.Category)

	t.Priority = Priority(aux.Priority)
	if !t.Priority.Valid() {
		t.Priority = PriorityMedium
	}
	return nil
}

func parseDate(raw json.RawMessage) *time.Time {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var millis int64
	if err := json.Unmarshal(raw, &millis); err == nil {
		d := time.UnixMilli(millis)
		return &d
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		var (
			d   time.Time
			err error
		)
		if layout == time.DateOnly || layout == "2006-01-02T15:04:05" {
			d, err = time.ParseInLocation(layout, s, time.Local)
		} else {
			d, err = time.Parse(layout, s)
		}
		if err == nil {
			return &d
		}
	}
	return nil
}

func parseID(raw json.RawMessage) *uuid.UUID {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
