package task

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	DueTime     string     `json:"dueTime,omitempty"` // "HH:MM"
	Priority    Priority   `json:"priority"`
	Description string     `json:"description,omitempty"`
	Category    *uuid.UUID `json:"category,omitempty"`
	UserID      string     `json:"userId,omitempty"`
	// задачи старых общих групп, только для чтения
	GroupID string `json:"groupId,omitempty"`
}

type DailyTask struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	UserID    string    `json:"userId,omitempty"`
}

type Category struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Color  string    `json:"color"`
	UserID string    `json:"userId,omitempty"`
}

type Priority string

const PriorityLow Priority = "low"
const PriorityMedium Priority = "medium"
const PriorityHigh Priority = "high"

// Rank задаёт порядок сортировки: high < medium < low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func ParsePriority(s string) (Priority, bool) {
	p := Priority(s)
	if s == "" {
		return PriorityMedium, true
	}
	return p, p.Valid()
}

type View string

const ViewAll View = "all"
const ViewActive View = "active"
const ViewCompleted View = "completed"

func (v View) Valid() bool {
	return v == ViewAll || v == ViewActive || v == ViewCompleted
}

// State - всё, что хранится в снапшоте
type State struct {
	Tasks          []Task      `json:"tasks"`
	DailyTasks     []DailyTask `json:"dailyTasks"`
	Categories     []Category  `json:"categories"`
	ActiveView     View        `json:"activeView"`
	ActiveCategory *uuid.UUID  `json:"activeCategory"`
}

func NewState() *State {
	return &State{
		Tasks:      []Task{},
		DailyTasks: []DailyTask{},
		Categories: []Category{},
		ActiveView: ViewAll,
	}
}

// Clone возвращает глубокую копию, чтобы наружу не утекали указатели хранилища.
func (s *State) Clone() *State {
	out := &State{
		Tasks:          make([]Task, len(s.Tasks)),
		DailyTasks:     make([]DailyTask, len(s.DailyTasks)),
		Categories:     make([]Category, len(s.Categories)),
		ActiveView:     s.ActiveView,
		ActiveCategory: cloneID(s.ActiveCategory),
	}
	for i, t := range s.Tasks {
		out.Tasks[i] = t.Clone()
	}
	copy(out.DailyTasks, s.DailyTasks)
	copy(out.Categories, s.Categories)
	return out
}

func (t Task) Clone() Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	t.Category = cloneID(t.Category)
	return t
}

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
