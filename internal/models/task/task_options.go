package task

import (
	"time"

	"github.com/google/uuid"
)

// TaskOption - частичное обновление задачи. ID и CreatedAt опциями не меняются.
type TaskOption func(*Task)

func WithTitle(title string) TaskOption {
	return func(task *Task) {
		task.Title = title
	}
}

func WithDescription(description string) TaskOption {
	return func(task *Task) {
		task.Description = description
	}
}

func WithPriority(priority Priority) TaskOption {
	if priority == "" {
		return nil
	}
	return func(task *Task) {
		task.Priority = priority
	}
}

// WithDueDate с nil снимает срок.
func WithDueDate(dueDate *time.Time) TaskOption {
	return func(task *Task) {
		if dueDate == nil {
			task.DueDate = nil
			return
		}
		d := *dueDate
		task.DueDate = &d
	}
}

func WithDueTime(dueTime string) TaskOption {
	return func(task *Task) {
		task.DueTime = dueTime
	}
}

// WithCategory с nil отвязывает категорию.
func WithCategory(category *uuid.UUID) TaskOption {
	return func(task *Task) {
		task.Category = cloneID(category)
	}
}

func WithCompleted(completed bool) TaskOption {
	return func(task *Task) {
		task.Completed = completed
	}
}

func WithUserID(userID string) TaskOption {
	return func(task *Task) {
		task.UserID = userID
	}
}

// Apply применяет опции по порядку, nil пропускаются.
func (t *Task) Apply(options ...TaskOption) {
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
}
