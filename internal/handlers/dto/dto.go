package dto

import (
	"time"

	"tlist/internal/models/task"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Priority    string     `json:"priority"`
	DueDate     string     `json:"dueDate"`
	DueTime     string     `json:"dueTime"`
	Description string     `json:"description"`
	Category    *uuid.UUID `json:"category"`
}

// UpdateTaskRequest: отсутствующее поле не меняется, "" у dueDate/category снимает значение
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	DueTime     *string `json:"dueTime,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

type CreateDailyTaskRequest struct {
	Title string `json:"title"`
}

type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type ViewRequest struct {
	ActiveView     *string `json:"activeView,omitempty"`
	ActiveCategory *string `json:"activeCategory,omitempty"`
}

type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	DueDate     string     `json:"dueDate,omitempty"`
	DueTime     string     `json:"dueTime,omitempty"`
	Priority    string     `json:"priority"`
	Description string     `json:"description,omitempty"`
	Category    *uuid.UUID `json:"category,omitempty"`
	IsOverdue   bool       `json:"isOverdue"`
}

// FromTask: просрочена незавершённая задача со сроком раньше сегодняшнего дня
func FromTask(t task.Task, now time.Time) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		DueTime:     t.DueTime,
		Priority:    string(t.Priority),
		Description: t.Description,
		Category:    t.Category,
	}
	if t.DueDate != nil {
		resp.DueDate = t.DueDate.In(time.Local).Format(time.DateOnly)
		today := now.In(time.Local).Format(time.DateOnly)
		resp.IsOverdue = !t.Completed && resp.DueDate < today
	}
	return resp
}

func FromTaskList(tasks []task.Task, now time.Time) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t, now)
	}
	return result
}
