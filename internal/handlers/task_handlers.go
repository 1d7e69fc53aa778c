package handlers

import (
	"net/http"
	"time"

	"tlist/internal/handlers/dto"
	"tlist/internal/logger"
	"tlist/internal/service"

	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService Service
}

func NewTaskHandler(taskService Service) *TaskHandler {
	return &TaskHandler{
		TaskService: taskService,
	}
}

func (s *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := s.TaskService.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Сервис недоступен", err)
		responseWithJSON(w, http.StatusServiceUnavailable,
			toPayload("status", "unavailable"),
			toPayload("service", "tlist"),
			toPayload("error", err.Error()),
		)
		return
	}

	responseWithJSON(w, http.StatusOK,
		toPayload("status", "ok"),
		toPayload("service", "tlist"),
	)
}

// GetTasks - задачи с учётом текущего вида, категории и пользователя
func (s *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	tasks := s.TaskService.VisibleTasks(r.Context())
	view := s.TaskService.View(r.Context())

	responseWithJSON(w, http.StatusOK,
		toPayload("tasks", dto.FromTaskList(tasks, time.Now())),
		toPayload("count", len(tasks)),
		toPayload("activeView", view.ActiveView),
		toPayload("activeCategory", view.ActiveCategory),
	)
}

func (s *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	tasks := s.TaskService.AllTasks(r.Context())

	responseWithJSON(w, http.StatusOK,
		toPayload("tasks", dto.FromTaskList(tasks, time.Now())),
		toPayload("count", len(tasks)),
	)
}

func (s *TaskHandler) GetTaskStats(w http.ResponseWriter, r *http.Request) {
	stats := s.TaskService.TaskStats(r.Context())

	responseWithJSON(w, http.StatusOK,
		toPayload("total", stats.Total),
		toPayload("completed", stats.Completed),
		toPayload("percentage", stats.Percentage),
	)
}

// GetDueTasks - задачи на дату из ?date=YYYY-MM-DD, по умолчанию сегодня
func (s *TaskHandler) GetDueTasks(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	date := r.URL.Query().Get("date")
	if date == "" {
		date = now.Format(time.DateOnly)
	}

	tasks, err := s.TaskService.TasksDueOn(r.Context(), date)
	if err != nil {
		handleServiceError(w, r, err, "tasks_due_on")
		return
	}

	responseWithJSON(w, http.StatusOK,
		toPayload("date", date),
		toPayload("tasks", dto.FromTaskList(tasks, now)),
		toPayload("count", len(tasks)),
	)
}

func (s *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var request dto.CreateTaskRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	logger.Info("HTTP: Вызов сервиса создания задач")
	id, err := s.TaskService.CreateTask(r.Context(), service.CreateTaskInput{
		Title:       request.Title,
		Priority:    request.Priority,
		DueDate:     request.DueDate,
		DueTime:     request.DueTime,
		Description: request.Description,
		Category:    request.Category,
	})
	if err != nil {
		handleServiceError(w, r, err, "create_task")
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", id.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("id", id))
}

func (s *TaskHandler) PatchTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var request dto.UpdateTaskRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	err := s.TaskService.UpdateTask(r.Context(), id, service.UpdateTaskInput{
		Title:       request.Title,
		Priority:    request.Priority,
		DueDate:     request.DueDate,
		DueTime:     request.DueTime,
		Description: request.Description,
		Category:    request.Category,
		Completed:   request.Completed,
	})
	if err != nil {
		handleServiceError(w, r, err, "update_task")
		return
	}

	responseNoContent(w)
}

func (s *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.TaskService.RemoveTask(r.Context(), id); err != nil {
		handleServiceError(w, r, err, "delete_task")
		return
	}

	logger.Info("HTTP_OUT: Задача удалена", zap.String("task_id", id.String()))
	responseNoContent(w)
}

func (s *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.TaskService.ToggleTask(r.Context(), id); err != nil {
		handleServiceError(w, r, err, "toggle_task")
		return
	}

	responseNoContent(w)
}
