package handlers

import (
	"net/http"

	"tlist/internal/handlers/dto"
	"tlist/internal/logger"
	"tlist/internal/service"

	"go.uber.org/zap"
)

func (s *TaskHandler) GetDailyTasks(w http.ResponseWriter, r *http.Request) {
	tasks := s.TaskService.DailyTasks(r.Context())

	responseWithJSON(w, http.StatusOK,
		toPayload("dailyTasks", tasks),
		toPayload("count", len(tasks)),
	)
}

func (s *TaskHandler) PostDailyTask(w http.ResponseWriter, r *http.Request) {
	var request dto.CreateDailyTaskRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	id, err := s.TaskService.AddDailyTask(r.Context(), request.Title)
	if err != nil {
		handleServiceError(w, r, err, "create_daily_task")
		return
	}

	responseWithJSON(w, http.StatusCreated, toPayload("id", id))
}

func (s *TaskHandler) DeleteDailyTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.TaskService.RemoveDailyTask(r.Context(), id); err != nil {
		handleServiceError(w, r, err, "delete_daily_task")
		return
	}
	responseNoContent(w)
}

func (s *TaskHandler) ToggleDailyTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.TaskService.ToggleDailyTask(r.Context(), id); err != nil {
		handleServiceError(w, r, err, "toggle_daily_task")
		return
	}
	responseNoContent(w)
}

func (s *TaskHandler) ResetDailyTasks(w http.ResponseWriter, r *http.Request) {
	if err := s.TaskService.ResetDailyTasks(r.Context()); err != nil {
		handleServiceError(w, r, err, "reset_daily_tasks")
		return
	}
	responseNoContent(w)
}

func (s *TaskHandler) GetDailyStats(w http.ResponseWriter, r *http.Request) {
	stats := s.TaskService.DailyStats(r.Context())

	responseWithJSON(w, http.StatusOK,
		toPayload("total", stats.Total),
		toPayload("completed", stats.Completed),
		toPayload("percentage", stats.Percentage),
	)
}

func (s *TaskHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories := s.TaskService.Categories(r.Context())

	responseWithJSON(w, http.StatusOK,
		toPayload("categories", categories),
		toPayload("count", len(categories)),
	)
}

func (s *TaskHandler) PostCategory(w http.ResponseWriter, r *http.Request) {
	var request dto.CreateCategoryRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	id, err := s.TaskService.AddCategory(r.Context(), request.Name, request.Color)
	if err != nil {
		handleServiceError(w, r, err, "create_category")
		return
	}

	logger.Info("HTTP_OUT: Категория создана", zap.String("category_id", id.String()))
	responseWithJSON(w, http.StatusCreated, toPayload("id", id))
}

// DeleteCategory снимает категорию и со всех задач
func (s *TaskHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.TaskService.RemoveCategory(r.Context(), id); err != nil {
		handleServiceError(w, r, err, "delete_category")
		return
	}
	responseNoContent(w)
}

func (s *TaskHandler) GetView(w http.ResponseWriter, r *http.Request) {
	view := s.TaskService.View(r.Context())

	responseWithJSON(w, http.StatusOK,
		toPayload("activeView", view.ActiveView),
		toPayload("activeCategory", view.ActiveCategory),
	)
}

func (s *TaskHandler) PutView(w http.ResponseWriter, r *http.Request) {
	var request dto.ViewRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	view, err := s.TaskService.SetView(r.Context(), service.ViewInput{
		ActiveView:     request.ActiveView,
		ActiveCategory: request.ActiveCategory,
	})
	if err != nil {
		handleServiceError(w, r, err, "set_view")
		return
	}

	responseWithJSON(w, http.StatusOK,
		toPayload("activeView", view.ActiveView),
		toPayload("activeCategory", view.ActiveCategory),
	)
}
