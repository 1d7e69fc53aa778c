package handlers

import (
	"github.com/go-chi/chi/v5"
)

// Routes регистрирует ручки API на роутере
func (s *TaskHandler) Routes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", s.GetTasks)          // GET /tasks
		r.Post("/", s.PostTask)         // POST /tasks
		r.Get("/all", s.GetAllTasks)    // GET /tasks/all
		r.Get("/stats", s.GetTaskStats) // GET /tasks/stats
		r.Get("/due", s.GetDueTasks)    // GET /tasks/due?date=YYYY-MM-DD

		r.Route("/{id}", func(r chi.Router) {
			r.Patch("/", s.PatchTask)       // PATCH /tasks/{id}
			r.Delete("/", s.DeleteTask)     // DELETE /tasks/{id}
			r.Post("/toggle", s.ToggleTask) // POST /tasks/{id}/toggle
		})
	})

	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.GetDailyTasks)
		r.Post("/", s.PostDailyTask)
		r.Post("/reset", s.ResetDailyTasks)
		r.Get("/stats", s.GetDailyStats)

		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", s.DeleteDailyTask)
			r.Post("/toggle", s.ToggleDailyTask)
		})
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", s.GetCategories)
		r.Post("/", s.PostCategory)
		r.Delete("/{id}", s.DeleteCategory)
	})

	r.Get("/view", s.GetView)
	r.Put("/view", s.PutView)

	r.Get("/health", s.HealthCheck)
}
