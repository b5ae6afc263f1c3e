package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/elbship/internal/api"
	apiMiddleware "github.com/phrazzld/elbship/internal/api/middleware"
	"github.com/phrazzld/elbship/internal/api/shared"
)

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status       string `json:"status"`
	PendingTasks int    `json:"pending_tasks"`
	DroppedTasks int64  `json:"dropped_tasks"`
}

// setupRouter registers the webhook and health routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))

	notificationHandler := api.NewNotificationHandler(app.notifications, app.logger)
	r.Get(app.config.Server.NotificationPath, notificationHandler.HandleDelivery)
	r.Post(app.config.Server.NotificationPath, notificationHandler.HandleDelivery)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, app.logger, http.StatusOK, healthResponse{
			Status:       "ok",
			PendingTasks: app.queue.Len(),
			DroppedTasks: app.dropped.Load(),
		})
	})

	return r
}
