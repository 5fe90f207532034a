package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/marinewatch/maritime-backend/internal/auth"
	"github.com/marinewatch/maritime-backend/internal/db"
	"github.com/marinewatch/maritime-backend/internal/middleware"
)

// NewRouter wires all handlers into the HTTP surface. Routes under /api/auth
// are open but rate limited; everything else requires a bearer token.
func NewRouter(authService *auth.Service, store *db.Store) http.Handler {
	authHandler := NewAuthHandler(authService, store.Users)
	vesselHandler := NewVesselHandler(store.Vessels)
	portHandler := NewPortHandler(store.Ports)
	historyHandler := NewHistoryHandler(store.History, store.Vessels)
	voyageHandler := NewVoyageHandler(store.Voyages, store.Vessels, store.Ports)
	eventHandler := NewEventHandler(store.Events, store.Vessels)
	notificationHandler := NewNotificationHandler(store.Notifications)
	userHandler := NewUserHandler(authService, store.Users)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/auth", func(r chi.Router) {
		// Brute force protection on credential endpoints.
		r.Use(httprate.LimitByIP(20, time.Minute))
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/vessels", func(r chi.Router) {
			r.Get("/", vesselHandler.List)
			r.Post("/", vesselHandler.Create)
			r.Get("/{id}", vesselHandler.Get)
			r.Put("/{id}", vesselHandler.Update)
			r.Patch("/{id}", vesselHandler.Update)
			r.Delete("/{id}", vesselHandler.Delete)
		})

		r.Route("/ports", func(r chi.Router) {
			r.Get("/", portHandler.List)
			r.Post("/", portHandler.Create)
			r.Get("/{id}", portHandler.Get)
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", historyHandler.List)
			r.Post("/", historyHandler.Append)
			r.Get("/replay", historyHandler.Replay)
			r.Get("/{id}", historyHandler.Get)
		})

		r.Route("/voyages", func(r chi.Router) {
			r.Get("/", voyageHandler.List)
			r.Post("/", voyageHandler.Depart)
			r.Get("/{id}", voyageHandler.Get)
			r.Post("/{id}/arrival", voyageHandler.RecordArrival)
			r.Post("/{id}/delay", voyageHandler.MarkDelayed)
			r.Post("/{id}/resume", voyageHandler.MarkOnSchedule)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventHandler.List)
			r.Post("/", eventHandler.Create)
			r.Get("/{id}", eventHandler.Get)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", notificationHandler.List)
			r.Post("/", notificationHandler.Create)
			r.Get("/{id}", notificationHandler.Get)
			r.Patch("/{id}", notificationHandler.MarkRead)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(authMiddleware.RequireAdmin).Get("/", userHandler.List)
			r.Get("/{id}", userHandler.Get)
			r.Put("/{id}", userHandler.Update)
			r.Patch("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
		})
	})

	return r
}
