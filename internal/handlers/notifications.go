package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marinewatch/maritime-backend/internal/db"
	"github.com/marinewatch/maritime-backend/internal/models"
)

// NotificationHandler serves the notification log.
type NotificationHandler struct {
	notificationCollection db.NotificationCollection
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notificationCollection db.NotificationCollection) *NotificationHandler {
	return &NotificationHandler{notificationCollection: notificationCollection}
}

// List returns notifications, newest first.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationCollection.FindNotifications(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	respondJSON(w, http.StatusOK, notifications)
}

// Create inserts a notification.
func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNotificationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	notification, err := h.notificationCollection.InsertNotification(r.Context(), models.Notification{
		Message: req.Message,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, notification)
}

// Get fetches one notification.
func (h *NotificationHandler) Get(w http.ResponseWriter, r *http.Request) {
	notification, err := h.notificationCollection.FindNotificationByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, notification)
}

// MarkRead sets the read flag.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsRead bool `json:"is_read"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.notificationCollection.MarkRead(r.Context(), id, req.IsRead); err != nil {
		respondError(w, err)
		return
	}

	notification, err := h.notificationCollection.FindNotificationByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, notification)
}
