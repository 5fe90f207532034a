package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marinewatch/maritime-backend/internal/access"
	"github.com/marinewatch/maritime-backend/internal/apperr"
	"github.com/marinewatch/maritime-backend/internal/db"
	"github.com/marinewatch/maritime-backend/internal/middleware"
	"github.com/marinewatch/maritime-backend/internal/models"
)

// EventHandler serves the safety event log.
type EventHandler struct {
	eventCollection  db.EventCollection
	vesselCollection db.VesselCollection
}

// NewEventHandler creates a new event handler.
func NewEventHandler(eventCollection db.EventCollection, vesselCollection db.VesselCollection) *EventHandler {
	return &EventHandler{
		eventCollection:  eventCollection,
		vesselCollection: vesselCollection,
	}
}

// List returns events newest first. Fleet-wide events are visible to every
// caller; vessel-correlated events follow the vessel scope. ?vessel= narrows
// to one vessel and ?limit= caps the result.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetUserFromContext(r.Context())
	scope := bson.M(access.Scope(claims))

	var filter bson.M
	if vesselID := r.URL.Query().Get("vessel"); vesselID != "" {
		vessel, err := h.vesselCollection.FindVesselByID(r.Context(), vesselID, scope)
		if err != nil {
			respondError(w, err)
			return
		}
		filter = bson.M{"vessel_id": vessel.ID}
	} else {
		ids, err := h.vesselCollection.FindVesselIDs(r.Context(), scope)
		if err != nil {
			respondError(w, err)
			return
		}
		filter = access.EventCorrelated(ids)
	}

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		var err error
		limit, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 0 {
			respondError(w, apperr.Validation("invalid limit"))
			return
		}
	}

	events, err := h.eventCollection.FindEvents(r.Context(), filter, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	respondJSON(w, http.StatusOK, events)
}

// Create records a safety event, optionally tied to a vessel.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	loc, err := req.Coordinates()
	if err != nil {
		respondError(w, apperr.Validation(err.Error()))
		return
	}

	var vesselRef *primitive.ObjectID
	if req.VesselID != "" {
		vessel, err := h.vesselCollection.FindVesselByID(r.Context(), req.VesselID, bson.M{})
		if err != nil {
			respondError(w, err)
			return
		}
		vesselRef = &vessel.ID
	}

	event, err := h.eventCollection.InsertEvent(r.Context(), models.Event{
		VesselID: vesselRef,
		Type:     req.Type,
		Location: loc,
		Details:  req.Details,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, event)
}

// Get fetches one event. Fleet-wide events are visible to every caller;
// a vessel-correlated event of an out-of-scope vessel reads as not found.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetUserFromContext(r.Context())

	event, err := h.eventCollection.FindEventByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if event.VesselID != nil {
		if _, err := h.vesselCollection.FindVesselByID(
			r.Context(), event.VesselID.Hex(), bson.M(access.Scope(claims))); err != nil {
			if apperr.IsKind(err, apperr.KindNotFound) {
				err = apperr.NotFound("event not found")
			}
			respondError(w, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, event)
}
