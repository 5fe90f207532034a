package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/marinewatch/maritime-backend/internal/access"
	"github.com/marinewatch/maritime-backend/internal/apperr"
	"github.com/marinewatch/maritime-backend/internal/db"
	"github.com/marinewatch/maritime-backend/internal/middleware"
	"github.com/marinewatch/maritime-backend/internal/models"
)

// HistoryHandler serves the append-only track store. Listing and replay
// carry the caller's vessel scope over to track points.
type HistoryHandler struct {
	historyCollection db.HistoryCollection
	vesselCollection  db.VesselCollection
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(historyCollection db.HistoryCollection, vesselCollection db.VesselCollection) *HistoryHandler {
	return &HistoryHandler{
		historyCollection: historyCollection,
		vesselCollection:  vesselCollection,
	}
}

// List returns track points newest first, optionally limited and filtered by
// ?vessel=. Only points of vessels visible to the caller are returned.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetUserFromContext(r.Context())

	filter, err := h.scopedFilter(r, claims)
	if err != nil {
		respondError(w, err)
		return
	}

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 0 {
			respondError(w, apperr.Validation("invalid limit"))
			return
		}
	}

	points, err := h.historyCollection.Recent(r.Context(), filter, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	if points == nil {
		points = []models.TrackPoint{}
	}
	respondJSON(w, http.StatusOK, points)
}

// Append records a position sample. The timestamp is assigned by the store.
func (h *HistoryHandler) Append(w http.ResponseWriter, r *http.Request) {
	var req models.AppendTrackPointRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	// The referenced vessel must exist; the track store never holds orphans.
	vessel, err := h.vesselCollection.FindVesselByID(r.Context(), req.VesselID, bson.M{})
	if err != nil {
		respondError(w, err)
		return
	}

	point, err := h.historyCollection.AppendTrackPoint(r.Context(), vessel.ID, req.Latitude, req.Longitude)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, point)
}

// Replay returns a vessel's full track in ascending timestamp order, the
// input for voyage reconstruction and track drawing.
func (h *HistoryHandler) Replay(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetUserFromContext(r.Context())

	vesselID := r.URL.Query().Get("vessel")
	if vesselID == "" {
		respondError(w, apperr.Validation("vessel query parameter required"))
		return
	}

	// Visibility check: an out-of-scope vessel reads as not found.
	vessel, err := h.vesselCollection.FindVesselByID(r.Context(), vesselID, bson.M(access.Scope(claims)))
	if err != nil {
		respondError(w, err)
		return
	}

	points, err := h.historyCollection.Replay(r.Context(), vessel.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if points == nil {
		points = []models.TrackPoint{}
	}
	respondJSON(w, http.StatusOK, points)
}

// Get fetches one track point. Visibility follows the vessel: a point of an
// out-of-scope vessel reads as not found.
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetUserFromContext(r.Context())

	point, err := h.historyCollection.FindTrackPointByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.vesselCollection.FindVesselByID(
		r.Context(), point.VesselID.Hex(), bson.M(access.Scope(claims))); err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			err = apperr.NotFound("track point not found")
		}
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, point)
}

// scopedFilter builds the track point filter for the caller: either one
// visible vessel or all visible vessels.
func (h *HistoryHandler) scopedFilter(r *http.Request, claims *models.Claims) (bson.M, error) {
	scope := bson.M(access.Scope(claims))

	if vesselID := r.URL.Query().Get("vessel"); vesselID != "" {
		vessel, err := h.vesselCollection.FindVesselByID(r.Context(), vesselID, scope)
		if err != nil {
			return nil, err
		}
		return bson.M{"vessel_id": vessel.ID}, nil
	}

	ids, err := h.vesselCollection.FindVesselIDs(r.Context(), scope)
	if err != nil {
		return nil, err
	}
	return access.VesselCorrelated(ids), nil
}
