package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/marinewatch/maritime-backend/internal/access"
	"github.com/marinewatch/maritime-backend/internal/apperr"
	"github.com/marinewatch/maritime-backend/internal/db"
	"github.com/marinewatch/maritime-backend/internal/middleware"
	"github.com/marinewatch/maritime-backend/internal/models"
)

// VoyageHandler serves the voyage lifecycle.
type VoyageHandler struct {
	voyageCollection db.VoyageCollection
	vesselCollection db.VesselCollection
	portCollection   db.PortCollection
}

// NewVoyageHandler creates a new voyage handler.
func NewVoyageHandler(voyageCollection db.VoyageCollection, vesselCollection db.VesselCollection, portCollection db.PortCollection) *VoyageHandler {
	return &VoyageHandler{
		voyageCollection: voyageCollection,
		vesselCollection: vesselCollection,
		portCollection:   portCollection,
	}
}

// List returns voyages of vessels visible to the caller, most recent
// departure first. ?vessel= narrows to one vessel.
func (h *VoyageHandler) List(w http.ResponseWriter, r *http.Request) {
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
		filter = access.VesselCorrelated(ids)
	}

	voyages, err := h.voyageCollection.FindVoyages(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	if voyages == nil {
		voyages = []models.Voyage{}
	}
	respondJSON(w, http.StatusOK, voyages)
}

// Depart creates a voyage: the vessel leaves one port for a different one.
func (h *VoyageHandler) Depart(w http.ResponseWriter, r *http.Request) {
	var req models.DepartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	vessel, err := h.vesselCollection.FindVesselByID(r.Context(), req.VesselID, bson.M{})
	if err != nil {
		respondError(w, err)
		return
	}
	from, err := h.portCollection.FindPortByID(r.Context(), req.PortFrom)
	if err != nil {
		respondError(w, err)
		return
	}
	to, err := h.portCollection.FindPortByID(r.Context(), req.PortTo)
	if err != nil {
		respondError(w, err)
		return
	}

	voyage, err := models.NewVoyage(vessel.ID, from.ID, to.ID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, models.ErrSamePort) {
			respondError(w, apperr.Validation(err.Error()))
			return
		}
		respondError(w, err)
		return
	}

	created, err := h.voyageCollection.InsertVoyage(r.Context(), voyage)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Get fetches one voyage. Visibility follows the vessel: a voyage of an
// out-of-scope vessel reads as not found.
func (h *VoyageHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetUserFromContext(r.Context())

	voyage, err := h.voyageCollection.FindVoyageByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.vesselCollection.FindVesselByID(
		r.Context(), voyage.VesselID.Hex(), bson.M(access.Scope(claims))); err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			err = apperr.NotFound("voyage not found")
		}
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, voyage)
}

// RecordArrival completes a voyage.
func (h *VoyageHandler) RecordArrival(w http.ResponseWriter, r *http.Request) {
	voyage, err := h.voyageCollection.RecordArrival(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, voyage)
}

// MarkDelayed flags a voyage as delayed.
func (h *VoyageHandler) MarkDelayed(w http.ResponseWriter, r *http.Request) {
	voyage, err := h.voyageCollection.MarkDelayed(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, voyage)
}

// MarkOnSchedule clears a delay.
func (h *VoyageHandler) MarkOnSchedule(w http.ResponseWriter, r *http.Request) {
	voyage, err := h.voyageCollection.MarkOnSchedule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, voyage)
}
