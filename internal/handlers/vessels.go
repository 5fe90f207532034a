package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/marinewatch/maritime-backend/internal/access"
	"github.com/marinewatch/maritime-backend/internal/apperr"
	"github.com/marinewatch/maritime-backend/internal/db"
	"github.com/marinewatch/maritime-backend/internal/middleware"
	"github.com/marinewatch/maritime-backend/internal/models"
)

// VesselHandler serves the fleet registry, scoped by caller role.
type VesselHandler struct {
	vesselCollection db.VesselCollection
}

// NewVesselHandler creates a new vessel handler.
func NewVesselHandler(vesselCollection db.VesselCollection) *VesselHandler {
	return &VesselHandler{vesselCollection: vesselCollection}
}

// List returns the vessels visible to the caller. The role scope and the
// optional ?search= term compose with AND.
func (h *VesselHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetUserFromContext(r.Context())
	pred := access.ApplySearch(access.Scope(claims), r.URL.Query().Get("search"))

	vessels, err := h.vesselCollection.FindVessels(r.Context(), bson.M(pred))
	if err != nil {
		respondError(w, err)
		return
	}
	if vessels == nil {
		vessels = []models.Vessel{}
	}
	respondJSON(w, http.StatusOK, vessels)
}

// Create registers a new vessel.
func (h *VesselHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVesselRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	vessel, err := h.vesselCollection.InsertVessel(r.Context(), models.Vessel{
		Name:         req.Name,
		MMSI:         req.MMSI,
		Type:         req.Type,
		Flag:         req.Flag,
		Cargo:        req.Cargo,
		LastPosition: models.Location{Lat: req.Lat, Lon: req.Lon},
		Status:       req.Status,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, vessel)
}

// Get fetches one vessel within the caller's scope.
func (h *VesselHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetUserFromContext(r.Context())
	vessel, err := h.vesselCollection.FindVesselByID(
		r.Context(), chi.URLParam(r, "id"), bson.M(access.Scope(claims)))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vessel)
}

// Update applies a partial update: metadata, position, or status.
func (h *VesselHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateVesselRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if (req.Lat != nil) != (req.Lon != nil) {
		respondError(w, apperr.Validation("lat and lon must be supplied together"))
		return
	}

	update := bson.M{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Type != nil {
		update["type"] = *req.Type
	}
	if req.Flag != nil {
		update["flag"] = *req.Flag
	}
	if req.Cargo != nil {
		update["cargo"] = *req.Cargo
	}
	if req.Status != nil {
		update["status"] = *req.Status
	}
	if req.Lat != nil && req.Lon != nil {
		update["last_position"] = models.Location{Lat: *req.Lat, Lon: *req.Lon}
	}

	vessel, err := h.vesselCollection.UpdateVessel(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vessel)
}

// Delete removes a vessel and its dependent history, voyages, and events.
func (h *VesselHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.vesselCollection.DeleteVessel(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "vessel deleted"})
}
