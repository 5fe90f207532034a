package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marinewatch/maritime-backend/internal/apperr"
	"github.com/marinewatch/maritime-backend/internal/db"
	"github.com/marinewatch/maritime-backend/internal/models"
)

// PortHandler serves port metadata. Reads are unrestricted for authenticated
// callers.
type PortHandler struct {
	portCollection db.PortCollection
}

// NewPortHandler creates a new port handler.
func NewPortHandler(portCollection db.PortCollection) *PortHandler {
	return &PortHandler{portCollection: portCollection}
}

// List returns all ports.
func (h *PortHandler) List(w http.ResponseWriter, r *http.Request) {
	ports, err := h.portCollection.FindPorts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if ports == nil {
		ports = []models.Port{}
	}
	respondJSON(w, http.StatusOK, ports)
}

// Create registers a new port.
func (h *PortHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePortRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	loc, err := req.Coordinates()
	if err != nil {
		respondError(w, apperr.Validation(err.Error()))
		return
	}

	port, err := h.portCollection.InsertPort(r.Context(), models.Port{
		Name:     req.Name,
		Location: loc,
		Country:  req.Country,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, port)
}

// Get fetches one port.
func (h *PortHandler) Get(w http.ResponseWriter, r *http.Request) {
	port, err := h.portCollection.FindPortByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, port)
}
