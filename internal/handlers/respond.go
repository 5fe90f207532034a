// Package handlers contains the HTTP boundary: request decoding, validation,
// claim-driven scoping, and kind-specific error mapping.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"github.com/marinewatch/maritime-backend/internal/apperr"
)

var validate = validator.New()

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    apperr.Kind `json:"kind"`
	Message string      `json:"message"`
}

// respondError maps an error's kind to a status code and writes a stable
// machine-readable body. Internal errors are logged and their details are not
// leaked to the caller.
func respondError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)

	message := err.Error()
	if kind == apperr.KindInternal {
		log.WithError(err).Error("internal error")
		message = "internal error"
	}

	respondJSON(w, status, errorBody{Error: errorDetail{Kind: kind, Message: message}})
}

// decodeJSON decodes and validates a request body. Any failure is a
// Validation error.
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation("invalid JSON body")
	}
	if err := validate.Struct(v); err != nil {
		return apperr.Validation(err.Error())
	}
	return nil
}
