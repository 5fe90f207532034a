package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marinewatch/maritime-backend/internal/access"
	"github.com/marinewatch/maritime-backend/internal/apperr"
	"github.com/marinewatch/maritime-backend/internal/auth"
	"github.com/marinewatch/maritime-backend/internal/db"
	"github.com/marinewatch/maritime-backend/internal/middleware"
	"github.com/marinewatch/maritime-backend/internal/models"
)

// UserHandler serves identity records. Non-admin callers may only touch their
// own record.
type UserHandler struct {
	authService    *auth.Service
	userCollection db.UserCollection
}

// NewUserHandler creates a new user handler.
func NewUserHandler(authService *auth.Service, userCollection db.UserCollection) *UserHandler {
	return &UserHandler{
		authService:    authService,
		userCollection: userCollection,
	}
}

// List returns all users. Admin only; enforced at the route.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userCollection.FindUsers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	respondJSON(w, http.StatusOK, users)
}

// Get fetches a user record, self-only unless admin.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if !access.CanViewUser(claims, id) {
		respondError(w, apperr.Forbidden("may only access your own user record"))
		return
	}

	user, err := h.userCollection.FindUserByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Update modifies a user record, self-only unless admin. Role changes are
// admin-only and rejected for unknown roles.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if !access.CanViewUser(claims, id) {
		respondError(w, apperr.Forbidden("may only access your own user record"))
		return
	}

	var req struct {
		Email    *string      `json:"email,omitempty" validate:"omitempty,email"`
		Password *string      `json:"password,omitempty" validate:"omitempty,min=8"`
		Role     *models.Role `json:"role,omitempty"`
		IsActive *bool        `json:"is_active,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.userCollection.FindUserByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := h.authService.HashPassword(*req.Password)
		if err != nil {
			respondError(w, err)
			return
		}
		user.PasswordHash = hash
	}
	if req.Role != nil {
		if claims.Role != models.RoleAdmin {
			respondError(w, apperr.Forbidden("only admins may change roles"))
			return
		}
		if !models.IsValidRole(*req.Role) {
			respondError(w, apperr.Validation("unknown role: "+string(*req.Role)))
			return
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		if claims.Role != models.RoleAdmin {
			respondError(w, apperr.Forbidden("only admins may change account status"))
			return
		}
		user.IsActive = *req.IsActive
	}

	if err := h.userCollection.UpdateUser(r.Context(), id, *user); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Delete removes a user record, self-only unless admin.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if !access.CanViewUser(claims, id) {
		respondError(w, apperr.Forbidden("may only access your own user record"))
		return
	}

	if err := h.userCollection.DeleteUser(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
