package handlers

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/marinewatch/maritime-backend/internal/apperr"
	"github.com/marinewatch/maritime-backend/internal/auth"
	"github.com/marinewatch/maritime-backend/internal/db"
	"github.com/marinewatch/maritime-backend/internal/models"
)

// AuthHandler handles registration and session issuance.
type AuthHandler struct {
	authService    *auth.Service
	userCollection db.UserCollection
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authService *auth.Service, userCollection db.UserCollection) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		userCollection: userCollection,
	}
}

// Register handles user registration. The role defaults to operator when
// omitted; an unrecognized role is rejected here, never silently defaulted.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if req.Role == "" {
		req.Role = models.DefaultRole
	}
	if !models.IsValidRole(req.Role) {
		respondError(w, apperr.Validation("unknown role: "+string(req.Role)))
		return
	}

	passwordHash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.userCollection.InsertUser(r.Context(), models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         req.Role,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	accessToken, err := h.authService.GenerateAccessToken(user)
	if err != nil {
		respondError(w, err)
		return
	}
	refreshToken, err := h.authService.GenerateRefreshToken(user)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, models.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *user,
	})
}

// Login handles session issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.userCollection.FindUserByUsername(r.Context(), req.Username)
	if err != nil {
		// Missing user and wrong password are indistinguishable to the caller.
		respondError(w, apperr.Unauthorized("invalid credentials"))
		return
	}

	if !user.IsActive {
		respondError(w, apperr.Unauthorized("account is deactivated"))
		return
	}

	if !h.authService.CheckPassword(req.Password, user.PasswordHash) {
		respondError(w, apperr.Unauthorized("invalid credentials"))
		return
	}

	accessToken, err := h.authService.GenerateAccessToken(user)
	if err != nil {
		respondError(w, err)
		return
	}
	refreshToken, err := h.authService.GenerateRefreshToken(user)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.userCollection.UpdateLastLogin(r.Context(), user.ID.Hex()); err != nil {
		log.WithError(err).Warn("failed to update last login")
	}

	respondJSON(w, http.StatusOK, models.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *user,
	})
}

// Refresh exchanges a valid refresh token for a new access token. The user
// record is re-read so a deactivated account cannot refresh its way back in.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	claims, err := h.authService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		respondError(w, apperr.Unauthorized("invalid refresh token"))
		return
	}

	user, err := h.userCollection.FindUserByID(r.Context(), claims.UserID)
	if err != nil || !user.IsActive {
		respondError(w, apperr.Unauthorized("invalid refresh token"))
		return
	}

	accessToken, err := h.authService.GenerateAccessToken(user)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"access_token": accessToken})
}
