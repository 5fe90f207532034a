package handlers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marinewatch/maritime-backend/internal/auth"
	"github.com/marinewatch/maritime-backend/internal/config"
	"github.com/marinewatch/maritime-backend/internal/middleware"
	"github.com/marinewatch/maritime-backend/internal/models"
)

func testAuthService() *auth.Service {
	return auth.NewService(config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

// withClaims injects verified claims into the request context, standing in
// for the authentication middleware.
func withClaims(r *http.Request, role models.Role) *http.Request {
	claims := &models.Claims{
		UserID:   primitive.NewObjectID().Hex(),
		Username: "caller",
		Email:    "caller@example.com",
		Role:     role,
	}
	ctx := context.WithValue(r.Context(), middleware.UserContextKey, claims)
	return r.WithContext(ctx)
}

// withTheseClaims injects a specific claims value.
func withTheseClaims(r *http.Request, claims *models.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserContextKey, claims)
	return r.WithContext(ctx)
}
