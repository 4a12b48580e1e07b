package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/student-insight-backend/config"
	"github.com/raushankrgupta/student-insight-backend/models"
	"github.com/raushankrgupta/student-insight-backend/store"
	"github.com/raushankrgupta/student-insight-backend/utils"
)

type contextKey string

const userContextKey contextKey = "authenticatedUser"

// TokenCookieName is the cookie fallback for clients that don't send an
// Authorization header. The header wins when both are present.
const TokenCookieName = "jwt"

// UserFinder loads the identity behind a verified token.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// CORSMiddleware allows the configured frontend origin, with
// credentials so the jwt cookie is sent along.
func CORSMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", config.CORSOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, PATCH, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if cookie, err := r.Cookie(TokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// RequireAuth rejects the request before the wrapped handler runs unless
// a valid token resolves to an existing user. The resolved user rides on
// the request context; handlers must scope every read and write to it
// and never trust a client-supplied user id.
func RequireAuth(users UserFinder, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var logMessageBuilder strings.Builder
		defer func() {
			if logMessageBuilder.Len() > 0 {
				fmt.Println(logMessageBuilder.String())
			}
		}()

		token := extractToken(r)
		if token == "" {
			utils.RespondError(w, &logMessageBuilder, "You are not logged in! Please log in to get access.", http.StatusUnauthorized)
			return
		}

		userID, err := utils.ValidateToken(config.JWTSecret, token)
		if err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("[Auth] Token rejected: %v", err))
			message := "Invalid token. Please log in again."
			if errors.Is(err, utils.ErrTokenExpired) {
				message = "Your session has expired. Please log in again."
			}
			utils.RespondError(w, &logMessageBuilder, message, http.StatusUnauthorized)
			return
		}

		user, err := users.FindByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				utils.RespondError(w, &logMessageBuilder, "The user belonging to this token no longer exists.", http.StatusUnauthorized)
				return
			}
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("[Auth] Failed to load user: %v", err))
			utils.RespondError(w, &logMessageBuilder, "Something went wrong. Please try again.", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// GetUserFromContext returns the authenticated user attached by RequireAuth.
func GetUserFromContext(ctx context.Context) (*models.User, error) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("no authenticated user in context")
	}
	return user, nil
}

// GetUserIDFromContext returns the authenticated user's hex id.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	user, err := GetUserFromContext(ctx)
	if err != nil {
		return "", err
	}
	return user.ID.Hex(), nil
}
