package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/raushankrgupta/student-insight-backend/config"
	"github.com/raushankrgupta/student-insight-backend/models"
	"github.com/raushankrgupta/student-insight-backend/store"
	"github.com/raushankrgupta/student-insight-backend/utils"
)

// SignupRequest represents the payload for user registration
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the payload for user login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(config.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SignupHandler handles user registration and issues a session token
func SignupHandler(users *store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var logMessageBuilder strings.Builder
		defer func() {
			fmt.Println(logMessageBuilder.String())
		}()
		utils.AddToLogMessage(&logMessageBuilder, "[Signup API]")

		if r.Method != http.MethodPost {
			utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
			return
		}

		user, err := users.Create(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			var validationErr *models.ValidationError
			switch {
			case errors.As(err, &validationErr):
				utils.RespondError(w, &logMessageBuilder, validationErr.Error(), http.StatusBadRequest)
			case errors.Is(err, store.ErrDuplicateEmail):
				utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Duplicate email: %s", req.Email))
				utils.RespondError(w, &logMessageBuilder, "User with this email already exists", http.StatusBadRequest)
			default:
				utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to create user: %v", err))
				utils.RespondError(w, &logMessageBuilder, "Failed to create user", http.StatusInternalServerError)
			}
			return
		}

		token, err := utils.GenerateToken(config.JWTSecret, user.ID.Hex(), config.TokenTTL)
		if err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to generate token: %v", err))
			utils.RespondError(w, &logMessageBuilder, "Failed to generate token", http.StatusInternalServerError)
			return
		}
		setTokenCookie(w, token)

		// Welcome mail is best-effort; registration never waits on it
		go func(name, email string) {
			if err := utils.SendWelcomeEmail(config.EmailSender, name, email); err != nil {
				fmt.Printf("Failed to send welcome email to %s: %v\n", email, err)
			}
		}(user.Name, user.Email)

		utils.AddToLogMessage(&logMessageBuilder, "User registered successfully")
		utils.RespondSuccess(w, http.StatusCreated, map[string]interface{}{
			"token": token,
			"user":  user,
		})
	}
}

// LoginHandler verifies credentials and issues a session token
func LoginHandler(users *store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var logMessageBuilder strings.Builder
		defer func() {
			fmt.Println(logMessageBuilder.String())
		}()
		utils.AddToLogMessage(&logMessageBuilder, "[Login API]")

		if r.Method != http.MethodPost {
			utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.Email == "" || req.Password == "" {
			utils.RespondError(w, &logMessageBuilder, "Email and Password are required", http.StatusBadRequest)
			return
		}

		user, err := users.FindByEmail(r.Context(), req.Email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("User not found: %s", req.Email))
				utils.RespondError(w, &logMessageBuilder, "Incorrect email or password", http.StatusUnauthorized)
			} else {
				utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Database error: %v", err))
				utils.RespondError(w, &logMessageBuilder, "Something went wrong. Please try again.", http.StatusInternalServerError)
			}
			return
		}

		if !users.VerifyPassword(user, req.Password) {
			utils.AddToLogMessage(&logMessageBuilder, "Invalid password")
			utils.RespondError(w, &logMessageBuilder, "Incorrect email or password", http.StatusUnauthorized)
			return
		}

		token, err := utils.GenerateToken(config.JWTSecret, user.ID.Hex(), config.TokenTTL)
		if err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to generate token: %v", err))
			utils.RespondError(w, &logMessageBuilder, "Failed to generate token", http.StatusInternalServerError)
			return
		}
		setTokenCookie(w, token)

		utils.AddToLogMessage(&logMessageBuilder, "Login successful")
		utils.RespondSuccess(w, http.StatusOK, map[string]interface{}{
			"token": token,
			"user":  user,
		})
	}
}

// LogoutHandler clears the token cookie. Stateless tokens cannot be
// revoked server-side; an already-issued token stays valid until expiry.
func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			utils.RespondError(w, nil, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		clearTokenCookie(w)
		utils.RespondJSON(w, http.StatusOK, utils.Envelope{
			Status:  "success",
			Message: "Logged out successfully",
		})
	}
}

// MeHandler resolves the current identity from the auth gate
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			utils.RespondError(w, nil, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		user, err := GetUserFromContext(r.Context())
		if err != nil {
			utils.RespondError(w, nil, "You are not logged in! Please log in to get access.", http.StatusUnauthorized)
			return
		}

		utils.RespondSuccess(w, http.StatusOK, map[string]interface{}{"user": user})
	}
}
