package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/student-insight-backend/models"
	"github.com/raushankrgupta/student-insight-backend/store"
	"github.com/raushankrgupta/student-insight-backend/utils"
)

// GetProfileHandler returns the authenticated user's own record. The
// password hash never serializes thanks to the struct tag.
func GetProfileHandler() http.HandlerFunc {
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

// UpdateProfileHandler applies a partial profile update scoped to the
// authenticated identity. The target id always comes from the auth gate,
// never from the request payload.
func UpdateProfileHandler(users *store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var logMessageBuilder strings.Builder
		defer func() {
			fmt.Println(logMessageBuilder.String())
		}()
		utils.AddToLogMessage(&logMessageBuilder, "[Update Profile API]")

		if r.Method != http.MethodPut && r.Method != http.MethodPatch {
			utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, err := GetUserIDFromContext(r.Context())
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, "You are not logged in! Please log in to get access.", http.StatusUnauthorized)
			return
		}

		var update models.ProfileUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
			return
		}

		user, err := users.UpdateProfile(r.Context(), userID, &update)
		if err != nil {
			var validationErr *models.ValidationError
			switch {
			case errors.As(err, &validationErr):
				utils.RespondError(w, &logMessageBuilder, validationErr.Error(), http.StatusBadRequest)
			case errors.Is(err, store.ErrNotFound):
				utils.RespondError(w, &logMessageBuilder, "User not found", http.StatusNotFound)
			default:
				utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to update profile: %v", err))
				utils.RespondError(w, &logMessageBuilder, "Failed to update profile", http.StatusInternalServerError)
			}
			return
		}

		utils.AddToLogMessage(&logMessageBuilder, "Profile updated successfully")
		utils.RespondSuccess(w, http.StatusOK, map[string]interface{}{"user": user})
	}
}
