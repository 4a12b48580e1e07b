package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/student-insight-backend/predictor"
	"github.com/raushankrgupta/student-insight-backend/store"
	"github.com/raushankrgupta/student-insight-backend/utils"
)

// GetPredictionsHandler reshapes the user's stored quiz record into the
// predictor's feature payload and forwards it. The predictor's response
// is returned unmodified; a predictor outage never touches quiz or
// profile data.
func GetPredictionsHandler(quizzes *store.QuizStore, client *predictor.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var logMessageBuilder strings.Builder
		defer func() {
			fmt.Println(logMessageBuilder.String())
		}()
		utils.AddToLogMessage(&logMessageBuilder, "[Predictions API]")

		if r.Method != http.MethodGet {
			utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		user, err := GetUserFromContext(r.Context())
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, "You are not logged in! Please log in to get access.", http.StatusUnauthorized)
			return
		}

		answer, err := quizzes.GetByUser(r.Context(), user.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				utils.RespondError(w, &logMessageBuilder, "Quiz answers not found. Please complete the quiz first.", http.StatusNotFound)
			} else {
				utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to fetch quiz answers: %v", err))
				utils.RespondError(w, &logMessageBuilder, "Error fetching quiz answers", http.StatusInternalServerError)
			}
			return
		}

		payload, err := predictor.BuildFeaturePayload(answer)
		if err != nil {
			if errors.Is(err, predictor.ErrIncompleteQuizData) {
				utils.AddToLogMessage(&logMessageBuilder, err.Error())
				utils.RespondError(w, &logMessageBuilder, "Your quiz data is incomplete, predictions cannot be generated", http.StatusBadRequest)
				return
			}
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to build feature payload: %v", err))
			utils.RespondError(w, &logMessageBuilder, "Failed to prepare prediction data", http.StatusInternalServerError)
			return
		}

		predictions, err := client.Predict(r.Context(), payload)
		if err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Prediction service call failed: %v", err))
			utils.RespondError(w, &logMessageBuilder, "Predictions are temporarily unavailable. Please try again later.", http.StatusBadGateway)
			return
		}

		utils.AddToLogMessage(&logMessageBuilder, "Predictions fetched successfully")
		utils.RespondSuccess(w, http.StatusOK, map[string]interface{}{"predictions": predictions})
	}
}
