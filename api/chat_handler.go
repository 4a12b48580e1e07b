package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/student-insight-backend/config"
	"github.com/raushankrgupta/student-insight-backend/utils"
)

// ChatRequest carries one user message for the study assistant
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatHandler answers study-related questions via Gemini. The call runs
// server-side so the API key never reaches the browser.
func ChatHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var logMessageBuilder strings.Builder
		defer func() {
			fmt.Println(logMessageBuilder.String())
		}()
		utils.AddToLogMessage(&logMessageBuilder, "[Chat API]")

		if r.Method != http.MethodPost {
			utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if _, err := GetUserFromContext(r.Context()); err != nil {
			utils.RespondError(w, &logMessageBuilder, "You are not logged in! Please log in to get access.", http.StatusUnauthorized)
			return
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
			return
		}

		message := strings.TrimSpace(req.Message)
		if message == "" {
			utils.RespondError(w, &logMessageBuilder, "Message is required", http.StatusBadRequest)
			return
		}

		reply, err := utils.GenerateStudyReply(r.Context(), config.GeminiAPIKey, message)
		if err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Gemini call failed: %v", err))
			utils.RespondError(w, &logMessageBuilder, "The study assistant is temporarily unavailable. Please try again later.", http.StatusBadGateway)
			return
		}

		utils.AddToLogMessage(&logMessageBuilder, "Chat reply generated")
		utils.RespondSuccess(w, http.StatusOK, map[string]interface{}{"reply": reply})
	}
}
