package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/raushankrgupta/student-insight-backend/models"
	"github.com/raushankrgupta/student-insight-backend/store"
	"github.com/raushankrgupta/student-insight-backend/utils"
)

// SubmitQuizHandler handles the one-time quiz submission. A repeat
// attempt gets a 400 so the frontend can redirect to the read-only view.
func SubmitQuizHandler(quizzes *store.QuizStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var logMessageBuilder strings.Builder
		defer func() {
			fmt.Println(logMessageBuilder.String())
		}()
		utils.AddToLogMessage(&logMessageBuilder, "[Submit Quiz API]")

		if r.Method != http.MethodPost {
			utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		user, err := GetUserFromContext(r.Context())
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, "You are not logged in! Please log in to get access.", http.StatusUnauthorized)
			return
		}

		var answer models.QuizAnswer
		if err := json.NewDecoder(r.Body).Decode(&answer); err != nil {
			utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
			return
		}

		created, err := quizzes.Submit(r.Context(), user.ID, &answer)
		if err != nil {
			var validationErr *models.ValidationError
			switch {
			case errors.As(err, &validationErr):
				utils.RespondError(w, &logMessageBuilder, validationErr.Error(), http.StatusBadRequest)
			case errors.Is(err, store.ErrAlreadySubmitted):
				utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Duplicate submission by user %s", user.ID.Hex()))
				utils.RespondError(w, &logMessageBuilder, "You have already submitted the quiz", http.StatusBadRequest)
			default:
				utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to save quiz answers: %v", err))
				utils.RespondError(w, &logMessageBuilder, "Error submitting quiz answers", http.StatusInternalServerError)
			}
			return
		}

		utils.AddToLogMessage(&logMessageBuilder, "Quiz answers submitted successfully")
		utils.RespondSuccess(w, http.StatusCreated, map[string]interface{}{"quizAnswer": created})
	}
}

// GetQuizAnswersHandler returns the user's own quiz record
func GetQuizAnswersHandler(quizzes *store.QuizStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var logMessageBuilder strings.Builder
		defer func() {
			fmt.Println(logMessageBuilder.String())
		}()
		utils.AddToLogMessage(&logMessageBuilder, "[Quiz Answers API]")

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

		utils.RespondSuccess(w, http.StatusOK, map[string]interface{}{"quizAnswer": answer})
	}
}

// SubjectReportRow is one line of the student report
type SubjectReportRow struct {
	Subject    string   `json:"subject"`
	Marks      *float64 `json:"marks,omitempty"`
	Attendance *float64 `json:"attendance,omitempty"`
	Interest   *float64 `json:"interest,omitempty"`
}

// StudentReport summarizes the quiz marks with a blanket recommendation
type StudentReport struct {
	StudentName     string             `json:"studentName"`
	Email           string             `json:"email"`
	AverageScore    float64            `json:"averageScore"`
	Subjects        []SubjectReportRow `json:"subjects"`
	Recommendations string             `json:"recommendations"`
}

func buildStudentReport(user *models.User, answer *models.QuizAnswer) *StudentReport {
	var rows []SubjectReportRow
	var total float64
	var counted int

	for _, name := range models.SubjectKeys {
		score, ok := answer.Subjects[name]
		if !ok {
			continue
		}
		rows = append(rows, SubjectReportRow{
			Subject:    name,
			Marks:      score.Marks,
			Attendance: score.Attendance,
			Interest:   score.Interest,
		})
		if score.Marks != nil {
			total += *score.Marks
			counted++
		}
	}

	var average float64
	if counted > 0 {
		average = math.Round(total/float64(counted)*100) / 100
	}

	var recommendations string
	switch {
	case average >= 80:
		recommendations = "Excellent performance! Keep up the great work."
	case average >= 60:
		recommendations = "Good progress. Focus on improving weaker areas."
	default:
		recommendations = "Additional practice recommended. Review core concepts."
	}

	return &StudentReport{
		StudentName:     user.Name,
		Email:           user.Email,
		AverageScore:    average,
		Subjects:        rows,
		Recommendations: recommendations,
	}
}

// StudentReportHandler builds a summary report from the quiz marks
func StudentReportHandler(quizzes *store.QuizStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var logMessageBuilder strings.Builder
		defer func() {
			fmt.Println(logMessageBuilder.String())
		}()
		utils.AddToLogMessage(&logMessageBuilder, "[Student Report API]")

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
				utils.RespondError(w, &logMessageBuilder, "Failed to generate report", http.StatusInternalServerError)
			}
			return
		}

		utils.AddToLogMessage(&logMessageBuilder, "Report generated successfully")
		utils.RespondSuccess(w, http.StatusOK, map[string]interface{}{"report": buildStudentReport(user, answer)})
	}
}
