package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/raushankrgupta/student-insight-backend/api"
	"github.com/raushankrgupta/student-insight-backend/config"
	"github.com/raushankrgupta/student-insight-backend/predictor"
	"github.com/raushankrgupta/student-insight-backend/store"
	"github.com/raushankrgupta/student-insight-backend/utils"
)

func main() {
	config.LoadConfig()

	if len(config.JWTSecret) == 0 {
		log.Fatal("JWT_SECRET is not set")
	}

	// Initialize MongoDB
	if err := utils.ConnectMongo(config.MongoURI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := utils.EnsureIndexes(ctx, config.DatabaseName); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	userStore := store.NewUserStore(utils.GetCollection(config.DatabaseName, "users"))
	quizStore := store.NewQuizStore(utils.GetCollection(config.DatabaseName, "quizanswers"))
	predictorClient := predictor.NewClient(config.PredictorURL)

	cors := api.CORSMiddleware
	protect := func(h http.HandlerFunc) http.HandlerFunc {
		return cors(api.RequireAuth(userStore, h))
	}

	// Auth routes
	http.HandleFunc("/api/auth/signup", cors(api.SignupHandler(userStore)))
	http.HandleFunc("/api/auth/login", cors(api.LoginHandler(userStore)))
	http.HandleFunc("/api/auth/logout", cors(api.LogoutHandler()))
	http.HandleFunc("/api/auth/me", protect(api.MeHandler()))

	// Profile routes
	http.HandleFunc("/api/profile", protect(profileRouter(userStore)))

	// Quiz routes
	http.HandleFunc("/api/quiz/submit", protect(api.SubmitQuizHandler(quizStore)))
	http.HandleFunc("/api/quiz/answers", protect(api.GetQuizAnswersHandler(quizStore)))
	http.HandleFunc("/api/quiz/predictions", protect(api.GetPredictionsHandler(quizStore, predictorClient)))

	// Report and assistant
	http.HandleFunc("/api/students/report", protect(api.StudentReportHandler(quizStore)))
	http.HandleFunc("/api/chat", protect(api.ChatHandler()))

	http.HandleFunc("/api/health", cors(api.HealthHandler()))

	port := config.Port
	fmt.Printf("Server starting on port %s...\n", port)
	if err := http.ListenAndServe(":"+port, utils.LatencyMiddleware(http.DefaultServeMux)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// profileRouter dispatches GET vs PUT/PATCH on the shared /api/profile path
func profileRouter(users *store.UserStore) http.HandlerFunc {
	get := api.GetProfileHandler()
	update := api.UpdateProfileHandler(users)
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			get(w, r)
		case http.MethodPut, http.MethodPatch:
			update(w, r)
		default:
			utils.RespondError(w, nil, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}
