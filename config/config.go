package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	MongoURI     string
	DatabaseName string
	Port         string
	JWTSecret    []byte
	TokenTTL     time.Duration
	PredictorURL string
	GeminiAPIKey string
	EmailSender  string
	CORSOrigin   string
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017/"
	}

	DatabaseName = os.Getenv("MONGO_DB")
	if DatabaseName == "" {
		DatabaseName = "studentinsight"
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "5000"
	}

	JWTSecret = []byte(os.Getenv("JWT_SECRET"))

	TokenTTL = 24 * time.Hour
	if ttlStr := os.Getenv("TOKEN_TTL_HOURS"); ttlStr != "" {
		if hours, err := strconv.Atoi(ttlStr); err == nil && hours > 0 {
			TokenTTL = time.Duration(hours) * time.Hour
		}
	}

	PredictorURL = os.Getenv("PREDICTOR_URL")
	if PredictorURL == "" {
		PredictorURL = "http://localhost:5001"
	}

	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	EmailSender = os.Getenv("EMAIL_SENDER")
	if EmailSender == "" {
		EmailSender = "no-reply@studentinsight.app"
	}

	CORSOrigin = os.Getenv("CORS_ORIGIN")
	if CORSOrigin == "" {
		CORSOrigin = "http://localhost:3000"
	}
}
