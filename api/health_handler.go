package api

import (
	"context"
	"net/http"
	"time"

	"github.com/raushankrgupta/student-insight-backend/utils"
)

// HealthHandler reports database liveness
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			utils.RespondError(w, nil, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := utils.PingMongo(ctx); err != nil {
			utils.RespondError(w, nil, "Database is unreachable", http.StatusInternalServerError)
			return
		}

		utils.RespondSuccess(w, http.StatusOK, map[string]string{"database": "up"})
	}
}
