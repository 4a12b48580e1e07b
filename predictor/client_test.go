package predictor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientPredictSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, 7.5, payload["current_cgpa"])

		json.NewEncoder(w).Encode(predictResponse{
			Success: true,
			Predictions: []SubjectPrediction{
				{
					Subject:         "ADS",
					CurrentScore:    60,
					PredictedScore:  68,
					Improvement:     8,
					Confidence:      "high",
					Recommendations: "<p>Keep practicing problem sets.</p>",
				},
			},
		})
	}))
	defer server.Close()

	payload, err := BuildFeaturePayload(completeQuizAnswer())
	require.NoError(t, err)

	predictions, err := NewClient(server.URL).Predict(context.Background(), payload)
	require.NoError(t, err)
	require.Len(t, predictions, 1)
	assert.Equal(t, "ADS", predictions[0].Subject)
	assert.Equal(t, 68.0, predictions[0].PredictedScore)
	assert.Equal(t, "high", predictions[0].Confidence)
}

func TestClientPredictServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(predictResponse{Success: false, Error: "model blew up"})
	}))
	defer server.Close()

	payload, err := BuildFeaturePayload(completeQuizAnswer())
	require.NoError(t, err)

	_, err = NewClient(server.URL).Predict(context.Background(), payload)
	require.ErrorIs(t, err, ErrPredictionUnavailable)
	assert.Contains(t, err.Error(), "model blew up")
}

func TestClientPredictRejectedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(predictResponse{Success: false, Error: "Missing required fields"})
	}))
	defer server.Close()

	payload, err := BuildFeaturePayload(completeQuizAnswer())
	require.NoError(t, err)

	_, err = NewClient(server.URL).Predict(context.Background(), payload)
	assert.ErrorIs(t, err, ErrPredictionUnavailable)
}

func TestClientPredictUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	payload, err := BuildFeaturePayload(completeQuizAnswer())
	require.NoError(t, err)

	_, err = NewClient(server.URL).Predict(context.Background(), payload)
	assert.ErrorIs(t, err, ErrPredictionUnavailable)
}
