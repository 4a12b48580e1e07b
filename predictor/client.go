package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrPredictionUnavailable is the single failure mode callers see for
// the external prediction service: transport errors, non-success status
// codes and error bodies all collapse into it. No retries.
var ErrPredictionUnavailable = errors.New("prediction service unavailable")

// SubjectPrediction mirrors one entry of the prediction service
// response; it is passed through to the client unmodified.
type SubjectPrediction struct {
	Subject         string  `json:"subject"`
	CurrentScore    float64 `json:"currentScore"`
	PredictedScore  float64 `json:"predictedScore"`
	Improvement     float64 `json:"improvement"`
	Confidence      string  `json:"confidence"`
	Recommendations string  `json:"recommendations"`
}

type predictResponse struct {
	Success     bool                `json:"success"`
	Predictions []SubjectPrediction `json:"predictions"`
	Error       string              `json:"error"`
}

// Client talks to the external prediction service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Predict sends the feature payload and returns the per-subject
// predictions.
func (c *Client) Predict(ctx context.Context, payload *FeaturePayload) ([]SubjectPrediction, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode feature payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build prediction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictionUnavailable, err)
	}
	defer resp.Body.Close()

	var decoded predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: bad response body: %v", ErrPredictionUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK || !decoded.Success {
		if decoded.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrPredictionUnavailable, decoded.Error)
		}
		return nil, fmt.Errorf("%w: status %d", ErrPredictionUnavailable, resp.StatusCode)
	}

	return decoded.Predictions, nil
}
