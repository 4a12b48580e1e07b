package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondSuccess(rec, http.StatusCreated, map[string]string{"token": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, map[string]interface{}{"token": "abc"}, body["data"])
	_, hasMessage := body["message"]
	assert.False(t, hasMessage)
}

func TestRespondErrorEnvelope(t *testing.T) {
	var logMessageBuilder strings.Builder
	rec := httptest.NewRecorder()
	RespondError(rec, &logMessageBuilder, "User not found", http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "User not found", body["message"])
	_, hasData := body["data"]
	assert.False(t, hasData)

	assert.Contains(t, logMessageBuilder.String(), "User not found")
}

func TestAddToLogMessage(t *testing.T) {
	var logMessageBuilder strings.Builder
	AddToLogMessage(&logMessageBuilder, "[Test API]")
	AddToLogMessage(&logMessageBuilder, "step one")

	assert.Equal(t, "[Test API];\nstep one;\n", logMessageBuilder.String())
}
