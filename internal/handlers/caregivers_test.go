package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Message
}

func TestGetAvailableCaregivers_MissingTimeParam(t *testing.T) {
	rec := httptest.NewRecorder()
	GetAvailableCaregivers(rec, httptest.NewRequest(http.MethodGet, "/api/caregivers/available", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Time parameter is required", errorMessage(t, rec))
}

func TestGetAvailableCaregivers_InvalidTimeParam(t *testing.T) {
	rec := httptest.NewRecorder()
	GetAvailableCaregivers(rec, httptest.NewRequest(http.MethodGet, "/api/caregivers/available?time=25%3A99", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "h:mm a")
}
