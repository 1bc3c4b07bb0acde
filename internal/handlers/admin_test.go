package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminScheduleAppointment_CollectsValidationErrors(t *testing.T) {
	body := `{"clientId":"nope","caregiverId":"nope","date":"01/02/2026","startTime":"morning","durationHours":0}`
	rec := httptest.NewRecorder()
	AdminScheduleAppointment(rec, httptest.NewRequest(http.MethodPost, "/api/admin/appointments", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Success bool     `json:"success"`
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Validation failed", resp.Message)
	assert.Len(t, resp.Errors, 5)
}

func TestAdminUnblockIP_RequiresIP(t *testing.T) {
	rec := httptest.NewRecorder()
	AdminUnblockIP(rec, httptest.NewRequest(http.MethodPut, "/api/admin/unblock-ip", strings.NewReader(`{"ip":"  "}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "IP address is required", errorMessage(t, rec))
}

func TestAdminScheduleAppointment_RejectsInvalidBody(t *testing.T) {
	rec := httptest.NewRecorder()
	AdminScheduleAppointment(rec, httptest.NewRequest(http.MethodPost, "/api/admin/appointments", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", errorMessage(t, rec))
}
