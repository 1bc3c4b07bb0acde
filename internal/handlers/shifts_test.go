package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func postShift(body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/shifts", strings.NewReader(body))
	CreateShift(rec, req)
	return rec
}

func TestCreateShift_RejectsInvalidStaffID(t *testing.T) {
	rec := postShift(`{"staffId":"not-hex","dayIndex":1,"timeRange":"09:00 - 17:00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateShift_RejectsMissingDayIndex(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	rec := postShift(`{"staffId":"` + id + `","timeRange":"09:00 - 17:00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateShift_RejectsDayIndexOutOfRange(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	rec := postShift(`{"staffId":"` + id + `","dayIndex":7,"timeRange":"09:00 - 17:00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateShift_RejectsOvernightRange(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	rec := postShift(`{"staffId":"` + id + `","dayIndex":2,"timeRange":"22:00 - 06:00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "midnight")
}

func TestCreateShift_RejectsUnparsableRange(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	rec := postShift(`{"staffId":"` + id + `","dayIndex":2,"timeRange":"morning"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
