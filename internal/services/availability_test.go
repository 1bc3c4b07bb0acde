package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/careflowcentral/careflow-backend/internal/models"
)

func TestParseVisitTime(t *testing.T) {
	tests := []struct {
		value   string
		minutes int
		wantErr bool
	}{
		{"9:30 AM", 9*60 + 30, false},
		{"12:00 PM", 12 * 60, false},
		{"12:00 AM", 0, false},
		{"11:59 PM", 23*60 + 59, false},
		{"  2:05 pm ", 14*60 + 5, false},
		{"", 0, true},
		{"25:00", 0, true},
		{"9:30", 0, true},
	}

	for _, tt := range tests {
		minutes, err := ParseVisitTime(tt.value)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidVisitTime, "value %q", tt.value)
			continue
		}
		require.NoError(t, err, "value %q", tt.value)
		assert.Equal(t, tt.minutes, minutes, "value %q", tt.value)
	}
}

func TestParseTimeRange(t *testing.T) {
	start, end, err := ParseTimeRange("09:00 - 17:00")
	require.NoError(t, err)
	assert.Equal(t, 9*60, start)
	assert.Equal(t, 17*60, end)

	// Zero-length windows are legal, a single blocked minute
	start, end, err = ParseTimeRange("10:30 - 10:30")
	require.NoError(t, err)
	assert.Equal(t, start, end)

	_, _, err = ParseTimeRange("22:00 - 06:00")
	assert.ErrorIs(t, err, ErrOvernightRange)

	_, _, err = ParseTimeRange("09:00")
	assert.Error(t, err)

	_, _, err = ParseTimeRange("9am - 5pm")
	assert.Error(t, err)
}

func TestValidateTimeRange(t *testing.T) {
	assert.NoError(t, ValidateTimeRange("08:15 - 12:45"))
	assert.ErrorIs(t, ValidateTimeRange("23:00 - 01:00"), ErrOvernightRange)
	assert.Error(t, ValidateTimeRange("morning"))
}

func newCaregiver(t *testing.T) models.Caregiver {
	t.Helper()
	return models.Caregiver{ID: primitive.NewObjectID(), Role: models.RoleCaregiver, Status: models.StatusActive}
}

func TestIsAvailable_NoShifts(t *testing.T) {
	// Absence of a record is open availability, not an implicit block
	assert.True(t, IsAvailable(nil, 9*60))
	assert.True(t, IsAvailable([]models.Shift{}, 23*60))
}

func TestIsAvailable_InclusiveBoundaries(t *testing.T) {
	shifts := []models.Shift{{ID: primitive.NewObjectID(), TimeRange: "09:00 - 11:00"}}

	assert.False(t, IsAvailable(shifts, 9*60), "shift start is blocked")
	assert.False(t, IsAvailable(shifts, 11*60), "shift end is blocked")
	assert.False(t, IsAvailable(shifts, 10*60), "middle of shift is blocked")
	assert.True(t, IsAvailable(shifts, 8*60+59), "one minute before start is free")
	assert.True(t, IsAvailable(shifts, 11*60+1), "one minute after end is free")
}

func TestIsAvailable_AnyOverlappingShiftBlocks(t *testing.T) {
	shifts := []models.Shift{
		{ID: primitive.NewObjectID(), TimeRange: "06:00 - 08:00"},
		{ID: primitive.NewObjectID(), TimeRange: "14:00 - 18:00"},
	}

	assert.True(t, IsAvailable(shifts, 10*60), "between shifts is free")
	assert.False(t, IsAvailable(shifts, 7*60))
	assert.False(t, IsAvailable(shifts, 15*60))
}

func TestIsAvailable_SkipsUnparsableRange(t *testing.T) {
	shifts := []models.Shift{
		{ID: primitive.NewObjectID(), TimeRange: "garbage"},
		{ID: primitive.NewObjectID(), TimeRange: "13:00 - 15:00"},
	}

	assert.True(t, IsAvailable(shifts, 9*60))
	assert.False(t, IsAvailable(shifts, 14*60))
}

func TestFilterAvailable(t *testing.T) {
	busy := newCaregiver(t)
	free := newCaregiver(t)
	noShifts := newCaregiver(t)

	dayShifts := []models.Shift{
		{ID: primitive.NewObjectID(), StaffID: busy.ID, TimeRange: "09:00 - 11:00"},
		{ID: primitive.NewObjectID(), StaffID: free.ID, TimeRange: "14:00 - 16:00"},
	}

	available := FilterAvailable([]models.Caregiver{busy, free, noShifts}, dayShifts, 10*60)

	ids := make([]primitive.ObjectID, 0, len(available))
	for _, c := range available {
		ids = append(ids, c.ID)
	}
	assert.NotContains(t, ids, busy.ID, "caregiver with overlapping shift is unavailable")
	assert.Contains(t, ids, free.ID, "another caregiver's shift must not block")
	assert.Contains(t, ids, noShifts.ID)
}

func TestFilterAvailable_EmptyInputs(t *testing.T) {
	assert.Empty(t, FilterAvailable(nil, nil, 10*60))

	one := newCaregiver(t)
	available := FilterAvailable([]models.Caregiver{one}, nil, 10*60)
	require.Len(t, available, 1)
	assert.Equal(t, one.ID, available[0].ID)
}
