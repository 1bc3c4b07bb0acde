package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/careflowcentral/careflow-backend/internal/models"
)

// VisitTimeLayout is the clock format accepted by the availability endpoint,
// e.g. "9:30 AM".
const VisitTimeLayout = "3:04 PM"

// ShiftTimeLayout is the 24-hour clock format inside a shift's time range,
// e.g. "09:00".
const ShiftTimeLayout = "15:04"

var (
	ErrInvalidVisitTime = errors.New("invalid time, expected h:mm a format (e.g. 9:30 AM)")
	// ErrOvernightRange: end before start would mean a shift crossing
	// midnight, which shifts do not model. Rejected rather than guessed at.
	ErrOvernightRange = errors.New("shift time range must not cross midnight")
)

// ParseVisitTime parses a "h:mm a" clock value into a minute-of-day.
func ParseVisitTime(value string) (int, error) {
	t, err := time.Parse(VisitTimeLayout, strings.ToUpper(strings.TrimSpace(value)))
	if err != nil {
		return 0, ErrInvalidVisitTime
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseTimeRange parses a shift's "HH:MM - HH:MM" range into start/end
// minutes-of-day. Overnight ranges are invalid input.
func ParseTimeRange(timeRange string) (start, end int, err error) {
	parts := strings.Split(timeRange, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time range %q, expected \"HH:MM - HH:MM\"", timeRange)
	}

	startClock, err := time.Parse(ShiftTimeLayout, strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid shift start in %q", timeRange)
	}
	endClock, err := time.Parse(ShiftTimeLayout, strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid shift end in %q", timeRange)
	}

	start = startClock.Hour()*60 + startClock.Minute()
	end = endClock.Hour()*60 + endClock.Minute()
	if end < start {
		return 0, 0, ErrOvernightRange
	}
	return start, end, nil
}

// ValidateTimeRange is the write-side guard used when shifts are created or
// updated.
func ValidateTimeRange(timeRange string) error {
	_, _, err := ParseTimeRange(timeRange)
	return err
}

// IsAvailable reports whether a caregiver with the given day's shifts is free
// at minuteOfDay. No shifts means open availability. Boundaries are
// inclusive: a visit at the exact shift start or end still conflicts.
// Stored ranges that fail to parse are skipped with a log line; they cannot
// be created through the API.
func IsAvailable(shifts []models.Shift, minuteOfDay int) bool {
	for _, shift := range shifts {
		start, end, err := ParseTimeRange(shift.TimeRange)
		if err != nil {
			log.Printf("Skipping shift %s with unparsable time range %q: %v", shift.ID.Hex(), shift.TimeRange, err)
			continue
		}
		if minuteOfDay >= start && minuteOfDay <= end {
			return false
		}
	}
	return true
}

// FilterAvailable returns the caregivers free at minuteOfDay given all shift
// records for the relevant day. Shifts belonging to other caregivers never
// affect a candidate.
func FilterAvailable(caregivers []models.Caregiver, dayShifts []models.Shift, minuteOfDay int) []models.Caregiver {
	byStaff := make(map[primitive.ObjectID][]models.Shift, len(dayShifts))
	for _, shift := range dayShifts {
		byStaff[shift.StaffID] = append(byStaff[shift.StaffID], shift)
	}

	available := make([]models.Caregiver, 0, len(caregivers))
	for _, caregiver := range caregivers {
		if IsAvailable(byStaff[caregiver.ID], minuteOfDay) {
			available = append(available, caregiver)
		}
	}
	return available
}
