package shift

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shiftgate/checkin-backend-go/internal/domain/shift"
	"github.com/shiftgate/checkin-backend-go/internal/pkg/validator"
)

const minutesPerDay = 24 * 60

// minutesOfDay parses an "HH:MM" time of day into minutes since midnight.
func minutesOfDay(s string) (int, error) {
	if !validator.IsValidTimeOfDay(s) {
		return 0, shift.ErrInvalidTimeOfDay
	}
	parts := strings.SplitN(s, ":", 2)
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours*60 + minutes, nil
}

// ResolveWindow maps checkInAt to the concrete start/end instants of the
// shift. A shift whose end is at or before its start crosses midnight; its
// window may have started yesterday. Of the two candidate starts (today and
// yesterday at the shift's start time) the one closer to checkInAt wins, so a
// 23:50 scan lands in tonight's 22:00-06:00 window and a 01:10 scan lands in
// last night's.
func ResolveWindow(checkInAt time.Time, def shift.ShiftDefinition) (time.Time, time.Time, error) {
	startMin, err := minutesOfDay(def.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endMin, err := minutesOfDay(def.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	duration := endMin - startMin
	if endMin <= startMin {
		duration = (minutesPerDay - startMin) + endMin
	}

	midnight := time.Date(checkInAt.Year(), checkInAt.Month(), checkInAt.Day(), 0, 0, 0, 0, checkInAt.Location())
	today := midnight.Add(time.Duration(startMin) * time.Minute)
	yesterday := today.AddDate(0, 0, -1)

	start := today
	if absDuration(checkInAt.Sub(yesterday)) < absDuration(checkInAt.Sub(today)) {
		start = yesterday
	}

	end := start.Add(time.Duration(duration) * time.Minute)
	return start, end, nil
}

// LateMinutes computes whole minutes past the window start beyond the grace
// period. Early arrivals clamp to zero.
func LateMinutes(checkInAt time.Time, def shift.ShiftDefinition, graceMinutes int) (int, error) {
	start, _, err := ResolveWindow(checkInAt, def)
	if err != nil {
		return 0, err
	}

	elapsed := int(math.Floor(checkInAt.Sub(start).Minutes()))
	late := elapsed - graceMinutes
	if late < 0 {
		return 0, nil
	}
	return late, nil
}

// EstimatedCheckoutAt is the resolved window end. An estimate only; there is
// no check-out event in this system.
func EstimatedCheckoutAt(checkInAt time.Time, def shift.ShiftDefinition) (time.Time, error) {
	_, end, err := ResolveWindow(checkInAt, def)
	return end, err
}

// ControlDayForMonth resolves the control day for a "YYYY-MM" month key: the
// explicit override from the policy map when present, otherwise the day
// before the month's last day. Returns false when the policy is disabled or
// the month key is malformed. Informational only; it never alters shift
// windows here.
func ControlDayForMonth(policy shift.ControlShiftPolicy, monthKey string) (time.Time, bool) {
	if !policy.Enabled {
		return time.Time{}, false
	}

	if override, ok := policy.Overrides[monthKey]; ok {
		if date, valid := validator.IsValidDate(override); valid {
			return date, true
		}
	}

	month, ok := validator.IsValidMonthKey(monthKey)
	if !ok {
		return time.Time{}, false
	}

	// Day zero of the next month is this month's last day.
	lastDay := time.Date(month.Year(), month.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	return lastDay.AddDate(0, 0, -1), true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
