package shift

import (
	"testing"
	"time"

	"github.com/shiftgate/checkin-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nightShift = shift.ShiftDefinition{
	ID:        "night",
	Label:     "Night",
	StartTime: "22:00",
	EndTime:   "06:00",
}

var morningShift = shift.ShiftDefinition{
	ID:        "morning",
	Label:     "Morning",
	StartTime: "08:00",
	EndTime:   "17:00",
}

func TestResolveWindow_DayShift(t *testing.T) {
	t.Parallel()
	checkInAt := time.Date(2024, 3, 12, 8, 5, 0, 0, time.UTC)

	start, end, err := ResolveWindow(checkInAt, morningShift)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 12, 8, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 12, 17, 0, 0, 0, time.UTC), end)
}

func TestResolveWindow_CrossMidnight_EarlyMorningScan(t *testing.T) {
	t.Parallel()
	// 02:00 on day D belongs to the window that started yesterday at 22:00.
	checkInAt := time.Date(2024, 3, 12, 2, 0, 0, 0, time.UTC)

	start, end, err := ResolveWindow(checkInAt, nightShift)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 11, 22, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 12, 6, 0, 0, 0, time.UTC), end)
}

func TestResolveWindow_CrossMidnight_LateEveningScan(t *testing.T) {
	t.Parallel()
	// 23:50 on day D belongs to tonight's window starting at 22:00 today.
	checkInAt := time.Date(2024, 3, 12, 23, 50, 0, 0, time.UTC)

	start, end, err := ResolveWindow(checkInAt, nightShift)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 12, 22, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 13, 6, 0, 0, 0, time.UTC), end)
}

func TestResolveWindow_EndEqualsStart_FullDay(t *testing.T) {
	t.Parallel()
	def := shift.ShiftDefinition{ID: "full", StartTime: "09:00", EndTime: "09:00"}
	checkInAt := time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)

	start, end, err := ResolveWindow(checkInAt, def)

	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestResolveWindow_InvalidTimeOfDay(t *testing.T) {
	t.Parallel()
	def := shift.ShiftDefinition{ID: "broken", StartTime: "25:00", EndTime: "06:00"}

	_, _, err := ResolveWindow(time.Now(), def)

	assert.ErrorIs(t, err, shift.ErrInvalidTimeOfDay)
}

func TestLateMinutes(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name         string
		checkInAt    time.Time
		graceMinutes int
		want         int
	}{
		{"twenty minutes late with fifteen grace", time.Date(2024, 3, 12, 8, 20, 0, 0, time.UTC), 15, 5},
		{"inside grace period", time.Date(2024, 3, 12, 8, 10, 0, 0, time.UTC), 15, 0},
		{"early arrival clamps to zero", time.Date(2024, 3, 12, 7, 45, 0, 0, time.UTC), 15, 0},
		{"exactly at grace boundary", time.Date(2024, 3, 12, 8, 15, 0, 0, time.UTC), 15, 0},
		{"no grace", time.Date(2024, 3, 12, 8, 1, 0, 0, time.UTC), 0, 1},
		{"partial minute floors", time.Date(2024, 3, 12, 8, 20, 59, 0, time.UTC), 15, 5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := LateMinutes(c.checkInAt, morningShift, c.graceMinutes)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestEstimatedCheckoutAt(t *testing.T) {
	t.Parallel()
	checkInAt := time.Date(2024, 3, 12, 23, 50, 0, 0, time.UTC)

	checkoutAt, err := EstimatedCheckoutAt(checkInAt, nightShift)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 13, 6, 0, 0, 0, time.UTC), checkoutAt)
}

func TestControlDayForMonth_Default(t *testing.T) {
	t.Parallel()
	policy := shift.ControlShiftPolicy{Enabled: true}

	// February 2024 is a leap month: last day 29, control day 28.
	day, ok := ControlDayForMonth(policy, "2024-02")

	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), day)
}

func TestControlDayForMonth_Override(t *testing.T) {
	t.Parallel()
	policy := shift.ControlShiftPolicy{
		Enabled:   true,
		Overrides: map[string]string{"2024-02": "2024-02-15"},
	}

	day, ok := ControlDayForMonth(policy, "2024-02")

	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), day)
}

func TestControlDayForMonth_Disabled(t *testing.T) {
	t.Parallel()
	policy := shift.ControlShiftPolicy{Enabled: false}

	_, ok := ControlDayForMonth(policy, "2024-02")

	assert.False(t, ok)
}

func TestControlDayForMonth_BadMonthKey(t *testing.T) {
	t.Parallel()
	policy := shift.ControlShiftPolicy{Enabled: true}

	_, ok := ControlDayForMonth(policy, "February 2024")

	assert.False(t, ok)
}
