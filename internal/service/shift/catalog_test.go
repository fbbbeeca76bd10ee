package shift

import (
	"context"
	"testing"
	"time"

	"github.com/shiftgate/checkin-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConfigRepository struct {
	shifts []shift.ShiftDefinition
	policy shift.ControlShiftPolicy
}

func (f *fakeConfigRepository) ListShifts(ctx context.Context) ([]shift.ShiftDefinition, error) {
	return f.shifts, nil
}

func (f *fakeConfigRepository) GetByID(ctx context.Context, id string) (shift.ShiftDefinition, error) {
	for _, def := range f.shifts {
		if def.ID == id {
			return def, nil
		}
	}
	return shift.ShiftDefinition{}, shift.ErrShiftNotFound
}

func (f *fakeConfigRepository) ControlPolicy(ctx context.Context) (shift.ControlShiftPolicy, error) {
	return f.policy, nil
}

func TestCatalog_ControlDay(t *testing.T) {
	t.Parallel()
	catalog := NewCatalog(&fakeConfigRepository{
		policy: shift.ControlShiftPolicy{
			Enabled:   true,
			Overrides: map[string]string{"2024-03": "2024-03-20"},
		},
	})

	day, ok, err := catalog.ControlDay(context.Background(), time.Date(2024, 3, 12, 8, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), day)
}

func TestCatalog_ControlDayDisabled(t *testing.T) {
	t.Parallel()
	catalog := NewCatalog(&fakeConfigRepository{})

	_, ok, err := catalog.ControlDay(context.Background(), time.Date(2024, 3, 12, 8, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCatalog_ListShifts(t *testing.T) {
	t.Parallel()
	defs := []shift.ShiftDefinition{
		{ID: "morning", Label: "Morning", StartTime: "08:00", EndTime: "17:00"},
	}
	catalog := NewCatalog(&fakeConfigRepository{shifts: defs})

	got, err := catalog.ListShifts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, defs, got)
}
