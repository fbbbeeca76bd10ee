package fallbackqueue

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shiftgate/checkin-backend-go/internal/domain/checkin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T) (*Queue, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "checkin-queue.jsonl")
	queue, err := NewQueue(path)
	require.NoError(t, err)
	return queue, path
}

func TestQueue_AppendAndList(t *testing.T) {
	t.Parallel()
	queue, _ := newTestQueue(t)
	ctx := context.Background()

	site := "Plant 2"
	stored, err := queue.Append(ctx, checkin.CheckIn{
		EmployeeID: "emp-1",
		Timestamp:  time.Date(2024, 3, 12, 8, 5, 0, 0, time.UTC),
		ShiftID:    "morning",
		ShiftLabel: "Morning",
		KioskID:    "front-desk",
		Status:     checkin.StatusOnTime,
		EventType:  checkin.EventCheckIn,
		SiteName:   &site,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.ID, checkin.LocalIDPrefix))
	assert.False(t, stored.CreatedAt.IsZero())

	records, err := queue.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, stored.ID, records[0].ID)
	assert.Equal(t, "emp-1", records[0].EmployeeID)
	assert.Equal(t, checkin.StatusOnTime, records[0].Status)
	require.NotNil(t, records[0].SiteName)
	assert.Equal(t, "Plant 2", *records[0].SiteName)
	assert.True(t, records[0].Timestamp.Equal(stored.Timestamp))
}

func TestQueue_AppendKeepsExistingID(t *testing.T) {
	t.Parallel()
	queue, _ := newTestQueue(t)
	ctx := context.Background()

	stored, err := queue.Append(ctx, checkin.CheckIn{
		ID:         "lq-fixed",
		EmployeeID: "emp-1",
		Timestamp:  time.Now().UTC(),
		ShiftID:    "morning",
		EventType:  checkin.EventCheckIn,
	})
	require.NoError(t, err)
	assert.Equal(t, "lq-fixed", stored.ID)
}

func TestQueue_ListByEmployee(t *testing.T) {
	t.Parallel()
	queue, _ := newTestQueue(t)
	ctx := context.Background()

	for _, employeeID := range []string{"emp-1", "emp-2", "emp-1"} {
		_, err := queue.Append(ctx, checkin.CheckIn{
			EmployeeID: employeeID,
			Timestamp:  time.Now().UTC(),
			ShiftID:    "morning",
			EventType:  checkin.EventCheckIn,
		})
		require.NoError(t, err)
	}

	records, err := queue.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = queue.ListByEmployee(ctx, "emp-3")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestQueue_ListMissingFileIsEmpty(t *testing.T) {
	t.Parallel()
	queue, _ := newTestQueue(t)

	records, err := queue.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestQueue_ListSkipsCorruptLines(t *testing.T) {
	t.Parallel()
	queue, path := newTestQueue(t)
	ctx := context.Background()

	_, err := queue.Append(ctx, checkin.CheckIn{
		EmployeeID: "emp-1",
		Timestamp:  time.Now().UTC(),
		ShiftID:    "morning",
		EventType:  checkin.EventCheckIn,
	})
	require.NoError(t, err)

	// Simulate a crash mid-write: a truncated JSON line followed by a good one.
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = file.WriteString(`{"id":"lq-torn","employee_` + "\n")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	_, err = queue.Append(ctx, checkin.CheckIn{
		EmployeeID: "emp-2",
		Timestamp:  time.Now().UTC(),
		ShiftID:    "night",
		EventType:  checkin.EventCheckIn,
	})
	require.NoError(t, err)

	records, err := queue.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "emp-1", records[0].EmployeeID)
	assert.Equal(t, "emp-2", records[1].EmployeeID)
}

func TestQueue_SurvivesReopen(t *testing.T) {
	t.Parallel()
	queue, path := newTestQueue(t)
	ctx := context.Background()

	_, err := queue.Append(ctx, checkin.CheckIn{
		EmployeeID: "emp-1",
		Timestamp:  time.Now().UTC(),
		ShiftID:    "morning",
		EventType:  checkin.EventCheckIn,
	})
	require.NoError(t, err)

	reopened, err := NewQueue(path)
	require.NoError(t, err)

	records, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
