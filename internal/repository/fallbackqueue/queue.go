// Package fallbackqueue is the local durable store a check-in lands in when
// the remote store is unreachable. One JSON object per line, append-only;
// entries are merged with remote rows on read and deduped there.
package fallbackqueue

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shiftgate/checkin-backend-go/internal/domain/checkin"
)

// queueEntry is the on-disk shape of a queued check-in.
type queueEntry struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Timestamp  time.Time `json:"timestamp"`
	ShiftID    string    `json:"shift_id"`
	ShiftLabel string    `json:"shift_label"`
	KioskID    string    `json:"kiosk_id"`
	Status     string    `json:"status"`
	EventType  string    `json:"event_type"`
	SiteName   *string   `json:"site_name,omitempty"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	PhotoURL   *string   `json:"photo_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Queue struct {
	path string
	mu   sync.Mutex
}

func NewQueue(path string) (*Queue, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create fallback queue directory: %w", err)
	}
	return &Queue{path: path}, nil
}

// Append implements checkin.FallbackQueue. The line is flushed and synced
// before returning: the caller reports the check-in as durable on success.
func (q *Queue) Append(ctx context.Context, record checkin.CheckIn) (checkin.CheckIn, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if record.ID == "" {
		record.ID = checkin.LocalIDPrefix + uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	line, err := json.Marshal(toEntry(record))
	if err != nil {
		return checkin.CheckIn{}, fmt.Errorf("failed to encode queue entry: %w", err)
	}

	file, err := os.OpenFile(q.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return checkin.CheckIn{}, fmt.Errorf("failed to open fallback queue: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(append(line, '\n')); err != nil {
		return checkin.CheckIn{}, fmt.Errorf("failed to append to fallback queue: %w", err)
	}
	if err := file.Sync(); err != nil {
		return checkin.CheckIn{}, fmt.Errorf("failed to sync fallback queue: %w", err)
	}

	return record, nil
}

// List implements checkin.FallbackQueue.
func (q *Queue) List(ctx context.Context) ([]checkin.CheckIn, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	file, err := os.Open(q.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open fallback queue: %w", err)
	}
	defer file.Close()

	var records []checkin.CheckIn
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry queueEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			// A partially written line from a crash; skip it rather than
			// fail the whole read.
			slog.Warn("Skipping corrupt fallback queue line", "error", err)
			continue
		}
		records = append(records, fromEntry(entry))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fallback queue: %w", err)
	}

	return records, nil
}

// ListByEmployee implements checkin.FallbackQueue.
func (q *Queue) ListByEmployee(ctx context.Context, employeeID string) ([]checkin.CheckIn, error) {
	all, err := q.List(ctx)
	if err != nil {
		return nil, err
	}

	var records []checkin.CheckIn
	for _, rec := range all {
		if rec.EmployeeID == employeeID {
			records = append(records, rec)
		}
	}
	return records, nil
}

func toEntry(rec checkin.CheckIn) queueEntry {
	return queueEntry{
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,
		Timestamp:  rec.Timestamp,
		ShiftID:    rec.ShiftID,
		ShiftLabel: rec.ShiftLabel,
		KioskID:    rec.KioskID,
		Status:     string(rec.Status),
		EventType:  rec.EventType,
		SiteName:   rec.SiteName,
		Latitude:   rec.Latitude,
		Longitude:  rec.Longitude,
		PhotoURL:   rec.PhotoURL,
		CreatedAt:  rec.CreatedAt,
	}
}

func fromEntry(entry queueEntry) checkin.CheckIn {
	return checkin.CheckIn{
		ID:         entry.ID,
		EmployeeID: entry.EmployeeID,
		Timestamp:  entry.Timestamp,
		ShiftID:    entry.ShiftID,
		ShiftLabel: entry.ShiftLabel,
		KioskID:    entry.KioskID,
		Status:     checkin.Status(entry.Status),
		EventType:  entry.EventType,
		SiteName:   entry.SiteName,
		Latitude:   entry.Latitude,
		Longitude:  entry.Longitude,
		PhotoURL:   entry.PhotoURL,
		CreatedAt:  entry.CreatedAt,
	}
}
