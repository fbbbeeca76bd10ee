package checkin

import (
	"context"
	"time"
)

// Ledger enforces at most one check-in per employee per shift window, persists
// events durably despite transient backend failures, and serves deduplicated
// historical reads.
type Ledger interface {
	// RecordCheckIn validates and consumes the kiosk token, resolves the shift
	// window and lateness for now, rejects duplicates within the window, then
	// writes the row to the remote store or, failing that, the local queue.
	RecordCheckIn(ctx context.Context, req RecordCheckInRequest, now time.Time) (SummaryRecord, error)

	// ListCheckIns unions remote and local rows, dedupes by
	// (employee, timestamp, shift, event type), applies the filter and returns
	// summaries sorted by timestamp descending.
	ListCheckIns(ctx context.Context, filter ListFilter) ([]SummaryRecord, error)
}
