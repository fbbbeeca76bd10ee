package checkin

import "errors"

// Ledger errors
var (
	// ErrDuplicateCheckIn means the employee already has a check-in inside the
	// resolved shift window. A second attempt never overwrites, it fails.
	ErrDuplicateCheckIn = errors.New("already checked in for this shift")

	// ErrBackendUnavailable wraps transient remote-store failures (timeouts,
	// connection resets). The ledger falls through to the local queue; it
	// surfaces to the caller only when the local write fails too.
	ErrBackendUnavailable = errors.New("attendance backend unavailable")

	// ErrSchemaMismatch is the typed give-up error of the column-stripping
	// retry loop: the insert payload could not be reconciled with the remote
	// schema within the attempt cap.
	ErrSchemaMismatch = errors.New("attendance backend rejected payload schema")

	// ErrStorageFailed means both the remote store and the local fallback
	// queue rejected the write. The request failed and may be retried.
	ErrStorageFailed = errors.New("check-in could not be stored")
)
