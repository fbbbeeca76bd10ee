package shift

import (
	"context"
	"time"
)

// Catalog serves the shift definitions a scanner offers for selection,
// annotated with the month's control day when the policy is enabled.
type Catalog interface {
	ListShifts(ctx context.Context) ([]ShiftDefinition, error)

	// ControlDay resolves the control day for the month containing now. The
	// bool is false when the policy is disabled.
	ControlDay(ctx context.Context, now time.Time) (time.Time, bool, error)
}
