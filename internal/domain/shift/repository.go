package shift

import "context"

// ConfigRepository is the read-only gateway to the shift configuration owned
// by the settings subsystem.
type ConfigRepository interface {
	// ListShifts returns all configured shift definitions.
	ListShifts(ctx context.Context) ([]ShiftDefinition, error)

	// GetByID retrieves a single shift definition, ErrShiftNotFound otherwise.
	GetByID(ctx context.Context, id string) (ShiftDefinition, error)

	// ControlPolicy returns the current control-day policy.
	ControlPolicy(ctx context.Context) (ControlShiftPolicy, error)
}
