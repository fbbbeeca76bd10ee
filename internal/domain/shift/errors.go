package shift

import "errors"

// Shift configuration errors
var (
	ErrShiftNotFound    = errors.New("shift definition not found")
	ErrSupervisorOnly   = errors.New("shift is restricted to supervisors")
	ErrInvalidTimeOfDay = errors.New("shift time must be in HH:MM format")
)
