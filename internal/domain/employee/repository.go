package employee

import "context"

// Registry is the gateway to the employee master data owned by the CRUD
// subsystem. The protocol core only ever reads from it.
type Registry interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, employeeCode string) (Employee, error)

	// VerifyPIN checks pin against the stored hash for the employee and
	// returns the employee on success, ErrInvalidPIN on mismatch.
	VerifyPIN(ctx context.Context, employeeCode string, pin string) (Employee, error)
}
