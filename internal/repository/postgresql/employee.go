package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftgate/checkin-backend-go/internal/domain/employee"
	"github.com/shiftgate/checkin-backend-go/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Registry {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelectColumns = `id, employee_code, full_name, department, role, pin_hash, active, created_at, updated_at`

// GetByID implements employee.Registry.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE id = $1
	`, employeeSelectColumns)

	return scanEmployee(q.QueryRow(ctx, query, id))
}

// GetByEmployeeCode implements employee.Registry.
func (e *employeeRepositoryImpl) GetByEmployeeCode(ctx context.Context, employeeCode string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE employee_code = $1
	`, employeeSelectColumns)

	return scanEmployee(q.QueryRow(ctx, query, employeeCode))
}

// VerifyPIN implements employee.Registry.
func (e *employeeRepositoryImpl) VerifyPIN(ctx context.Context, employeeCode string, pin string) (employee.Employee, error) {
	emp, err := e.GetByEmployeeCode(ctx, employeeCode)
	if err != nil {
		return employee.Employee{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PINHash), []byte(pin)); err != nil {
		return employee.Employee{}, employee.ErrInvalidPIN
	}

	return emp, nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var role string
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Department,
		&role, &emp.PINHash, &emp.Active, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	emp.Role = employee.Role(role)
	return emp, nil
}
