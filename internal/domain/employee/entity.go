package employee

import "time"

type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	Department   string
	Role         Role
	PINHash      string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role string

const (
	RoleEmployee   Role = "employee"
	RoleSupervisor Role = "supervisor"
)
