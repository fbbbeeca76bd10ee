package auth

import (
	"context"
	"fmt"

	"github.com/shiftgate/checkin-backend-go/internal/domain/auth"
	"github.com/shiftgate/checkin-backend-go/internal/domain/employee"
	"github.com/shiftgate/checkin-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	employees  employee.Registry
	jwtService jwt.Service
}

func NewAuthService(employees employee.Registry, jwtService jwt.Service) auth.Service {
	return &AuthServiceImpl{
		employees:  employees,
		jwtService: jwtService,
	}
}

// Login implements auth.Service.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	emp, err := s.employees.VerifyPIN(ctx, req.EmployeeCode, req.PIN)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	if !emp.Active {
		return auth.LoginResponse{}, employee.ErrEmployeeInactive
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.EmployeeCode, emp.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:  accessToken,
		ExpiresAt:    expiresAt,
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		Role:         string(emp.Role),
	}, nil
}
