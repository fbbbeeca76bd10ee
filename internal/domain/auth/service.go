package auth

import "context"

// Service exchanges an employee code + PIN for a scanner-session token.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
