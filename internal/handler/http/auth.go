package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shiftgate/checkin-backend-go/internal/domain/auth"
	"github.com/shiftgate/checkin-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) AuthHandler {
	return &authHandlerImpl{
		authService: authService,
	}
}

// Login implements AuthHandler.
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		slog.Warn("Scanner login rejected", "employee_code", req.EmployeeCode, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
