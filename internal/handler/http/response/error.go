package response

import (
	"errors"
	"net/http"

	"github.com/shiftgate/checkin-backend-go/internal/domain/checkin"
	"github.com/shiftgate/checkin-backend-go/internal/domain/employee"
	"github.com/shiftgate/checkin-backend-go/internal/domain/shift"
	"github.com/shiftgate/checkin-backend-go/internal/domain/token"
	"github.com/shiftgate/checkin-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Token verification errors: typed rejection reasons, scanner re-arms
	case errors.Is(err, token.ErrMalformedToken):
		TokenRejected(w, "MALFORMED_TOKEN", "Token is not a valid QR payload")
	case errors.Is(err, token.ErrBadSignature):
		TokenRejected(w, "BAD_SIGNATURE", "Token signature does not match")
	case errors.Is(err, token.ErrExpired):
		TokenRejected(w, "EXPIRED", "Token has expired")
	case errors.Is(err, token.ErrReplayedNonce):
		TokenRejected(w, "REPLAYED_NONCE", "Token has already been used")

	// Ledger errors
	case errors.Is(err, checkin.ErrDuplicateCheckIn):
		Conflict(w, "Already checked in for this shift")
	case errors.Is(err, checkin.ErrStorageFailed),
		errors.Is(err, checkin.ErrBackendUnavailable):
		ServiceUnavailable(w, "Check-in could not be stored, please retry")
	case errors.Is(err, checkin.ErrSchemaMismatch):
		InternalServerError(w, "Attendance backend rejected the check-in payload")

	// Employee registry errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidPIN):
		Unauthorized(w, "Invalid employee code or PIN")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is not active")

	// Shift configuration errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrSupervisorOnly):
		Forbidden(w, "Shift is restricted to supervisors")
	case errors.Is(err, shift.ErrInvalidTimeOfDay):
		BadRequest(w, "Shift configuration has an invalid time of day", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
