package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shiftgate/checkin-backend-go/internal/domain/checkin"
	"github.com/shiftgate/checkin-backend-go/internal/handler/http/response"
	"github.com/shiftgate/checkin-backend-go/internal/pkg/validator"
)

type CheckInHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type checkinHandlerImpl struct {
	ledger checkin.Ledger
}

func NewCheckInHandler(ledger checkin.Ledger) CheckInHandler {
	return &checkinHandlerImpl{
		ledger: ledger,
	}
}

// Record implements CheckInHandler.
func (h *checkinHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req checkin.RecordCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	summary, err := h.ledger.RecordCheckIn(r.Context(), req, time.Now().UTC())
	if err != nil {
		slog.Warn("Check-in rejected", "employee_id", req.EmployeeID, "shift_id", req.ShiftID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in recorded", summary)
}

// List implements CheckInHandler.
func (h *checkinHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summaries, err := h.ledger.ListCheckIns(r.Context(), filter)
	if err != nil {
		slog.Error("Failed to list check-ins", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summaries)
}

// parseListFilter reads from/to/employee_id query parameters. Bounds accept
// either a date ("2024-01-15", inclusive whole day) or an RFC3339 instant.
func parseListFilter(r *http.Request) (checkin.ListFilter, error) {
	var errs validator.ValidationErrors
	filter := checkin.ListFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
	}

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, ok := parseTimeBound(fromStr, false)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "from",
				Message: "must be YYYY-MM-DD or an ISO-8601 timestamp",
			})
		} else {
			filter.From = &from
		}
	}

	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, ok := parseTimeBound(toStr, true)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "must be YYYY-MM-DD or an ISO-8601 timestamp",
			})
		} else {
			filter.To = &to
		}
	}

	if len(errs) > 0 {
		return checkin.ListFilter{}, errs
	}

	return filter, nil
}

func parseTimeBound(s string, endOfDay bool) (time.Time, bool) {
	if t, ok := validator.IsValidDateTime(s); ok {
		return t, true
	}
	if date, ok := validator.IsValidDate(s); ok {
		if endOfDay {
			return date.AddDate(0, 0, 1).Add(-time.Second), true
		}
		return date, true
	}
	return time.Time{}, false
}
