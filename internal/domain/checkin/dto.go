package checkin

import (
	"github.com/shiftgate/checkin-backend-go/internal/pkg/validator"
)

// RecordCheckInRequest is what a scanning client submits after authenticating
// the employee: the raw kiosk token plus the chosen shift.
type RecordCheckInRequest struct {
	EmployeeID string `json:"employee_id"`
	ShiftID    string `json:"shift_id"`
	Token      string `json:"token"`

	// Optional site metadata forwarded into the superset insert payload.
	SiteName  *string  `json:"site_name,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	PhotoURL  *string  `json:"photo_url,omitempty"`
}

func (r *RecordCheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}

	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token is required",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SummaryRecord is the derived read model: a stored row joined with the shift
// definition and the employee registry. Derived on every read, never stored.
type SummaryRecord struct {
	ID                  string `json:"id"`
	EmployeeID          string `json:"employeeId"`
	EmployeeName        string `json:"employeeName"`
	Department          string `json:"department"`
	Role                string `json:"role"`
	ShiftID             string `json:"shiftId"`
	ShiftLabel          string `json:"shiftLabel"`
	CheckInAt           string `json:"checkInAt"`
	EstimatedCheckOutAt string `json:"estimatedCheckOutAt"`
	LateMinutes         int    `json:"lateMinutes"`
	Status              string `json:"status"`
	KioskID             string `json:"kioskId"`
}
