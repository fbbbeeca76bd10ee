package http

import (
	"net/http"
	"time"

	"github.com/shiftgate/checkin-backend-go/internal/domain/shift"
	"github.com/shiftgate/checkin-backend-go/internal/handler/http/response"
)

type ShiftHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	catalog shift.Catalog
}

func NewShiftHandler(catalog shift.Catalog) ShiftHandler {
	return &shiftHandlerImpl{
		catalog: catalog,
	}
}

type shiftView struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	SupervisorOnly bool   `json:"supervisorOnly"`
	IsControlShift bool   `json:"isControlShift"`
}

type shiftListResponse struct {
	Shifts     []shiftView `json:"shifts"`
	ControlDay string      `json:"controlDay,omitempty"`
}

// List implements ShiftHandler. Scanners fetch this once per session to build
// the shift picker; the control day lets them highlight the merged-shift date.
func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	defs, err := h.catalog.ListShifts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := shiftListResponse{
		Shifts: make([]shiftView, 0, len(defs)),
	}
	for _, def := range defs {
		resp.Shifts = append(resp.Shifts, shiftView{
			ID:             def.ID,
			Label:          def.Label,
			StartTime:      def.StartTime,
			EndTime:        def.EndTime,
			SupervisorOnly: def.SupervisorOnly,
			IsControlShift: def.IsControlShift,
		})
	}

	if day, ok, err := h.catalog.ControlDay(r.Context(), time.Now().UTC()); err != nil {
		response.HandleError(w, err)
		return
	} else if ok {
		resp.ControlDay = day.Format("2006-01-02")
	}

	response.Success(w, resp)
}
