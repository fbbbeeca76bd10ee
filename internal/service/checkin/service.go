package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shiftgate/checkin-backend-go/internal/domain/checkin"
	"github.com/shiftgate/checkin-backend-go/internal/domain/employee"
	"github.com/shiftgate/checkin-backend-go/internal/domain/shift"
	"github.com/shiftgate/checkin-backend-go/internal/domain/token"
	shiftResolver "github.com/shiftgate/checkin-backend-go/internal/service/shift"
)

type LedgerImpl struct {
	remote       checkin.RemoteStore
	local        checkin.FallbackQueue
	tokens       token.Service
	employees    employee.Registry
	shifts       shift.ConfigRepository
	graceMinutes int
}

func NewLedger(
	remote checkin.RemoteStore,
	local checkin.FallbackQueue,
	tokens token.Service,
	employees employee.Registry,
	shifts shift.ConfigRepository,
	graceMinutes int,
) checkin.Ledger {
	return &LedgerImpl{
		remote:       remote,
		local:        local,
		tokens:       tokens,
		employees:    employees,
		shifts:       shifts,
		graceMinutes: graceMinutes,
	}
}

// RecordCheckIn implements checkin.Ledger.
func (l *LedgerImpl) RecordCheckIn(ctx context.Context, req checkin.RecordCheckInRequest, now time.Time) (checkin.SummaryRecord, error) {
	if err := req.Validate(); err != nil {
		return checkin.SummaryRecord{}, err
	}

	payload, err := l.tokens.VerifyAndConsume(ctx, req.Token, now)
	if err != nil {
		return checkin.SummaryRecord{}, err
	}

	emp, err := l.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return checkin.SummaryRecord{}, err
	}

	def, err := l.shifts.GetByID(ctx, req.ShiftID)
	if err != nil {
		return checkin.SummaryRecord{}, err
	}

	if def.SupervisorOnly && emp.Role != employee.RoleSupervisor {
		return checkin.SummaryRecord{}, shift.ErrSupervisorOnly
	}

	windowStart, windowEnd, err := shiftResolver.ResolveWindow(now, def)
	if err != nil {
		return checkin.SummaryRecord{}, err
	}

	// Fast-path duplicate check across both stores. The remote unique
	// constraint remains the authoritative guard under concurrent writers.
	known, err := l.loadKnownForEmployee(ctx, emp.ID)
	if err != nil {
		return checkin.SummaryRecord{}, err
	}
	if hasCheckInInWindow(known, def, windowStart, windowEnd) {
		return checkin.SummaryRecord{}, checkin.ErrDuplicateCheckIn
	}

	lateMinutes, err := shiftResolver.LateMinutes(now, def, l.graceMinutes)
	if err != nil {
		return checkin.SummaryRecord{}, err
	}

	status := checkin.StatusOnTime
	if lateMinutes > 0 {
		status = checkin.StatusLate
	}

	record := checkin.CheckIn{
		EmployeeID: emp.ID,
		Timestamp:  now,
		ShiftID:    def.ID,
		ShiftLabel: def.Label,
		KioskID:    payload.KioskID,
		Status:     status,
		EventType:  checkin.EventCheckIn,
		SiteName:   req.SiteName,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		PhotoURL:   req.PhotoURL,
	}

	stored, err := l.remote.Insert(ctx, record)
	switch {
	case err == nil:
		// Durable in the remote store.
	case errors.Is(err, checkin.ErrDuplicateCheckIn):
		return checkin.SummaryRecord{}, checkin.ErrDuplicateCheckIn
	case errors.Is(err, checkin.ErrBackendUnavailable):
		stored, err = l.appendToFallback(ctx, record, def, windowStart, windowEnd)
		if err != nil {
			return checkin.SummaryRecord{}, err
		}
	default:
		return checkin.SummaryRecord{}, err
	}

	// The nonce is burned only after the event is durable, so a storage
	// failure leaves the token reusable for a retry.
	if err := l.tokens.MarkUsed(ctx, payload); err != nil {
		slog.Warn("Failed to mark kiosk token nonce as used", "nonce", payload.Nonce, "error", err)
	}

	return l.summarize(stored, emp, def), nil
}

// appendToFallback re-checks duplicates against the freshest local state
// before appending, closing the race against a concurrent local write.
func (l *LedgerImpl) appendToFallback(ctx context.Context, record checkin.CheckIn, def shift.ShiftDefinition, windowStart, windowEnd time.Time) (checkin.CheckIn, error) {
	slog.Warn("Remote attendance store unavailable, writing to local fallback queue",
		"employee_id", record.EmployeeID, "shift_id", record.ShiftID)

	localRecords, err := l.local.ListByEmployee(ctx, record.EmployeeID)
	if err != nil {
		return checkin.CheckIn{}, fmt.Errorf("%w: fallback queue read failed: %v", checkin.ErrStorageFailed, err)
	}
	if hasCheckInInWindow(localRecords, def, windowStart, windowEnd) {
		return checkin.CheckIn{}, checkin.ErrDuplicateCheckIn
	}

	stored, err := l.local.Append(ctx, record)
	if err != nil {
		return checkin.CheckIn{}, fmt.Errorf("%w: fallback queue write failed: %v", checkin.ErrStorageFailed, err)
	}
	return stored, nil
}

// loadKnownForEmployee unions remote rows (best effort) with the local queue.
// A transiently unreachable remote store degrades the pre-check to local-only
// rather than failing the request; the server-side unique constraint still
// guards the write.
func (l *LedgerImpl) loadKnownForEmployee(ctx context.Context, employeeID string) ([]checkin.CheckIn, error) {
	var known []checkin.CheckIn

	remoteRecords, err := l.remote.ListByEmployee(ctx, employeeID)
	if err != nil {
		if !errors.Is(err, checkin.ErrBackendUnavailable) {
			return nil, err
		}
		slog.Warn("Remote attendance store unreachable during duplicate check", "employee_id", employeeID, "error", err)
	} else {
		known = append(known, remoteRecords...)
	}

	localRecords, err := l.local.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to read fallback queue: %w", err)
	}
	known = append(known, localRecords...)

	return known, nil
}

// hasCheckInInWindow reports whether any known row for a matching shift falls
// inside [start, end). Shift identity is id-or-label, mirroring how the
// configuration screens reference shifts.
func hasCheckInInWindow(records []checkin.CheckIn, def shift.ShiftDefinition, start, end time.Time) bool {
	for _, rec := range records {
		if rec.EventType != checkin.EventCheckIn {
			continue
		}
		if rec.ShiftID != def.ID && rec.ShiftLabel != def.Label {
			continue
		}
		if !rec.Timestamp.Before(start) && rec.Timestamp.Before(end) {
			return true
		}
	}
	return false
}

// ListCheckIns implements checkin.Ledger.
func (l *LedgerImpl) ListCheckIns(ctx context.Context, filter checkin.ListFilter) ([]checkin.SummaryRecord, error) {
	var merged []checkin.CheckIn

	remoteRecords, err := l.remote.List(ctx, filter)
	if err != nil {
		if !errors.Is(err, checkin.ErrBackendUnavailable) {
			return nil, err
		}
		slog.Warn("Remote attendance store unreachable, listing from local queue only", "error", err)
	} else {
		merged = append(merged, remoteRecords...)
	}

	localRecords, err := l.local.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read fallback queue: %w", err)
	}
	merged = append(merged, localRecords...)

	// Union and dedupe: the same logical event may live in both stores.
	// Remote rows come first in merged, so they win over their local twin.
	seen := make(map[string]bool, len(merged))
	deduped := merged[:0]
	for _, rec := range merged {
		key := rec.DedupeKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		if matchesFilter(rec, filter) {
			deduped = append(deduped, rec)
		}
	}

	sort.Slice(deduped, func(i, j int) bool {
		return deduped[i].Timestamp.After(deduped[j].Timestamp)
	})

	shifts, err := l.shifts.ListShifts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shift configuration: %w", err)
	}

	employees := make(map[string]employee.Employee)
	summaries := make([]checkin.SummaryRecord, 0, len(deduped))
	for _, rec := range deduped {
		emp, ok := employees[rec.EmployeeID]
		if !ok {
			emp, err = l.employees.GetByID(ctx, rec.EmployeeID)
			if err != nil {
				if errors.Is(err, employee.ErrEmployeeNotFound) {
					// Row for an employee removed from the registry; show the raw id.
					emp = employee.Employee{ID: rec.EmployeeID, FullName: rec.EmployeeID}
				} else {
					return nil, err
				}
			}
			employees[rec.EmployeeID] = emp
		}

		def := findShift(shifts, rec.ShiftID, rec.ShiftLabel)
		summaries = append(summaries, l.summarize(rec, emp, def))
	}

	return summaries, nil
}

func matchesFilter(rec checkin.CheckIn, filter checkin.ListFilter) bool {
	if filter.EmployeeID != "" && rec.EmployeeID != filter.EmployeeID {
		return false
	}
	if filter.From != nil && rec.Timestamp.Before(*filter.From) {
		return false
	}
	if filter.To != nil && rec.Timestamp.After(*filter.To) {
		return false
	}
	return true
}

func findShift(shifts []shift.ShiftDefinition, id, label string) shift.ShiftDefinition {
	for _, def := range shifts {
		if def.ID == id || def.Label == label {
			return def
		}
	}
	// Definition removed from configuration; keep the stored identity.
	return shift.ShiftDefinition{ID: id, Label: label}
}

// summarize joins a stored row with shift and employee data into the read
// model, recomputing lateness and the estimated checkout.
func (l *LedgerImpl) summarize(rec checkin.CheckIn, emp employee.Employee, def shift.ShiftDefinition) checkin.SummaryRecord {
	summary := checkin.SummaryRecord{
		ID:           rec.ID,
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		Department:   emp.Department,
		Role:         string(emp.Role),
		ShiftID:      rec.ShiftID,
		ShiftLabel:   rec.ShiftLabel,
		CheckInAt:    rec.Timestamp.UTC().Format(time.RFC3339),
		Status:       rec.Status.Display(),
		KioskID:      rec.KioskID,
	}

	if def.StartTime != "" {
		if lateMinutes, err := shiftResolver.LateMinutes(rec.Timestamp, def, l.graceMinutes); err == nil {
			summary.LateMinutes = lateMinutes
		}
		if checkoutAt, err := shiftResolver.EstimatedCheckoutAt(rec.Timestamp, def); err == nil {
			summary.EstimatedCheckOutAt = checkoutAt.UTC().Format(time.RFC3339)
		}
	}

	return summary
}
