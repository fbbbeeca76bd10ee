package checkin

import (
	"time"
)

type Status string

const (
	StatusOnTime Status = "OnTime"
	StatusLate   Status = "Late"
)

// Display returns the wire representation of the status.
func (s Status) Display() string {
	if s == StatusLate {
		return "Late"
	}
	return "On Time"
}

// EventCheckIn is the only event type this core records; the source system has
// no check-out flow.
const EventCheckIn = "check_in"

// Storage id prefixes distinguish which physical store produced a row. The
// same logical event may exist in both stores; reads dedupe on
// (employee, timestamp, shift, event type).
const (
	RemoteIDPrefix = "rm-"
	LocalIDPrefix  = "lq-"
)

// CheckIn is the persisted attendance row. Created exactly once per accepted
// check-in; never updated, never deleted by this core. The optional fields are
// a superset of what the remote schema may carry; the repository strips
// columns the backend does not know about.
type CheckIn struct {
	ID         string
	EmployeeID string
	Timestamp  time.Time
	ShiftID    string
	ShiftLabel string
	KioskID    string
	Status     Status
	EventType  string

	// Optional superset columns, tolerated to be absent server-side.
	SiteName  *string
	Latitude  *float64
	Longitude *float64
	PhotoURL  *string

	CreatedAt time.Time
}

// DedupeKey identifies the logical event regardless of which store holds it.
func (c CheckIn) DedupeKey() string {
	return c.EmployeeID + "|" + c.Timestamp.UTC().Format(time.RFC3339) + "|" + c.ShiftID + "|" + c.EventType
}
