package shift

// ShiftDefinition is an admin-configured shift. StartTime/EndTime are "HH:MM"
// times of day; EndTime <= StartTime means the shift crosses midnight.
// Definitions are immutable per admin configuration and loaded fresh per
// operation, never mutated by this core.
type ShiftDefinition struct {
	ID             string
	Label          string
	StartTime      string
	EndTime        string
	SupervisorOnly bool
	IsControlShift bool
}

// ControlShiftPolicy decides whether a day should be treated as a
// shift-merging "control day". Overrides maps a month key ("YYYY-MM") to an
// explicit override date ("YYYY-MM-DD"); without an override the control day
// defaults to the day before that month's last day.
type ControlShiftPolicy struct {
	Enabled   bool
	Overrides map[string]string
}
