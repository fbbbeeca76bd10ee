package postgresql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftgate/checkin-backend-go/internal/domain/checkin"
	"github.com/shiftgate/checkin-backend-go/internal/pkg/database"
)

// maxInsertAttempts caps the column-stripping retry loop. Each retry removes
// at least one column, so the cap also bounds how much of the superset
// payload can be shed before giving up.
const maxInsertAttempts = 4

const (
	pgUndefinedColumn = "42703"
	pgUniqueViolation = "23505"
)

type checkinRepository struct {
	db *database.DB
}

func NewCheckInRepository(db *database.DB) checkin.RemoteStore {
	return &checkinRepository{db: db}
}

// insertColumn pairs a column name with its bound value so optional columns
// can be stripped when the backend does not know them.
type insertColumn struct {
	name  string
	value interface{}
}

// Insert implements checkin.RemoteStore. The payload is a superset of what
// the backend may have columns for; on an undefined-column error the
// offending column is stripped and the insert retried, which tolerates schema
// drift between this code and the backend without a coordinated migration.
func (r *checkinRepository) Insert(ctx context.Context, record checkin.CheckIn) (checkin.CheckIn, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		record.ID = checkin.RemoteIDPrefix + uuid.NewString()
	}

	cols := []insertColumn{
		{"id", record.ID},
		{"employee_id", record.EmployeeID},
		{"ts", record.Timestamp},
		{"shift_id", record.ShiftID},
		{"shift_label", record.ShiftLabel},
		{"kiosk_id", record.KioskID},
		{"status", string(record.Status)},
		{"event_type", record.EventType},
		{"site_name", record.SiteName},
		{"latitude", record.Latitude},
		{"longitude", record.Longitude},
		{"photo_url", record.PhotoURL},
		// Legacy aliases still present on older backend deployments.
		{"site", record.SiteName},
		{"device_id", record.KioskID},
	}

	for attempt := 1; attempt <= maxInsertAttempts; attempt++ {
		query, args := buildInsert("check_ins", cols)

		err := q.QueryRow(ctx, query, args...).Scan(&record.CreatedAt)
		if err == nil {
			return record, nil
		}

		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) {
			// Not a server rejection: unreachable, timed out, reset. The
			// caller falls through to the local queue.
			return checkin.CheckIn{}, fmt.Errorf("%w: %v", checkin.ErrBackendUnavailable, err)
		}

		switch pgErr.Code {
		case pgUniqueViolation:
			// A concurrent writer won the race; same outcome as the pre-check.
			return checkin.CheckIn{}, checkin.ErrDuplicateCheckIn
		case pgUndefinedColumn:
			name := undefinedColumnName(pgErr)
			if name == "" {
				return checkin.CheckIn{}, fmt.Errorf("%w: %s", checkin.ErrSchemaMismatch, pgErr.Message)
			}
			stripped := stripColumn(cols, name)
			if len(stripped) == len(cols) {
				// The backend rejected a column we are not even sending.
				return checkin.CheckIn{}, fmt.Errorf("%w: %s", checkin.ErrSchemaMismatch, pgErr.Message)
			}
			slog.Warn("Remote schema does not know insert column, stripping and retrying",
				"column", name, "attempt", attempt)
			cols = stripped
		default:
			return checkin.CheckIn{}, fmt.Errorf("failed to insert check-in: %w", err)
		}
	}

	return checkin.CheckIn{}, fmt.Errorf("%w: column stripping exhausted after %d attempts", checkin.ErrSchemaMismatch, maxInsertAttempts)
}

func buildInsert(table string, cols []insertColumn) (string, []interface{}) {
	names := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	args := make([]interface{}, len(cols))
	for i, col := range cols {
		names[i] = col.name
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = col.value
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING created_at",
		table, strings.Join(names, ", "), strings.Join(placeholders, ", "),
	)
	return query, args
}

func stripColumn(cols []insertColumn, name string) []insertColumn {
	kept := make([]insertColumn, 0, len(cols))
	for _, col := range cols {
		if col.name != name {
			kept = append(kept, col)
		}
	}
	return kept
}

var undefinedColumnRegex = regexp.MustCompile(`column "([^"]+)"`)

// undefinedColumnName extracts the offending column from a 42703 error.
// PgError.ColumnName is usually empty for undefined-column errors, so the
// message text is the reliable source.
func undefinedColumnName(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if m := undefinedColumnRegex.FindStringSubmatch(pgErr.Message); m != nil {
		return m[1]
	}
	return ""
}

const checkinSelectColumns = `id, employee_id, ts, shift_id, shift_label, kiosk_id, status, event_type, created_at`

// ListByEmployee implements checkin.RemoteStore.
func (r *checkinRepository) ListByEmployee(ctx context.Context, employeeID string) ([]checkin.CheckIn, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM check_ins
		WHERE employee_id = $1
		ORDER BY ts DESC
	`, checkinSelectColumns)

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, classifyQueryError(err, "failed to list check-ins by employee")
	}
	defer rows.Close()

	return scanCheckIns(rows)
}

// List implements checkin.RemoteStore. A missing or renamed timestamp column
// on the backend makes the time-bounded query fail with 42703; the query is
// retried without the server-side time predicate and the caller filters
// client-side.
func (r *checkinRepository) List(ctx context.Context, filter checkin.ListFilter) ([]checkin.CheckIn, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{}
	args := []interface{}{}

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)))
	}

	timeConditions := conditions
	if filter.From != nil {
		args = append(args, *filter.From)
		timeConditions = append(timeConditions, fmt.Sprintf("ts >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		timeConditions = append(timeConditions, fmt.Sprintf("ts <= $%d", len(args)))
	}

	records, err := r.listWhere(ctx, q, timeConditions, args)
	if err == nil {
		return records, nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUndefinedColumn {
		return nil, classifyQueryError(err, "failed to list check-ins")
	}

	slog.Warn("Remote schema rejected time-bounded query, retrying without server-side time filter",
		"error", pgErr.Message)

	args = args[:len(conditions)]
	records, err = r.listWhere(ctx, q, conditions, args)
	if err != nil {
		return nil, classifyQueryError(err, "failed to list check-ins")
	}
	return records, nil
}

func (r *checkinRepository) listWhere(ctx context.Context, q database.Querier, conditions []string, args []interface{}) ([]checkin.CheckIn, error) {
	query := fmt.Sprintf("SELECT %s FROM check_ins", checkinSelectColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY ts DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCheckIns(rows)
}

func scanCheckIns(rows pgx.Rows) ([]checkin.CheckIn, error) {
	var records []checkin.CheckIn
	for rows.Next() {
		var rec checkin.CheckIn
		var status string
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Timestamp, &rec.ShiftID, &rec.ShiftLabel,
			&rec.KioskID, &status, &rec.EventType, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check-in row: %w", err)
		}
		rec.Status = checkin.Status(status)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyQueryError(err, "failed to read check-in rows")
	}
	return records, nil
}

// classifyQueryError wraps transport-level failures in ErrBackendUnavailable
// so the ledger can fall back to the local queue; server rejections stay
// permanent.
func classifyQueryError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return fmt.Errorf("%w: %v", checkin.ErrBackendUnavailable, err)
}
