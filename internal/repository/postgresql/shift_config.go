package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftgate/checkin-backend-go/internal/domain/shift"
	"github.com/shiftgate/checkin-backend-go/internal/pkg/database"
)

type shiftConfigRepository struct {
	db *database.DB
}

func NewShiftConfigRepository(db *database.DB) shift.ConfigRepository {
	return &shiftConfigRepository{db: db}
}

// ListShifts implements shift.ConfigRepository.
func (s *shiftConfigRepository) ListShifts(ctx context.Context) ([]shift.ShiftDefinition, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, label, start_time, end_time, supervisor_only, is_control_shift
		FROM shifts
		ORDER BY start_time
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var defs []shift.ShiftDefinition
	for rows.Next() {
		var def shift.ShiftDefinition
		err := rows.Scan(&def.ID, &def.Label, &def.StartTime, &def.EndTime, &def.SupervisorOnly, &def.IsControlShift)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift row: %w", err)
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shift rows: %w", err)
	}

	return defs, nil
}

// GetByID implements shift.ConfigRepository.
func (s *shiftConfigRepository) GetByID(ctx context.Context, id string) (shift.ShiftDefinition, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, label, start_time, end_time, supervisor_only, is_control_shift
		FROM shifts
		WHERE id = $1
	`

	var def shift.ShiftDefinition
	err := q.QueryRow(ctx, query, id).Scan(
		&def.ID, &def.Label, &def.StartTime, &def.EndTime, &def.SupervisorOnly, &def.IsControlShift,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftDefinition{}, shift.ErrShiftNotFound
		}
		return shift.ShiftDefinition{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return def, nil
}

// ControlPolicy implements shift.ConfigRepository. The enabled flag lives in a
// single-row settings table; overrides are one row per month key. Both reads
// run in one transaction so the flag and its overrides are a consistent
// snapshot even while an admin is editing them.
func (s *shiftConfigRepository) ControlPolicy(ctx context.Context) (shift.ControlShiftPolicy, error) {
	policy := shift.ControlShiftPolicy{
		Overrides: make(map[string]string),
	}

	err := WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `SELECT enabled FROM control_shift_policy LIMIT 1`).Scan(&policy.Enabled)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("failed to get control shift policy: %w", err)
		}

		rows, err := tx.Query(ctx, `SELECT month_key, control_date FROM control_day_overrides`)
		if err != nil {
			return fmt.Errorf("failed to list control day overrides: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var monthKey, controlDate string
			if err := rows.Scan(&monthKey, &controlDate); err != nil {
				return fmt.Errorf("failed to scan control day override: %w", err)
			}
			policy.Overrides[monthKey] = controlDate
		}
		return rows.Err()
	})
	if err != nil {
		return shift.ControlShiftPolicy{}, err
	}

	return policy, nil
}
