package postgresql

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftgate/checkin-backend-go/internal/domain/checkin"
	"github.com/stretchr/testify/assert"
)

func TestBuildInsert(t *testing.T) {
	cols := []insertColumn{
		{"id", "rm-1"},
		{"employee_id", "emp-1"},
		{"shift_id", "morning"},
	}

	query, args := buildInsert("check_ins", cols)

	assert.Equal(t, "INSERT INTO check_ins (id, employee_id, shift_id) VALUES ($1, $2, $3) RETURNING created_at", query)
	assert.Equal(t, []interface{}{"rm-1", "emp-1", "morning"}, args)
}

func TestStripColumn(t *testing.T) {
	cols := []insertColumn{
		{"id", "rm-1"},
		{"latitude", 1.5},
		{"longitude", 2.5},
	}

	stripped := stripColumn(cols, "latitude")
	assert.Len(t, stripped, 2)
	for _, col := range stripped {
		assert.NotEqual(t, "latitude", col.name)
	}

	// Unknown name leaves the set intact; the caller treats that as a
	// permanent schema mismatch.
	assert.Len(t, stripColumn(cols, "device_id"), 3)
}

func TestUndefinedColumnName(t *testing.T) {
	tests := []struct {
		name  string
		pgErr *pgconn.PgError
		want  string
	}{
		{
			name:  "from message text",
			pgErr: &pgconn.PgError{Code: "42703", Message: `column "photo_url" of relation "check_ins" does not exist`},
			want:  "photo_url",
		},
		{
			name:  "from column field when populated",
			pgErr: &pgconn.PgError{Code: "42703", ColumnName: "latitude", Message: "irrelevant"},
			want:  "latitude",
		},
		{
			name:  "message without column reference",
			pgErr: &pgconn.PgError{Code: "42703", Message: "syntax error"},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, undefinedColumnName(tt.pgErr))
		})
	}
}

func TestClassifyQueryError(t *testing.T) {
	transport := errors.New("dial tcp: connection refused")
	assert.ErrorIs(t, classifyQueryError(transport, "failed to list check-ins"), checkin.ErrBackendUnavailable)

	server := &pgconn.PgError{Code: "42601", Message: "syntax error"}
	err := classifyQueryError(server, "failed to list check-ins")
	assert.NotErrorIs(t, err, checkin.ErrBackendUnavailable)

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
}
