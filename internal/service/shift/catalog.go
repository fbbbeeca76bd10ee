package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftgate/checkin-backend-go/internal/domain/shift"
)

type CatalogImpl struct {
	config shift.ConfigRepository
}

func NewCatalog(config shift.ConfigRepository) shift.Catalog {
	return &CatalogImpl{config: config}
}

// ListShifts implements shift.Catalog.
func (c *CatalogImpl) ListShifts(ctx context.Context) ([]shift.ShiftDefinition, error) {
	return c.config.ListShifts(ctx)
}

// ControlDay implements shift.Catalog.
func (c *CatalogImpl) ControlDay(ctx context.Context, now time.Time) (time.Time, bool, error) {
	policy, err := c.config.ControlPolicy(ctx)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to load control shift policy: %w", err)
	}

	day, ok := ControlDayForMonth(policy, now.UTC().Format("2006-01"))
	return day, ok, nil
}
