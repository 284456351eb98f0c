package ports

import (
	"context"
	"time"

	"github.com/xplog/xp-tracker/internal/core/domain"
)

// XPFilter narrows an owner's entries. The date range only applies when both
// bounds are set; both bounds are inclusive.
type XPFilter struct {
	StartDate      *time.Time
	EndDate        *time.Time
	CategoryTitles []string
}

// HasDateRange reports whether both bounds are present.
func (f XPFilter) HasDateRange() bool {
	return f.StartDate != nil && f.EndDate != nil
}

// XPQuerier is implemented by backends that can evaluate an XPFilter natively.
// Results must match the in-memory evaluation exactly, ordered by createdAt
// descending and id ascending.
type XPQuerier interface {
	FindXPByQuery(ctx context.Context, ownerID string, filter XPFilter) ([]domain.XP, error)
}
