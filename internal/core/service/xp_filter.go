package service

import (
	"cmp"
	"slices"

	"github.com/xplog/xp-tracker/internal/core/domain"
	"github.com/xplog/xp-tracker/internal/core/ports"
)

// NormalizeXPFilter truncates the date bounds to the stored timestamp
// precision, so that string comparison in a document store and time comparison
// in memory agree on every boundary.
func NormalizeXPFilter(f ports.XPFilter) ports.XPFilter {
	if f.StartDate != nil {
		t := domain.TruncateTimestamp(*f.StartDate)
		f.StartDate = &t
	}
	if f.EndDate != nil {
		t := domain.TruncateTimestamp(*f.EndDate)
		f.EndDate = &t
	}
	return f
}

// FilterXP evaluates owner, date range and tag membership in memory and
// returns the survivors ordered by recency. The input slice is not modified.
func FilterXP(items []domain.XP, ownerID string, f ports.XPFilter) []domain.XP {
	out := make([]domain.XP, 0, len(items))
	for _, x := range items {
		if x.OwnerID != ownerID {
			continue
		}
		if f.HasDateRange() {
			created, err := domain.ParseTimestamp(x.CreatedAt)
			if err != nil || created.Before(*f.StartDate) || created.After(*f.EndDate) {
				continue
			}
		}
		if len(f.CategoryTitles) > 0 && !x.HasAnyTag(f.CategoryTitles) {
			continue
		}
		out = append(out, x)
	}
	SortXPByRecency(out)
	return out
}

// SortXPByRecency orders by createdAt descending, then id ascending.
// Unparseable timestamps sort last.
func SortXPByRecency(items []domain.XP) {
	slices.SortStableFunc(items, func(a, b domain.XP) int {
		ta, _ := domain.ParseTimestamp(a.CreatedAt)
		tb, _ := domain.ParseTimestamp(b.CreatedAt)
		if c := tb.Compare(ta); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
