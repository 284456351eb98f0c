package ports

import (
	"context"

	"github.com/xplog/xp-tracker/internal/core/domain"
)

// AddXPInput carries the caller-supplied fields of a new entry.
type AddXPInput struct {
	Title       string
	Description *string
	Tags        []string
	Duration    *int
	OwnerID     string
}

// XPService is the use-case surface for XP entries. Reads degrade to empty
// results on storage failure; mutations return the error.
type XPService interface {
	GetXPByOwnerIDWithFilters(ctx context.Context, ownerID string, filter XPFilter) []domain.XP
	GetXPByID(ctx context.Context, id string) *domain.XP
	AddXP(ctx context.Context, in AddXPInput) (domain.XP, error)
	EditXP(ctx context.Context, id string, patch domain.XPPatch) (domain.XP, error)
	RemoveXP(ctx context.Context, id string) error
}
