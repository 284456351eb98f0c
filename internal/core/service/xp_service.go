package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/xplog/xp-tracker/internal/core/domain"
	"github.com/xplog/xp-tracker/internal/core/ports"
)

type XPService struct {
	repo    ports.Repository[domain.XP]
	querier ports.XPQuerier
	logger  zerolog.Logger
	now     func() time.Time
}

// NewXPService wires the service to repo. querier is optional; when set,
// filtered listings are delegated to it instead of being evaluated in memory.
func NewXPService(repo ports.Repository[domain.XP], querier ports.XPQuerier, logger zerolog.Logger) *XPService {
	return &XPService{repo: repo, querier: querier, logger: logger, now: time.Now}
}

// GetXPByOwnerIDWithFilters lists the owner's entries matching filter, most
// recent first. Storage failures are logged and yield an empty list.
func (s *XPService) GetXPByOwnerIDWithFilters(ctx context.Context, ownerID string, filter ports.XPFilter) []domain.XP {
	filter = NormalizeXPFilter(filter)

	var (
		items []domain.XP
		err   error
	)
	if s.querier != nil {
		items, err = s.querier.FindXPByQuery(ctx, ownerID, filter)
	} else {
		items, err = s.repo.FindBy(ctx, func(x domain.XP) bool { return x.OwnerID == ownerID })
		if err == nil {
			items = FilterXP(items, ownerID, filter)
		}
	}
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to list xp")
		return []domain.XP{}
	}
	if items == nil {
		items = []domain.XP{}
	}
	return items
}

// GetXPByID returns nil when the entry is absent or storage fails.
func (s *XPService) GetXPByID(ctx context.Context, id string) *domain.XP {
	x, ok, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("xp_id", id).Msg("failed to get xp")
		return nil
	}
	if !ok {
		return nil
	}
	return &x
}

// AddXP stores a new entry stamped with the current time.
func (s *XPService) AddXP(ctx context.Context, in ports.AddXPInput) (domain.XP, error) {
	if err := domain.ValidateDuration(in.Duration); err != nil {
		return domain.XP{}, err
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	created, err := s.repo.Create(ctx, domain.XP{
		Title:       in.Title,
		Description: in.Description,
		Tags:        tags,
		Duration:    in.Duration,
		CreatedAt:   domain.FormatTimestamp(s.now()),
		OwnerID:     in.OwnerID,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", in.OwnerID).Msg("failed to create xp")
		return domain.XP{}, fmt.Errorf("add xp: %w", err)
	}

	s.logger.Info().Str("xp_id", created.ID).Str("owner_id", created.OwnerID).Msg("xp created")
	return created, nil
}

// EditXP merges patch over the stored entry. ID and CreatedAt never change.
func (s *XPService) EditXP(ctx context.Context, id string, patch domain.XPPatch) (domain.XP, error) {
	if err := domain.ValidateDuration(patch.Duration); err != nil {
		return domain.XP{}, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("xp_id", id).Msg("failed to edit xp")
		return domain.XP{}, fmt.Errorf("edit xp: %w", err)
	}
	return updated, nil
}

func (s *XPService) RemoveXP(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("xp_id", id).Msg("failed to remove xp")
		return fmt.Errorf("remove xp: %w", err)
	}
	return nil
}
