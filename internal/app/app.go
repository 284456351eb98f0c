package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/xplog/xp-tracker/internal/api/metrics"
	"github.com/xplog/xp-tracker/internal/core/ports"
	"github.com/xplog/xp-tracker/internal/core/service"
)

// Services groups the use-case services built over one Storage.
type Services struct {
	XP         *service.XPService
	Categories *service.CategoryService
	Users      *service.UserService
}

// NewServices wires the services to st. Categories are seeded for seedOwnerID.
func NewServices(st *Storage, seedOwnerID string, log zerolog.Logger) Services {
	return Services{
		XP:         service.NewXPService(st.XPs, st.XPQuerier, log.With().Str("component", "xp_service").Logger()),
		Categories: service.NewCategoryService(st.Categories, seedOwnerID, log.With().Str("component", "category_service").Logger()),
		Users:      service.NewUserService(st.Users, log.With().Str("component", "user_service").Logger()),
	}
}

// Seed writes the default categories and records how many were inserted.
func Seed(ctx context.Context, categories ports.CategoryService) (int, error) {
	n, err := categories.Seed(ctx)
	metrics.CategoriesSeededTotal.Add(float64(n))
	return n, err
}
