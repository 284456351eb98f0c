package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/xplog/xp-tracker/internal/core/domain"
	"github.com/xplog/xp-tracker/internal/core/ports"
)

// UserService implements lookup and creation of users by email.
type UserService struct {
	repo   ports.Repository[domain.User]
	logger zerolog.Logger
	now    func() time.Time

	// createMu makes check-then-create atomic within this process. Other
	// processes sharing the store rely on the backend: the document store has a
	// unique email index, the local store has nothing.
	createMu sync.Mutex
}

func NewUserService(repo ports.Repository[domain.User], logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger, now: time.Now}
}

// GetUserByEmail returns the first user with email, or nil if there is none or
// the lookup fails.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) *domain.User {
	u, err := s.findByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to look up user")
		return nil
	}
	return u
}

// CreateUser fails with domain.ErrUserExists when email is already taken.
func (s *UserService) CreateUser(ctx context.Context, email, name string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.User{}, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	existing, err := s.findByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	if existing != nil {
		return domain.User{}, domain.ErrUserExists
	}

	created, err := s.repo.Create(ctx, domain.User{
		Email:     email,
		Name:      name,
		CreatedAt: domain.FormatTimestamp(s.now()),
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.User{}, domain.ErrUserExists
		}
		s.logger.Error().Err(err).Str("email", email).Msg("failed to create user")
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", email).Msg("user created")
	return created, nil
}

// SignIn looks the user up by email and creates it when missing. A concurrent
// creation by another process is resolved by reading the winner back.
func (s *UserService) SignIn(ctx context.Context, email, name string) (domain.User, error) {
	email = strings.TrimSpace(email)
	existing, err := s.findByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("sign in: %w", err)
	}
	if existing != nil {
		return *existing, nil
	}

	created, err := s.CreateUser(ctx, email, name)
	if errors.Is(err, domain.ErrUserExists) {
		if u, lookupErr := s.findByEmail(ctx, email); lookupErr == nil && u != nil {
			return *u, nil
		}
	}
	return created, err
}

func (s *UserService) findByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := s.repo.FindBy(ctx, func(u domain.User) bool { return u.Email == email })
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}
