package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/xplog/xp-tracker/internal/api/middleware"
	"github.com/xplog/xp-tracker/internal/core/domain"
	"github.com/xplog/xp-tracker/internal/core/ports"
)

type stubXPService struct {
	listFn   func(ctx context.Context, ownerID string, filter ports.XPFilter) []domain.XP
	getFn    func(ctx context.Context, id string) *domain.XP
	addFn    func(ctx context.Context, in ports.AddXPInput) (domain.XP, error)
	editFn   func(ctx context.Context, id string, patch domain.XPPatch) (domain.XP, error)
	removeFn func(ctx context.Context, id string) error
}

func (s *stubXPService) GetXPByOwnerIDWithFilters(ctx context.Context, ownerID string, filter ports.XPFilter) []domain.XP {
	return s.listFn(ctx, ownerID, filter)
}

func (s *stubXPService) GetXPByID(ctx context.Context, id string) *domain.XP {
	return s.getFn(ctx, id)
}

func (s *stubXPService) AddXP(ctx context.Context, in ports.AddXPInput) (domain.XP, error) {
	return s.addFn(ctx, in)
}

func (s *stubXPService) EditXP(ctx context.Context, id string, patch domain.XPPatch) (domain.XP, error) {
	return s.editFn(ctx, id, patch)
}

func (s *stubXPService) RemoveXP(ctx context.Context, id string) error {
	return s.removeFn(ctx, id)
}

type stubCategoryService struct {
	listFn   func(ctx context.Context, ownerID string) []domain.Category
	getFn    func(ctx context.Context, id string) *domain.Category
	addFn    func(ctx context.Context, c domain.Category) (domain.Category, error)
	editFn   func(ctx context.Context, id string, patch domain.CategoryPatch) (domain.Category, error)
	removeFn func(ctx context.Context, id string) error
}

func (s *stubCategoryService) GetCategoriesByOwnerID(ctx context.Context, ownerID string) []domain.Category {
	return s.listFn(ctx, ownerID)
}

func (s *stubCategoryService) GetCategoryByID(ctx context.Context, id string) *domain.Category {
	return s.getFn(ctx, id)
}

func (s *stubCategoryService) AddCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	return s.addFn(ctx, c)
}

func (s *stubCategoryService) EditCategory(ctx context.Context, id string, patch domain.CategoryPatch) (domain.Category, error) {
	return s.editFn(ctx, id, patch)
}

func (s *stubCategoryService) RemoveCategory(ctx context.Context, id string) error {
	return s.removeFn(ctx, id)
}

func (s *stubCategoryService) Seed(ctx context.Context) (int, error) {
	return 0, nil
}

type stubUserService struct {
	getFn    func(ctx context.Context, email string) *domain.User
	createFn func(ctx context.Context, email, name string) (domain.User, error)
	signInFn func(ctx context.Context, email, name string) (domain.User, error)
}

func (s *stubUserService) GetUserByEmail(ctx context.Context, email string) *domain.User {
	return s.getFn(ctx, email)
}

func (s *stubUserService) CreateUser(ctx context.Context, email, name string) (domain.User, error) {
	return s.createFn(ctx, email, name)
}

func (s *stubUserService) SignIn(ctx context.Context, email, name string) (domain.User, error) {
	return s.signInFn(ctx, email, name)
}

// newContext builds an echo context with the validator installed and, when
// owner is non-empty, the owner already resolved.
func newContext(method, target string, body io.Reader, owner string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if owner != "" {
		c.Set(middleware.OwnerKey, owner)
	}
	return c, rec
}

// expectHTTPError asserts err is an echo.HTTPError carrying code.
func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError %d, got %v", code, err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d (%v)", code, he.Code, he.Message)
	}
}

func ptr[T any](v T) *T { return &v }
