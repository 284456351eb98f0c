package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/xplog/xp-tracker/internal/core/domain"
)

func TestCategoryHandler_List(t *testing.T) {
	stub := &stubCategoryService{
		listFn: func(ctx context.Context, ownerID string) []domain.Category {
			if ownerID != "user-1" {
				t.Fatalf("unexpected owner %q", ownerID)
			}
			return []domain.Category{{ID: "1", Title: "react", Color: ptr("#61dafb"), OwnerID: ownerID}}
		},
	}
	c, rec := newContext(http.MethodGet, "/categories", nil, "user-1")

	if err := NewCategoryHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["ownerId"] != "user-1" || resp[0]["color"] != "#61dafb" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp[0]["description"]; ok {
		t.Fatalf("absent description must be omitted")
	}
}

func TestCategoryHandler_List_MissingOwner(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/categories", nil, "")
	expectHTTPError(t, NewCategoryHandler(&stubCategoryService{}).List(c), http.StatusUnauthorized)
}

func TestCategoryHandler_GetByID_Absent(t *testing.T) {
	stub := &stubCategoryService{
		getFn: func(ctx context.Context, id string) *domain.Category { return nil },
	}
	c, rec := newContext(http.MethodGet, "/categories?id=42", nil, "")

	if err := NewCategoryHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("expected null, got %s", rec.Body.String())
	}
}

func TestCategoryHandler_Create(t *testing.T) {
	stub := &stubCategoryService{
		addFn: func(ctx context.Context, c domain.Category) (domain.Category, error) {
			if c.OwnerID != "u1" || c.Title != "rust" || c.Description != nil {
				t.Fatalf("unexpected category: %+v", c)
			}
			c.ID = "generated"
			return c, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/categories", strings.NewReader(`{"title":"rust","color":"#dea584"}`), "u1")

	if err := NewCategoryHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestCategoryHandler_Create_Validation(t *testing.T) {
	stub := &stubCategoryService{
		addFn: func(ctx context.Context, c domain.Category) (domain.Category, error) {
			t.Fatalf("service must not be called")
			return c, nil
		},
	}
	for name, payload := range map[string]string{
		"missing title": `{"color":"#fff"}`,
		"bad color":     `{"title":"x","color":"blue-ish"}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/categories", strings.NewReader(payload), "u1")
			expectHTTPError(t, NewCategoryHandler(stub).Create(c), http.StatusBadRequest)
		})
	}
}

func TestCategoryHandler_Create_Unavailable(t *testing.T) {
	stub := &stubCategoryService{
		addFn: func(ctx context.Context, c domain.Category) (domain.Category, error) {
			return domain.Category{}, domain.ErrUnavailable
		},
	}
	c, _ := newContext(http.MethodPost, "/categories", strings.NewReader(`{"title":"x"}`), "u1")

	if err := NewCategoryHandler(stub).Create(c); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestCategoryHandler_Update(t *testing.T) {
	stub := &stubCategoryService{
		editFn: func(ctx context.Context, id string, patch domain.CategoryPatch) (domain.Category, error) {
			if patch.OwnerID != nil {
				t.Fatalf("owner must not be editable over HTTP")
			}
			return domain.Category{ID: id, Title: *patch.Title}, nil
		},
	}
	c, rec := newContext(http.MethodPut, "/categories?id=3", strings.NewReader(`{"title":"ts","ownerId":"someone-else"}`), "")

	if err := NewCategoryHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp categoryResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.ID != "3" || resp.Title != "ts" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCategoryHandler_Delete(t *testing.T) {
	stub := &stubCategoryService{
		removeFn: func(ctx context.Context, id string) error { return nil },
	}
	c, rec := newContext(http.MethodDelete, "/categories?id=3", nil, "")

	if err := NewCategoryHandler(stub).Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newContext(http.MethodDelete, "/categories", nil, "")
	expectHTTPError(t, NewCategoryHandler(stub).Delete(c), http.StatusBadRequest)
}
