package repository

import (
	"context"
	"testing"

	"github.com/mcguiretech/truapi/internal/settings/domain"
)

func TestMemoryRepository_SaveAndGet(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	setting := domain.App("theme", "dark")
	if err := repo.Save(ctx, setting); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := repo.Get(ctx, Filter{Scope: domain.ScopeApp, Key: "theme"})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected setting, got nil")
	}
	if got.Value != "dark" {
		t.Errorf("expected dark, got %q", got.Value)
	}
}

func TestMemoryRepository_GetAbsentReturnsNil(t *testing.T) {
	repo := NewMemoryRepository()

	got, err := repo.Get(context.Background(), Filter{Key: "missing"})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestMemoryRepository_SaveKeepsDuplicates(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, domain.App("theme", "dark")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := repo.Save(ctx, domain.App("theme", "light")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	all, err := repo.List(ctx, Filter{Key: "theme"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected both settings kept, got %d", len(all))
	}
}

func TestMemoryRepository_UserScopeIsolation(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first := domain.User("019b2b9c-7058-7c43-a567-0e02b2c3d479", "theme", "light")
	second := domain.User("019b2b9c-7058-7c43-a567-0e02b2c3d480", "theme", "dark")
	for _, s := range []domain.Setting{first, second} {
		if err := repo.Save(ctx, s); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	got, err := repo.Get(ctx, Filter{Scope: domain.ScopeUser, Key: "theme", UserID: second.UserID})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil || got.Value != "dark" {
		t.Errorf("expected second user's setting, got %+v", got)
	}
}

func TestMemoryRepository_Delete(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	setting := domain.App("feature_flag", "on")
	if err := repo.Save(ctx, setting); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := repo.Delete(ctx, setting.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	got, err := repo.Get(ctx, Filter{Key: "feature_flag"})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got %+v", got)
	}
}
