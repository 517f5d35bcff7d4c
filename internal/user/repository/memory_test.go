package repository

import (
	"context"
	"testing"

	"github.com/mcguiretech/truapi/internal/user/domain"
)

func TestMemoryRepository_SaveAndGet(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	user := domain.New("alice", "alice@example.com", "Alice")
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := repo.Get(ctx, Filter{ID: user.ID})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected user, got nil")
	}
	if *got != user {
		t.Errorf("expected %+v, got %+v", user, *got)
	}
}

func TestMemoryRepository_GetAbsentReturnsNil(t *testing.T) {
	repo := NewMemoryRepository()

	got, err := repo.Get(context.Background(), Filter{Username: "nobody"})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestMemoryRepository_SaveUpserts(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	user := domain.New("bob", "bob@example.com", "Bob")
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	user.DisplayName = "Robert"
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	all, err := repo.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 user after upsert, got %d", len(all))
	}
	if all[0].DisplayName != "Robert" {
		t.Errorf("expected updated display name, got %q", all[0].DisplayName)
	}
}

func TestMemoryRepository_FilterMatchesAllSetFields(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	alice := domain.New("alice", "alice@example.com", "Alice")
	bob := domain.New("bob", "bob@example.com", "Bob")
	for _, u := range []domain.User{alice, bob} {
		if err := repo.Save(ctx, u); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	got, err := repo.Get(ctx, Filter{Username: "alice", Email: "bob@example.com"})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Errorf("mismatched filter fields should match nothing, got %+v", got)
	}

	got, err = repo.Get(ctx, Filter{Username: "bob", Email: "bob@example.com"})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil || got.ID != bob.ID {
		t.Errorf("expected bob, got %+v", got)
	}
}

func TestMemoryRepository_ListPaging(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.Save(ctx, domain.New("user", "user@example.com", "User")); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	firstPage, err := repo.List(ctx, Filter{Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	secondPage, err := repo.List(ctx, Filter{Skip: 2, Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	rest, err := repo.List(ctx, Filter{Skip: 4})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(firstPage) != 2 || len(secondPage) != 2 || len(rest) != 1 {
		t.Errorf("expected pages of 2/2/1, got %d/%d/%d", len(firstPage), len(secondPage), len(rest))
	}

	seen := map[string]bool{}
	for _, page := range [][]domain.User{firstPage, secondPage, rest} {
		for _, u := range page {
			if seen[string(u.ID)] {
				t.Errorf("user %s appeared on two pages", u.ID)
			}
			seen[string(u.ID)] = true
		}
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 distinct users across pages, got %d", len(seen))
	}
}

func TestMemoryRepository_SkipPastEnd(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, domain.New("solo", "solo@example.com", "Solo")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	users, err := repo.List(ctx, Filter{Skip: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("expected empty page, got %d users", len(users))
	}
}

func TestMemoryRepository_DeleteAbsentIsNoOp(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	user := domain.New("carol", "carol@example.com", "Carol")
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	other := domain.New("other", "other@example.com", "Other")
	if err := repo.Delete(ctx, other.ID); err != nil {
		t.Fatalf("delete of absent id should succeed: %v", err)
	}

	exists, err := repo.Exists(ctx, Filter{ID: user.ID})
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if !exists {
		t.Error("existing user should survive unrelated delete")
	}
}

func TestMemoryRepository_DeleteRemovesUser(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	user := domain.New("dave", "dave@example.com", "Dave")
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	exists, err := repo.Exists(ctx, Filter{ID: user.ID})
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Error("deleted user should not exist")
	}
}
