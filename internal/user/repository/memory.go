package repository

import (
	"context"
	"sync"

	"github.com/mcguiretech/truapi/internal/common/identifier"
	"github.com/mcguiretech/truapi/internal/user/domain"
)

// MemoryRepository keeps users in a per-instance slice guarded by a RWMutex.
// Sharing across callers happens by handing out the same instance, not
// through hidden package state.
type MemoryRepository struct {
	mu    sync.RWMutex
	store []domain.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Get(_ context.Context, filter Filter) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if filter.Matches(u) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) List(_ context.Context, filter Filter) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.User, 0, len(r.store))
	for _, u := range r.store {
		if filter.Matches(u) {
			matched = append(matched, u)
		}
	}

	return page(matched, filter.Skip, filter.Limit), nil
}

func (r *MemoryRepository) Save(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.store {
		if u.ID == user.ID {
			r.store[i] = user
			return nil
		}
	}
	r.store = append(r.store, user)
	return nil
}

func (r *MemoryRepository) Exists(ctx context.Context, filter Filter) (bool, error) {
	u, err := r.Get(ctx, filter)
	if err != nil {
		return false, err
	}
	return u != nil, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id identifier.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.store[:0]
	for _, u := range r.store {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	r.store = kept
	return nil
}

func page(users []domain.User, skip, limit int) []domain.User {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(users) {
		return []domain.User{}
	}
	users = users[skip:]
	if limit > 0 && limit < len(users) {
		users = users[:limit]
	}
	return users
}
