package repository

import (
	"context"
	"sync"

	"github.com/mcguiretech/truapi/internal/common/identifier"
	"github.com/mcguiretech/truapi/internal/settings/domain"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	store []domain.Setting
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Get(_ context.Context, filter Filter) (*domain.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.store {
		if filter.Matches(s) {
			found := s
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) List(_ context.Context, filter Filter) ([]domain.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.Setting, 0, len(r.store))
	for _, s := range r.store {
		if filter.Matches(s) {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (r *MemoryRepository) Save(_ context.Context, setting domain.Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store = append(r.store, setting)
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id identifier.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.store[:0]
	for _, s := range r.store {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	r.store = kept
	return nil
}

var _ Repository = (*MemoryRepository)(nil)
