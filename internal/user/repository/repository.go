package repository

import (
	"context"

	"github.com/mcguiretech/truapi/internal/common/identifier"
	"github.com/mcguiretech/truapi/internal/user/domain"
)

// Filter narrows Get/List/Exists to users matching every set field.
// Zero-value fields are ignored. Skip and Limit page List results;
// Limit == 0 means no limit. Get and Exists ignore paging.
type Filter struct {
	ID       identifier.ID
	Username string
	Email    string
	Skip     int
	Limit    int
}

func (f Filter) Matches(u domain.User) bool {
	if f.ID != "" && u.ID != f.ID {
		return false
	}
	if f.Username != "" && u.Username != f.Username {
		return false
	}
	if f.Email != "" && u.Email != f.Email {
		return false
	}
	return true
}

// Repository is the persistence port for users. Save has upsert semantics
// keyed by id. Delete of an absent id is a no-op. Get returns nil when no
// user matches; no ordering is guaranteed when several do.
type Repository interface {
	Get(ctx context.Context, filter Filter) (*domain.User, error)
	List(ctx context.Context, filter Filter) ([]domain.User, error)
	Save(ctx context.Context, user domain.User) error
	Exists(ctx context.Context, filter Filter) (bool, error)
	Delete(ctx context.Context, id identifier.ID) error
}
