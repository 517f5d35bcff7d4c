package repository

import (
	"context"

	"github.com/mcguiretech/truapi/internal/common/identifier"
	"github.com/mcguiretech/truapi/internal/settings/domain"
)

// Filter narrows Get and List. Scope and Key match exactly when set; UserID
// restricts to settings owned by that user. A zero Filter matches everything.
type Filter struct {
	Scope  domain.Scope
	Key    string
	UserID identifier.ID
}

func (f Filter) Matches(s domain.Setting) bool {
	if f.Scope != "" && s.Scope != f.Scope {
		return false
	}
	if f.Key != "" && s.Key != f.Key {
		return false
	}
	if f.UserID != "" && s.UserID != f.UserID {
		return false
	}
	return true
}

// Repository is the persistence port for settings. Save always inserts; two
// settings with the same scope and key coexist. Get returns nil when nothing
// matches.
type Repository interface {
	Get(ctx context.Context, filter Filter) (*domain.Setting, error)
	List(ctx context.Context, filter Filter) ([]domain.Setting, error)
	Save(ctx context.Context, setting domain.Setting) error
	Delete(ctx context.Context, id identifier.ID) error
}
