package domain

import (
	commonerrors "github.com/mcguiretech/truapi/internal/common/errors"
	"github.com/mcguiretech/truapi/internal/common/identifier"
)

type Scope string

const (
	ScopeApp  Scope = "app"
	ScopeUser Scope = "user"
)

func ParseScope(value string) (Scope, error) {
	switch Scope(value) {
	case ScopeApp:
		return ScopeApp, nil
	case ScopeUser:
		return ScopeUser, nil
	default:
		return "", commonerrors.ErrInvalidSettingScope
	}
}

// Setting is one stored key/value pair. App-scoped settings carry no owner;
// user-scoped settings always do. Use the constructors to keep that pairing.
type Setting struct {
	ID     identifier.ID
	Scope  Scope
	Key    string
	Value  string
	UserID identifier.ID
}

func App(key, value string) Setting {
	return Setting{
		ID:    identifier.New(),
		Scope: ScopeApp,
		Key:   key,
		Value: value,
	}
}

func User(userID identifier.ID, key, value string) Setting {
	return Setting{
		ID:     identifier.New(),
		Scope:  ScopeUser,
		Key:    key,
		Value:  value,
		UserID: userID,
	}
}
