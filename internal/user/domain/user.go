package domain

import "github.com/mcguiretech/truapi/internal/common/identifier"

type User struct {
	ID          identifier.ID
	Username    string
	Email       string
	DisplayName string
}

// New builds a user with a fresh identifier. Username and email uniqueness is
// deliberately not enforced here; callers check existence where they need to.
func New(username, email, displayName string) User {
	return User{
		ID:          identifier.New(),
		Username:    username,
		Email:       email,
		DisplayName: displayName,
	}
}
