package identifier

import (
	"github.com/google/uuid"

	"github.com/mcguiretech/truapi/internal/common/constants"
	commonerrors "github.com/mcguiretech/truapi/internal/common/errors"
)

// ID is a sortable unique identifier: a canonical UUIDv7 string, so ids
// generated later always compare lexicographically greater.
type ID string

func New() ID {
	return ID(uuid.Must(uuid.NewV7()).String())
}

// Parse validates an identifier received from an untrusted boundary.
// Only the canonical lowercase 36-character form of a version-7 UUID passes.
func Parse(value string) (ID, error) {
	if len(value) != constants.IDStringLength {
		return "", commonerrors.ErrInvalidIDFormat
	}

	parsed, err := uuid.Parse(value)
	if err != nil {
		return "", commonerrors.ErrInvalidIDFormat.WithCause(err)
	}

	if parsed.Version() != 7 || parsed.String() != value {
		return "", commonerrors.ErrInvalidIDFormat
	}

	return ID(value), nil
}

func (id ID) String() string {
	return string(id)
}
