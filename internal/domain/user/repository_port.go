// internal/domain/user/repository_port.go
package user

import (
	"context"
	"errors"
)

// ErrAuthUserNotFound is returned by a Directory when no account matches.
var ErrAuthUserNotFound = errors.New("user: auth account not found")

// AuthRecord is the subset of an authentication account the tooling reads.
type AuthRecord struct {
	UID   string
	Email string
}

// Directory is the read-only authentication service port.
type Directory interface {
	GetByEmail(ctx context.Context, email string) (AuthRecord, error)
	GetByUID(ctx context.Context, uid string) (AuthRecord, error)
}
