// internal/domain/user/entity.go
package user

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/anarefin/prayer-time/internal/domain/common"
)

// Collection is the users collection name; documents are keyed by auth uid.
const Collection = "users"

// Role is the application role stored on the profile.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValidRole reports whether r is a known role.
func IsValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

var (
	ErrInvalidEmail  = errors.New("user: invalid email")
	ErrInvalidRole   = errors.New("user: invalid role")
	ErrInvalidUID    = errors.New("user: invalid uid")
	ErrEmailMismatch = errors.New("user: auth account email differs")
)

// User is the Firestore profile document.
// Favorites holds mosque document ids.
type User struct {
	Email     string
	Role      Role
	Favorites []string
}

// Profile returns the fields merged into users/{uid}. Favorites are left out so an
// existing list survives the merge; see WithEmptyFavorites.
func (u User) Profile() common.Fields {
	return common.Fields{
		"email": u.Email,
		"role":  string(u.Role),
	}
}

// WithEmptyFavorites adds an empty favorites list to f.
func WithEmptyFavorites(f common.Fields) common.Fields {
	f["favorites"] = []any{}
	return f
}

// Account assigns a profile role to an existing login. UID is optional; when
// empty the account is looked up by email.
type Account struct {
	UID   string `json:"uid,omitempty"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Validate checks email and role.
func (a Account) Validate() error {
	email := strings.TrimSpace(a.Email)
	if email == "" {
		return ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	if !IsValidRole(a.Role) {
		return ErrInvalidRole
	}
	return nil
}

// User returns the profile for the account.
func (a Account) User() User {
	return User{Email: strings.TrimSpace(a.Email), Role: a.Role}
}
