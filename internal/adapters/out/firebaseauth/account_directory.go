// internal/adapters/out/firebaseauth/account_directory.go
package firebaseauth

import (
	"context"
	"errors"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/anarefin/prayer-time/internal/domain/user"
)

// authClient is the subset of *auth.Client used here. Lookups only: accounts
// are managed in the Firebase console.
type authClient interface {
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
	GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error)
}

// AccountDirectory implements user.Directory over Firebase Authentication.
type AccountDirectory struct {
	Client authClient
	// IsNotFound classifies lookup errors; defaults to auth.IsUserNotFound.
	IsNotFound func(error) bool
}

func NewAccountDirectory(client *auth.Client) *AccountDirectory {
	d := &AccountDirectory{IsNotFound: auth.IsUserNotFound}
	if client != nil {
		d.Client = client
	}
	return d
}

var errNilClient = errors.New("firebaseauth: auth client is nil")

func (d *AccountDirectory) GetByEmail(ctx context.Context, email string) (user.AuthRecord, error) {
	if d == nil || d.Client == nil {
		return user.AuthRecord{}, errNilClient
	}
	rec, err := d.Client.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return user.AuthRecord{}, d.mapErr(err)
	}
	return toAuthRecord(rec), nil
}

func (d *AccountDirectory) GetByUID(ctx context.Context, uid string) (user.AuthRecord, error) {
	if d == nil || d.Client == nil {
		return user.AuthRecord{}, errNilClient
	}
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return user.AuthRecord{}, user.ErrInvalidUID
	}
	rec, err := d.Client.GetUser(ctx, uid)
	if err != nil {
		return user.AuthRecord{}, d.mapErr(err)
	}
	return toAuthRecord(rec), nil
}

func (d *AccountDirectory) mapErr(err error) error {
	notFound := d.IsNotFound
	if notFound == nil {
		notFound = auth.IsUserNotFound
	}
	if notFound(err) {
		return user.ErrAuthUserNotFound
	}
	return err
}

func toAuthRecord(rec *auth.UserRecord) user.AuthRecord {
	if rec == nil || rec.UserInfo == nil {
		return user.AuthRecord{}
	}
	return user.AuthRecord{
		UID:   rec.UID,
		Email: rec.Email,
	}
}
