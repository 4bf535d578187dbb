// internal/application/seeding/users.go
package seeding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anarefin/prayer-time/internal/domain/common"
	"github.com/anarefin/prayer-time/internal/domain/user"
	"github.com/anarefin/prayer-time/internal/platform/logger"
)

// ErrNoDirectory is returned when profiles are seeded without an auth directory.
var ErrNoDirectory = errors.New("seeding: auth directory not configured")

// ProfileResult is the outcome for one account.
type ProfileResult struct {
	Account   user.Account
	UID       string
	Verified  bool
	Favorites int
	Err       error
}

// OK reports whether the profile was written.
func (r ProfileResult) OK() bool { return r.Err == nil }

// ProfileSeeder writes users/{uid} profiles for logins that already exist in
// authentication. It never creates or modifies the logins themselves.
type ProfileSeeder struct {
	Directory user.Directory
	Store     Store
	Log       logger.Logger
}

func NewProfileSeeder(dir user.Directory, store Store, log logger.Logger) *ProfileSeeder {
	if log == nil {
		log = logger.Discard()
	}
	return &ProfileSeeder{Directory: dir, Store: store, Log: log.WithComponent("users")}
}

// Run seeds each account in order. A failing account does not stop the others.
func (p *ProfileSeeder) Run(ctx context.Context, accounts []user.Account) []ProfileResult {
	out := make([]ProfileResult, 0, len(accounts))
	for _, a := range accounts {
		res := p.seed(ctx, a)
		if res.Err != nil {
			p.Log.Errorf("❌ %s: %v", a.Email, res.Err)
		} else {
			p.verify(ctx, &res)
		}
		out = append(out, res)
	}
	return out
}

func (p *ProfileSeeder) seed(ctx context.Context, a user.Account) ProfileResult {
	res := ProfileResult{Account: a}
	p.Log.Infof("📝 Processing: %s", a.Email)

	if err := a.Validate(); err != nil {
		res.Err = err
		return res
	}
	rec, err := p.lookup(ctx, a)
	if err != nil {
		res.Err = err
		return res
	}
	res.UID = rec.UID
	p.Log.Infof("   ✓ Auth account found (UID: %s)", rec.UID)

	if err := MergeProfile(ctx, p.Store, rec.UID, a.User()); err != nil {
		res.Err = err
		return res
	}
	p.Log.Infof("   ✓ Profile document created/updated (role: %s)", a.Role)
	return res
}

// lookup finds the login by uid when the account names one, otherwise by email.
func (p *ProfileSeeder) lookup(ctx context.Context, a user.Account) (user.AuthRecord, error) {
	if p.Directory == nil {
		return user.AuthRecord{}, ErrNoDirectory
	}
	email := strings.TrimSpace(a.Email)

	if uid := strings.TrimSpace(a.UID); uid != "" {
		rec, err := p.Directory.GetByUID(ctx, uid)
		if err != nil {
			return user.AuthRecord{}, fmt.Errorf("lookup auth uid %s: %w", uid, err)
		}
		if !strings.EqualFold(strings.TrimSpace(rec.Email), email) {
			return user.AuthRecord{}, fmt.Errorf("%w: %s belongs to %s", user.ErrEmailMismatch, uid, rec.Email)
		}
		return rec, nil
	}

	rec, err := p.Directory.GetByEmail(ctx, email)
	if err != nil {
		return user.AuthRecord{}, fmt.Errorf("lookup auth account: %w", err)
	}
	return rec, nil
}

// verify reads the profile back; a failed check is logged, not returned.
func (p *ProfileSeeder) verify(ctx context.Context, res *ProfileResult) {
	doc, err := p.Store.Get(ctx, user.Collection, res.UID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			p.Log.Warnf("   ⚠️  Profile document missing")
		} else {
			p.Log.Warnf("   ❌ Verification failed: %v", err)
		}
		return
	}
	favs, _ := doc.Fields["favorites"].([]any)
	res.Favorites = len(favs)
	res.Verified = doc.String("email") == strings.TrimSpace(res.Account.Email) &&
		doc.String("role") == string(res.Account.Role)
	if res.Verified {
		p.Log.Infof("   ✓ Profile verified (email: %s, role: %s, favorites: %d)", doc.String("email"), doc.String("role"), res.Favorites)
	} else {
		p.Log.Warnf("   ⚠️  Profile mismatch (email: %s, role: %s)", doc.String("email"), doc.String("role"))
	}
}

// MergeProfile merges email and role into users/{uid}, adding an empty favorites
// list only when the document has none.
func MergeProfile(ctx context.Context, store Store, uid string, u user.User) error {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return user.ErrInvalidUID
	}
	fields := u.Profile()

	existing, err := store.Get(ctx, user.Collection, uid)
	switch {
	case errors.Is(err, common.ErrNotFound):
		fields = user.WithEmptyFavorites(fields)
	case err != nil:
		return fmt.Errorf("read profile %s: %w", uid, err)
	case !existing.Has("favorites"):
		fields = user.WithEmptyFavorites(fields)
	}

	if err := store.Set(ctx, user.Collection, uid, fields, true); err != nil {
		return fmt.Errorf("write profile %s: %w", uid, err)
	}
	return nil
}
