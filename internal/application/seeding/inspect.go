// internal/application/seeding/inspect.go
package seeding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anarefin/prayer-time/internal/domain/common"
	"github.com/anarefin/prayer-time/internal/domain/user"
)

// FieldAnalysis describes the shape of a user profile as the app reads it.
type FieldAnalysis struct {
	EmailType        string
	Email            string
	RoleType         string
	Role             string
	FavoritesType    string
	FavoritesIsArray bool
	FavoritesLen     int
}

// UserDump is one profile document and its analysis.
type UserDump struct {
	Document common.Document
	Analysis FieldAnalysis
}

// Inspector reads back what the seeders wrote.
type Inspector struct {
	Store Store
}

// NewInspector wires an inspector.
func NewInspector(store Store) *Inspector {
	return &Inspector{Store: store}
}

// Users returns the profiles of uids, or the first limit profiles when uids is empty.
// uids without a document are returned in missing.
func (in *Inspector) Users(ctx context.Context, uids []string, limit int) (dumps []UserDump, missing []string, err error) {
	if len(uids) == 0 {
		docs, err := in.Store.List(ctx, user.Collection, limit)
		if err != nil {
			return nil, nil, fmt.Errorf("list %s: %w", user.Collection, err)
		}
		for _, d := range docs {
			dumps = append(dumps, UserDump{Document: d, Analysis: Analyze(d)})
		}
		return dumps, nil, nil
	}

	for _, uid := range uids {
		uid = strings.TrimSpace(uid)
		if uid == "" {
			continue
		}
		d, err := in.Store.Get(ctx, user.Collection, uid)
		if errors.Is(err, common.ErrNotFound) {
			missing = append(missing, uid)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read %s/%s: %w", user.Collection, uid, err)
		}
		dumps = append(dumps, UserDump{Document: d, Analysis: Analyze(d)})
	}
	return dumps, missing, nil
}

// Counts returns the document count per collection.
func (in *Inspector) Counts(ctx context.Context, collections []string) (map[string]int, error) {
	return CountCollections(ctx, in.Store, collections)
}

// Analyze inspects the email, role and favorites fields of a profile.
func Analyze(d common.Document) FieldAnalysis {
	a := FieldAnalysis{
		EmailType:     typeName(d.Fields, "email"),
		RoleType:      typeName(d.Fields, "role"),
		FavoritesType: typeName(d.Fields, "favorites"),
	}
	if s, ok := d.Fields["email"].(string); ok {
		a.Email = s
	}
	if s, ok := d.Fields["role"].(string); ok {
		a.Role = s
	}
	if favs, ok := d.Fields["favorites"].([]any); ok {
		a.FavoritesIsArray = true
		a.FavoritesLen = len(favs)
	}
	return a
}

func typeName(f common.Fields, key string) string {
	v, ok := f[key]
	if !ok {
		return "undefined"
	}
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int32, int64, float32, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
