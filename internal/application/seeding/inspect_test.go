package seeding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anarefin/prayer-time/internal/domain/common"
	"github.com/anarefin/prayer-time/internal/domain/user"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name   string
		fields common.Fields
		want   FieldAnalysis
	}{
		{
			name:   "complete profile",
			fields: common.Fields{"email": "a@b.c", "role": "admin", "favorites": []any{"m1"}},
			want: FieldAnalysis{EmailType: "string", Email: "a@b.c", RoleType: "string", Role: "admin",
				FavoritesType: "array", FavoritesIsArray: true, FavoritesLen: 1},
		},
		{
			name:   "missing favorites",
			fields: common.Fields{"email": "a@b.c", "role": "user"},
			want:   FieldAnalysis{EmailType: "string", Email: "a@b.c", RoleType: "string", Role: "user", FavoritesType: "undefined"},
		},
		{
			name:   "wrong types",
			fields: common.Fields{"email": nil, "role": int64(1), "favorites": map[string]any{"m1": true}},
			want:   FieldAnalysis{EmailType: "null", RoleType: "number", FavoritesType: "object"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(common.Document{ID: "x", Fields: tt.fields}))
		})
	}
}

func TestInspector_Users(t *testing.T) {
	store := newMemStore()
	store.put(user.Collection, "u1", common.Fields{"email": "one@b.c", "role": "admin", "favorites": []any{}})
	store.put(user.Collection, "u2", common.Fields{"email": "two@b.c", "role": "user"})
	in := NewInspector(store)
	ctx := context.Background()

	dumps, missing, err := in.Users(ctx, []string{"u2", " ", "nope"}, 0)
	require.NoError(t, err)
	require.Len(t, dumps, 1)
	assert.Equal(t, "u2", dumps[0].Document.ID)
	assert.Equal(t, []string{"nope"}, missing)

	dumps, missing, err = in.Users(ctx, nil, 1)
	require.NoError(t, err)
	assert.Nil(t, missing)
	require.Len(t, dumps, 1)
	assert.Equal(t, "u1", dumps[0].Document.ID)
	assert.True(t, dumps[0].Analysis.FavoritesIsArray)

	counts, err := in.Counts(ctx, []string{user.Collection, "areas"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{user.Collection: 2, "areas": 0}, counts)
}
