package fixtures

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anarefin/prayer-time/internal/domain/geo"
	"github.com/anarefin/prayer-time/internal/domain/user"
)

func TestLoadTable(t *testing.T) {
	raw := []byte(`[
		{"type":"header","version":"4.7.7"},
		{"type":"database","name":"bd_geocode"},
		{"type":"table","name":"divisions","database":"bd_geocode","data":[
			{"id":"6","name":"Dhaka","bn_name":"ঢাকা","url":"www.dhakadiv.gov.bd"}
		]}
	]`)

	rows, err := LoadTable[geo.DivisionRow](raw, "divisions.json", "divisions")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, geo.DivisionRow{ID: "6", Name: "Dhaka", BnName: "ঢাকা", URL: "www.dhakadiv.gov.bd"}, rows[0])

	_, err = LoadTable[geo.DivisionRow](raw, "divisions.json", "districts")
	require.ErrorIs(t, err, ErrTableNotFound)
	assert.Contains(t, err.Error(), "could not find table 'districts' in divisions.json")

	_, err = LoadTable[geo.DivisionRow]([]byte(`{not json`), "divisions.json", "divisions")
	assert.Error(t, err)
}

func TestLoader_BundledGeography(t *testing.T) {
	src, err := NewLoader(nil, nil).Geography(context.Background())
	require.NoError(t, err)

	assert.Len(t, src.Divisions, 8)
	assert.Len(t, src.Districts, 64)
	assert.NotEmpty(t, src.Upazilas)
	assert.NotEmpty(t, src.Thanas)
	assert.Equal(t, "Dhaka", src.ThanaDistrict)

	districtIDs := map[string]bool{}
	for _, d := range src.Districts {
		districtIDs[d.ID] = true
	}
	for _, u := range src.Upazilas {
		assert.True(t, districtIDs[u.DistrictID], "upazila %s points at unknown district %s", u.Name, u.DistrictID)
	}
}

func TestLoader_BundledMosquesMatchThanas(t *testing.T) {
	ctx := context.Background()
	l := NewLoader(nil, nil)

	src, err := l.Geography(ctx)
	require.NoError(t, err)
	mosques, err := l.Mosques(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, mosques)

	thanas := map[string]bool{}
	for _, th := range src.Thanas {
		thanas[th.Name] = true
	}
	for _, m := range mosques {
		assert.True(t, thanas[m.AreaName], "mosque %q has unknown area %q", m.Name, m.AreaName)
	}
	assert.True(t, mosques[0].HasWudu)
}

func TestLoader_BundledAccountsAndSample(t *testing.T) {
	ctx := context.Background()
	l := NewLoader(nil, nil)

	accounts, err := l.Accounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	for _, a := range accounts {
		require.NoError(t, a.Validate())
	}
	assert.Equal(t, user.RoleAdmin, accounts[0].Role)
	assert.NotEmpty(t, accounts[0].UID)
	assert.Empty(t, accounts[1].UID)

	data, err := l.SampleData(ctx)
	require.NoError(t, err)
	assert.Len(t, data.Users, 2)
	assert.NotEmpty(t, data.Areas)
	assert.NotEmpty(t, data.Mosques)
	assert.NotEmpty(t, data.PrayerTimes)
}

func TestLoader_SampleDataKeepsIntegers(t *testing.T) {
	data, err := NewLoader(nil, nil).SampleData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), data.Areas["area_gulshan"]["order"])
	assert.Equal(t, 23.7901, data.Mosques["mosque_azad"]["latitude"])
	assert.Equal(t, true, data.Mosques["mosque_azad"]["hasWomenPrayer"])
}

func TestLoader_SampleDataNestedNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"areas": {"a1": {"order": 7, "meta": {"rank": 2, "score": 1.5}, "tags": [3, 4.25]}}
	}`), 0o600))

	data, err := NewLoader(map[string]string{SampleDataFile: path}, nil).SampleData(context.Background())
	require.NoError(t, err)

	a := data.Areas["a1"]
	assert.Equal(t, int64(7), a["order"])
	assert.Equal(t, map[string]any{"rank": int64(2), "score": 1.5}, a["meta"])
	assert.Equal(t, []any{int64(3), 4.25}, a["tags"])
}

func TestLoader_LocalOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"uid":"ops-uid","email":"ops@prayer.app","role":"admin"}]`), 0o600))

	accounts, err := NewLoader(map[string]string{UsersFile: path}, nil).Accounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "ops@prayer.app", accounts[0].Email)
	assert.Equal(t, "ops-uid", accounts[0].UID)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"email":`), 0o600))
	_, err = NewLoader(map[string]string{UsersFile: bad}, nil).Accounts(context.Background())
	assert.Error(t, err)

	_, err = NewLoader(map[string]string{UsersFile: filepath.Join(dir, "missing.json")}, nil).Accounts(context.Background())
	assert.Error(t, err)
}

type fakeRemote struct {
	uris []string
	body []byte
	err  error
}

func (f *fakeRemote) Read(_ context.Context, uri string) ([]byte, error) {
	f.uris = append(f.uris, uri)
	return f.body, f.err
}

func TestLoader_RemoteOverride(t *testing.T) {
	remote := &fakeRemote{body: []byte(`[{"name":"Gulshan","bnName":"গুলশান"}]`)}
	l := NewLoader(map[string]string{ThanasFile: "gs://prayer-fixtures/thanas.json"}, remote)

	src, err := l.Geography(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gs://prayer-fixtures/thanas.json"}, remote.uris)
	assert.Equal(t, []geo.Thana{{Name: "Gulshan", BnName: "গুলশান"}}, src.Thanas)

	remote.err = errors.New("403")
	_, err = l.Geography(context.Background())
	assert.Error(t, err)

	_, err = NewLoader(map[string]string{ThanasFile: "gs://prayer-fixtures/thanas.json"}, nil).Geography(context.Background())
	assert.Error(t, err)
}
