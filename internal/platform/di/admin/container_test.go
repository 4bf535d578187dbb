package admin

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbadapter "github.com/anarefin/prayer-time/internal/adapters/out/db"
	appcfg "github.com/anarefin/prayer-time/internal/infra/config"
	"github.com/anarefin/prayer-time/internal/infra/database"
	"github.com/anarefin/prayer-time/internal/platform/di/shared"
)

func TestContainer_PostgresBackend(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg := &appcfg.Config{
		Datastore:      appcfg.DatastorePostgres,
		BatchLimit:     200,
		PrayerDays:     7,
		PrayerTimezone: "Asia/Dhaka",
		MosqueDistrict: "Dhaka",
	}
	c := newContainer(&shared.Infra{Config: cfg, DB: &database.DB{Client: db}}, nil)

	_, ok := c.Store.(*dbadapter.DocumentStorePG)
	assert.True(t, ok)

	pt, err := c.PrayerTimeSeeder()
	require.NoError(t, err)
	assert.Equal(t, 7, pt.Days)
	assert.Equal(t, 200, pt.BatchLimit)
	assert.Equal(t, "Asia/Dhaka", pt.Location.String())

	ms, err := c.MosqueSeeder()
	require.NoError(t, err)
	assert.Equal(t, "Dhaka", ms.District)
	assert.NotNil(t, ms.PrayerTimes)

	_, err = c.ProfileSeeder()
	assert.ErrorIs(t, err, ErrAuthNotConfigured)

	assert.NotNil(t, c.GeographySeeder())
	assert.NotNil(t, c.SampleImporter())
	assert.NotNil(t, c.Inspector())
	assert.NotNil(t, c.Fixtures)
}

func TestContainer_BadTimezone(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg := &appcfg.Config{Datastore: appcfg.DatastorePostgres, BatchLimit: 500, PrayerDays: 30, PrayerTimezone: "Mars/Olympus"}
	c := newContainer(&shared.Infra{Config: cfg, DB: &database.DB{Client: db}}, nil)

	_, err = c.MosqueSeeder()
	assert.Error(t, err)
}
