package shared

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anarefin/prayer-time/internal/adapters/out/secrets"
	appcfg "github.com/anarefin/prayer-time/internal/infra/config"
	"github.com/anarefin/prayer-time/internal/infra/database"
)

func TestRedactPath(t *testing.T) {
	assert.Equal(t, "***/key.json", redactPath("/home/ops/secrets/key.json"))
	assert.Equal(t, "***/key.json", redactPath(`C:\keys\key.json`))
	assert.Equal(t, "***/key.json", redactPath("key.json"))
	assert.Equal(t, "***", redactPath("/keys/"))
	assert.Equal(t, "", redactPath("  "))
}

func TestNewInfra_RequiresProjectForFirestore(t *testing.T) {
	cfg := &appcfg.Config{Datastore: appcfg.DatastoreFirestore, BatchLimit: 500, PrayerDays: 30}

	_, err := NewInfra(context.Background(), cfg, nil, Needs{})
	require.ErrorIs(t, err, appcfg.ErrMissingProject)

	_, err = NewInfra(context.Background(), nil, nil, Needs{})
	assert.Error(t, err)
}

func TestInfra_CloseNil(t *testing.T) {
	var inf *Infra
	assert.NoError(t, inf.Close())
	assert.NoError(t, (&Infra{}).Close())
}

func TestInfra_PingPostgres(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	inf := &Infra{DB: &database.DB{Client: db}}
	require.NoError(t, inf.Ping(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Error(t, (&Infra{}).Ping(context.Background()))
}

func TestNewInfra_SecretManagerDSNNeedsProject(t *testing.T) {
	cfg := &appcfg.Config{
		Datastore:   appcfg.DatastorePostgres,
		DatabaseURL: "sm://database-url",
		BatchLimit:  500,
		PrayerDays:  30,
	}

	_, err := NewInfra(context.Background(), cfg, nil, Needs{})
	require.ErrorIs(t, err, appcfg.ErrMissingProject)
}

func TestNewInfra_UnresolvedEnvDSN(t *testing.T) {
	t.Setenv("PRAYER_TEST_UNSET_DSN", "")
	cfg := &appcfg.Config{
		Datastore:   appcfg.DatastorePostgres,
		DatabaseURL: "env://PRAYER_TEST_UNSET_DSN",
		BatchLimit:  500,
		PrayerDays:  30,
	}

	_, err := NewInfra(context.Background(), cfg, nil, Needs{})
	require.ErrorIs(t, err, secrets.ErrEmptySecret)
}
