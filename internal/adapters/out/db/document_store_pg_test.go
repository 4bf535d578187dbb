package db

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anarefin/prayer-time/internal/domain/common"
)

func newMockStore(t *testing.T) (*DocumentStorePG, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDocumentStorePG(db), mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

const createAreas = `CREATE TABLE IF NOT EXISTS "areas" (id TEXT PRIMARY KEY, data JSONB NOT NULL)`

func TestDocumentStorePG_HasDocumentsCreatesTableOnce(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectExec(q(createAreas)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(q(`SELECT EXISTS (SELECT 1 FROM "areas")`)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(q(`SELECT COUNT(*) FROM "areas"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	has, err := s.HasDocuments(ctx, "areas")
	require.NoError(t, err)
	assert.False(t, has)

	n, err := s.Count(ctx, "areas")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStorePG_GetNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(q(createAreas)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(q(`SELECT data FROM "areas" WHERE id = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	_, err := s.Get(context.Background(), "areas", "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStorePG_GetDecodesJSON(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(q(createAreas)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(q(`SELECT data FROM "areas" WHERE id = $1`)).
		WithArgs("a1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte(`{"name":"Gulshan","order":9003}`)))

	d, err := s.Get(context.Background(), "areas", "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", d.ID)
	assert.Equal(t, "Gulshan", d.String("name"))
	assert.Equal(t, float64(9003), d.Fields["order"])
}

func TestDocumentStorePG_SetMergeConcatenatesJSON(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(q(`CREATE TABLE IF NOT EXISTS "users"`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q(`ON CONFLICT (id) DO UPDATE SET data = "users".data || EXCLUDED.data`)).
		WithArgs("uid-1", `{"role":"admin"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Set(context.Background(), "users", "uid-1", common.Fields{"role": "admin"}, true))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStorePG_FindEqualFiltersOnJSONField(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(q(createAreas)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(q(`SELECT id, data FROM "areas" WHERE data -> $1 = $2::jsonb ORDER BY id LIMIT $3`)).
		WithArgs("districtId", `"d-dhaka"`, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "data"}).
			AddRow("a1", []byte(`{"name":"Gulshan","districtId":"d-dhaka"}`)))

	docs, err := s.FindEqual(context.Background(), "areas", "districtId", "d-dhaka", 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "d-dhaka", docs[0].String("districtId"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStorePG_BatchIsOneTransaction(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(q(createAreas)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q(`INSERT INTO "areas"`)).WithArgs("a1", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q(`INSERT INTO "areas"`)).WithArgs("a2", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	// the table is known after the commit, so no second CREATE
	mock.ExpectQuery(q(`SELECT COUNT(*) FROM "areas"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	b := s.NewBatch()
	b.Set("areas", "a1", common.Fields{"name": "Gulshan"})
	b.Set("areas", "a2", common.Fields{"name": "Banani"})
	assert.Equal(t, 2, b.Len())
	require.NoError(t, b.Commit(ctx))

	n, err := s.Count(ctx, "areas")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStorePG_BatchRollsBackOnError(t *testing.T) {
	s, mock := newMockStore(t)
	boom := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectExec(q(createAreas)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q(`INSERT INTO "areas"`)).WillReturnError(boom)
	mock.ExpectRollback()

	b := s.NewBatch()
	b.Set("areas", "a1", common.Fields{"name": "Gulshan"})
	err := b.Commit(context.Background())

	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStorePG_NewIDIsUUID(t *testing.T) {
	s, _ := newMockStore(t)
	id := s.NewID("mosques")
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`, id)
	assert.NotEqual(t, id, s.NewID("mosques"))
}
