// internal/adapters/out/db/document_store_pg.go
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/anarefin/prayer-time/internal/application/seeding"
	"github.com/anarefin/prayer-time/internal/domain/common"
)

// DocumentStorePG keeps each collection in its own table (id TEXT, data JSONB).
// Tables are created on first use.
type DocumentStorePG struct {
	DB *sql.DB

	mu    sync.Mutex
	ready map[string]bool
}

func NewDocumentStorePG(db *sql.DB) *DocumentStorePG {
	return &DocumentStorePG{DB: db, ready: map[string]bool{}}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func table(collection string) string {
	return pq.QuoteIdentifier(collection)
}

func (s *DocumentStorePG) isReady(collection string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready[collection]
}

func (s *DocumentStorePG) markReady(collections ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range collections {
		s.ready[c] = true
	}
}

func createTable(ctx context.Context, ex execer, collection string) error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (id TEXT PRIMARY KEY, data JSONB NOT NULL)`, table(collection))
	if _, err := ex.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("create table %s: %w", collection, err)
	}
	return nil
}

func (s *DocumentStorePG) ensure(ctx context.Context, collection string) error {
	if s.DB == nil {
		return errors.New("postgres db is nil")
	}
	if s.isReady(collection) {
		return nil
	}
	if err := createTable(ctx, s.DB, collection); err != nil {
		return err
	}
	s.markReady(collection)
	return nil
}

func (s *DocumentStorePG) HasDocuments(ctx context.Context, collection string) (bool, error) {
	if err := s.ensure(ctx, collection); err != nil {
		return false, err
	}
	var ok bool
	q := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s)`, table(collection))
	if err := s.DB.QueryRowContext(ctx, q).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (s *DocumentStorePG) Count(ctx context.Context, collection string) (int, error) {
	if err := s.ensure(ctx, collection); err != nil {
		return 0, err
	}
	var n int
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table(collection))
	if err := s.DB.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *DocumentStorePG) NewID(string) string {
	return uuid.NewString()
}

func (s *DocumentStorePG) Get(ctx context.Context, collection, id string) (common.Document, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return common.Document{}, common.ErrNotFound
	}
	if err := s.ensure(ctx, collection); err != nil {
		return common.Document{}, err
	}

	var raw []byte
	q := fmt.Sprintf(`SELECT data FROM %s WHERE id = $1`, table(collection))
	if err := s.DB.QueryRowContext(ctx, q, id).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.Document{}, common.ErrNotFound
		}
		return common.Document{}, err
	}
	return decodeDocument(id, raw)
}

func (s *DocumentStorePG) Set(ctx context.Context, collection, id string, fields common.Fields, merge bool) error {
	if err := s.ensure(ctx, collection); err != nil {
		return err
	}
	return upsert(ctx, s.DB, collection, id, fields, merge)
}

func (s *DocumentStorePG) FindEqual(ctx context.Context, collection, field string, value any, limit int) ([]common.Document, error) {
	if err := s.ensure(ctx, collection); err != nil {
		return nil, err
	}
	want, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode filter value: %w", err)
	}
	q := fmt.Sprintf(`SELECT id, data FROM %s WHERE data -> $1 = $2::jsonb ORDER BY id`, table(collection))
	args := []any{field, string(want)}
	if limit > 0 {
		q += ` LIMIT $3`
		args = append(args, limit)
	}
	return s.query(ctx, q, args...)
}

func (s *DocumentStorePG) List(ctx context.Context, collection string, limit int) ([]common.Document, error) {
	if err := s.ensure(ctx, collection); err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`SELECT id, data FROM %s ORDER BY id`, table(collection))
	var args []any
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}
	return s.query(ctx, q, args...)
}

func (s *DocumentStorePG) NewBatch() seeding.Batch {
	return &txBatchPG{store: s}
}

func (s *DocumentStorePG) query(ctx context.Context, q string, args ...any) ([]common.Document, error) {
	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []common.Document
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		d, err := decodeDocument(id, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ==============================
// Batch (one SQL transaction)
// ==============================

type pendingWrite struct {
	collection string
	id         string
	fields     common.Fields
}

type txBatchPG struct {
	store  *DocumentStorePG
	writes []pendingWrite
}

func (b *txBatchPG) Set(collection, id string, fields common.Fields) {
	b.writes = append(b.writes, pendingWrite{collection: collection, id: id, fields: fields})
}

func (b *txBatchPG) Len() int { return len(b.writes) }

func (b *txBatchPG) Commit(ctx context.Context) (err error) {
	if len(b.writes) == 0 {
		return nil
	}
	if b.store.DB == nil {
		return errors.New("postgres db is nil")
	}

	tx, err := b.store.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var created []string
	for _, w := range b.writes {
		if !b.store.isReady(w.collection) && !slices.Contains(created, w.collection) {
			if err = createTable(ctx, tx, w.collection); err != nil {
				return err
			}
			created = append(created, w.collection)
		}
		if err = upsert(ctx, tx, w.collection, w.id, w.fields, false); err != nil {
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	b.store.markReady(created...)
	return nil
}

// ==============================
// Helpers
// ==============================

func upsert(ctx context.Context, ex execer, collection, id string, fields common.Fields, merge bool) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	set := "EXCLUDED.data"
	if merge {
		set = table(collection) + ".data || EXCLUDED.data"
	}
	q := fmt.Sprintf(`INSERT INTO %s (id, data) VALUES ($1, $2::jsonb)
ON CONFLICT (id) DO UPDATE SET data = %s`, table(collection), set)
	if _, err := ex.ExecContext(ctx, q, id, string(raw)); err != nil {
		return fmt.Errorf("write %s/%s: %w", collection, id, err)
	}
	return nil
}

func decodeDocument(id string, raw []byte) (common.Document, error) {
	fields := common.Fields{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &fields); err != nil {
			return common.Document{}, fmt.Errorf("decode document %s: %w", id, err)
		}
	}
	return common.Document{ID: id, Fields: fields}, nil
}
