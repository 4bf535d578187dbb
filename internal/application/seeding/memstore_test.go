package seeding

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/anarefin/prayer-time/internal/domain/common"
)

// memStore is an in-memory Store that records every commit.
type memStore struct {
	mu          sync.Mutex
	cols        map[string]map[string]common.Fields
	seq         int
	commitSizes []int
	directSets  int
	commitErr   error
}

func newMemStore() *memStore {
	return &memStore{cols: map[string]map[string]common.Fields{}}
}

func (m *memStore) put(col, id string, f common.Fields) {
	if m.cols[col] == nil {
		m.cols[col] = map[string]common.Fields{}
	}
	m.cols[col][id] = f
}

func (m *memStore) docs(col string) map[string]common.Fields {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cols[col]
}

func (m *memStore) writes() int {
	n := m.directSets
	for _, s := range m.commitSizes {
		n += s
	}
	return n
}

func (m *memStore) HasDocuments(_ context.Context, col string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cols[col]) > 0, nil
}

func (m *memStore) Count(_ context.Context, col string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cols[col]), nil
}

func (m *memStore) NewID(col string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return fmt.Sprintf("%s-%04d", col, m.seq)
}

func (m *memStore) Get(_ context.Context, col, id string) (common.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.cols[col][id]
	if !ok {
		return common.Document{}, common.ErrNotFound
	}
	return common.Document{ID: id, Fields: f}, nil
}

func (m *memStore) Set(_ context.Context, col, id string, fields common.Fields, merge bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.directSets++
	if merge {
		if cur, ok := m.cols[col][id]; ok {
			for k, v := range fields {
				cur[k] = v
			}
			return nil
		}
	}
	cp := common.Fields{}
	for k, v := range fields {
		cp[k] = v
	}
	m.put(col, id, cp)
	return nil
}

func (m *memStore) FindEqual(_ context.Context, col, field string, value any, limit int) ([]common.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []common.Document
	for _, id := range sortedIDs(m.cols[col]) {
		f := m.cols[col][id]
		if reflect.DeepEqual(f[field], value) {
			out = append(out, common.Document{ID: id, Fields: f})
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *memStore) List(_ context.Context, col string, limit int) ([]common.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []common.Document
	for _, id := range sortedIDs(m.cols[col]) {
		out = append(out, common.Document{ID: id, Fields: m.cols[col][id]})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memStore) NewBatch() Batch { return &memBatch{store: m} }

type memWrite struct {
	col, id string
	fields  common.Fields
}

type memBatch struct {
	store  *memStore
	writes []memWrite
}

func (b *memBatch) Set(col, id string, fields common.Fields) {
	b.writes = append(b.writes, memWrite{col, id, fields})
}

func (b *memBatch) Len() int { return len(b.writes) }

func (b *memBatch) Commit(context.Context) error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	if b.store.commitErr != nil {
		return b.store.commitErr
	}
	for _, w := range b.writes {
		b.store.put(w.col, w.id, w.fields)
	}
	b.store.commitSizes = append(b.store.commitSizes, len(b.writes))
	return nil
}

func sortedIDs(m map[string]common.Fields) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var errRemote = errors.New("rpc error: code = Unavailable")
