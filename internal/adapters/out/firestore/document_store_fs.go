// internal/adapters/out/firestore/document_store_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/anarefin/prayer-time/internal/application/seeding"
	"github.com/anarefin/prayer-time/internal/domain/common"
)

var errNilClient = errors.New("firestore client is nil")

// DocumentStoreFS is the Firestore implementation of seeding.Store.
type DocumentStoreFS struct {
	Client *firestore.Client
}

func NewDocumentStoreFS(client *firestore.Client) *DocumentStoreFS {
	return &DocumentStoreFS{Client: client}
}

func (s *DocumentStoreFS) col(name string) *firestore.CollectionRef {
	return s.Client.Collection(name)
}

// HasDocuments reads at most one document.
func (s *DocumentStoreFS) HasDocuments(ctx context.Context, collection string) (bool, error) {
	if s.Client == nil {
		return false, errNilClient
	}
	it := s.col(collection).Limit(1).Documents(ctx)
	defer it.Stop()

	_, err := it.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count uses a server-side aggregation.
func (s *DocumentStoreFS) Count(ctx context.Context, collection string) (int, error) {
	if s.Client == nil {
		return 0, errNilClient
	}
	res, err := s.col(collection).NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, err
	}
	v, ok := res["all"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected count result for %s: %T", collection, res["all"])
	}
	return int(v.GetIntegerValue()), nil
}

func (s *DocumentStoreFS) NewID(collection string) string {
	return s.col(collection).NewDoc().ID
}

func (s *DocumentStoreFS) Get(ctx context.Context, collection, id string) (common.Document, error) {
	if s.Client == nil {
		return common.Document{}, errNilClient
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return common.Document{}, common.ErrNotFound
	}

	snap, err := s.col(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return common.Document{}, common.ErrNotFound
		}
		return common.Document{}, err
	}
	return docToDocument(snap), nil
}

func (s *DocumentStoreFS) Set(ctx context.Context, collection, id string, fields common.Fields, merge bool) error {
	if s.Client == nil {
		return errNilClient
	}
	ref := s.col(collection).Doc(id)
	var err error
	if merge {
		_, err = ref.Set(ctx, fields, firestore.MergeAll)
	} else {
		_, err = ref.Set(ctx, fields)
	}
	return err
}

func (s *DocumentStoreFS) FindEqual(ctx context.Context, collection, field string, value any, limit int) ([]common.Document, error) {
	if s.Client == nil {
		return nil, errNilClient
	}
	q := s.col(collection).Where(field, "==", value)
	if limit > 0 {
		q = q.Limit(limit)
	}
	return collect(q.Documents(ctx))
}

func (s *DocumentStoreFS) List(ctx context.Context, collection string, limit int) ([]common.Document, error) {
	if s.Client == nil {
		return nil, errNilClient
	}
	q := s.col(collection).OrderBy(firestore.DocumentID, firestore.Asc)
	if limit > 0 {
		q = q.Limit(limit)
	}
	return collect(q.Documents(ctx))
}

func (s *DocumentStoreFS) NewBatch() seeding.Batch {
	return &writeBatchFS{client: s.Client, batch: s.Client.Batch()}
}

// writeBatchFS wraps a firestore.WriteBatch and tracks its size.
type writeBatchFS struct {
	client *firestore.Client
	batch  *firestore.WriteBatch
	n      int
}

func (b *writeBatchFS) Set(collection, id string, fields common.Fields) {
	b.batch.Set(b.client.Collection(collection).Doc(id), fields)
	b.n++
}

func (b *writeBatchFS) Len() int { return b.n }

func (b *writeBatchFS) Commit(ctx context.Context) error {
	if b.n == 0 {
		return nil
	}
	_, err := b.batch.Commit(ctx)
	return err
}

// ============================================================
// Helpers
// ============================================================

func collect(it *firestore.DocumentIterator) ([]common.Document, error) {
	defer it.Stop()

	var out []common.Document
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, docToDocument(snap))
	}
	return out, nil
}

func docToDocument(snap *firestore.DocumentSnapshot) common.Document {
	data := snap.Data()
	if data == nil {
		data = common.Fields{}
	}
	return common.Document{ID: snap.Ref.ID, Fields: data}
}
