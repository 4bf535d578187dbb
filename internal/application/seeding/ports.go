// internal/application/seeding/ports.go
package seeding

import (
	"context"

	"github.com/anarefin/prayer-time/internal/domain/common"
)

// Store is the document database the seeders write to.
type Store interface {
	// HasDocuments reports whether collection holds at least one document.
	HasDocuments(ctx context.Context, collection string) (bool, error)
	Count(ctx context.Context, collection string) (int, error)
	// NewID returns a fresh document id without writing anything.
	NewID(collection string) string
	// Get returns common.ErrNotFound when the document does not exist.
	Get(ctx context.Context, collection, id string) (common.Document, error)
	Set(ctx context.Context, collection, id string, fields common.Fields, merge bool) error
	// FindEqual returns documents whose field equals value; limit <= 0 means all.
	FindEqual(ctx context.Context, collection, field string, value any, limit int) ([]common.Document, error)
	// List returns documents ordered by id; limit <= 0 means all.
	List(ctx context.Context, collection string, limit int) ([]common.Document, error)
	NewBatch() Batch
}

// Batch is an atomic multi-document write.
type Batch interface {
	Set(collection, id string, fields common.Fields)
	Len() int
	Commit(ctx context.Context) error
}
