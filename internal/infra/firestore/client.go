// internal/infra/firestore/client.go
package firestoreinfra

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"github.com/anarefin/prayer-time/internal/platform/logger"
)

// ClientWrapper wraps a Firestore client together with its project.
type ClientWrapper struct {
	Client    *firestore.Client
	ProjectID string
}

// NewClient connects to Firestore. With no options the client uses
// Application Default Credentials, or FIRESTORE_EMULATOR_HOST when set.
func NewClient(ctx context.Context, projectID string, log logger.Logger, opts ...option.ClientOption) (*ClientWrapper, error) {
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	if log != nil {
		log.Infof("✅ Firestore connected (project: %s)", projectID)
	}
	return &ClientWrapper{Client: client, ProjectID: projectID}, nil
}

// Ping lists root collections, which fails fast on bad credentials or project.
func (cw *ClientWrapper) Ping(ctx context.Context) error {
	if cw == nil || cw.Client == nil {
		return fmt.Errorf("firestore client is nil")
	}
	if _, err := cw.Client.Collections(ctx).GetAll(); err != nil {
		return fmt.Errorf("firestore ping failed: %w", err)
	}
	return nil
}
