// internal/platform/di/admin/bootstrap.go
package admin

import (
	"context"

	appcfg "github.com/anarefin/prayer-time/internal/infra/config"
	"github.com/anarefin/prayer-time/internal/platform/di/shared"
	"github.com/anarefin/prayer-time/internal/platform/logger"
)

// Setup loads configuration, builds the logger and the container.
// The returned logger is usable even when err is non-nil.
func Setup(ctx context.Context, needs shared.Needs) (*Container, logger.Logger, error) {
	cfg, err := appcfg.Load()
	if err != nil {
		return nil, logger.New("info", "text"), err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	c, err := NewContainer(ctx, cfg, log, needs)
	if err != nil {
		return nil, log, err
	}
	return c, log, nil
}

// LogSetupHelp explains how to provide credentials after a setup failure.
func LogSetupHelp(log logger.Logger) {
	log.Infof("📝 Setup instructions:")
	log.Infof("1. Download a service account key from the Firebase Console:")
	log.Infof("   - Go to: Project Settings > Service Accounts")
	log.Infof("   - Click \"Generate new private key\"")
	log.Infof("   - Save as: %s (or point FIRESTORE_CREDENTIALS_FILE at it)", appcfg.LocalCredentialsFile)
	log.Infof("2. Or set GOOGLE_APPLICATION_CREDENTIALS:")
	log.Infof("   export GOOGLE_APPLICATION_CREDENTIALS=\"/path/to/key.json\"")
	log.Infof("3. Set FIRESTORE_PROJECT_ID (or GOOGLE_CLOUD_PROJECT) to the target project.")
	log.Infof("   For the PostgreSQL backend set DATASTORE=postgres and DATABASE_URL instead.")
}
