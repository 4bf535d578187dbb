// internal/platform/di/shared/infra.go
package shared

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/anarefin/prayer-time/internal/adapters/out/secrets"
	appcfg "github.com/anarefin/prayer-time/internal/infra/config"
	"github.com/anarefin/prayer-time/internal/infra/database"
	firestoreinfra "github.com/anarefin/prayer-time/internal/infra/firestore"
	"github.com/anarefin/prayer-time/internal/platform/logger"
)

// emulatorProjectID is used against the Firestore emulator when no project is configured.
const emulatorProjectID = "demo-prayer-time"

// Needs selects the optional clients a command uses.
type Needs struct {
	// Auth makes Firebase Auth strict.
	Auth bool
}

// Infra owns the external clients of one command run.
//   - the document store backend (Firestore or PostgreSQL) is strict
//   - GCS is strict only when a fixture override points at Cloud Storage
//   - Firebase Auth is strict only when Needs.Auth is set
//   - Secret Manager is strict only when DATABASE_URL is an sm:// reference
type Infra struct {
	Config    *appcfg.Config
	ProjectID string
	Log       logger.Logger

	// Clients (owned; Close-managed)
	Firestore     *firestore.Client
	DB            *database.DB
	GCS           *storage.Client
	FirebaseApp   *firebase.App
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secretmanager.Client
}

// NewInfra initializes the clients selected by cfg and needs.
func NewInfra(ctx context.Context, cfg *appcfg.Config, log logger.Logger, needs Needs) (*Infra, error) {
	if cfg == nil {
		return nil, errors.New("shared.infra: config is nil")
	}
	if log == nil {
		log = logger.Discard()
	}
	log = log.WithComponent("shared.infra")

	inf := &Infra{Config: cfg, Log: log}

	inf.ProjectID = cfg.ProjectID()
	if inf.ProjectID == "" && strings.TrimSpace(cfg.FirestoreEmulatorHost) != "" {
		inf.ProjectID = emulatorProjectID
	}
	dsnInSM := cfg.Datastore == appcfg.DatastorePostgres && secrets.IsSecretManagerRef(cfg.DatabaseURL)
	usesGoogle := cfg.Datastore == appcfg.DatastoreFirestore || needs.Auth || cfg.NeedsStorage() || dsnInSM
	if usesGoogle && inf.ProjectID == "" {
		return nil, appcfg.ErrMissingProject
	}

	// Credentials file (optional; mainly for local runs)
	var clientOpts []option.ClientOption
	if credFile := cfg.CredentialsFile(); credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Infof("Using credentials file for GCP clients: %s", redactPath(credFile))
	} else if usesGoogle {
		log.Infof("Using Application Default Credentials (no credentials file configured)")
	}

	// 1) Document store (strict)
	switch cfg.Datastore {
	case appcfg.DatastorePostgres:
		if dsnInSM {
			sm, err := secretmanager.NewClient(ctx, clientOpts...)
			if err != nil {
				return nil, fmt.Errorf("shared.infra: secretmanager.NewClient failed: %w", err)
			}
			inf.SecretManager = sm
		}
		dsn, err := secrets.NewSecretResolverSM(inf.SecretManager, inf.ProjectID).Resolve(ctx, cfg.DatabaseURL)
		if err != nil {
			_ = inf.Close()
			return nil, fmt.Errorf("shared.infra: DATABASE_URL: %w", err)
		}
		db, err := database.NewConnection(ctx, dsn, log)
		if err != nil {
			_ = inf.Close()
			return nil, fmt.Errorf("shared.infra: postgres: %w", err)
		}
		inf.DB = db
	default:
		cw, err := firestoreinfra.NewClient(ctx, inf.ProjectID, log, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("shared.infra: firestore.NewClient failed (project=%s): %w", inf.ProjectID, err)
		}
		inf.Firestore = cw.Client
	}

	// 2) GCS (strict when a fixture lives in Cloud Storage)
	if cfg.NeedsStorage() {
		gcsClient, err := storage.NewClient(ctx, clientOpts...)
		if err != nil {
			_ = inf.Close()
			return nil, fmt.Errorf("shared.infra: storage.NewClient failed: %w", err)
		}
		inf.GCS = gcsClient
		log.Infof("GCS storage client initialized")
	}

	if !needs.Auth {
		return inf, nil
	}

	// 3) Firebase App/Auth (strict for profile seeding lookups)
	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.GetFirebaseProjectID()}, clientOpts...)
	if err != nil {
		_ = inf.Close()
		return nil, fmt.Errorf("shared.infra: firebase app init failed: %w", err)
	}
	inf.FirebaseApp = fbApp
	authClient, err := fbApp.Auth(ctx)
	if err != nil {
		_ = inf.Close()
		return nil, fmt.Errorf("shared.infra: firebase auth init failed: %w", err)
	}
	inf.FirebaseAuth = authClient
	log.Infof("Firebase Auth initialized")

	return inf, nil
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	var errs []error
	if i.Firestore != nil {
		errs = append(errs, i.Firestore.Close())
	}
	if i.DB != nil {
		errs = append(errs, i.DB.Close())
	}
	if i.GCS != nil {
		errs = append(errs, i.GCS.Close())
	}
	if i.SecretManager != nil {
		errs = append(errs, i.SecretManager.Close())
	}
	return errors.Join(errs...)
}

// Ping checks that the configured document store is reachable.
func (i *Infra) Ping(ctx context.Context) error {
	switch {
	case i == nil:
		return errors.New("shared.infra: nil")
	case i.DB != nil && i.DB.Client != nil:
		if err := i.DB.Client.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres ping failed: %w", err)
		}
		return nil
	case i.Firestore != nil:
		cw := &firestoreinfra.ClientWrapper{Client: i.Firestore, ProjectID: i.ProjectID}
		return cw.Ping(ctx)
	default:
		return errors.New("shared.infra: no document store configured")
	}
}

func redactPath(p string) string {
	// Do not log full path (Windows/Unix compatible light masking)
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	parts := strings.Split(p, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***" + "/" + last
}
