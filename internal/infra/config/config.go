// internal/infra/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/anarefin/prayer-time/internal/adapters/out/gcs"
	"github.com/anarefin/prayer-time/internal/fixtures"
)

const (
	DatastoreFirestore = "firestore"
	DatastorePostgres  = "postgres"

	// LocalCredentialsFile is picked up from the working directory when no
	// credentials variable is set.
	LocalCredentialsFile = "service-account-key.json"
)

var (
	ErrUnknownDatastore = errors.New("config: DATASTORE must be firestore or postgres")
	ErrMissingDSN       = errors.New("config: DATABASE_URL is required when DATASTORE=postgres")
	ErrMissingProject   = errors.New("config: no project id (set FIRESTORE_PROJECT_ID or GOOGLE_CLOUD_PROJECT)")
)

// Config holds every environment setting of the seeding tools.
type Config struct {
	FirestoreProjectID string `env:"FIRESTORE_PROJECT_ID"`
	GCPProjectID       string `env:"GCP_PROJECT_ID"`
	GoogleCloudProject string `env:"GOOGLE_CLOUD_PROJECT"`
	FirebaseProjectID  string `env:"FIREBASE_PROJECT_ID"`

	FirestoreCredentialsFile string `env:"FIRESTORE_CREDENTIALS_FILE"`
	GCPCreds                 string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirestoreEmulatorHost    string `env:"FIRESTORE_EMULATOR_HOST"`

	Datastore   string `env:"DATASTORE" envDefault:"firestore"`
	DatabaseURL string `env:"DATABASE_URL"`

	BatchLimit     int    `env:"BATCH_LIMIT" envDefault:"500"`
	PrayerDays     int    `env:"PRAYER_DAYS" envDefault:"30"`
	PrayerTimezone string `env:"PRAYER_TIMEZONE" envDefault:"Asia/Dhaka"`
	MosqueDistrict string `env:"MOSQUE_DISTRICT" envDefault:"Dhaka"`
	// InspectUIDs limits check_firestore to these user ids.
	InspectUIDs  []string `env:"INSPECT_UIDS" envSeparator:","`
	InspectLimit int      `env:"INSPECT_LIMIT" envDefault:"20"`

	DivisionsFixture  string `env:"DIVISIONS_FIXTURE"`
	DistrictsFixture  string `env:"DISTRICTS_FIXTURE"`
	UpazilasFixture   string `env:"UPAZILAS_FIXTURE"`
	ThanasFixture     string `env:"THANAS_FIXTURE"`
	MosquesFixture    string `env:"MOSQUES_FIXTURE"`
	UsersFixture      string `env:"USERS_FIXTURE"`
	SampleDataFixture string `env:"SAMPLE_DATA_FIXTURE"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()
	return Parse(env.Options{})
}

// Parse builds a Config from opts (opts.Environment replaces os.Environ when set).
func Parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg, opts); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Datastore = strings.ToLower(strings.TrimSpace(cfg.Datastore))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Datastore {
	case DatastoreFirestore:
	case DatastorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return ErrMissingDSN
		}
	default:
		return fmt.Errorf("%w (got %q)", ErrUnknownDatastore, c.Datastore)
	}
	if c.BatchLimit <= 0 || c.BatchLimit > 500 {
		return fmt.Errorf("config: BATCH_LIMIT must be in 1..500 (got %d)", c.BatchLimit)
	}
	if c.PrayerDays <= 0 {
		return fmt.Errorf("config: PRAYER_DAYS must be positive (got %d)", c.PrayerDays)
	}
	return nil
}

// ProjectID resolves the Google Cloud project:
// FIRESTORE_PROJECT_ID -> GCP_PROJECT_ID -> GOOGLE_CLOUD_PROJECT -> FIREBASE_PROJECT_ID.
func (c *Config) ProjectID() string {
	for _, v := range []string{c.FirestoreProjectID, c.GCPProjectID, c.GoogleCloudProject, c.FirebaseProjectID} {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// GetFirebaseProjectID falls back to the resolved project id.
func (c *Config) GetFirebaseProjectID() string {
	if s := strings.TrimSpace(c.FirebaseProjectID); s != "" {
		return s
	}
	return c.ProjectID()
}

// CredentialsFile returns the service account key to use, or "" for ADC.
func (c *Config) CredentialsFile() string {
	if s := strings.TrimSpace(c.FirestoreCredentialsFile); s != "" {
		return s
	}
	if s := strings.TrimSpace(c.GCPCreds); s != "" {
		return s
	}
	if st, err := os.Stat(LocalCredentialsFile); err == nil && !st.IsDir() {
		return LocalCredentialsFile
	}
	return ""
}

// Location loads PRAYER_TIMEZONE.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(strings.TrimSpace(c.PrayerTimezone))
	if err != nil {
		return nil, fmt.Errorf("config: PRAYER_TIMEZONE: %w", err)
	}
	return loc, nil
}

// FixtureOverrides maps bundled fixture names to their configured replacement.
func (c *Config) FixtureOverrides() map[string]string {
	out := map[string]string{}
	add := func(file, v string) {
		if s := strings.TrimSpace(v); s != "" {
			out[file] = s
		}
	}
	add(fixtures.DivisionsFile, c.DivisionsFixture)
	add(fixtures.DistrictsFile, c.DistrictsFixture)
	add(fixtures.UpazilasFile, c.UpazilasFixture)
	add(fixtures.ThanasFile, c.ThanasFixture)
	add(fixtures.MosquesFile, c.MosquesFixture)
	add(fixtures.UsersFile, c.UsersFixture)
	add(fixtures.SampleDataFile, c.SampleDataFixture)
	return out
}

// NeedsStorage reports whether any fixture is read from Cloud Storage.
func (c *Config) NeedsStorage() bool {
	for _, v := range c.FixtureOverrides() {
		if gcs.IsObjectURI(v) {
			return true
		}
	}
	return false
}
