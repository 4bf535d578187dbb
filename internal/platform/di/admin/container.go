// internal/platform/di/admin/container.go
package admin

import (
	"context"
	"errors"

	dbadapter "github.com/anarefin/prayer-time/internal/adapters/out/db"
	"github.com/anarefin/prayer-time/internal/adapters/out/firebaseauth"
	fsadapter "github.com/anarefin/prayer-time/internal/adapters/out/firestore"
	"github.com/anarefin/prayer-time/internal/adapters/out/gcs"
	"github.com/anarefin/prayer-time/internal/application/seeding"
	"github.com/anarefin/prayer-time/internal/domain/prayertime"
	"github.com/anarefin/prayer-time/internal/fixtures"
	appcfg "github.com/anarefin/prayer-time/internal/infra/config"
	"github.com/anarefin/prayer-time/internal/platform/di/shared"
	"github.com/anarefin/prayer-time/internal/platform/logger"
)

var ErrAuthNotConfigured = errors.New("di.admin: firebase auth is not initialized")

// Container wires the seeding use cases onto shared infra.
type Container struct {
	Infra    *shared.Infra
	Config   *appcfg.Config
	Log      logger.Logger
	Store    seeding.Store
	Fixtures *fixtures.Loader
}

// NewContainer builds infra and selects the document store backend from cfg.
func NewContainer(ctx context.Context, cfg *appcfg.Config, log logger.Logger, needs shared.Needs) (*Container, error) {
	if log == nil {
		log = logger.Discard()
	}
	inf, err := shared.NewInfra(ctx, cfg, log, needs)
	if err != nil {
		return nil, err
	}
	return newContainer(inf, log), nil
}

func newContainer(inf *shared.Infra, log logger.Logger) *Container {
	c := &Container{Infra: inf, Config: inf.Config, Log: log}

	if inf.DB != nil {
		c.Store = dbadapter.NewDocumentStorePG(inf.DB.Client)
	} else {
		c.Store = fsadapter.NewDocumentStoreFS(inf.Firestore)
	}

	var remote fixtures.RemoteSource
	if inf.GCS != nil {
		remote = gcs.NewFixtureSourceGCS(inf.GCS)
	}
	c.Fixtures = fixtures.NewLoader(inf.Config.FixtureOverrides(), remote)
	return c
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	return c.Infra.Close()
}

func (c *Container) GeographySeeder() *seeding.GeographySeeder {
	return seeding.NewGeographySeeder(c.Store, c.Config.BatchLimit, c.Log)
}

func (c *Container) PrayerTimeSeeder() (*seeding.PrayerTimeSeeder, error) {
	loc, err := c.Config.Location()
	if err != nil {
		return nil, err
	}
	gen := prayertime.NewGenerator(prayertime.DhakaBase, prayertime.UniformJitter(nil))
	return seeding.NewPrayerTimeSeeder(c.Store, c.Config.BatchLimit, gen, c.Config.PrayerDays, loc, c.Log), nil
}

func (c *Container) MosqueSeeder() (*seeding.MosqueSeeder, error) {
	pt, err := c.PrayerTimeSeeder()
	if err != nil {
		return nil, err
	}
	return seeding.NewMosqueSeeder(c.Store, c.Config.BatchLimit, c.Config.MosqueDistrict, pt, c.Log), nil
}

func (c *Container) ProfileSeeder() (*seeding.ProfileSeeder, error) {
	if c.Infra.FirebaseAuth == nil {
		return nil, ErrAuthNotConfigured
	}
	dir := firebaseauth.NewAccountDirectory(c.Infra.FirebaseAuth)
	return seeding.NewProfileSeeder(dir, c.Store, c.Log), nil
}

func (c *Container) SampleImporter() *seeding.SampleImporter {
	return seeding.NewSampleImporter(c.Store, c.Config.BatchLimit, c.Log)
}

func (c *Container) Inspector() *seeding.Inspector {
	return seeding.NewInspector(c.Store)
}
