// internal/application/seeding/prayer_times.go
package seeding

import (
	"context"
	"fmt"
	"time"

	"github.com/anarefin/prayer-time/internal/domain/mosque"
	"github.com/anarefin/prayer-time/internal/domain/prayertime"
	"github.com/anarefin/prayer-time/internal/platform/logger"
)

// DefaultPrayerDays is the forward window written per mosque.
const DefaultPrayerDays = 30

// PrayerTimeReport summarises a run.
type PrayerTimeReport struct {
	Skipped bool
	Mosques int
	Days    int
	Written int
	Commits int
}

// PrayerTimeSeeder writes synthetic schedules for mosques.
type PrayerTimeSeeder struct {
	Store      Store
	BatchLimit int
	Log        logger.Logger
	Generator  *prayertime.Generator
	Days       int
	Location   *time.Location
	Now        func() time.Time
}

// NewPrayerTimeSeeder wires a seeder. A nil location means time.Local.
func NewPrayerTimeSeeder(store Store, batchLimit int, gen *prayertime.Generator, days int, loc *time.Location, log logger.Logger) *PrayerTimeSeeder {
	if log == nil {
		log = logger.Discard()
	}
	if gen == nil {
		gen = prayertime.NewGenerator(prayertime.DhakaBase, nil)
	}
	if days <= 0 {
		days = DefaultPrayerDays
	}
	if loc == nil {
		loc = time.Local
	}
	return &PrayerTimeSeeder{
		Store:      store,
		BatchLimit: batchLimit,
		Log:        log.WithComponent("seed.prayer_times"),
		Generator:  gen,
		Days:       days,
		Location:   loc,
		Now:        time.Now,
	}
}

// Seed writes Days schedules for each mosque id starting today, unless the
// prayer_times collection already holds documents.
func (s *PrayerTimeSeeder) Seed(ctx context.Context, mosqueIDs []string) (PrayerTimeReport, error) {
	rep := PrayerTimeReport{Days: s.Days}
	s.Log.Infof("⏰ Seeding prayer times...")

	exists, err := s.Store.HasDocuments(ctx, prayertime.Collection)
	if err != nil {
		return rep, fmt.Errorf("check %s: %w", prayertime.Collection, err)
	}
	if exists {
		rep.Skipped = true
		s.Log.Warnf("⚠️  Prayer times already exist. Skipping prayer time seeding...")
		return rep, nil
	}

	dates := prayertime.Window(s.Now().In(s.Location), s.Days)
	w := NewBatchWriter(s.Store, s.BatchLimit, "prayer times", s.Log)

mosques:
	for _, mosqueID := range mosqueIDs {
		s.Log.Debugf("📅 Generating prayer times for mosque: %s", mosqueID)
		for _, day := range dates {
			pt, err := prayertime.New(mosqueID, day, s.Generator.Times(day))
			if err != nil {
				s.Log.Warnf("⚠️  Skipping prayer times for mosque %q: %v", mosqueID, err)
				continue mosques
			}
			if err := w.Set(ctx, prayertime.Collection, pt.ID(), pt.Doc()); err != nil {
				return rep, err
			}
		}
		rep.Mosques++
	}
	if err := w.Flush(ctx); err != nil {
		return rep, err
	}

	rep.Written = w.Written()
	rep.Commits = w.Commits()
	s.Log.Infof("✅ Successfully seeded %d prayer times! (%d mosques, %d days per mosque, Jummah on Fridays)", rep.Written, rep.Mosques, rep.Days)
	return rep, nil
}

// SeedAll seeds schedules for every stored mosque.
func (s *PrayerTimeSeeder) SeedAll(ctx context.Context) (PrayerTimeReport, error) {
	docs, err := s.Store.List(ctx, mosque.Collection, 0)
	if err != nil {
		return PrayerTimeReport{}, fmt.Errorf("list %s: %w", mosque.Collection, err)
	}
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	s.Log.Infof("✓ Found %d mosques", len(ids))
	return s.Seed(ctx, ids)
}
