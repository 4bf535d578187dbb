// internal/application/seeding/mosques.go
package seeding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anarefin/prayer-time/internal/domain/geo"
	"github.com/anarefin/prayer-time/internal/domain/mosque"
	"github.com/anarefin/prayer-time/internal/platform/logger"
)

// ErrDistrictNotFound means the target district has not been seeded yet.
var ErrDistrictNotFound = errors.New("seeding: district not found (seed districts first)")

// MosqueReport summarises a run.
type MosqueReport struct {
	Skipped     bool
	DistrictID  string
	Areas       int
	Mosques     int
	Unmatched   int
	Invalid     int
	Commits     int
	MosqueIDs   []string
	PrayerTimes PrayerTimeReport
}

// MosqueSeeder imports fixture mosques into the areas of one district.
type MosqueSeeder struct {
	Store       Store
	BatchLimit  int
	Log         logger.Logger
	District    string
	PrayerTimes *PrayerTimeSeeder
}

// NewMosqueSeeder wires a seeder. prayerTimes may be nil to skip schedule generation.
func NewMosqueSeeder(store Store, batchLimit int, district string, prayerTimes *PrayerTimeSeeder, log logger.Logger) *MosqueSeeder {
	if log == nil {
		log = logger.Discard()
	}
	if strings.TrimSpace(district) == "" {
		district = DefaultThanaDistrict
	}
	return &MosqueSeeder{
		Store:       store,
		BatchLimit:  batchLimit,
		Log:         log.WithComponent("seed.mosques"),
		District:    strings.TrimSpace(district),
		PrayerTimes: prayerTimes,
	}
}

// Run writes every fixture mosque whose area name exactly matches a seeded area
// of the district, then seeds prayer times for the new mosques.
func (s *MosqueSeeder) Run(ctx context.Context, fixtures []mosque.FixtureMosque) (MosqueReport, error) {
	var rep MosqueReport
	s.Log.Infof("🕌 Starting to seed %s mosques...", s.District)

	exists, err := s.Store.HasDocuments(ctx, mosque.Collection)
	if err != nil {
		return rep, fmt.Errorf("check %s: %w", mosque.Collection, err)
	}
	if exists {
		rep.Skipped = true
		s.Log.Warnf("⚠️  Mosques already exist. Skipping mosque seeding...")
		s.Log.Warnf("   To re-seed, delete the %s collection first.", mosque.Collection)
		return rep, nil
	}

	districts, err := s.Store.FindEqual(ctx, geo.DistrictsCollection, "name", s.District, 1)
	if err != nil {
		return rep, fmt.Errorf("find district %q: %w", s.District, err)
	}
	if len(districts) == 0 {
		return rep, fmt.Errorf("%w: %s", ErrDistrictNotFound, s.District)
	}
	rep.DistrictID = districts[0].ID
	s.Log.Infof("✓ Found %s district: %s", s.District, rep.DistrictID)

	areaIDs, err := s.areaIndex(ctx, rep.DistrictID)
	if err != nil {
		return rep, err
	}
	rep.Areas = len(areaIDs)
	s.Log.Infof("✓ Found %d areas in %s district", rep.Areas, s.District)

	w := NewBatchWriter(s.Store, s.BatchLimit, "mosques", s.Log)
	for _, f := range fixtures {
		areaID, ok := areaIDs[f.AreaName]
		if !ok {
			rep.Unmatched++
			s.Log.Warnf("⚠️  Area %q not found, skipping %s", f.AreaName, f.Name)
			continue
		}
		m, err := f.Bind(areaID)
		if err != nil {
			rep.Invalid++
			s.Log.Warnf("⚠️  Skipping invalid mosque %q: %v", f.Name, err)
			continue
		}
		id := s.Store.NewID(mosque.Collection)
		if err := w.Set(ctx, mosque.Collection, id, m.Doc()); err != nil {
			return rep, err
		}
		rep.MosqueIDs = append(rep.MosqueIDs, id)
		s.Log.Debugf("✓ Adding: %s (%s)", f.Name, f.AreaName)
	}
	if err := w.Flush(ctx); err != nil {
		return rep, err
	}
	rep.Mosques = w.Written()
	rep.Commits = w.Commits()

	s.Log.Infof("✅ Successfully seeded %d mosques!", rep.Mosques)
	if rep.Unmatched > 0 {
		s.Log.Warnf("⚠️  Skipped %d mosques (areas not found)", rep.Unmatched)
	}
	if rep.Invalid > 0 {
		s.Log.Warnf("⚠️  Skipped %d invalid mosques", rep.Invalid)
	}

	if s.PrayerTimes != nil && len(rep.MosqueIDs) > 0 {
		pt, err := s.PrayerTimes.Seed(ctx, rep.MosqueIDs)
		rep.PrayerTimes = pt
		if err != nil {
			return rep, err
		}
	}
	return rep, nil
}

// areaIndex maps area name -> document id for the district. On duplicate names the
// first document (by id order of the store) wins.
func (s *MosqueSeeder) areaIndex(ctx context.Context, districtID string) (map[string]string, error) {
	docs, err := s.Store.FindEqual(ctx, geo.AreasCollection, "districtId", districtID, 0)
	if err != nil {
		return nil, fmt.Errorf("find areas of district %s: %w", districtID, err)
	}
	out := make(map[string]string, len(docs))
	for _, d := range docs {
		name := d.String("name")
		if name == "" {
			continue
		}
		if prev, dup := out[name]; dup {
			s.Log.Warnf("⚠️  Duplicate area name %q (%s, %s); using %s", name, prev, d.ID, prev)
			continue
		}
		out[name] = d.ID
	}
	return out, nil
}
