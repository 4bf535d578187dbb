// internal/application/seeding/geography.go
package seeding

import (
	"context"
	"fmt"
	"strings"

	"github.com/anarefin/prayer-time/internal/domain/geo"
	"github.com/anarefin/prayer-time/internal/platform/logger"
)

// DefaultThanaDistrict is the district the city thanas belong to.
const DefaultThanaDistrict = "Dhaka"

// GeographySource is the external reference data for one seeding run.
type GeographySource struct {
	Divisions []geo.DivisionRow
	Districts []geo.DistrictRow
	Upazilas  []geo.UpazilaRow
	Thanas    []geo.Thana
	// ThanaDistrict is the source district name the thanas attach to.
	ThanaDistrict string
}

// GeographyReport summarises a run.
type GeographyReport struct {
	DistrictsSkipped bool
	Districts        int
	DistrictCommits  int

	AreasSkipped     bool
	Upazilas         int
	Thanas           int
	UnmappedUpazilas int
	ThanasSkipped    bool
	AreaCommits      int
}

// Areas is the number of area documents written.
func (r GeographyReport) Areas() int { return r.Upazilas + r.Thanas }

// GeographySeeder imports districts and their areas.
type GeographySeeder struct {
	Store      Store
	BatchLimit int
	Log        logger.Logger
}

// NewGeographySeeder wires a seeder.
func NewGeographySeeder(store Store, batchLimit int, log logger.Logger) *GeographySeeder {
	if log == nil {
		log = logger.Discard()
	}
	return &GeographySeeder{Store: store, BatchLimit: batchLimit, Log: log.WithComponent("seed.geography")}
}

// Run seeds districts, then areas. When districts already exist nothing is written:
// generated ids cannot be joined back to source ids, so areas are not attempted either.
func (s *GeographySeeder) Run(ctx context.Context, src GeographySource) (GeographyReport, error) {
	var rep GeographyReport

	idMap, err := s.SeedDistricts(ctx, src, &rep)
	if err != nil {
		return rep, err
	}
	if idMap == nil {
		return rep, nil
	}

	if err := s.SeedAreas(ctx, src, idMap, &rep); err != nil {
		return rep, err
	}
	return rep, nil
}

// SeedDistricts writes one document per source district and returns the
// source id -> document id map, or nil when the collection was already populated.
func (s *GeographySeeder) SeedDistricts(ctx context.Context, src GeographySource, rep *GeographyReport) (map[string]string, error) {
	s.Log.Infof("🌍 Starting to seed Bangladesh districts...")

	exists, err := s.Store.HasDocuments(ctx, geo.DistrictsCollection)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", geo.DistrictsCollection, err)
	}
	if exists {
		rep.DistrictsSkipped = true
		s.Log.Warnf("⚠️  Districts already exist. Skipping district seeding...")
		s.Log.Warnf("⚠️  Cannot safely map existing districts to source data for area seeding.")
		s.Log.Warnf("⚠️  Delete the '%s' and '%s' collections to re-seed.", geo.DistrictsCollection, geo.AreasCollection)
		return nil, nil
	}

	divisionNames := make(map[string]string, len(src.Divisions))
	for _, d := range src.Divisions {
		divisionNames[d.ID] = d.Name
	}

	w := NewBatchWriter(s.Store, s.BatchLimit, "districts", s.Log)
	idMap := make(map[string]string, len(src.Districts))

	for _, row := range src.Districts {
		d, err := geo.NewDistrict(row, divisionNames)
		if err != nil {
			s.Log.Warnf("⚠️  Skipping district id=%s: %v", row.ID, err)
			continue
		}
		id := s.Store.NewID(geo.DistrictsCollection)
		if err := w.Set(ctx, geo.DistrictsCollection, id, d.Doc()); err != nil {
			return nil, err
		}
		idMap[row.ID] = id
	}
	if err := w.Flush(ctx); err != nil {
		return nil, err
	}

	rep.Districts = w.Written()
	rep.DistrictCommits = w.Commits()
	s.Log.Infof("✅ Successfully seeded %d districts!", rep.Districts)
	return idMap, nil
}

// SeedAreas writes upazilas and city thanas that reference the generated district ids.
func (s *GeographySeeder) SeedAreas(ctx context.Context, src GeographySource, idMap map[string]string, rep *GeographyReport) error {
	s.Log.Infof("🏘️  Starting to seed areas (Upazilas & Thanas)...")

	exists, err := s.Store.HasDocuments(ctx, geo.AreasCollection)
	if err != nil {
		return fmt.Errorf("check %s: %w", geo.AreasCollection, err)
	}
	if exists {
		rep.AreasSkipped = true
		s.Log.Warnf("⚠️  Areas already exist. Skipping area seeding...")
		return nil
	}

	w := NewBatchWriter(s.Store, s.BatchLimit, "areas", s.Log)

	s.Log.Infof("📍 Processing standard Upazilas...")
	for _, row := range src.Upazilas {
		districtID, ok := idMap[row.DistrictID]
		if !ok || districtID == "" {
			rep.UnmappedUpazilas++
			s.Log.Warnf("⚠️  Skipping upazila %s: District ID %s not found in map.", row.Name, row.DistrictID)
			continue
		}
		a, err := geo.NewUpazilaArea(row, districtID)
		if err != nil {
			s.Log.Warnf("⚠️  Skipping upazila id=%s: %v", row.ID, err)
			continue
		}
		if err := w.Set(ctx, geo.AreasCollection, s.Store.NewID(geo.AreasCollection), a.Doc()); err != nil {
			return err
		}
		rep.Upazilas++
	}

	if err := s.seedThanas(ctx, src, idMap, w, rep); err != nil {
		return err
	}

	if err := w.Flush(ctx); err != nil {
		return err
	}
	rep.AreaCommits = w.Commits()
	s.Log.Infof("✅ Successfully seeded %d areas (Upazilas & Thanas)!", rep.Areas())
	return nil
}

func (s *GeographySeeder) seedThanas(ctx context.Context, src GeographySource, idMap map[string]string, w *BatchWriter, rep *GeographyReport) error {
	if len(src.Thanas) == 0 {
		return nil
	}
	districtName := strings.TrimSpace(src.ThanaDistrict)
	if districtName == "" {
		districtName = DefaultThanaDistrict
	}

	sourceID := ""
	for _, d := range src.Districts {
		if d.Name == districtName {
			sourceID = d.ID
			break
		}
	}
	if sourceID == "" {
		rep.ThanasSkipped = true
		s.Log.Warnf("⚠️  Creation of %s Thanas skipped: %s district not found in source data.", districtName, districtName)
		return nil
	}
	districtID, ok := idMap[sourceID]
	if !ok || districtID == "" {
		rep.ThanasSkipped = true
		s.Log.Warnf("⚠️  Creation of %s Thanas skipped: %s district ID not found in map.", districtName, districtName)
		return nil
	}

	s.Log.Infof("📍 Processing %s City Thanas...", districtName)
	for _, t := range src.Thanas {
		a, err := geo.NewThanaArea(t, districtID, rep.Areas())
		if err != nil {
			s.Log.Warnf("⚠️  Skipping thana %q: %v", t.Name, err)
			continue
		}
		if err := w.Set(ctx, geo.AreasCollection, s.Store.NewID(geo.AreasCollection), a.Doc()); err != nil {
			return err
		}
		rep.Thanas++
	}
	return nil
}
