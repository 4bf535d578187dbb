// internal/application/seeding/sample_import.go
package seeding

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/anarefin/prayer-time/internal/domain/common"
	"github.com/anarefin/prayer-time/internal/domain/geo"
	"github.com/anarefin/prayer-time/internal/domain/mosque"
	"github.com/anarefin/prayer-time/internal/domain/prayertime"
	"github.com/anarefin/prayer-time/internal/domain/user"
	"github.com/anarefin/prayer-time/internal/platform/logger"
)

// VerifiedCollections are the collections counted after an import.
var VerifiedCollections = []string{user.Collection, geo.AreasCollection, mosque.Collection, prayertime.Collection}

// SampleData is a document set keyed by collection, then document id.
type SampleData struct {
	Users       []user.Account           `json:"users"`
	Areas       map[string]common.Fields `json:"areas"`
	Mosques     map[string]common.Fields `json:"mosques"`
	PrayerTimes map[string]common.Fields `json:"prayer_times"`
}

// ImportReport summarises a run.
type ImportReport struct {
	RoleUpdates int
	Created     map[string]int
	Existing    map[string]int
	Counts      map[string]int
}

// TotalCreated sums created documents over all collections.
func (r ImportReport) TotalCreated() int {
	n := 0
	for _, v := range r.Created {
		n += v
	}
	return n
}

// SampleImporter loads a fixed document set, leaving existing documents untouched.
type SampleImporter struct {
	Store      Store
	BatchLimit int
	Log        logger.Logger
}

// NewSampleImporter wires an importer.
func NewSampleImporter(store Store, batchLimit int, log logger.Logger) *SampleImporter {
	if log == nil {
		log = logger.Discard()
	}
	return &SampleImporter{Store: store, BatchLimit: batchLimit, Log: log.WithComponent("init")}
}

// Run updates user roles, imports areas, mosques and prayer times, then counts
// every verified collection.
func (im *SampleImporter) Run(ctx context.Context, data SampleData) (ImportReport, error) {
	rep := ImportReport{Created: map[string]int{}, Existing: map[string]int{}}

	rep.RoleUpdates = im.updateRoles(ctx, data.Users)

	sets := []struct {
		collection string
		docs       map[string]common.Fields
	}{
		{geo.AreasCollection, data.Areas},
		{mosque.Collection, data.Mosques},
		{prayertime.Collection, data.PrayerTimes},
	}
	for _, s := range sets {
		created, existing, err := im.importCollection(ctx, s.collection, s.docs)
		if err != nil {
			return rep, err
		}
		rep.Created[s.collection] = created
		rep.Existing[s.collection] = existing
	}

	counts, err := CountCollections(ctx, im.Store, VerifiedCollections)
	if err != nil {
		return rep, err
	}
	rep.Counts = counts
	return rep, nil
}

func (im *SampleImporter) updateRoles(ctx context.Context, accounts []user.Account) int {
	im.Log.Infof("👥 Updating user roles...")
	n := 0
	for _, a := range accounts {
		if err := a.Validate(); err != nil {
			im.Log.Warnf("   ⚠️  Could not update %s: %v", a.Email, err)
			continue
		}
		if err := MergeProfile(ctx, im.Store, a.UID, a.User()); err != nil {
			im.Log.Warnf("   ⚠️  Could not update %s: %v", a.Email, err)
			continue
		}
		n++
		im.Log.Infof("   ✓ Updated %s (%s)", a.Email, a.Role)
	}
	return n
}

// importCollection queues every document whose id is not yet stored.
func (im *SampleImporter) importCollection(ctx context.Context, collection string, docs map[string]common.Fields) (created, existing int, err error) {
	im.Log.Infof("📦 Initializing %s collection...", collection)

	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	w := NewBatchWriter(im.Store, im.BatchLimit, collection, im.Log)
	for _, id := range ids {
		_, err := im.Store.Get(ctx, collection, id)
		switch {
		case err == nil:
			existing++
			im.Log.Warnf("   ⚠️  Document %s already exists, skipping", id)
			continue
		case !errors.Is(err, common.ErrNotFound):
			return 0, existing, fmt.Errorf("read %s/%s: %w", collection, id, err)
		}
		if err := w.Set(ctx, collection, id, docs[id]); err != nil {
			return 0, existing, err
		}
	}
	if err := w.Flush(ctx); err != nil {
		return 0, existing, err
	}

	created = w.Written()
	if created > 0 {
		im.Log.Infof("   ✅ Created %d documents in %s", created, collection)
	} else {
		im.Log.Infof("   ℹ️  No new documents to create")
	}
	return created, existing, nil
}

// CountCollections returns the document count of each collection.
func CountCollections(ctx context.Context, store Store, collections []string) (map[string]int, error) {
	out := make(map[string]int, len(collections))
	for _, c := range collections {
		n, err := store.Count(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c, err)
		}
		out[c] = n
	}
	return out, nil
}
