// cmd/seed_geography/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/anarefin/prayer-time/internal/platform/di/admin"
	"github.com/anarefin/prayer-time/internal/platform/di/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx))
}

func run(ctx context.Context) int {
	c, log, err := admin.Setup(ctx, shared.Needs{})
	if err != nil {
		log.Errorf("❌ Failed to initialize: %v", err)
		admin.LogSetupHelp(log)
		return 1
	}
	defer c.Close()

	log.Infof("🚀 Bangladesh Data Seeding Script (Full Data)")
	log.Infof("%s", strings.Repeat("=", 50))

	src, err := c.Fixtures.Geography(ctx)
	if err != nil {
		log.Errorf("❌ Failed to load source data: %v", err)
		return 1
	}
	log.Infof("✅ Source data loaded (%d divisions, %d districts, %d upazilas, %d thanas)",
		len(src.Divisions), len(src.Districts), len(src.Upazilas), len(src.Thanas))

	rep, err := c.GeographySeeder().Run(ctx, src)
	if err != nil {
		log.Errorf("❌ Seeding failed: %v", err)
		return 1
	}

	log.Infof("%s", strings.Repeat("=", 50))
	log.Infof("✨ Data seeding process completed.")
	log.Infof("   📊 districts: %d (%d commits), areas: %d (%d upazilas, %d thanas, %d commits)",
		rep.Districts, rep.DistrictCommits, rep.Areas(), rep.Upazilas, rep.Thanas, rep.AreaCommits)
	if rep.UnmappedUpazilas > 0 {
		log.Warnf("   ⚠️  %d upazilas skipped (district not found)", rep.UnmappedUpazilas)
	}
	if rep.DistrictsSkipped || rep.AreasSkipped {
		log.Infof("💡 Note: If you see \"Skipping...\" messages, clear the \"districts\" and \"areas\" collections and run this command again.")
	}
	return 0
}
