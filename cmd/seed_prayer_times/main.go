// cmd/seed_prayer_times/main.go
package main

import (
	"context"
	"os"
	"os/signal"
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

	s, err := c.PrayerTimeSeeder()
	if err != nil {
		log.Errorf("❌ %v", err)
		return 1
	}

	rep, err := s.SeedAll(ctx)
	if err != nil {
		log.Errorf("❌ Seeding failed: %v", err)
		return 1
	}
	if rep.Mosques == 0 && !rep.Skipped {
		log.Warnf("⚠️  No mosques found. Run seed_mosques first.")
	}
	log.Infof("📊 Prayer times: %d across %d mosques (%d commits)", rep.Written, rep.Mosques, rep.Commits)
	return 0
}
