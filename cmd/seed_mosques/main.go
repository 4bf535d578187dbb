// cmd/seed_mosques/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/anarefin/prayer-time/internal/application/seeding"
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

	mosques, err := c.Fixtures.Mosques(ctx)
	if err != nil {
		log.Errorf("❌ Failed to load mosques: %v", err)
		return 1
	}

	s, err := c.MosqueSeeder()
	if err != nil {
		log.Errorf("❌ %v", err)
		return 1
	}

	rep, err := s.Run(ctx, mosques)
	if err != nil {
		if errors.Is(err, seeding.ErrDistrictNotFound) {
			log.Errorf("❌ %v", err)
			log.Infof("💡 Run seed_geography first.")
			return 1
		}
		log.Errorf("❌ Seeding failed: %v", err)
		return 1
	}

	log.Infof("🎉 Seeding completed successfully!")
	log.Infof("📊 Summary:")
	log.Infof("   - Mosques: %d (area not found: %d, invalid: %d)", rep.Mosques, rep.Unmatched, rep.Invalid)
	if rep.PrayerTimes.Skipped {
		log.Infof("   - Prayer times: already present, not regenerated")
	} else {
		log.Infof("   - Prayer times: %d (%d days per mosque)", rep.PrayerTimes.Written, rep.PrayerTimes.Days)
	}
	return 0
}
