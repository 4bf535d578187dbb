// cmd/init_firestore/main.go
package main

import (
	"context"
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

	log.Infof("🚀 Starting Firestore initialization...")
	log.Infof("Project ID: %s", c.Infra.ProjectID)
	if err := c.Infra.Ping(ctx); err != nil {
		log.Errorf("❌ Cannot reach the document store: %v", err)
		admin.LogSetupHelp(log)
		return 1
	}

	data, err := c.Fixtures.SampleData(ctx)
	if err != nil {
		log.Errorf("❌ Failed to load sample data: %v", err)
		return 1
	}
	log.Infof("✅ Sample data loaded")

	rep, err := c.SampleImporter().Run(ctx, data)
	if err != nil {
		log.Errorf("❌ Initialization failed: %v", err)
		return 1
	}

	log.Infof("✅ Initialization complete!")
	log.Infof("   📊 Total documents created: %d", rep.TotalCreated())
	log.Infof("📋 Final collection counts:")
	for _, col := range seeding.VerifiedCollections {
		log.Infof("   - %s: %d", col, rep.Counts[col])
	}
	return 0
}
