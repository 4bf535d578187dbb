// cmd/seed_users/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/anarefin/prayer-time/internal/domain/user"
	"github.com/anarefin/prayer-time/internal/platform/di/admin"
	"github.com/anarefin/prayer-time/internal/platform/di/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx))
}

func run(ctx context.Context) int {
	c, log, err := admin.Setup(ctx, shared.Needs{Auth: true})
	if err != nil {
		log.Errorf("❌ Failed to initialize Firebase Admin: %v", err)
		admin.LogSetupHelp(log)
		return 1
	}
	defer c.Close()

	accounts, err := c.Fixtures.Accounts(ctx)
	if err != nil {
		log.Errorf("❌ Failed to load accounts: %v", err)
		return 1
	}

	s, err := c.ProfileSeeder()
	if err != nil {
		log.Errorf("❌ %v", err)
		return 1
	}

	results := s.Run(ctx, accounts)

	log.Infof("%s", strings.Repeat("─", 50))
	log.Infof("📊 Summary:")
	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
			continue
		}
		icon := "👤"
		if r.Account.Role == user.RoleAdmin {
			icon = "👑"
		}
		log.Infof("✅ %s %s (%s), UID: %s", icon, r.Account.Email, r.Account.Role, r.UID)
	}
	for _, r := range results {
		if !r.OK() {
			log.Errorf("❌ %s: %v", r.Account.Email, r.Err)
		}
	}
	if failed > 0 {
		log.Infof("💡 Logins are not created here. Add missing accounts in the Firebase console (Authentication > Users) and run again.")
		return 1
	}
	return 0
}
