// cmd/check_firestore/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/anarefin/prayer-time/internal/application/seeding"
	"github.com/anarefin/prayer-time/internal/domain/geo"
	"github.com/anarefin/prayer-time/internal/platform/di/admin"
	"github.com/anarefin/prayer-time/internal/platform/di/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Stdout))
}

func run(ctx context.Context, out io.Writer) int {
	c, log, err := admin.Setup(ctx, shared.Needs{})
	if err != nil {
		log.Errorf("❌ Failed to initialize: %v", err)
		admin.LogSetupHelp(log)
		return 1
	}
	defer c.Close()

	if err := c.Infra.Ping(ctx); err != nil {
		log.Errorf("❌ Cannot reach the document store: %v", err)
		admin.LogSetupHelp(log)
		return 1
	}

	in := c.Inspector()
	dumps, missing, err := in.Users(ctx, c.Config.InspectUIDs, c.Config.InspectLimit)
	if err != nil {
		log.Errorf("❌ Error: %v", err)
		return 1
	}

	rule := strings.Repeat("=", 50)
	fmt.Fprintf(out, "\n🔍 Checking Firestore User Data\n\n%s\n", rule)
	for _, d := range dumps {
		printUser(out, d)
		fmt.Fprintf(out, "\n%s\n", rule)
	}
	for _, uid := range missing {
		fmt.Fprintf(out, "\nUID: %s\n❌ User document DOES NOT EXIST in Firestore!\n\n%s\n", uid, rule)
	}

	counts, err := in.Counts(ctx, append([]string{geo.DistrictsCollection}, seeding.VerifiedCollections...))
	if err != nil {
		log.Errorf("❌ Error: %v", err)
		return 1
	}
	fmt.Fprintf(out, "\n📋 Collection counts:\n")
	for _, col := range append([]string{geo.DistrictsCollection}, seeding.VerifiedCollections...) {
		fmt.Fprintf(out, "   - %s: %d\n", col, counts[col])
	}
	return 0
}

func printUser(out io.Writer, d seeding.UserDump) {
	a := d.Analysis
	fmt.Fprintf(out, "\n👤 User: %s\nUID: %s\n", a.Email, d.Document.ID)

	raw, err := json.MarshalIndent(d.Document.Fields, "", "  ")
	if err != nil {
		raw = []byte(fmt.Sprintf("%v", d.Document.Fields))
	}
	fmt.Fprintf(out, "\n📄 Raw Firestore Data:\n%s\n", raw)

	arr := "NOT ARRAY"
	if a.FavoritesIsArray {
		arr = "Array"
	}
	fmt.Fprintf(out, "\n🔍 Field Analysis:\n")
	fmt.Fprintf(out, "  email: %s = %q\n", a.EmailType, a.Email)
	fmt.Fprintf(out, "  role: %s = %q\n", a.RoleType, a.Role)
	fmt.Fprintf(out, "  favorites: %s = %s\n", a.FavoritesType, arr)
	if a.FavoritesIsArray {
		fmt.Fprintf(out, "  favorites length: %d\n", a.FavoritesLen)
	}
}
