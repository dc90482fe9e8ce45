package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	cartpostgres "github.com/drdrak3/silvershop-core/internal/domains/cart/adapters/persistence/postgres"
	platformpostgres "github.com/drdrak3/silvershop-core/internal/platform/postgres"
)

// Housekeeping binary: drops expired session bindings and deletes carts
// untouched past the idle cutoff. Run from cron.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge carts")
	}

	binding := cartpostgres.NewSessionBinding(db, bindingTTLFromEnv())
	if err := binding.PurgeExpired(ctx); err != nil {
		log.Fatalf("failed to purge expired bindings: %v", err)
	}

	repo := cartpostgres.NewRepository(db)
	cutoff := time.Now().Add(-idleCutoffFromEnv())
	carts, err := repo.ListIdleCarts(ctx, cutoff)
	if err != nil {
		log.Fatalf("failed to list idle carts: %v", err)
	}
	for _, cart := range carts {
		if err := repo.DeleteOrder(ctx, cart.ID); err != nil {
			log.Fatalf("failed to delete idle cart %d: %v", cart.ID, err)
		}
	}
	log.Printf("cart purge completed, %d idle carts removed", len(carts))
}

func bindingTTLFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS"))
	if raw == "" {
		return cartpostgres.DefaultBindingTTL
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return cartpostgres.DefaultBindingTTL
	}
	return time.Duration(hours) * time.Hour
}

func idleCutoffFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("CART_IDLE_DAYS"))
	if raw == "" {
		return 30 * 24 * time.Hour
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 30 * 24 * time.Hour
	}
	return time.Duration(days) * 24 * time.Hour
}
