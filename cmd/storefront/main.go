package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shop-smart/storefront-client/internal/api"
	"github.com/shop-smart/storefront-client/internal/checkout"
	"github.com/shop-smart/storefront-client/internal/config"
	"github.com/shop-smart/storefront-client/internal/ops"
	"github.com/shop-smart/storefront-client/internal/payment"
	"github.com/shop-smart/storefront-client/internal/session"
	"github.com/shop-smart/storefront-client/internal/store"
	"github.com/shop-smart/storefront-client/internal/telemetry"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx := context.Background()

	// Trace pipeline (no-op without an endpoint)
	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		slog.Error("❌ Error setting up telemetry", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdownTelemetry(flushCtx); err != nil {
			slog.Error("⚠️ Error flushing telemetry", slog.String("error", err.Error()))
		}
	}()

	// Backend client and session
	tokens := session.NewFileTokenStore(cfg.TokenPath())
	apiClient := api.New(cfg.Backend.BaseURL, tokens,
		api.WithLogger(logger),
		api.WithTimeout(cfg.Backend.Timeout),
	)

	sessions := session.NewManager(apiClient, tokens, session.WithLogger(logger))
	sessions.Restore(ctx)

	// Stores
	cart := store.NewCartStore(apiClient, sessions,
		store.WithCartLogger(logger),
		store.WithCommitDelay(cfg.Store.CommitDelay),
	)
	wishlist := store.NewWishlistStore(apiClient, sessions, logger)
	catalog := store.NewCatalog(apiClient,
		store.WithCatalogLogger(logger),
		store.WithDebounce(cfg.Store.DebounceInterval),
	)
	orders := store.NewOrderStore(apiClient, sessions, logger)

	// Checkout refreshes the cart after a confirmed order
	gateway := payment.NewWidget(cfg.Payment.KeyID, cfg.Payment.MerchantName, payment.Unattended{})
	orchestrator := checkout.New(apiClient, sessions, gateway,
		checkout.WithLogger(logger),
		checkout.WithSuccessHook(func(ctx context.Context) {
			if err := cart.Refresh(ctx); err != nil {
				slog.Warn("cart refresh after order failed", slog.String("error", err.Error()))
			}
		}),
	)

	// Warm the caches for a signed-in user
	if sessions.Current().Authenticated() {
		if err := cart.Refresh(ctx); err != nil {
			slog.Warn("initial cart refresh failed", slog.String("error", err.Error()))
		}

		wishlist.Prefetch(ctx)

		if err := orders.Refresh(ctx); err != nil {
			slog.Warn("initial order refresh failed", slog.String("error", err.Error()))
		}
	}

	if err := catalog.Refresh(ctx); err != nil {
		slog.Warn("initial catalog fetch failed", slog.String("error", err.Error()))
	}

	slog.Info("storefront client initialized",
		slog.String("env", cfg.Env),
		slog.String("backend", cfg.Backend.BaseURL),
		slog.String("checkout", string(orchestrator.State())),
	)

	// Ops server: /status and /metrics
	opsServer, err := ops.NewServer(cfg.Ops.Addr, cfg.Backend.BaseURL)
	if err != nil {
		slog.Error("❌ Error building the ops server", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("🚀 Ops server is starting...", slog.String("address", cfg.Ops.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := opsServer.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start ops server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop...")

	// Push pending cart writes before exit
	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := cart.Flush(flushCtx); err != nil {
		slog.Warn("⚠️ Could not flush pending cart changes", slog.String("error", err.Error()))
	}

	if err := opsServer.Shutdown(flushCtx); err != nil {
		slog.Error("⚠️ Ops server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Ops server shut down gracefully. All connections closed.")
	}

}
