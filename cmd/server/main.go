package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "modernc.org/sqlite"

	emailPkg "tennisclub/internal/adapters/email"
	web "tennisclub/internal/adapters/http"
	"tennisclub/internal/adapters/storage"
	"tennisclub/internal/adapters/storage/gateway"
	groupSessionStore "tennisclub/internal/adapters/storage/groupsession"
	playerStore "tennisclub/internal/adapters/storage/player"
	reportStore "tennisclub/internal/adapters/storage/report"
	"tennisclub/internal/adapters/storage/rest"
	tournamentStore "tennisclub/internal/adapters/storage/tournament"
	planStore "tennisclub/internal/adapters/storage/trainingplan"
	"tennisclub/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.Production() {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, handlerOpts)))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, handlerOpts)))
	}

	var backend gateway.Backend
	switch cfg.StoreKind {
	case config.StoreSQLite:
		db, err := storage.OpenSQLite(cfg.StorePath)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()
		if err := storage.InitDB(db); err != nil {
			log.Fatalf("failed to initialise schema: %v", err)
		}
		backend = storage.NewSQLiteBackend(db)
	default:
		backend = rest.NewClient(rest.Config{
			BaseURL: cfg.StoreURL,
			APIKey:  cfg.StoreKey,
			Timeout: cfg.StoreTimeout,
		})
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	gw := gateway.New(gateway.Instrument(backend, gateway.NewMetrics(reg), cfg.SlowStore))

	stores := &web.Stores{
		PlayerStore:     playerStore.NewGatewayStore(gw),
		TournamentStore: tournamentStore.NewGatewayStore(gw),
		SessionStore:    groupSessionStore.NewGatewayStore(gw),
		PlanStore:       planStore.NewGatewayStore(gw),
		ReportStore:     reportStore.NewGatewayStore(gw),
	}

	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.ResendFrom)
		slog.Info("email_sender", "kind", "resend", "from", cfg.ResendFrom)
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.Production() {
			slog.Warn("email_sender", "kind", "noop", "note", "TENNIS_RESEND_KEY unset, confirmations are not delivered")
		} else {
			slog.Info("email_sender", "kind", "noop")
		}
	}

	handler := web.NewMux(stores, web.Options{
		CSRFKey:       cfg.CSRFKey,
		SecureCookies: cfg.Production(),
		Sender:        sender,
		Registry:      reg,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("server_start", "version", version, "addr", cfg.Addr, "env", cfg.Env, "store", cfg.StoreKind)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
