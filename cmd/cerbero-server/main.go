package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dvillamarin/cerbero/internal/cerbero/seed"
	"github.com/dvillamarin/cerbero/internal/cerbero/service"
	"github.com/dvillamarin/cerbero/internal/cerbero/store"
	"github.com/dvillamarin/cerbero/internal/cerbero/store/memory"
	"github.com/dvillamarin/cerbero/internal/cerbero/store/sqlite"
	"github.com/dvillamarin/cerbero/internal/config"
	dbpkg "github.com/dvillamarin/cerbero/internal/db"
	"github.com/dvillamarin/cerbero/internal/httpapi"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Entity stores live in memory for the process lifetime.
	students := memory.NewStudentStore()
	areas := memory.NewAreaStore()
	permissions := memory.NewPermissionStore()
	credentials := memory.NewCredentialStore()
	pins := memory.NewPINStore()
	patterns := memory.NewPatternStore()

	// The two audit trails are persisted when a DB path is configured.
	var (
		audits   store.AuditStore
		accesses store.AccessStore
	)
	if cfg.DBPath != "" {
		conn, err := dbpkg.Open(ctx, dbpkg.Config{Path: cfg.DBPath, Env: cfg.Env})
		if err != nil {
			logger.Fatal("open database", zap.Error(err))
		}
		defer conn.Close()

		writer := dbpkg.NewWorker(conn)
		defer writer.Close()

		audits = sqlite.NewAuditStore(conn, writer)
		accesses = sqlite.NewAccessStore(conn, writer)
		logger.Info("audit trails persisted", zap.String("db", cfg.DBPath))
	} else {
		audits = memory.NewAuditStore()
		accesses = memory.NewAccessStore()
	}

	authz := service.NewAuthorizationService(areas, permissions)
	authn := service.NewAuthenticationService(credentials, pins, patterns, service.AuthConfig{
		MaxRFIDAttempts:  cfg.MaxRFIDAttempts,
		PatternThreshold: cfg.PatternThreshold,
		TimingCheck:      cfg.PatternTimingCheck,
		TimingTolerance:  cfg.PatternTimingTolerance,
	})
	audit := service.NewAuditService(audits)
	access := service.NewAccessService(authz, authn, audit, accesses, service.OrchestratorConfig{
		EnableGestureClose: cfg.EnableGestureClose,
		GestureCloseCode:   cfg.GestureCloseCode,
		PINTimeout:         cfg.PINTimeout,
		PatternTimeout:     cfg.PatternTimeout,
		PatternLength:      cfg.PatternLength,
	}, logger)

	if cfg.SeedDemo {
		err := seed.Demo(ctx, seed.Stores{
			Students:    students,
			Areas:       areas,
			Permissions: permissions,
			Credentials: credentials,
			PINs:        pins,
			Patterns:    patterns,
		}, time.Now())
		if err != nil {
			logger.Fatal("seed demo data", zap.Error(err))
		}
		logger.Info("demo data seeded",
			zap.String("owner", seed.DemoOwnerID), zap.String("area", seed.DemoAreaID))
	}

	pruner := service.NewRetentionPruner(audits, accesses, service.PrunerConfig{
		RetentionDays: cfg.RetentionDays,
		IntervalHours: cfg.PruneIntervalHours,
	}, logger)
	pruner.Start(ctx)
	defer pruner.Stop()

	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:        logger,
		Addr:          cfg.HTTPAddr,
		AccessService: access,
		Students:      students,
		Areas:         areas,
		Permissions:   permissions,
		Credentials:   credentials,
		PINs:          pins,
		Patterns:      patterns,
		Audits:        audits,
		Accesses:      accesses,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.Start(); err != nil {
			logger.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
