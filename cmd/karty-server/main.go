package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jkratochvil/karty/server/internal/config"
	"github.com/jkratochvil/karty/server/internal/db"
	"github.com/jkratochvil/karty/server/internal/httpapi"
	"github.com/jkratochvil/karty/server/internal/karty/service"
	"github.com/jkratochvil/karty/server/internal/karty/store/sqlite"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "karty-server ", log.LstdFlags|log.LUTC)

	loc := time.Local
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			logger.Fatalf("load timezone %q: %v", cfg.Timezone, err)
		}
		loc = l
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, db.Config{Path: cfg.DBPath, Env: cfg.Env})
	if err != nil {
		logger.Fatalf("open db: %v", err)
	}
	defer conn.Close()

	if cfg.Env == "dev" {
		if err := db.SeedDev(ctx, conn); err != nil {
			logger.Fatalf("seed dev data: %v", err)
		}
	}

	writer := db.NewWorker(conn)
	defer writer.Close()

	// Stores
	directory := sqlite.NewDirectoryStore(conn)
	scans := sqlite.NewScanEventStore(conn, writer, loc)
	audit := sqlite.NewAuditLogStore(conn, writer)

	// Services
	accessSvc := service.NewAccessService(directory, scans, audit)
	voucherSvc := service.NewVoucherService(scans, service.VoucherConfig{
		MinPresence: cfg.VoucherMinPresence,
		Location:    loc,
	})

	pruner := service.NewAuditPruner(audit, service.PrunerConfig{
		RetentionDays: cfg.AuditRetentionDays,
		IntervalHours: cfg.PruneIntervalHours,
	}, logger)
	pruner.Start(ctx)
	defer pruner.Stop()

	// HTTP
	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:         logger,
		Addr:           cfg.HTTPAddr,
		AccessService:  accessSvc,
		VoucherService: voucherSvc,
	})

	go func() {
		logger.Printf("listening on %s", cfg.HTTPAddr)
		if err := srv.Start(); err != nil {
			logger.Printf("server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
