package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/safdamla/pressbook/internal/config"
	"github.com/safdamla/pressbook/internal/repository/localstore"
	"github.com/safdamla/pressbook/internal/repository/mongodb"
	"github.com/safdamla/pressbook/internal/repository/sheets"
	"github.com/safdamla/pressbook/internal/scheduler"
	"github.com/safdamla/pressbook/internal/server/handlers"
	"github.com/safdamla/pressbook/internal/server/router"
	"github.com/safdamla/pressbook/internal/service/book"
	"github.com/safdamla/pressbook/internal/syncer"
	"github.com/safdamla/pressbook/pkg/clients/probe"
	"github.com/safdamla/pressbook/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	localStore, err := localstore.New(cfg.Ledger.DataDir, baseLogger.Named("repo.local"))
	if err != nil {
		baseLogger.Fatal("failed to init local store", zap.Error(err))
	}

	// The cloud store is optional: without a MongoDB URI the application
	// keeps the books in the local files only.
	var cloudStore syncer.CloudStore
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Warn("mongodb unreachable at startup, continuing with local store", zap.Error(err))
		} else {
			cloudStore = mongoRepo
			defer func() {
				if err := mongoRepo.Close(context.Background()); err != nil {
					baseLogger.Error("failed to close mongodb connection", zap.Error(err))
				}
			}()
		}
	} else {
		baseLogger.Info("no mongodb uri configured, running in local-only mode")
	}

	var prober syncer.Prober
	if cfg.Sync.ProbeURL != "" {
		prober = probe.NewClient(cfg.Sync.ProbeURL)
	}

	sync := syncer.New(cloudStore, localStore, prober, cfg.Ledger.ID, baseLogger.Named("syncer"))
	bookSvc := book.NewService(sync, baseLogger.Named("svc.book"))

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		baseLogger.Info("spreadsheet backup enabled")
	} else {
		baseLogger.Warn("sheets credentials missing, spreadsheet backup disabled")
	}

	ledgerHandler := handlers.NewLedgerHandler(bookSvc, baseLogger.Named("handlers.ledger"))
	reportHandler := handlers.NewReportHandler(bookSvc, baseLogger.Named("handlers.reports"))
	syncHandler := handlers.NewSyncHandler(sync, baseLogger.Named("handlers.sync"))
	engine := router.New(ledgerHandler, reportHandler, syncHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, sync, bookSvc, sheetsRepo, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
