package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mongo "note-ledger/internal/clients/mongo" // mongo client singleton
	"note-ledger/internal/config"
	"note-ledger/internal/logger"

	"github.com/grafana/pyroscope-go"
	_ "go.uber.org/automaxprocs" // GOMAXPROCS from the container CPU quota
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Create bootstrap logger for early errors
	bootstrapLog := log.New(os.Stderr, "bootstrap: ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		bootstrapLog.Printf("config load failed: %v", err)
		os.Exit(1)
	}

	logg, err := logger.Init(cfg)
	if err != nil {
		bootstrapLog.Printf("logger init failed: %v", err)
		os.Exit(1)
	}

	if cfg.PyroscopeAddress != "" {
		profiler, err := startProfiler(cfg, logg)
		if err != nil {
			logg.Error("pyroscope start", "err", err)
			os.Exit(1)
		}
		defer func() { _ = profiler.Stop() }()
	}

	if cfg.StoreBackend == config.StoreMongo {
		_, db, err := mongo.Init(ctx, cfg, logg)
		if err != nil {
			logg.Error("mongo init", "err", err)
			os.Exit(1)
		}
		logg.Info("connected to mongo", "db", db.Name(), "replica_set", mongo.IsReplicaSet())
	}

	d, err := buildDeps(ctx, cfg, logg)
	if err != nil {
		logg.Error("wiring failed", "err", err)
		os.Exit(1)
	}

	logg.Info("starting NoteLedger", "port", cfg.AppPort, "store", cfg.StoreBackend, "attachments", cfg.AttachmentsBackend)

	// Setup router and start server
	app := setupRouter(cfg, d)
	portStr := fmt.Sprintf(":%d", cfg.AppPort)

	g.Go(func() error {
		err := app.Listen(portStr)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	// Graceful shutdown
	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return err
		}
		if cfg.StoreBackend != config.StoreMongo {
			return nil
		}
		return mongo.Shutdown(shutdownCtx)
	})

	// Wait and exit
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error("fatal", "err", err)
		os.Exit(1)
	}
	logg.Info("graceful shutdown complete")
}

func startProfiler(cfg config.Config, logg *slog.Logger) (*pyroscope.Profiler, error) {
	logg.Info("continuous profiling enabled", "server", cfg.PyroscopeAddress)
	return pyroscope.Start(pyroscope.Config{
		ApplicationName: "note-ledger",
		ServerAddress:   cfg.PyroscopeAddress,
		Tags:            map[string]string{"store": cfg.StoreBackend},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
}
