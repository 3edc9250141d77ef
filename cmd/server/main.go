/*
main.go - Application entry point

PURPOSE:
  Starts the household ledger server: opens the SQLite snapshot store,
  loads (or migrates) the worker set, and serves the collaborator API for
  the local UI shell.

STARTUP SEQUENCE:
  1. Load .env (if present) and LEDGER_* environment config
  2. Parse command-line flags (flags override environment)
  3. Open SQLite snapshot store
  4. Load or migrate the ledger store
  5. Serve HTTP with graceful shutdown

COMMAND-LINE FLAGS:
  -addr  HTTP listen address (default from LEDGER_ADDR, ":8080")
  -db    SQLite database path (default from LEDGER_DB_PATH, "household.db")
         Use ":memory:" for an in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait for in-flight
  requests (15s), flush pending ledger snapshots, close the database.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/warp/household-ledger/api"
	"github.com/warp/household-ledger/config"
	"github.com/warp/household-ledger/ledger"
	"github.com/warp/household-ledger/store/sqlite"
)

func main() {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	snapshots, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer snapshots.Close()

	store := ledger.NewStore(snapshots, log)
	if err := store.Load(context.Background()); err != nil {
		log.Fatalf("Failed to load ledger: %v", err)
	}

	handler := api.NewHandler(store, log)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         *addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Household ledger serving on http://localhost%s/api", *addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	// Flush pending snapshot writes before the database closes.
	if err := store.Flush(ctx); err != nil {
		log.Errorf("Failed to flush ledger snapshots: %v", err)
	}
	store.Close()

	log.Info("Stopped")
}
