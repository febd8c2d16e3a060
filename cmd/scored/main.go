// scored is a development leaderboard server implementing the REST API
// the scoresync client consumes, backed by a local SQLite file.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scoresync/internal/leaderboard"
	"scoresync/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	addr := flag.String("addr", ":8090", "HTTP server address")
	dbPath := flag.String("db", "scores.db", "Path to the SQLite database (\":memory:\" for ephemeral)")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	l, err := logger.New(logger.Config{
		Level:       *logLevel,
		Environment: "development",
		ServiceName: "scored",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer l.Sync()

	store, err := leaderboard.Open(*dbPath)
	if err != nil {
		l.Error("failed to open store", err)
		os.Exit(1)
	}
	defer store.Close()

	handler := leaderboard.NewHandler(store, l)
	srv := &http.Server{
		Addr:    *addr,
		Handler: handler.Router(),
	}

	go func() {
		l.Info("scored listening", zap.String("addr", *addr), zap.String("db", *dbPath))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Error("server failed", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	l.Info("scored shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}
