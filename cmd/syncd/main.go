package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scoresync/internal/submit"
	"scoresync/pkg/clock"
	"scoresync/pkg/config"
	"scoresync/pkg/journal"
	"scoresync/pkg/logger"
	"scoresync/pkg/scorestore"
	"scoresync/pkg/server"
	"scoresync/pkg/transport"
	"scoresync/pkg/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Config
	cfg, err := config.Load(os.Getenv("SCORESYNC_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Init Logger
	l, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer l.Sync()

	l.Info("syncd initializing", zap.String("env", cfg.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Init score store client
	client := transport.New(transport.Config{
		Timeout:     cfg.API.Timeout,
		LogRequests: cfg.API.LogRequests,
	}, l)
	store := scorestore.New(scorestore.Config{
		BaseURL:  cfg.API.BaseURL,
		PageSize: cfg.API.PageSize,
		MaxPages: cfg.API.MaxPages,
	}, client, clock.New(clock.Mode(cfg.Clock.Timezone)), l)

	// 4. Init journal
	var jnl journal.Journal
	switch cfg.Journal.Backend {
	case "redis":
		jnl = journal.NewRedisJournal(
			redis.NewClient(&redis.Options{Addr: cfg.Journal.RedisAddr}),
			cfg.Journal.RedisKey,
		)
	default:
		jnl = journal.NewFileJournal(cfg.Journal.Path)
	}

	// 5. Init submit service
	pool := worker.NewPool(l, store, cfg.Submit.WorkerCount, cfg.Submit.QueueSize)
	svc := submit.NewService(l, jnl, pool, clock.New(clock.Mode(cfg.Clock.Timezone)))

	// 6. Start observability server
	obsServer := server.New(cfg.Server.Addr, l)
	go func() {
		if err := obsServer.Start(); err != nil {
			l.Error("observability server failed", err)
		}
	}()

	// 7. Run
	l.Info("syncd starting")
	if err := svc.Start(ctx); err != nil {
		l.Error("syncd failed to start", err)
		os.Exit(1)
	}

	<-ctx.Done()
	l.Info("syncd shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := svc.Stop(shutdownCtx); err != nil {
		l.Error("error during shutdown", err)
	}
	obsServer.Shutdown(shutdownCtx)
}
