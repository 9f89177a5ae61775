package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fourone/pos/internal/client/api"
	"github.com/fourone/pos/internal/client/cache"
	"github.com/fourone/pos/internal/client/cli"
	"github.com/fourone/pos/internal/client/connectivity"
	"github.com/fourone/pos/internal/client/data"
	"github.com/fourone/pos/internal/client/gateway"
	"github.com/fourone/pos/internal/client/iocli"
	"github.com/fourone/pos/internal/client/queue"
	"github.com/fourone/pos/internal/client/storage/boltdb"
	"github.com/fourone/pos/internal/client/sync"
)

// Version information set via ldflags during build.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server base URL")
	dbPath := flag.String("db", "pos-client.db", "Path to the local database")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	store, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	apiClient, err := api.NewClient(*serverURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create API client: %v\n", err)
		os.Exit(1)
	}

	monitor := connectivity.NewMonitor(apiClient, logger)

	cacheManager := cache.NewManager(store, logger)
	queueService := queue.NewService(store, logger)
	notifier := sync.NewNotifier()
	syncService := sync.NewService(apiClient, queueService, cacheManager, notifier, monitor.Online, logger)
	gw := gateway.New(apiClient, cacheManager, queueService, notifier, monitor.Online, logger)
	dataService := data.NewService(gw, syncService, store, monitor.Online, logger)

	// A debounced reconnect drains the queue.
	monitor.SetTrigger(func() {
		if _, err := syncService.ProcessPendingOperations(ctx); err != nil {
			logger.Error("reconnect sync failed", "error", err)
		}
	})
	go syncService.Run(ctx)

	// Establish real reachability before the command runs; until the
	// first probe the client assumes it is offline.
	monitor.Probe(ctx)

	c := cli.New(iocli.NewStdio(), apiClient, dataService, monitor)
	c.Run(ctx, command, args[1:])
}

func printVersion() {
	fmt.Printf("POS Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
