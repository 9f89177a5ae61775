// Package cli implements the terminal commands of the POS client.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fourone/pos/internal/client/api"
	"github.com/fourone/pos/internal/client/connectivity"
	"github.com/fourone/pos/internal/client/data"
	"github.com/fourone/pos/internal/client/iocli"
)

// Cli holds the assembled client services the commands run against.
type Cli struct {
	io      iocli.IO
	api     api.ClientAPI
	data    *data.Service
	monitor *connectivity.Monitor
}

// New creates the command runner.
func New(io iocli.IO, apiClient api.ClientAPI, dataService *data.Service, monitor *connectivity.Monitor) *Cli {
	return &Cli{
		io:      io,
		api:     apiClient,
		data:    dataService,
		monitor: monitor,
	}
}

// Run dispatches one command and exits non-zero on failure.
func (c *Cli) Run(ctx context.Context, command string, args []string) {
	var err error

	switch command {
	case "login":
		err = c.runLogin(ctx)
	case "logout":
		err = c.runLogout(ctx)
	case "status":
		err = c.runStatus(ctx)
	case "sync":
		err = c.runSync(ctx)
	case "list":
		err = c.runList(ctx, args)
	case "sale":
		err = c.runSale(ctx)
	case "run":
		err = c.runWatch(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		PrintUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// PrintUsage prints the command summary.
func PrintUsage() {
	fmt.Println("Usage: pos-client [flags] <command> [args]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  login                 Authenticate against the POS server")
	fmt.Println("  logout                Drop the server session")
	fmt.Println("  status                Show connectivity, pending operations and store size")
	fmt.Println("  sync                  Replay queued operations now")
	fmt.Println("  list <entity>         List products|categories|tables|customers|tax-types|sales")
	fmt.Println("  sale                  Record a sale interactively")
	fmt.Println("  run                   Keep the terminal open, probing and syncing in background")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -server URL           Server base URL (default http://localhost:8080)")
	fmt.Println("  -db PATH              Path to the local database (default pos-client.db)")
	fmt.Println("  -version              Show version information")
}
