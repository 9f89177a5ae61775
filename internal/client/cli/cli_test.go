package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/fourone/pos/internal/client/api"
	"github.com/fourone/pos/internal/client/cache"
	"github.com/fourone/pos/internal/client/connectivity"
	"github.com/fourone/pos/internal/client/data"
	"github.com/fourone/pos/internal/client/gateway"
	"github.com/fourone/pos/internal/client/iocli"
	"github.com/fourone/pos/internal/client/queue"
	"github.com/fourone/pos/internal/client/storage/boltdb"
	"github.com/fourone/pos/internal/client/sync"
	"github.com/fourone/pos/pkg/api"
)

// capturedIO collects everything a command printed.
type capturedIO struct {
	*iocli.IOMock
	lines []string
}

func newCapturedIO(inputs ...string) *capturedIO {
	captured := &capturedIO{IOMock: &iocli.IOMock{}}

	captured.PrintlnFunc = func(a ...any) {
		captured.lines = append(captured.lines, fmt.Sprintln(a...))
	}
	captured.PrintfFunc = func(format string, a ...any) {
		captured.lines = append(captured.lines, fmt.Sprintf(format, a...))
	}
	captured.ReadInputFunc = func(string) (string, error) {
		if len(inputs) == 0 {
			return "", nil
		}
		next := inputs[0]
		inputs = inputs[1:]
		return next, nil
	}
	captured.ReadPasswordFunc = func(string) (string, error) {
		return "secret", nil
	}
	captured.WriteFunc = func(p []byte) (int, error) {
		captured.lines = append(captured.lines, string(p))
		return len(p), nil
	}

	return captured
}

func (c *capturedIO) output() string {
	return strings.Join(c.lines, "")
}

func newTestCli(t *testing.T, io iocli.IO, inputsOnline bool) (*Cli, *clientapi.ClientAPIMock) {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "pos-client.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	apiClient := &clientapi.ClientAPIMock{}

	monitor := connectivity.NewMonitor(apiClient, logger)
	monitor.SetOnline(inputsOnline)

	cacheManager := cache.NewManager(store, logger)
	queueService := queue.NewService(store, logger)
	notifier := sync.NewNotifier()
	syncService := sync.NewService(apiClient, queueService, cacheManager, notifier, monitor.Online, logger)
	gw := gateway.New(apiClient, cacheManager, queueService, notifier, monitor.Online, logger)
	dataService := data.NewService(gw, syncService, store, monitor.Online, logger)

	return New(io, apiClient, dataService, monitor), apiClient
}

func TestRunList_Products(t *testing.T) {
	io := newCapturedIO()
	cli, apiClient := newTestCli(t, io, true)

	apiClient.GetFunc = func(_ context.Context, endpoint string) (json.RawMessage, error) {
		require.Equal(t, api.PathProducts, endpoint)
		return json.RawMessage(`[{"id":"p1","name":"Americano","price_cents":350,"active":true}]`), nil
	}

	require.NoError(t, cli.runList(context.Background(), []string{"products"}))

	assert.Contains(t, io.output(), "Americano")
	assert.Contains(t, io.output(), "$3.50")
	assert.NotContains(t, io.output(), "local snapshot")
}

func TestRunList_OfflineNotesSnapshot(t *testing.T) {
	io := newCapturedIO()
	cli, apiClient := newTestCli(t, io, true)

	apiClient.GetFunc = func(_ context.Context, _ string) (json.RawMessage, error) {
		return json.RawMessage(`[{"id":"t1","name":"Mesa 1","status":"free","seats":4}]`), nil
	}
	require.NoError(t, cli.runList(context.Background(), []string{"tables"}))

	apiClient.GetFunc = func(_ context.Context, _ string) (json.RawMessage, error) {
		return nil, errors.New("connection refused")
	}
	require.NoError(t, cli.runList(context.Background(), []string{"tables"}))

	assert.Contains(t, io.output(), "Mesa 1")
	assert.Contains(t, io.output(), "local snapshot")
}

func TestRunList_UnknownEntity(t *testing.T) {
	io := newCapturedIO()
	cli, _ := newTestCli(t, io, true)

	err := cli.runList(context.Background(), []string{"invoices"})
	assert.Error(t, err)
}

func TestRunSale_Interactive(t *testing.T) {
	// Two americanos and done.
	io := newCapturedIO("1 2", "")
	cli, apiClient := newTestCli(t, io, true)

	apiClient.GetFunc = func(_ context.Context, endpoint string) (json.RawMessage, error) {
		switch endpoint {
		case api.PathProducts:
			return json.RawMessage(`[{"id":"p1","name":"Americano","price_cents":5000,"active":true}]`), nil
		case api.PathTaxTypes:
			return json.RawMessage(`[{"id":"tax1","name":"ITBIS","rate_basis_points":1800,"default":true}]`), nil
		default:
			return nil, fmt.Errorf("unexpected endpoint %s", endpoint)
		}
	}
	apiClient.PostFunc = func(_ context.Context, _ string, body json.RawMessage) (json.RawMessage, error) {
		var sale api.Sale
		require.NoError(t, json.Unmarshal(body, &sale))
		sale.ID = "sale-1"
		return json.Marshal(sale)
	}

	require.NoError(t, cli.runSale(context.Background()))

	output := io.output()
	assert.Contains(t, output, "$100.00")
	assert.Contains(t, output, "$18.00")
	assert.Contains(t, output, "$118.00")
	assert.Contains(t, output, "Sale sale-1 recorded.")
}

func TestRunSale_NoItemsCancels(t *testing.T) {
	io := newCapturedIO("")
	cli, apiClient := newTestCli(t, io, true)

	apiClient.GetFunc = func(_ context.Context, _ string) (json.RawMessage, error) {
		return json.RawMessage(`[{"id":"p1","name":"Americano","price_cents":5000}]`), nil
	}

	err := cli.runSale(context.Background())
	assert.ErrorContains(t, err, "cancelled")
}

func TestRunStatus_Offline(t *testing.T) {
	io := newCapturedIO()
	cli, apiClient := newTestCli(t, io, false)

	apiClient.HealthFunc = func(_ context.Context) error {
		return errors.New("connection refused")
	}

	require.NoError(t, cli.runStatus(context.Background()))

	assert.Contains(t, io.output(), "unreachable")
	assert.Contains(t, io.output(), "Pending sync: none")
}

func TestParseSaleLine(t *testing.T) {
	products := []api.Product{
		{ID: "p1", Name: "Americano", PriceCents: 350},
		{ID: "p2", Name: "Latte", PriceCents: 450},
	}

	tests := []struct {
		name    string
		line    string
		want    api.SaleItem
		wantErr bool
	}{
		{
			name: "valid line",
			line: "2 3",
			want: api.SaleItem{ProductID: "p2", Name: "Latte", Quantity: 3, UnitPriceCents: 450},
		},
		{name: "bad product number", line: "9 1", wantErr: true},
		{name: "zero quantity", line: "1 0", wantErr: true},
		{name: "not a line", line: "latte three", wantErr: true},
		{name: "too many fields", line: "1 2 3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := parseSaleLine(tt.line, products)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, item)
		})
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$0.05", formatCents(5))
	assert.Equal(t, "$3.50", formatCents(350))
	assert.Equal(t, "$118.00", formatCents(11800))
}
