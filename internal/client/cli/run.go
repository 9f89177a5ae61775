package cli

import (
	"context"
	"fmt"

	"github.com/fourone/pos/internal/client/sync"
)

// runWatch keeps the client resident: the monitor probes the server,
// reconnects trigger a drain, and every sync event is echoed to the
// terminal until the context is cancelled.
func (c *Cli) runWatch(ctx context.Context) error {
	c.io.Println("Watching for connectivity and sync events. Ctrl+C to stop.")

	unsubscribeSync := c.data.SubscribeSync(func(event sync.Event) {
		switch event.Type {
		case sync.EventQueued:
			c.io.Printf("queued  %s %s (%s)\n", event.Kind, event.Entity, event.CorrelationID)
		case sync.EventSynced:
			c.io.Printf("synced  %s %s (%s)\n", event.Kind, event.Entity, event.CorrelationID)
		case sync.EventRetried:
			c.io.Printf("retry   %s %s: %v\n", event.Kind, event.Entity, event.Err)
		case sync.EventExhausted:
			c.io.Printf("FAILED  %s %s: %v (manual attention needed)\n", event.Kind, event.Entity, event.Err)
		}
	})
	defer unsubscribeSync()

	unsubscribeOnline := c.monitor.Subscribe(func(online bool) {
		if online {
			c.io.Println("server reachable")
		} else {
			c.io.Println("server unreachable, capturing writes locally")
		}
	})
	defer unsubscribeOnline()

	c.monitor.Start(ctx)

	if err := ctx.Err(); err != nil && err != context.Canceled {
		return fmt.Errorf("watch stopped: %w", err)
	}
	return nil
}
