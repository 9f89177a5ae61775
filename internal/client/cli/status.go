package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== POS Client Status ===")
	c.io.Println()

	// A fresh probe beats the monitor's last known state for a one-shot
	// command.
	online := c.monitor.Probe(ctx)

	status, err := c.data.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to read status: %w", err)
	}

	if online {
		c.io.Println("Server:  reachable")
	} else {
		c.io.Println("Server:  unreachable (working offline)")
	}

	c.io.Printf("Local store: %d KiB\n", status.StorageSizeBytes/1024)

	if status.PendingOps > 0 {
		c.io.Printf("Pending sync: %d operation(s) waiting\n", status.PendingOps)
		c.io.Println()
		c.io.Println("Run 'pos-client sync' to replay them now.")
	} else {
		c.io.Println("Pending sync: none, all operations delivered")
	}

	return nil
}
