package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")
	c.io.Println()

	if !c.monitor.Probe(ctx) {
		return fmt.Errorf("server unreachable, queued operations kept for later")
	}

	result, err := c.data.ForceSync(ctx)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}
	if result == nil {
		c.io.Println("A sync cycle is already running.")
		return nil
	}

	if len(result.Outcomes) == 0 {
		c.io.Println("Nothing to sync.")
		return nil
	}

	c.io.Printf("Delivered: %d\n", result.Succeeded)
	if result.Retried > 0 {
		c.io.Printf("Will retry: %d\n", result.Retried)
	}
	if result.Blocked > 0 {
		c.io.Printf("Held back: %d (waiting on an earlier operation)\n", result.Blocked)
	}
	if result.Exhausted > 0 {
		c.io.Printf("Need attention: %d operation(s) out of automatic retries\n", result.Exhausted)
		for _, outcome := range result.Outcomes {
			if outcome.Err != nil && outcome.Op.Exhausted() {
				c.io.Printf("  %s %s %s: %v\n",
					outcome.Op.Kind, outcome.Op.Entity, outcome.Op.TargetID, outcome.Err)
			}
		}
	}

	return nil
}
