package cli

import (
	"context"
	"fmt"

	"github.com/fourone/pos/pkg/api"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	if username == "" {
		return fmt.Errorf("username must not be empty")
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	resp, err := c.api.Login(ctx, api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	c.io.Println()
	c.io.Printf("Logged in as %s (%s)\n", resp.User.Username, resp.User.Role)
	return nil
}
