package command

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/pairlink-go/internal/cli/connection"
)

// StatusCommand returns the status command.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Check server health",
		Action: statusCheck,
	}
}

func statusCheck(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := Client(c)
	resp, err := client.Get(ctx, "/health")
	if err != nil {
		return fmt.Errorf("server unreachable at %s: %w", client.BaseURL(), err)
	}

	var health struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	if err := connection.ParseResponse(resp, &health); err != nil {
		return err
	}

	fmt.Printf("Server:  %s\n", client.BaseURL())
	fmt.Printf("Status:  %s\n", health.Status)
	if health.Version != "" {
		fmt.Printf("Version: %s\n", health.Version)
	}
	return nil
}
