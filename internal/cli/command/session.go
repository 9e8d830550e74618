package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/pairlink-go/internal/cli/connection"
	"github.com/yndnr/pairlink-go/internal/cli/output"
)

// sessionItem mirrors the server's session response shape.
type sessionItem struct {
	ID       string `json:"id"`
	State    string `json:"state"`
	Artifact struct {
		Kind        string `json:"kind"`
		Payload     string `json:"payload,omitempty"`
		Code        string `json:"code,omitempty"`
		PhoneNumber string `json:"phone_number,omitempty"`
	} `json:"artifact"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionCommand returns the session subcommand group.
func SessionCommand() *cli.Command {
	return &cli.Command{
		Name:    "session",
		Aliases: []string{"sess"},
		Usage:   "Manage pairing sessions",
		Subcommands: []*cli.Command{
			{
				Name:   "create-scan",
				Usage:  "Create a session with a scannable code",
				Action: sessionCreateScan,
			},
			{
				Name:  "create-pair",
				Usage: "Create a session with a typed pairing code",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "phone",
						Aliases:  []string{"p"},
						Usage:    "Phone number the pairing code is for",
						Required: true,
					},
				},
				Action: sessionCreatePair,
			},
			{
				Name:   "list",
				Usage:  "List live sessions, newest first",
				Action: sessionList,
			},
			{
				Name:      "get",
				Usage:     "Get session details",
				ArgsUsage: "SESSION_ID",
				Action:    sessionGet,
			},
			{
				Name:      "confirm",
				Usage:     "Confirm a pairing session",
				ArgsUsage: "SESSION_ID",
				Action:    sessionConfirm,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a session",
				ArgsUsage: "SESSION_ID",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Skip confirmation",
					},
				},
				Action: sessionRemove,
			},
		},
	}
}

func sessionCreateScan(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := Client(c).Post(ctx, "/sessions/scan", nil)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var session sessionItem
	if err := connection.ParseResponse(resp, &session); err != nil {
		return err
	}

	if ParseGlobalFlags(c).Output == string(output.FormatJSON) {
		return (&output.JSONFormatter{}).Format(os.Stdout, session)
	}

	fmt.Printf("Session created:\n")
	fmt.Printf("  ID:      %s\n", session.ID)
	fmt.Printf("  State:   %s\n", session.State)
	fmt.Printf("  Payload: %s\n", session.Artifact.Payload)
	fmt.Printf("  Expires: %s\n", session.ExpiresAt.Format(time.RFC3339))
	return nil
}

func sessionCreatePair(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := Client(c).Post(ctx, "/sessions/pairing", map[string]string{
		"phone_number": c.String("phone"),
	})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var session sessionItem
	if err := connection.ParseResponse(resp, &session); err != nil {
		return err
	}

	if ParseGlobalFlags(c).Output == string(output.FormatJSON) {
		return (&output.JSONFormatter{}).Format(os.Stdout, session)
	}

	fmt.Printf("Session created:\n")
	fmt.Printf("  ID:      %s\n", session.ID)
	fmt.Printf("  State:   %s\n", session.State)
	fmt.Printf("  Code:    %s\n", session.Artifact.Code)
	fmt.Printf("  Phone:   %s\n", session.Artifact.PhoneNumber)
	fmt.Printf("  Expires: %s\n", session.ExpiresAt.Format(time.RFC3339))
	return nil
}

func sessionList(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := Client(c).Get(ctx, "/sessions")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result struct {
		Items []sessionItem `json:"items"`
		Total int           `json:"total"`
	}
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	flags := ParseGlobalFlags(c)
	if flags.Output == string(output.FormatJSON) {
		return (&output.JSONFormatter{}).Format(os.Stdout, result)
	}

	table := &output.Table{
		Headers: []string{"SESSION ID", "STATE", "KIND", "CREATED", "EXPIRES"},
	}
	for _, s := range result.Items {
		table.Rows = append(table.Rows, []string{
			s.ID,
			s.State,
			s.Artifact.Kind,
			s.CreatedAt.Format("2006-01-02 15:04:05"),
			s.ExpiresAt.Format("2006-01-02 15:04:05"),
		})
	}
	if err := table.Render(os.Stdout); err != nil {
		return err
	}
	fmt.Printf("\nTotal: %d sessions\n", result.Total)
	return nil
}

func sessionGet(c *cli.Context) error {
	sessionID := c.Args().First()
	if sessionID == "" {
		return fmt.Errorf("session ID required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := Client(c).Get(ctx, "/sessions/"+sessionID)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var session sessionItem
	if err := connection.ParseResponse(resp, &session); err != nil {
		return err
	}

	formatter := output.NewFormatter(output.Format(ParseGlobalFlags(c).Output))
	return formatter.Format(os.Stdout, session)
}

func sessionConfirm(c *cli.Context) error {
	sessionID := c.Args().First()
	if sessionID == "" {
		return fmt.Errorf("session ID required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := Client(c).Post(ctx, "/sessions/"+sessionID+"/confirm", nil)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var session sessionItem
	if err := connection.ParseResponse(resp, &session); err != nil {
		return err
	}

	fmt.Printf("Session %s is now %s.\n", session.ID, session.State)
	return nil
}

func sessionRemove(c *cli.Context) error {
	sessionID := c.Args().First()
	if sessionID == "" {
		return fmt.Errorf("session ID required")
	}

	if !c.Bool("force") {
		fmt.Printf("Are you sure you want to remove session '%s'? [y/N]: ", sessionID)
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "y" && confirm != "Y" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := Client(c).Delete(ctx, "/sessions/"+sessionID)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	if err := connection.ParseResponse(resp, nil); err != nil {
		return err
	}

	fmt.Printf("Session %s removed.\n", sessionID)
	return nil
}
