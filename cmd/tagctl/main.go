// tagctl is the CLI client for the task planner server. It doubles as the
// NFC scan simulator: every command the physical readers or the web UI would
// trigger can be fired from here.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	serverURL string
	authToken string
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "tagctl",
		Short: "Task planner client and NFC scan simulator",
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("TAGCTL_SERVER", "http://localhost:5002"), "server base URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", envOr("TAGCTL_TOKEN", "taskplanner2025"), "bearer token")

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(mappingsCmd())
	rootCmd.AddCommand(pingsCmd())
	rootCmd.AddCommand(tasksCmd())
	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health and store stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/health")
		},
	}
}
