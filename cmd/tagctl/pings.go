package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func pingsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "pings",
		Short: "Show recent scan events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON(fmt.Sprintf("/api/nfc/pings?limit=%d", limit))
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "number of events to show")

	return cmd
}
