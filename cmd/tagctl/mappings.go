package main

import (
	"net/url"

	"github.com/spf13/cobra"
)

func mappingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Manage NFC tag-to-task mappings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all mappings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/nfc/mappings")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create [tag-id] [task-title]",
		Short: "Map a tag to a task without cycling it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON("/api/nfc/mappings", map[string]string{
				"tag_id":     args[0],
				"task_title": args[1],
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete [tag-id]",
		Short: "Delete a mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteJSON("/api/nfc/mappings/" + url.PathEscape(args[0]))
		},
	})

	return cmd
}
