package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func scanCmd() *cobra.Command {
	var (
		title    string
		reader   string
		count    int
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "scan [tag-id]",
		Short: "Simulate NFC tag scans",
		Long: `Simulate scanning an NFC tag against the server.

Examples:
  tagctl scan 04:AA:BB:CC --title "Water Plants"
  tagctl scan 04:AA:BB:CC -n 3 --interval 500ms`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"tag_id": args[0],
				"reader": reader,
			}
			if title != "" {
				payload["task_title"] = title
			}
			for i := 0; i < count; i++ {
				if i > 0 {
					time.Sleep(interval)
				}
				if err := postJSON("/api/nfc/scan", payload); err != nil {
					return fmt.Errorf("scan %d/%d: %w", i+1, count, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "task title to map the tag to")
	cmd.Flags().StringVarP(&reader, "reader", "r", "simulator", "reader name recorded in the scan log")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of scans to fire")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "delay between repeated scans")

	return cmd
}
