package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks",
	}

	var status int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/tasks"
			if cmd.Flags().Changed("status") {
				path = fmt.Sprintf("%s?status=%d", path, status)
			}
			return getJSON(path)
		},
	}
	listCmd.Flags().IntVar(&status, "status", 0, "filter by status (0, 1 or 2)")
	cmd.AddCommand(listCmd)

	var priority, effort int
	var due string
	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON("/api/tasks", map[string]any{
				"title":    args[0],
				"priority": priority,
				"effort":   effort,
				"due_date": due,
			})
		},
	}
	addCmd.Flags().IntVarP(&priority, "priority", "p", 0, "priority (0-10)")
	addCmd.Flags().IntVarP(&effort, "effort", "e", 0, "effort (0-10)")
	addCmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("invalid task id: %s", args[0])
			}
			return deleteJSON("/api/tasks/" + args[0])
		},
	})

	var setStatus int
	statusCmd := &cobra.Command{
		Use:   "status [id]",
		Short: "Cycle a task's status, or set it with --set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("invalid task id: %s", args[0])
			}
			var payload any
			if cmd.Flags().Changed("set") {
				payload = map[string]int{"status": setStatus}
			}
			return putJSON("/api/tasks/"+args[0]+"/status", payload)
		},
	}
	statusCmd.Flags().IntVar(&setStatus, "set", 0, "set status directly (0, 1 or 2)")
	cmd.AddCommand(statusCmd)

	var sortBy string
	sortCmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort tasks on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON("/api/tasks/sort", map[string]string{"sort_by": sortBy})
		},
	}
	sortCmd.Flags().StringVar(&sortBy, "by", "priority", "criteria: priority, due_date, effort, status, title")
	cmd.AddCommand(sortCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/tasks/stats")
		},
	})

	return cmd
}
