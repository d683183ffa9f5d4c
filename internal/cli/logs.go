package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pratik-mahalle/cloudmgr/pkg/client"
	"github.com/spf13/cobra"
)

func newLogsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the action log, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := apiClient.Logs().List(context.Background(), limit)
			if err != nil {
				return fmt.Errorf("failed to list logs: %w", err)
			}
			return renderLogs(entries)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of entries (0 for all)")

	return cmd
}

func renderLogs(entries []client.LogEntry) error {
	if getOutputFormat() != "table" {
		return printOutput(entries)
	}

	t := NewTable("ID", "TIME", "USER", "ACTION", "RESOURCE", "PROVIDER", "STATUS")
	for _, e := range entries {
		t.AddRow(
			strconv.FormatInt(e.ID, 10),
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.User,
			e.Action,
			truncate(e.Resource, 30),
			e.Provider,
			formatStatus(e.Status),
		)
	}
	t.Render()
	return nil
}
