package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newAlertCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "alerts",
		Aliases: []string{"alert"},
		Short:   "List resources that need attention",
		RunE: func(cmd *cobra.Command, args []string) error {
			alerts, err := apiClient.Alerts().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list alerts: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(alerts)
			}

			if len(alerts) == 0 {
				fmt.Fprintln(out, "No alerts")
				return nil
			}

			t := NewTable("ID", "SEVERITY", "TITLE", "SINCE")
			for _, a := range alerts {
				t.AddRow(a.ID, a.Severity, truncate(a.Title, 60), a.Time.Format("2006-01-02 15:04"))
			}
			t.Render()
			return nil
		},
	}
}
