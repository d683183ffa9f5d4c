package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server health and a resource summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			ready, err := apiClient.Ready(ctx)
			if err != nil {
				return fmt.Errorf("server not ready: %w", err)
			}

			resources, err := apiClient.Resources().List(ctx, nil)
			if err != nil {
				return fmt.Errorf("failed to list resources: %w", err)
			}
			alerts, err := apiClient.Alerts().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list alerts: %w", err)
			}

			byProvider := map[string]int{}
			var monthly float64
			for _, r := range resources {
				byProvider[r.Provider]++
				monthly += r.CostPerMonth
			}

			if getOutputFormat() != "table" {
				return printOutput(map[string]interface{}{
					"server":       ready.Status,
					"database":     ready.Database,
					"resources":    len(resources),
					"by_provider":  byProvider,
					"alerts":       len(alerts),
					"monthly_cost": monthly,
				})
			}

			fmt.Fprintln(out, "Cloud Manager")
			fmt.Fprintln(out, strings.Repeat("=", 40))
			fmt.Fprintf(out, "  Server:        %s (database %s)\n", ready.Status, ready.Database)
			fmt.Fprintf(out, "  Resources:     %d\n", len(resources))
			for _, p := range []string{"AWS", "GCP", "Azure"} {
				if n := byProvider[p]; n > 0 {
					fmt.Fprintf(out, "    %-12s %d\n", p+":", n)
				}
			}
			fmt.Fprintf(out, "  Alerts:        %d\n", len(alerts))
			fmt.Fprintf(out, "  Monthly cost:  %.2f\n", monthly)
			return nil
		},
	}
}
