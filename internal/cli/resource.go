package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pratik-mahalle/cloudmgr/pkg/client"
	"github.com/spf13/cobra"
)

func newResourceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resource",
		Aliases: []string{"resources", "res"},
		Short:   "Manage cloud resources",
	}

	cmd.AddCommand(newResourceListCmd())
	cmd.AddCommand(newResourceGetCmd())
	cmd.AddCommand(newResourceCreateCmd())
	cmd.AddCommand(newResourceUpdateCmd())
	cmd.AddCommand(newResourceDeleteCmd())
	cmd.AddCommand(newResourceMetricsCmd())
	cmd.AddCommand(newResourceHistoryCmd())

	return cmd
}

func parseResourceID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid resource id %q", arg)
	}
	return id, nil
}

func renderResources(resources []client.Resource) error {
	if getOutputFormat() != "table" {
		return printOutput(resources)
	}

	t := NewTable("ID", "NAME", "PROVIDER", "TYPE", "REGION", "STATUS", "EXTERNAL ID", "COST/MO")
	for _, r := range resources {
		t.AddRow(
			strconv.FormatInt(r.ID, 10),
			truncate(r.Name, 30),
			r.Provider,
			r.Type,
			r.Region,
			formatStatus(r.Status),
			truncate(r.ExternalID, 32),
			fmt.Sprintf("%.0f", r.CostPerMonth),
		)
	}
	t.Render()
	return nil
}

func newResourceListCmd() *cobra.Command {
	var opts client.ResourceListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			resources, err := apiClient.Resources().List(context.Background(), &opts)
			if err != nil {
				return fmt.Errorf("failed to list resources: %w", err)
			}

			if err := renderResources(resources); err != nil {
				return err
			}
			if getOutputFormat() == "table" {
				fmt.Fprintf(out, "\n%d resource(s)\n", len(resources))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Provider, "provider", "", "filter by provider (AWS, GCP, Azure)")
	cmd.Flags().StringVar(&opts.Type, "type", "", "filter by resource type")
	cmd.Flags().StringVar(&opts.Region, "region", "", "filter by region")
	cmd.Flags().StringVar(&opts.Status, "status", "", "filter by status")

	return cmd
}

func newResourceGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get resource details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseResourceID(args[0])
			if err != nil {
				return err
			}

			res, err := apiClient.Resources().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get resource: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(res)
			}

			fmt.Fprintf(out, "ID:          %d\n", res.ID)
			fmt.Fprintf(out, "Name:        %s\n", res.Name)
			fmt.Fprintf(out, "Provider:    %s\n", res.Provider)
			fmt.Fprintf(out, "Type:        %s\n", res.Type)
			fmt.Fprintf(out, "Region:      %s\n", res.Region)
			fmt.Fprintf(out, "Status:      %s\n", formatStatus(res.Status))
			fmt.Fprintf(out, "External ID: %s\n", res.ExternalID)
			if res.CPU != "" || res.Memory != "" || res.Storage != "" {
				fmt.Fprintf(out, "Spec:        %s %s %s\n", res.CPU, res.Memory, res.Storage)
			}
			fmt.Fprintf(out, "Cost/month:  %.2f\n", res.CostPerMonth)
			fmt.Fprintf(out, "Tags:        %v\n", res.Tags)
			fmt.Fprintf(out, "Created:     %s\n", res.CreatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func newResourceCreateCmd() *cobra.Command {
	var req client.CreateResourceRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Provision a new resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := apiClient.Resources().Create(context.Background(), &req)
			if err != nil {
				return fmt.Errorf("failed to create resource: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(res)
			}
			fmt.Fprintf(out, "Created resource %d (%s) with status %s\n", res.ID, res.ExternalID, res.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "resource name")
	cmd.Flags().StringVar(&req.Provider, "provider", "", "provider (AWS, GCP, Azure)")
	cmd.Flags().StringVar(&req.Type, "type", "", "type (VM, Storage, Database, Serverless, LoadBalancer)")
	cmd.Flags().StringVar(&req.Region, "region", "", "region")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("provider")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("region")

	return cmd
}

func newResourceUpdateCmd() *cobra.Command {
	var name, region, status string
	var tags []string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update name, region, status or tags of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseResourceID(args[0])
			if err != nil {
				return err
			}

			var req client.UpdateResourceRequest
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("region") {
				req.Region = &region
			}
			if cmd.Flags().Changed("status") {
				req.Status = &status
			}
			if cmd.Flags().Changed("tag") {
				req.Tags = &tags
			}

			res, err := apiClient.Resources().Update(context.Background(), id, &req)
			if err != nil {
				return fmt.Errorf("failed to update resource: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(res)
			}
			fmt.Fprintf(out, "Updated resource %d\n", res.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&region, "region", "", "new region")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "replace tags (repeatable)")

	return cmd
}

func newResourceDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Terminate and remove a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseResourceID(args[0])
			if err != nil {
				return err
			}

			if err := apiClient.Resources().Delete(context.Background(), id); err != nil {
				return fmt.Errorf("failed to delete resource: %w", err)
			}

			fmt.Fprintf(out, "Deleted resource %d\n", id)
			return nil
		},
	}
}

func newResourceMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <id>",
		Short: "Show recent utilisation of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseResourceID(args[0])
			if err != nil {
				return err
			}

			points, err := apiClient.Resources().Metrics(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get metrics: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(points)
			}

			t := NewTable("TIME", "CPU %", "MEMORY %", "NET IN", "NET OUT")
			for _, p := range points {
				t.AddRow(
					p.Time.Format("2006-01-02 15:04"),
					fmt.Sprintf("%.1f", p.CPU),
					fmt.Sprintf("%.1f", p.Memory),
					fmt.Sprintf("%.0f", p.NetworkIn),
					fmt.Sprintf("%.0f", p.NetworkOut),
				)
			}
			t.Render()
			return nil
		},
	}
}

func newResourceHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Show the action log of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseResourceID(args[0])
			if err != nil {
				return err
			}

			entries, err := apiClient.Resources().History(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get history: %w", err)
			}
			return renderLogs(entries)
		},
	}
}
