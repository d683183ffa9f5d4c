package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := apiClient.Users().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(users)
			}

			t := NewTable("ID", "NAME", "EMAIL", "ROLE", "STATUS")
			for _, u := range users {
				t.AddRow(strconv.FormatInt(u.ID, 10), u.Name, u.Email, u.Role, u.Status)
			}
			t.Render()
			return nil
		},
	}
}
