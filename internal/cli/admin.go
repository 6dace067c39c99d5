package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewCreateAdminCmd bootstraps the admin account named in the config.
func NewCreateAdminCmd(configPath *string) *cobra.Command {
	var username, email, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create the bootstrap admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			admin := a.Config.Admin
			if username != "" {
				admin.Username = username
			}
			if email != "" {
				admin.Email = email
			}
			if password != "" {
				admin.Password = password
			}
			if admin.Username == "" || admin.Password == "" {
				return fmt.Errorf("admin username and password are required (config admin.* or flags)")
			}

			created, err := a.Services.Auth.EnsureAdmin(cmd.Context(), admin.Username, admin.Email, admin.Password)
			if err != nil {
				return err
			}
			if created {
				cmd.Printf("admin %q created\n", admin.Username)
			} else {
				cmd.Printf("user %q already exists, nothing to do\n", admin.Username)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "overrides admin.username")
	cmd.Flags().StringVar(&email, "email", "", "overrides admin.email")
	cmd.Flags().StringVar(&password, "password", "", "overrides admin.password")
	return cmd
}
