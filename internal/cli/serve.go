package cli

import (
	"bible_trivia_backend/internal/app"
	"bible_trivia_backend/internal/config"

	"github.com/spf13/cobra"
)

// NewServeCmd builds the CLI subcommand to start the HTTP server.
func NewServeCmd(configPath *string) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(*configPath, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply schema migrations before serving")
	return cmd
}

func runServer(configPath string, migrate bool) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	application, err := app.NewApp(cfg, migrate)
	if err != nil {
		return err
	}
	application.Run()
	return nil
}
