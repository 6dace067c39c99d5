package cli

import (
	"bible_trivia_backend/internal/app"
	"bible_trivia_backend/internal/config"
	"bible_trivia_backend/internal/importer"
	"bible_trivia_backend/internal/util"
	"bible_trivia_backend/pkg/database"
	"bible_trivia_backend/pkg/logger"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// openApp loads config and wires services without starting the server.
func openApp(configPath string) (*app.App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger.InitLogger(cfg)

	db, rdb, err := app.OpenStores(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return app.Build(cfg, db, rdb), nil
}

func openSource(cfg *config.Config, storage string) (importer.Source, error) {
	switch storage {
	case util.StorageLocal, "":
		return importer.FileSource{}, nil
	case util.StorageMinio:
		return importer.NewMinioSource(&cfg.Storage)
	default:
		return nil, fmt.Errorf("unknown source %q, want %s or %s", storage, util.StorageLocal, util.StorageMinio)
	}
}

type importFunc func(im *importer.Importer, ctx context.Context, r io.Reader) (*importer.Summary, error)

func newImportCmd(configPath *string, use, short string, run importFunc) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   use + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			source, err := openSource(a.Config, from)
			if err != nil {
				return err
			}
			r, err := source.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer r.Close()

			im := importer.New(a.Services.Content, a.Services.Bible)
			summary, err := run(im, cmd.Context(), r)
			if err != nil {
				return err
			}
			cmd.Printf("created %d, skipped %d", summary.Created, len(summary.Skipped))
			if summary.SectionsCreated > 0 {
				cmd.Printf(", sections created %d", summary.SectionsCreated)
			}
			cmd.Println()
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", util.StorageLocal, "where to read the file: local or minio")
	return cmd
}

// NewImportVersesCmd loads a JSON-lines scripture dump.
func NewImportVersesCmd(configPath *string) *cobra.Command {
	return newImportCmd(configPath, "import-verses", "Load bible verses from a JSON-lines file", (*importer.Importer).ImportVerses)
}

// NewImportQuestionsCmd loads sections and questions from a JSON document.
func NewImportQuestionsCmd(configPath *string) *cobra.Command {
	return newImportCmd(configPath, "import-questions", "Load sections and questions from a JSON file", (*importer.Importer).ImportQuestions)
}
