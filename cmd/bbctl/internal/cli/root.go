package cli

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/config"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/storage"
)

// Deps are the collaborators commands reach outside the process for.
type Deps struct {
	OpenStore func(ctx context.Context) (storage.Store, error)
}

// DefaultDeps opens the storage backend selected by the environment.
func DefaultDeps() Deps {
	return Deps{
		OpenStore: func(ctx context.Context) (storage.Store, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}

			return storage.Open(ctx, cfg)
		},
	}
}

func NewRootCmd(deps Deps) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "bbctl",
		Short:         "Bedrijfsbeheer command line tools",
		Long:          "Import CSV files, read .eml messages, calculate VAT and issue document numbers.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}

			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newImportCmd(),
		newEmlCmd(),
		newVATCmd(),
		newNumberCmd(deps),
	)

	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
