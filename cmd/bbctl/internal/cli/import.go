package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/importer"
)

func newImportCmd() *cobra.Command {
	var (
		kind     string
		mappings string
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Parse a CSV file with a named column mapping",
		Example: `  bbctl import --kind inventory voorraad.csv
  bbctl import --kind leveranciers --mappings mappings.yaml leveranciers.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := importer.NewService()

			if mappings != "" {
				f, err := os.Open(mappings)
				if err != nil {
					return err
				}
				defer f.Close()

				if err := svc.LoadMappings(f); err != nil {
					return fmt.Errorf("loading %s: %w", mappings, err)
				}
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := svc.Import(importer.Kind(kind), f)
			if err != nil {
				return err
			}

			if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}

			if !result.Success {
				return fmt.Errorf("no valid rows in %s", args[0])
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", string(importer.KindInventory), "mapping table to apply")
	cmd.Flags().StringVarP(&mappings, "mappings", "m", "", "YAML file with extra mapping tables")

	return cmd
}
