package cli

import (
	"github.com/spf13/cobra"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/numbering"
)

type numberOutput struct {
	Type   numbering.DocumentType `json:"type"`
	Number string                 `json:"number"`
}

func newNumberCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:       "number TYPE",
		Short:     "Issue the next document number",
		Long:      "Issue the next number for general, factuur, offerte or werkorder documents.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"general", "factuur", "offerte", "werkorder"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := numbering.ParseDocumentType(args[0])
			if err != nil {
				return err
			}

			store, err := deps.OpenStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			number, err := numbering.NewService(store).Next(cmd.Context(), dt)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), numberOutput{Type: dt, Number: number})
		},
	}
}
