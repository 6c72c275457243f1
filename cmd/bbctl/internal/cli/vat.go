package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/vat"
)

func newVATCmd() *cobra.Command {
	var (
		amount     float64
		rateType   string
		customRate float64
		reverse    bool
	)

	cmd := &cobra.Command{
		Use:   "vat",
		Short: "Calculate VAT for an amount",
		Example: `  bbctl vat --amount 100
  bbctl vat --amount 50 --rate-type custom --custom-rate 6
  bbctl vat --amount 121 --reverse`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt := vat.ParseRateType(rateType)

			var custom *float64
			if cmd.Flags().Changed("custom-rate") {
				if customRate < 0 || customRate > 100 {
					return errors.New("custom rate must be between 0 and 100")
				}

				custom = &customRate
			}

			if reverse {
				return writeJSON(cmd.OutOrStdout(), vat.FromTotal(amount, vat.EffectiveRate(rt, custom)))
			}

			return writeJSON(cmd.OutOrStdout(), vat.Calculate(amount, rt, custom))
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "amount excluding VAT, or including VAT with --reverse")
	cmd.Flags().StringVarP(&rateType, "rate-type", "t", string(vat.RateStandard), "standard, reduced, zero or custom")
	cmd.Flags().Float64Var(&customRate, "custom-rate", 0, "percentage used with --rate-type custom")
	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "split an amount that already includes VAT")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
