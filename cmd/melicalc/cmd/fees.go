package cmd

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"melicalc/internal/engine"
	"melicalc/pkg/pricing"
)

func feesCommand() *cobra.Command {
	var categoryID string

	feesCmd := &cobra.Command{
		Use:   "fees [price]",
		Short: "Show sale fees for a price",
		Long: "Shows the classic and premium sale fees for a hypothetical price.\n" +
			"With --category the live fee endpoint is consulted; otherwise the\n" +
			"static schedule answers.",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			price, err := decimal.NewFromString(args[0])
			if err != nil || price.IsNegative() {
				return fmt.Errorf("price must be a non-negative number, got %q", args[0])
			}

			quote := pricing.FallbackFees(price)
			source := engine.FeeSourceFallback
			if categoryID != "" {
				a, err := buildApp()
				if err != nil {
					return err
				}
				quote, source = engine.QuoteFees(
					context.Background(), a.client, a.log, price, categoryID)
			}

			fmt.Printf("Fees for R$ %s (%s)\n", price.StringFixed(2), source)
			fmt.Printf("  classic: R$ %s (%s%%)\n",
				quote.Classic.StringFixed(2), quote.ClassicPct.StringFixed(1))
			fmt.Printf("  premium: R$ %s (%s%%)\n",
				quote.Premium.StringFixed(2), quote.PremiumPct.StringFixed(1))
			return nil
		},
	}

	feesCmd.Flags().StringVar(&categoryID, "category", "", "category id for a live quote")

	return feesCmd
}

func init() {
	rootCmd.AddCommand(feesCommand())
}
