package cmd

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"melicalc/pkg/pricing"
)

func shippingCommand() *cobra.Command {
	var (
		price      float64
		reputation string
	)

	shippingCmd := &cobra.Command{
		Use:   "shipping [weight-kg]",
		Short: "Estimate the seller-paid shipping cost for a weight",
		Long: "Estimates what the seller pays to ship an item of the given\n" +
			"weight. Below the free-shipping threshold the buyer pays and the\n" +
			"seller cost is zero; --reputation applies the seller discount.",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			weightKg, err := strconv.ParseFloat(args[0], 64)
			if err != nil || weightKg <= 0 {
				return fmt.Errorf("weight must be a positive number of kg, got %q", args[0])
			}

			rep, err := pricing.ParseReputationTier(reputation)
			if err != nil {
				return err
			}

			priceDec := decimal.NewFromFloat(price)
			cost := pricing.EstimateShipping(weightKg, priceDec, rep.Discount())

			fmt.Printf("Shipping for %.2f kg at R$ %s\n", weightKg, priceDec.StringFixed(2))
			fmt.Printf("  base:      R$ %s\n", pricing.BaseShipping(weightKg).StringFixed(2))
			fmt.Printf("  seller:    %s\n", rep.Label())
			if cost.IsZero() {
				fmt.Println("  cost:      R$ 0.00 (buyer pays below the free-shipping threshold)")
			} else {
				fmt.Printf("  cost:      R$ %s\n", cost.StringFixed(2))
			}
			return nil
		},
	}

	shippingCmd.Flags().Float64Var(&price, "price", 100, "sale price used for the free-shipping threshold")
	shippingCmd.Flags().StringVar(&reputation, "reputation", "", "seller reputation (none, mercado_lider, official_store)")

	return shippingCmd
}

func init() {
	rootCmd.AddCommand(shippingCommand())
}
