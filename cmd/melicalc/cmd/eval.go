package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"melicalc/internal/engine"
	"melicalc/pkg/pricing"
)

func evalCommand() *cobra.Command {
	var (
		weightKg     float64
		tier         string
		reputation   string
		taxPct       float64
		fixedCost    float64
		targetMargin float64
		jsonOutput   bool
	)

	evalCmd := &cobra.Command{
		Use:   "eval [url or id]",
		Short: "Evaluate one product URL or listing id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			params := defaultParams(a.cfg.Costs)
			applyFlagOverrides(cmd, &params, weightKg, tier, reputation,
				taxPct, fixedCost, targetMargin)

			ev, err := a.evaluator.Evaluate(context.Background(), args[0], params)
			if err != nil {
				return err
			}

			if jsonOutput {
				return outputJSON(ev)
			}
			printEvaluation(ev, params)
			return nil
		},
	}

	evalCmd.Flags().Float64Var(&weightKg, "weight", 0, "package weight in kg (overrides detection)")
	evalCmd.Flags().StringVar(&tier, "tier", "", "listing tier (classic, premium)")
	evalCmd.Flags().StringVar(&reputation, "reputation", "", "seller reputation (none, mercado_lider, official_store)")
	evalCmd.Flags().Float64Var(&taxPct, "tax-pct", 0, "tax percentage of the sale price")
	evalCmd.Flags().Float64Var(&fixedCost, "fixed-cost", 0, "fixed cost per sale in BRL")
	evalCmd.Flags().Float64Var(&targetMargin, "target-margin", 0, "desired net margin pct; prints the max purchase price")
	evalCmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return evalCmd
}

func init() {
	rootCmd.AddCommand(evalCommand())
}

// applyFlagOverrides merges explicitly set flags onto the configured
// defaults. Checking Changed lets an explicit zero win over a default.
func applyFlagOverrides(cmd *cobra.Command, params *engine.Params,
	weightKg float64, tier, reputation string,
	taxPct, fixedCost, targetMargin float64,
) {
	if cmd.Flags().Changed("weight") {
		params.WeightKg = weightKg
	}
	if cmd.Flags().Changed("tier") {
		params.ListingTier = pricing.ListingTier(tier)
	}
	if cmd.Flags().Changed("reputation") {
		if rep, err := pricing.ParseReputationTier(reputation); err == nil {
			params.Reputation = rep
		}
	}
	if cmd.Flags().Changed("tax-pct") {
		params.TaxPct = decimal.NewFromFloat(taxPct)
	}
	if cmd.Flags().Changed("fixed-cost") {
		params.FixedCost = decimal.NewFromFloat(fixedCost)
	}
	if cmd.Flags().Changed("target-margin") {
		params.TargetMarginPct = decimal.NewFromFloat(targetMargin)
	}
}

func printEvaluation(ev *engine.Evaluation, params engine.Params) {
	p := ev.Product
	fmt.Printf("%s\n", p.Title)
	fmt.Printf("  id:         %s (%s)\n", p.ID, p.Source)
	if ev.CategoryPath != "" {
		fmt.Printf("  category:   %s\n", ev.CategoryPath)
	}
	fmt.Printf("  price:      R$ %s\n", p.Price.StringFixed(2))

	weightNote := "detected"
	if !ev.WeightDetected {
		weightNote = "assumed"
	}
	fmt.Printf("  weight:     %.2f kg (%s)\n", ev.WeightKg, weightNote)

	fmt.Printf("  fee:        R$ %s (%s%%, %s, %s)\n",
		ev.Result.Fee.StringFixed(2), ev.Result.FeePct.StringFixed(1),
		params.ListingTier, ev.FeeSource)
	fmt.Printf("  shipping:   R$ %s (%s)\n",
		ev.Result.Shipping.StringFixed(2), params.Reputation.Label())
	fmt.Printf("  tax:        R$ %s\n", ev.Result.Tax.StringFixed(2))
	fmt.Printf("  fixed cost: R$ %s\n", ev.Result.FixedCost.StringFixed(2))
	fmt.Printf("  receivable: R$ %s\n", ev.Result.NetReceivable.StringFixed(2))
	fmt.Printf("  net profit: R$ %s (%s%% margin)\n",
		ev.Result.NetProfit.StringFixed(2), ev.Result.MarginPct.StringFixed(1))

	if ev.TargetPurchase != nil {
		fmt.Printf("  max cost for %s%% margin: R$ %s\n",
			params.TargetMarginPct.StringFixed(1), ev.TargetPurchase.StringFixed(2))
	}
	fmt.Printf("  link:       %s\n", p.Permalink)
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
