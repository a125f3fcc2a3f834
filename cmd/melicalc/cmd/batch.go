package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"melicalc/internal/batch"
	"melicalc/internal/engine"
	"melicalc/internal/history"
)

func batchCommand() *cobra.Command {
	var (
		weightKg     float64
		tier         string
		reputation   string
		taxPct       float64
		fixedCost    float64
		targetMargin float64
		exportPath   string
		jsonOutput   bool
	)

	batchCmd := &cobra.Command{
		Use:   "batch [file|-]",
		Short: "Evaluate a list of product URLs from a text or CSV file",
		Long: "Reads product URLs from a file (one per line, or a CSV with a\n" +
			"URL/Link/ID column) and evaluates each in order. Failures are\n" +
			"reported per line and never abort the run.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := os.Stdin
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening batch file: %w", err)
				}
				defer f.Close() //nolint:errcheck // read-only file
				in = f
			}

			sources, err := batch.ReadSources(in)
			if err != nil {
				return fmt.Errorf("reading batch file: %w", err)
			}
			if len(sources) == 0 {
				fmt.Println("No sources found in file.")
				return nil
			}

			a, err := buildApp()
			if err != nil {
				return err
			}

			params := defaultParams(a.cfg.Costs)
			applyFlagOverrides(cmd, &params, weightKg, tier, reputation,
				taxPct, fixedCost, targetMargin)

			items := a.evaluator.EvaluateBatch(context.Background(), sources, params,
				func(i, n int, item engine.BatchItem) {
					if jsonOutput {
						return
					}
					printBatchItem(i, n, item)
				})

			if jsonOutput {
				if err := outputJSON(items); err != nil {
					return err
				}
			} else {
				printBatchSummary(items)
			}

			if exportPath != "" {
				if err := history.ExportCSV(exportPath, a.store.List()); err != nil {
					return fmt.Errorf("exporting history: %w", err)
				}
				fmt.Printf("History exported to %s\n", exportPath)
			}
			return nil
		},
	}

	batchCmd.Flags().Float64Var(&weightKg, "weight", 0, "package weight in kg for every item (overrides detection)")
	batchCmd.Flags().StringVar(&tier, "tier", "", "listing tier (classic, premium)")
	batchCmd.Flags().StringVar(&reputation, "reputation", "", "seller reputation (none, mercado_lider, official_store)")
	batchCmd.Flags().Float64Var(&taxPct, "tax-pct", 0, "tax percentage of the sale price")
	batchCmd.Flags().Float64Var(&fixedCost, "fixed-cost", 0, "fixed cost per sale in BRL")
	batchCmd.Flags().Float64Var(&targetMargin, "target-margin", 0, "desired net margin pct")
	batchCmd.Flags().StringVar(&exportPath, "export", "", "write the run history to a CSV file")
	batchCmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return batchCmd
}

func init() {
	rootCmd.AddCommand(batchCommand())
}

func printBatchItem(i, n int, item engine.BatchItem) {
	if item.Err != nil {
		fmt.Printf("[%d/%d] FAIL %s: %v\n", i+1, n, item.Input, item.Err)
		return
	}
	ev := item.Evaluation
	fmt.Printf("[%d/%d] %s | R$ %s | profit R$ %s (%s%%)\n",
		i+1, n, ev.Product.Title,
		ev.Product.Price.StringFixed(2),
		ev.Result.NetProfit.StringFixed(2),
		ev.Result.MarginPct.StringFixed(1))
}

func printBatchSummary(items []engine.BatchItem) {
	ok, failed := 0, 0
	for _, item := range items {
		if item.Err != nil {
			failed++
		} else {
			ok++
		}
	}
	fmt.Printf("\n%d evaluated, %d failed\n", ok, failed)
}
