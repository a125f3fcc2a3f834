// Package cmd implements the melicalc CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "melicalc",
	Short: "Profit calculator for Mercado Livre sourcing",
	Long: "melicalc resolves Mercado Livre product URLs into listings and\n" +
		"computes sale fees, shipping, taxes, and net sourcing profit.\n" +
		"It works with or without API credentials: anonymous runs lean on\n" +
		"the storefront scraping fallback.",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file path (optional)")

	rootCmd.AddCommand(versionCommand())
}

func initConfig() {
	viper.SetEnvPrefix("MELICALC")
	viper.AutomaticEnv()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
