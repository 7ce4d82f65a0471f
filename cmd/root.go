package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Version can be set at build time using ldflags
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "catalog-quality-checker",
	Short: "A CLI tool for analyzing product catalog quality",
	Long: `Catalog Quality Checker analyzes a product catalog CSV export against
a set of business-quality rules: loss-making prices, stale discounts,
contradictory review data, stock problems, and restock-date errors.

It produces a grouped, scored quality report in table, markdown, JSON,
or CSV format.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Catalog Quality Checker - Use 'catalog-quality-checker help' for available commands")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is .catalogcheck.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "table", "output format (table, json, markdown, csv)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output file path")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("catalog-quality-checker version %s\n", Version)
		},
	})
}

// configureLogging wires the diagnostics side-channel to stderr so it
// never mixes with report output on stdout.
func configureLogging(cmd *cobra.Command) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
