package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/catalogchecker/catalog-quality-checker/internal/analyzer"
	"github.com/catalogchecker/catalog-quality-checker/internal/config"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the built-in quality rules",
	Long: `List every built-in quality rule with its issue type, default severity,
and description. Issue-type names are valid arguments to 'check --rules'.`,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	for _, rule := range analyzer.DefaultRules(&cfg.Rules) {
		fmt.Printf("%-24s [%s]\n", rule.IssueType(), rule.DefaultSeverity())
		fmt.Printf("    %s\n", rule.Description())
	}

	return nil
}
