package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows data sources, lexicon store, and loaded structure sizes.",
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp()
	if err != nil {
		return fail(err)
	}
	defer cleanup()

	dataSource := "embedded seed"
	if flagDataDir != "" {
		dataSource = flagDataDir
	}
	storeStatus := fmt.Sprintf("%s✗ not configured%s", colorYellow, colorReset)
	if flagDBPath != "" {
		storeStatus = fmt.Sprintf("%s✓ %s%s", colorGreen, flagDBPath, colorReset)
	}

	fmt.Printf("%smorpho config%s\n", colorBold, colorReset)
	fmt.Printf("  Lexicon:    %s\n", flagLexicon)
	fmt.Printf("  Data:       %s\n", dataSource)
	fmt.Printf("  Store:      %s\n", storeStatus)
	fmt.Printf("  Suffixes:   %d\n", a.DB().Len())
	fmt.Printf("  Stems:      %d\n", a.Index().Len())
	if flagMinStem > 0 {
		fmt.Printf("  Min stem:   %d\n", flagMinStem)
	}
	return nil
}
