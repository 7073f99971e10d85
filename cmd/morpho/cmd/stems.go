package cmd

import (
	"github.com/spf13/cobra"
)

var stemsMax int

var stemsCmd = &cobra.Command{
	Use:   "stems <suffix>",
	Short: "List indexed words sharing a suffix",
	Long:  "Enumerates the suffix family from the reversed stem index ('-able' and 'able' are equivalent). Order is the index's native order: lexicographic over the reversed forms.",
	Args:  cobra.ExactArgs(1),
	RunE:  runStems,
}

func runStems(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp()
	if err != nil {
		return fail(err)
	}
	defer cleanup()

	hits, err := a.Index().StemsWithSuffix(args[0], stemsMax)
	if err != nil {
		return fail(err)
	}
	return printJSON(hits)
}

func init() {
	stemsCmd.Flags().IntVar(&stemsMax, "max", 20, "Maximum results (0 = unbounded)")
}
