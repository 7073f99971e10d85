package cmd

import (
	"github.com/spf13/cobra"
)

var (
	suffixWord   string
	suffixLayers bool
)

var suffixCmd = &cobra.Command{
	Use:   "suffix --word <word>",
	Short: "Identify the suffix of a word",
	Long:  "Longest-match suffix identification against the suffix database. Confidence comes from the suffix's corpus frequency; no stem verification runs.",
	RunE:  runSuffix,
}

func runSuffix(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp()
	if err != nil {
		return fail(err)
	}
	defer cleanup()

	an := a.SuffixAnalyzer()
	if suffixLayers {
		return printJSON(an.AnalyzeLayers(suffixWord))
	}
	return printJSON(an.Analyze(suffixWord))
}

func init() {
	f := suffixCmd.Flags()
	f.StringVar(&suffixWord, "word", "", "Word to analyze")
	f.BoolVar(&suffixLayers, "layers", false, "Strip suffixes recursively, outermost first")
	suffixCmd.MarkFlagRequired("word")
}
