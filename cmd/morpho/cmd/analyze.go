package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	analyzeWord  string
	analyzeWords string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze --word <word> | --words <a,b,c>",
	Short: "Full multi-source analysis",
	Long:  "Suffix-first analysis with reversed-index stem verification, merged with the lexicon source by per-field voting. Disagreements are reported per source with consensus:false.",
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if (analyzeWord == "") == (analyzeWords == "") {
		return fail(fmt.Errorf("exactly one of --word or --words is required"))
	}

	a, cleanup, err := newApp()
	if err != nil {
		return fail(err)
	}
	defer cleanup()

	agg := a.Aggregator()
	ctx := cmd.Context()

	if analyzeWord != "" {
		return printJSON(agg.Analyze(ctx, analyzeWord))
	}

	var results []any
	for _, w := range strings.Split(analyzeWords, ",") {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		results = append(results, agg.Analyze(ctx, w))
	}
	return printJSON(results)
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeWord, "word", "", "Single word to analyze")
	f.StringVar(&analyzeWords, "words", "", "Comma-separated words to analyze")
}
