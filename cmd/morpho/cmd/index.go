package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/morpho/internal/domain/stemindex"
	"github.com/corey/morpho/internal/domain/suffixdb"
)

var (
	indexWordlist string
	indexSuffixes string
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage persisted lexicons",
}

var indexBuildCmd = &cobra.Command{
	Use:   "build --wordlist <file> [--suffixes <file>]",
	Short: "Build and persist a lexicon",
	Long:  "Deduplicates a word list into a stem index snapshot and stores it (plus an optional suffix database snapshot) in the bbolt lexicon store.",
	RunE:  runIndexBuild,
}

var indexStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lexicon sizes",
	RunE:  runIndexStats,
}

var indexDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete a persisted lexicon",
	RunE:  runIndexDrop,
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	data, err := os.ReadFile(indexWordlist)
	if err != nil {
		return fail(fmt.Errorf("read word list: %w", err))
	}
	words := splitLines(data)
	idx := stemindex.Build(words)
	if err := store.SaveWordList(flagLexicon, idx.Words()); err != nil {
		return fail(err)
	}

	suffixCount := 0
	if indexSuffixes != "" {
		raw, err := os.ReadFile(indexSuffixes)
		if err != nil {
			return fail(fmt.Errorf("read suffix database: %w", err))
		}
		// Validate before persisting: a malformed snapshot would degrade
		// every later load to an empty database.
		db, err := suffixdb.Load(bytes.NewReader(raw))
		if err != nil {
			return fail(err)
		}
		if err := store.SaveSuffixSet(flagLexicon, raw); err != nil {
			return fail(err)
		}
		suffixCount = db.Len()
	}

	fmt.Printf("%s✓ lexicon %q saved%s (%d stems", colorGreen, flagLexicon, colorReset, idx.Len())
	if suffixCount > 0 {
		fmt.Printf(", %d suffixes", suffixCount)
	}
	fmt.Println(")")
	return nil
}

func runIndexStats(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp()
	if err != nil {
		return fail(err)
	}
	defer cleanup()

	return printJSON(map[string]any{
		"lexicon":  flagLexicon,
		"stems":    a.Index().Len(),
		"suffixes": a.DB().Len(),
		"metadata": a.DB().Metadata(),
	})
}

func runIndexDrop(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	if err := store.DeleteLexicon(flagLexicon); err != nil {
		return fail(err)
	}
	fmt.Printf("%s✓ lexicon %q dropped%s\n", colorGreen, flagLexicon, colorReset)
	return nil
}

// splitLines parses a word-list file: one stem per line, blanks and
// #-comments skipped.
func splitLines(data []byte) []string {
	var words []string
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		words = append(words, string(line))
	}
	return words
}

func init() {
	indexBuildCmd.Flags().StringVar(&indexWordlist, "wordlist", "", "Word list file, one stem per line")
	indexBuildCmd.Flags().StringVar(&indexSuffixes, "suffixes", "", "Suffix database JSON to persist alongside")
	indexBuildCmd.MarkFlagRequired("wordlist")

	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexStatsCmd)
	indexCmd.AddCommand(indexDropCmd)
}
