package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/morpho/internal/adapters/bbolt"
	"github.com/corey/morpho/internal/app"
	"github.com/corey/morpho/internal/ports"
)

var (
	flagDataDir string
	flagDBPath  string
	flagLexicon string
	flagMinStem int
	flagPretty  bool
)

var rootCmd = &cobra.Command{
	Use:   "morpho",
	Short: "morpho — suffix-first morphological analysis",
	Long:  "Identifies suffixes by longest match, verifies stems against a reversed-trie lexicon, and merges multi-source analyses into a consensus record.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newApp wires an App from the global flags. The returned cleanup closes
// the storage adapter when one was opened.
func newApp() (*app.App, func(), error) {
	var store ports.Storage
	cleanup := func() {}

	if flagDBPath != "" {
		s, err := bbolt.NewStore(flagDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open lexicon store: %w", err)
		}
		store = s
		cleanup = func() { s.Close() }
	}

	a := app.New(app.Config{
		DataDir:       flagDataDir,
		Lexicon:       flagLexicon,
		MinStemLength: flagMinStem,
	}, store)
	return a, cleanup, nil
}

// openStore opens the bbolt store, failing when --db was not given.
func openStore() (*bbolt.Store, error) {
	if flagDBPath == "" {
		return nil, fmt.Errorf("no lexicon store configured (use --db)")
	}
	return bbolt.NewStore(flagDBPath)
}

func fail(err error) error {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagDataDir, "data", "", "Directory with suffixes.json / wordlist.txt overrides")
	pf.StringVar(&flagDBPath, "db", "", "Path to the bbolt lexicon store")
	pf.StringVar(&flagLexicon, "lexicon", app.DefaultLexicon, "Lexicon name within the store")
	pf.IntVar(&flagMinStem, "min-stem", 0, "Minimum stem length (default 2)")
	pf.BoolVar(&flagPretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(suffixCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(stemsCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(configCmd)
}
