package cmd

import (
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/morpho/internal/app"
)

// resetCLIState clears flag variables between Execute calls: cobra keeps
// flag values across runs within one process.
func resetCLIState() {
	flagDataDir, flagDBPath, flagLexicon, flagMinStem, flagPretty = "", "", app.DefaultLexicon, 0, false
	suffixWord, suffixLayers = "", false
	analyzeWord, analyzeWords = "", ""
	stemsMax = 20
}

// runCLI executes the root command in-process and captures stdout.
func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	resetCLIState()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	rootCmd.SetArgs(args)
	execErr := rootCmd.Execute()

	require.NoError(t, w.Close())
	os.Stdout = old
	out, readErr := io.ReadAll(r)
	require.NoError(t, readErr)
	require.NoError(t, execErr)
	return string(out)
}

func TestCLI_Suffix(t *testing.T) {
	out := runCLI(t, "suffix", "--word", "happiness")

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "happiness", res["word"])
	assert.Equal(t, "-ness", res["suffix"])
	assert.Equal(t, "noun", res["POS"])
	assert.InDelta(t, 0.9, res["confidence"], 1e-9)
	// The plain endpoint runs no stem verification.
	assert.NotContains(t, res, "stem_exists")
}

func TestCLI_SuffixLayers(t *testing.T) {
	out := runCLI(t, "suffix", "--word", "nationalization", "--layers")

	var layers []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &layers))
	require.Len(t, layers, 3)
	assert.Equal(t, "-ation", layers[0]["suffix"])
	assert.Equal(t, "-iz", layers[1]["suffix"])
	assert.Equal(t, "-al", layers[2]["suffix"])
	assert.Equal(t, "nation", layers[2]["stem"])
}

func TestCLI_Analyze(t *testing.T) {
	out := runCLI(t, "analyze", "--word", "happiness")

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, "happy", m["lemma"])
	assert.Equal(t, "-ness", m["suffix"])
	assert.Equal(t, "noun", m["POS"], "agreed POS serializes as the bare value")
	assert.InDelta(t, 0.9, m["confidence"], 1e-9)
	assert.NotContains(t, m, "errors")
}

func TestCLI_AnalyzeWords(t *testing.T) {
	out := runCLI(t, "analyze", "--words", "happiness, quickly")

	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "happiness", results[0]["word"])
	assert.Equal(t, "quickly", results[1]["word"])
	assert.Equal(t, "-ly", results[1]["suffix"])
}

func TestCLI_AnalyzeFlagValidation(t *testing.T) {
	resetCLIState()
	rootCmd.SetArgs([]string{"analyze", "--word", "x", "--words", "a,b"})
	assert.Error(t, rootCmd.Execute())

	resetCLIState()
	rootCmd.SetArgs([]string{"analyze"})
	assert.Error(t, rootCmd.Execute())
}

func TestCLI_Stems(t *testing.T) {
	out := runCLI(t, "stems", "ize")

	var hits []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &hits))
	require.Len(t, hits, 2)
	assert.Equal(t, "realize", hits[0]["word"])
	assert.Equal(t, "real", hits[0]["stem"])
	assert.Equal(t, "nationalize", hits[1]["word"])
	assert.Equal(t, "national", hits[1]["stem"])
}

func TestCLI_PrettyOutput(t *testing.T) {
	out := runCLI(t, "suffix", "--word", "happiness", "--pretty")
	assert.Contains(t, out, "\n  \"word\": \"happiness\"")
}
