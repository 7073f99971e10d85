package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/morpho/internal/domain/stemindex"
	"github.com/corey/morpho/internal/domain/suffixdb"
)

const testDoc = `{
  "suffixes": {
    "-ness": {
      "POS": "noun",
      "source_POS": ["adjective"],
      "category": "derivational",
      "meaning": "state or quality of",
      "productivity": 0.9,
      "frequency": 120,
      "orthographic_rules": [
        {"pattern": "y$", "replacement": "i", "example": "happy -> happiness"}
      ],
      "examples": ["happiness", "darkness", "kindness", "sadness"]
    },
    "-able": {
      "POS": "adjective",
      "source_POS": ["verb"],
      "category": "derivational",
      "frequency": 80,
      "orthographic_rules": [
        {"pattern": "e$", "replacement": "", "example": "believe -> believable"}
      ]
    },
    "-ation": {
      "POS": "noun",
      "source_POS": ["verb"],
      "category": "derivational",
      "frequency": 95,
      "orthographic_rules": [
        {"pattern": "e$", "replacement": "", "example": "nationalize -> nationalization"}
      ]
    },
    "-ize": {
      "POS": "verb",
      "source_POS": ["adjective", "noun"],
      "category": "derivational",
      "frequency": 60
    },
    "-al": {
      "POS": "adjective",
      "source_POS": ["noun"],
      "category": "derivational",
      "frequency": 70
    },
    "-s": {
      "POS": "noun",
      "category": "inflectional",
      "frequency": 30
    }
  },
  "metadata": {"language": "en"}
}`

func testAnalyzer(t *testing.T, words []string, cfg Config) *Analyzer {
	t.Helper()
	db, err := suffixdb.Load(strings.NewReader(testDoc))
	require.NoError(t, err)
	var idx *stemindex.Index
	if words != nil {
		idx = stemindex.Build(words)
	}
	return New(db, idx, cfg)
}

func TestAnalyze_VerifiedStemViaOrthRule(t *testing.T) {
	a := testAnalyzer(t, []string{"happy", "dark", "run"}, Config{})

	res := a.Analyze("happiness")
	assert.Equal(t, "happiness", res.Word)
	assert.Equal(t, "-ness", res.Suffix)
	assert.Equal(t, "happy", res.Stem)
	require.NotNil(t, res.StemExists)
	assert.True(t, *res.StemExists)
	assert.Equal(t, "noun", res.POS.Primary())
	assert.Equal(t, []string{"adjective"}, res.BasePOS)
	assert.Equal(t, suffixdb.Derivational, res.Category)
	assert.InDelta(t, 0.9, res.Confidence, 1e-9)
}

func TestAnalyze_NoMatchIsNotAnError(t *testing.T) {
	// A database without "-s" has nothing to offer for "cats".
	doc := `{"suffixes": {"-ness": {"POS": "noun", "category": "derivational", "frequency": 120}}}`
	db, err := suffixdb.Load(strings.NewReader(doc))
	require.NoError(t, err)
	a := New(db, stemindex.Build([]string{"cat"}), Config{})

	res := a.Analyze("cats")
	assert.False(t, res.Matched())
	assert.Equal(t, "cats", res.Stem)
	assert.Nil(t, res.StemExists)
	assert.Nil(t, res.POS)
	assert.Zero(t, res.Confidence)
}

func TestAnalyze_MinStemLengthGuard(t *testing.T) {
	strict := testAnalyzer(t, []string{"ad"}, Config{MinStemLength: 3})
	res := strict.Analyze("ads")
	assert.False(t, res.Matched(), "stem %q below minimum must not match", "ad")
	assert.Zero(t, res.Confidence)

	relaxed := testAnalyzer(t, []string{"ad"}, Config{MinStemLength: 2})
	res = relaxed.Analyze("ads")
	assert.Equal(t, "-s", res.Suffix)
	assert.Equal(t, "ad", res.Stem)
}

func TestAnalyze_UnverifiedStemScoresLower(t *testing.T) {
	a := testAnalyzer(t, []string{"happy"}, Config{})

	res := a.Analyze("vastness")
	assert.Equal(t, "-ness", res.Suffix)
	assert.Equal(t, "vast", res.Stem)
	require.NotNil(t, res.StemExists)
	assert.False(t, *res.StemExists)
	assert.InDelta(t, 0.6, res.Confidence, 1e-9)
}

func TestAnalyze_NoIndexMeansNoVerification(t *testing.T) {
	a := testAnalyzer(t, nil, Config{})

	res := a.Analyze("darkness")
	assert.Equal(t, "-ness", res.Suffix)
	assert.Equal(t, "dark", res.Stem)
	assert.Nil(t, res.StemExists, "StemExists is absent when no index is attached")
	assert.InDelta(t, 0.6, res.Confidence, 1e-9)
}

func TestAnalyze_FrequencyStrategy(t *testing.T) {
	a := testAnalyzer(t, nil, Config{Strategy: StrategyFrequency})

	// -ness sits above the frequency band, -s below it.
	assert.InDelta(t, 0.9, a.Analyze("kindness").Confidence, 1e-9)
	assert.InDelta(t, 0.7, a.Analyze("dogs").Confidence, 1e-9)
	assert.Zero(t, a.Analyze("xyz").Confidence)
}

func TestAnalyze_FuzzyVowelFallback(t *testing.T) {
	// "-al" declares no orthographic rules, so the y/i alternation relies
	// on the vowel swap: "colonial" -> raw "coloni" -> swap i/y -> "colony".
	a := testAnalyzer(t, []string{"colony"}, Config{})

	res := a.Analyze("colonial")
	assert.Equal(t, "colony", res.Stem)
	require.NotNil(t, res.StemExists)
	assert.True(t, *res.StemExists)
}

func TestAnalyze_EchoesOriginalCase(t *testing.T) {
	a := testAnalyzer(t, []string{"happy"}, Config{})

	res := a.Analyze("Happiness")
	assert.Equal(t, "Happiness", res.Word)
	assert.Equal(t, "happy", res.Stem)
}

func TestAnalyze_TotalOverDegenerateInput(t *testing.T) {
	a := testAnalyzer(t, []string{"happy"}, Config{})
	for _, w := range []string{"", "!!!", "-", "s"} {
		res := a.Analyze(w)
		assert.False(t, res.Matched(), "input %q", w)
		assert.Zero(t, res.Confidence, "input %q", w)
	}
}

func TestAnalyze_ExamplesCapped(t *testing.T) {
	a := testAnalyzer(t, nil, Config{})
	res := a.Analyze("darkness")
	assert.Len(t, res.Examples, 3)
}

func TestAnalyze_EmptyDatabase(t *testing.T) {
	a := New(suffixdb.Empty(), stemindex.Build([]string{"happy"}), Config{})
	res := a.Analyze("happiness")
	assert.False(t, res.Matched())
	assert.Zero(t, res.Confidence)
}

func TestAnalyzeLayers_RecursiveStripping(t *testing.T) {
	a := testAnalyzer(t, []string{"nation", "national", "nationalize"}, Config{})

	layers := a.AnalyzeLayers("nationalization")
	require.Len(t, layers, 3)

	assert.Equal(t, "-ation", layers[0].Suffix)
	assert.Equal(t, "nationalize", layers[0].Stem)
	assert.Equal(t, "-ize", layers[1].Suffix)
	assert.Equal(t, "national", layers[1].Stem)
	assert.Equal(t, "-al", layers[2].Suffix)
	assert.Equal(t, "nation", layers[2].Stem)

	// Each layer's stem is strictly shorter than its input word.
	prev := len("nationalization")
	for _, l := range layers {
		assert.Less(t, len(l.Stem), prev)
		prev = len(l.Stem)
	}
}

func TestAnalyzeLayers_DepthBounded(t *testing.T) {
	a := testAnalyzer(t, []string{"nation", "national", "nationalize"}, Config{MaxDepth: 2})

	layers := a.AnalyzeLayers("nationalization")
	require.Len(t, layers, 2)
	assert.Equal(t, "-ize", layers[1].Suffix)
}

func TestAnalyzeLayers_NoMatchYieldsSingleResult(t *testing.T) {
	a := testAnalyzer(t, []string{"run"}, Config{})

	layers := a.AnalyzeLayers("run")
	require.Len(t, layers, 1)
	assert.False(t, layers[0].Matched())
	assert.Equal(t, "run", layers[0].Stem)
}

func TestSwapLastVowel(t *testing.T) {
	got, ok := swapLastVowel("happi")
	require.True(t, ok)
	assert.Equal(t, "happy", got)

	got, ok = swapLastVowel("tidi")
	require.True(t, ok)
	assert.Equal(t, "tidy", got)

	_, ok = swapLastVowel("zzz")
	assert.False(t, ok)
}
