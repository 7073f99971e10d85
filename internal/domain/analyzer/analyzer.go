// Package analyzer composes the suffix database and the reversed stem index
// into the suffix-first analysis pipeline: identify the longest matching
// suffix, strip it, undo orthographic changes, verify the candidate stem
// against the index, and score confidence.
//
// An Analyzer is immutable after New and safe for concurrent use.
package analyzer

import (
	"strings"

	"github.com/corey/morpho/internal/domain/stemindex"
	"github.com/corey/morpho/internal/domain/suffixdb"
)

// ConfidenceStrategy selects how a result's confidence is derived.
// Two call sites in the system use different policies, so both are named
// and kept independent instead of merged.
type ConfidenceStrategy string

const (
	// StrategyStemVerification scores on whether the candidate stem was
	// found in the index: 0.9 verified, 0.6 unverified, 0.0 no suffix.
	StrategyStemVerification ConfidenceStrategy = "stem-verification"

	// StrategyFrequency scores on the matched suffix's corpus frequency
	// alone: 0.9 above the frequency band, 0.7 for any match, 0.0 none.
	// Used by the plain identification endpoint, which has no index.
	StrategyFrequency ConfidenceStrategy = "frequency"
)

// Default tuning. MinStemLength guards against over-segmentation;
// MaxDepth bounds recursive stripping.
const (
	DefaultMinStemLength = 2
	DefaultMaxDepth      = 3

	// frequencyBand is the corpus-count threshold separating the 0.9
	// and 0.7 confidence bands under StrategyFrequency.
	frequencyBand = 50

	confVerified   = 0.9
	confUnverified = 0.6
	confFrequent   = 0.9
	confMatched    = 0.7
)

// Config carries explicit analyzer settings. Passed into New rather than
// read from ambient state so multiple configurations coexist in one
// process. Zero values take the package defaults.
type Config struct {
	MinStemLength int
	MaxDepth      int
	Strategy      ConfidenceStrategy
}

func (c Config) withDefaults() Config {
	if c.MinStemLength <= 0 {
		c.MinStemLength = DefaultMinStemLength
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.Strategy == "" {
		c.Strategy = StrategyStemVerification
	}
	return c
}

// Result is the record of one suffix-first query. Created fresh per query,
// never mutated, no identity beyond its values.
//
// An empty Suffix means no suffix was identified — a valid outcome, never
// an error. StemExists is nil when verification did not run (no suffix
// matched, or no index is attached).
type Result struct {
	Word       string             `json:"word"`
	Suffix     string             `json:"suffix,omitempty"`
	Stem       string             `json:"stem"`
	StemExists *bool              `json:"stem_exists,omitempty"`
	POS        *suffixdb.PosValue `json:"POS,omitempty"`
	BasePOS    []string           `json:"base_POS,omitempty"`
	Category   suffixdb.Category  `json:"category,omitempty"`
	Confidence float64            `json:"confidence"`
	Meaning    string             `json:"meaning,omitempty"`
	Examples   []string           `json:"examples,omitempty"`
}

// Matched reports whether a suffix was identified.
func (r Result) Matched() bool { return r.Suffix != "" }

// maxExampleEcho bounds how many attested examples a result carries.
const maxExampleEcho = 3

// Analyzer runs suffix-first analysis against one database/index pair.
type Analyzer struct {
	db  *suffixdb.DB
	idx *stemindex.Index
	cfg Config
}

// New builds an Analyzer. db must be non-nil (use suffixdb.Empty() for the
// degraded no-database state). idx may be nil when stem verification is
// unavailable; StrategyFrequency is the sensible pairing then.
func New(db *suffixdb.DB, idx *stemindex.Index, cfg Config) *Analyzer {
	if db == nil {
		db = suffixdb.Empty()
	}
	return &Analyzer{db: db, idx: idx, cfg: cfg.withDefaults()}
}

// Analyze runs one suffix-first query. Total over all string inputs:
// the empty string and pure punctuation simply never match a suffix and
// fall through to the no-match branch.
func (a *Analyzer) Analyze(word string) Result {
	lower := strings.ToLower(word)

	entry, ok := a.db.FindLongestMatch(lower, a.cfg.MinStemLength)
	if !ok {
		return Result{Word: word, Stem: word, Confidence: 0.0}
	}

	raw := lower[:len(lower)-len(entry.Bare())]

	// Candidate stems: the raw strip first, then each orthographic rule's
	// reverse application, in declared rule order.
	candidates := []string{raw}
	seen := map[string]struct{}{raw: {}}
	for _, rule := range entry.OrthRules {
		if variant, applied := rule.ReverseApply(raw); applied {
			if _, dup := seen[variant]; !dup {
				seen[variant] = struct{}{}
				candidates = append(candidates, variant)
			}
		}
	}

	stem := raw
	var stemExists *bool
	if a.idx != nil {
		hit := false
		for _, cand := range candidates {
			if a.inIndex(cand) {
				stem, hit = cand, true
				break
			}
		}
		if !hit {
			// Heuristic safety net: the declared rule tables are
			// incomplete, so retry each candidate with its last vowel
			// swapped for the designated alternate.
			for _, cand := range candidates {
				alt, ok := swapLastVowel(cand)
				if !ok {
					continue
				}
				if a.inIndex(alt) {
					stem, hit = alt, true
					break
				}
			}
		}
		stemExists = &hit
	}

	res := Result{
		Word:       word,
		Suffix:     entry.Suffix,
		Stem:       stem,
		StemExists: stemExists,
		BasePOS:    entry.SourcePOS,
		Category:   entry.Category,
		Meaning:    entry.Meaning,
	}
	pos := entry.POS
	res.POS = &pos
	if len(entry.Examples) > maxExampleEcho {
		res.Examples = entry.Examples[:maxExampleEcho]
	} else {
		res.Examples = entry.Examples
	}
	res.Confidence = a.confidence(entry, stemExists)
	return res
}

// AnalyzeLayers strips suffixes recursively: each matched layer's stem is
// fed back in as the next word, up to the configured max depth, stopping
// as soon as one pass finds no suffix. Layers come outermost-first.
// Termination is guaranteed because every layer's stem is strictly shorter
// than its input.
//
// A word with no identifiable suffix yields its single no-match result.
func (a *Analyzer) AnalyzeLayers(word string) []Result {
	var layers []Result
	current := word
	for depth := 0; depth < a.cfg.MaxDepth; depth++ {
		res := a.Analyze(current)
		if !res.Matched() {
			break
		}
		layers = append(layers, res)
		current = res.Stem
	}
	if layers == nil {
		return []Result{a.Analyze(word)}
	}
	return layers
}

// confidence applies the configured strategy.
func (a *Analyzer) confidence(entry *suffixdb.SuffixEntry, stemExists *bool) float64 {
	switch a.cfg.Strategy {
	case StrategyFrequency:
		if entry.Frequency > frequencyBand {
			return confFrequent
		}
		return confMatched
	default:
		if stemExists != nil && *stemExists {
			return confVerified
		}
		return confUnverified
	}
}

// inIndex is a nil-tolerant membership check. ErrNotLoaded cannot occur
// here: Analyze only verifies when a.idx is non-nil.
func (a *Analyzer) inIndex(stem string) bool {
	ok, err := a.idx.Contains(stem)
	return err == nil && ok
}

// vowelAlternates maps each vowel letter to its designated alternate for
// the fuzzy fallback. Covers the y/i and e/a alternations English spelling
// rules leave undeclared, plus the back-vowel pair for loanwords.
var vowelAlternates = map[rune]rune{
	'a': 'e',
	'e': 'a',
	'i': 'y',
	'o': 'u',
	'u': 'o',
	'y': 'i',
}

// swapLastVowel replaces the last vowel letter in stem with its designated
// alternate. Returns false when stem contains no vowel.
func swapLastVowel(stem string) (string, bool) {
	runes := []rune(stem)
	for i := len(runes) - 1; i >= 0; i-- {
		if alt, ok := vowelAlternates[runes[i]]; ok {
			runes[i] = alt
			return string(runes), true
		}
	}
	return "", false
}
