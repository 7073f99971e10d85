package aggregate

import (
	"context"

	"github.com/corey/morpho/internal/domain/analyzer"
	"github.com/corey/morpho/internal/domain/stemindex"
	"github.com/corey/morpho/internal/ports"
)

// lexiconConfidence is the fixed confidence of a bare lexicon hit: the
// word is attested, but the lexicon says nothing about its morphology.
const lexiconConfidence = 0.8

// SuffixSource adapts the suffix-first analyzer to the ExternalAnalyzer
// port so it can vote alongside other sources.
type SuffixSource struct {
	a *analyzer.Analyzer
}

// NewSuffixSource wraps an analyzer as an aggregation source.
func NewSuffixSource(a *analyzer.Analyzer) *SuffixSource {
	return &SuffixSource{a: a}
}

// Name implements ports.ExternalAnalyzer.
func (s *SuffixSource) Name() string { return "suffix" }

// Analyze implements ports.ExternalAnalyzer.
func (s *SuffixSource) Analyze(ctx context.Context, word string) (*ports.PartialRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := s.a.Analyze(word)
	rec := &ports.PartialRecord{
		Word:       word,
		Stem:       res.Stem,
		Suffix:     res.Suffix,
		BasePOS:    res.BasePOS,
		Confidence: res.Confidence,
	}
	if res.POS != nil && !res.POS.IsUnknown() {
		rec.POS = res.POS.Primary()
	}
	// A verified stem is this source's lemma proposal.
	if res.StemExists != nil && *res.StemExists {
		rec.Lemma = res.Stem
	}
	return rec, nil
}

// LexiconSource reports whether the surface word itself is an attested
// dictionary form — when it is, the word is its own lemma. It contributes
// no morphology; it exists to confirm or contradict stripping.
type LexiconSource struct {
	idx *stemindex.Index
}

// NewLexiconSource wraps a stem index as an aggregation source.
func NewLexiconSource(idx *stemindex.Index) *LexiconSource {
	return &LexiconSource{idx: idx}
}

// Name implements ports.ExternalAnalyzer.
func (s *LexiconSource) Name() string { return "lexicon" }

// Analyze implements ports.ExternalAnalyzer. Returns nil, nil ("no
// opinion") for words absent from the lexicon.
func (s *LexiconSource) Analyze(ctx context.Context, word string) (*ports.PartialRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ok, err := s.idx.Contains(word)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &ports.PartialRecord{
		Word:       word,
		Lemma:      word,
		Confidence: lexiconConfidence,
	}, nil
}
