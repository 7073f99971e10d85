package ports

import "context"

// ExternalAnalyzer is one source of morphological evidence for a word.
// Implementations run in-process; a failing analyzer degrades gracefully —
// the aggregator records the error and the remaining sources still merge.
// Heavy backends (a POS tagger, a lexical database) attach here.
type ExternalAnalyzer interface {
	// Name identifies this source in merged output (e.g. "suffix", "lexicon").
	Name() string

	// Analyze produces a partial record for the word, or an error if this
	// source cannot contribute. A nil record with nil error is treated as
	// "no opinion" and skipped.
	Analyze(ctx context.Context, word string) (*PartialRecord, error)
}

// PartialRecord is the per-source analysis record consumed by the aggregator.
// Fields the source cannot populate stay empty and are excluded from voting.
type PartialRecord struct {
	Word       string   `json:"word"`
	Lemma      string   `json:"lemma,omitempty"`
	POS        string   `json:"POS,omitempty"`
	BasePOS    []string `json:"base_POS,omitempty"`
	Stem       string   `json:"stem,omitempty"`
	Suffix     string   `json:"suffix,omitempty"`
	Confidence float64  `json:"confidence"`
}
