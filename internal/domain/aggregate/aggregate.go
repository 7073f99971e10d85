// Package aggregate merges per-source analysis records into one consensus
// record. Sources are ports.ExternalAnalyzer implementations called
// in-process; a failing source is recorded and skipped, the others still
// contribute. Field merging is simple voting: all non-empty values equal
// means consensus (with a confidence boost), disagreement presents every
// option keyed by source name.
package aggregate

import (
	"context"
	"encoding/json"

	"github.com/corey/morpho/internal/ports"
)

// consensusBoost is added to the base confidence when independent sources
// agree on POS, capped at 1.0.
const consensusBoost = 0.2

// FieldVote is the merged value of one voted field. With consensus it
// serializes as the bare value; with disagreement it serializes as an
// object of per-source values plus "consensus": false; with no votes it
// serializes as null.
type FieldVote struct {
	Consensus bool
	Value     string
	BySource  map[string]string
}

// Voted reports whether any source contributed a value.
func (v FieldVote) Voted() bool { return len(v.BySource) > 0 }

// MarshalJSON implements the three-way shape described on the type.
func (v FieldVote) MarshalJSON() ([]byte, error) {
	if len(v.BySource) == 0 {
		return []byte("null"), nil
	}
	if v.Consensus {
		return json.Marshal(v.Value)
	}
	obj := make(map[string]any, len(v.BySource)+1)
	for source, val := range v.BySource {
		obj[source] = val
	}
	obj["consensus"] = false
	return json.Marshal(obj)
}

// Merged is the aggregated analysis of one word.
type Merged struct {
	Word       string                         `json:"word"`
	Lemma      string                         `json:"lemma,omitempty"`
	POS        FieldVote                      `json:"POS"`
	BasePOS    []string                       `json:"base_POS,omitempty"`
	Stem       string                         `json:"stem,omitempty"`
	Suffix     string                         `json:"suffix,omitempty"`
	Confidence float64                        `json:"confidence"`
	Records    map[string]*ports.PartialRecord `json:"records,omitempty"`
	Errors     map[string]string              `json:"errors,omitempty"`
}

// Aggregator fans a word out to its sources and merges the records.
type Aggregator struct {
	sources []ports.ExternalAnalyzer
}

// New builds an Aggregator over the given sources. Source order matters:
// it is the lemma preference order and the tie-break for base fields.
func New(sources ...ports.ExternalAnalyzer) *Aggregator {
	return &Aggregator{sources: sources}
}

// Analyze runs every source on the word and merges the results.
// Never returns an error: a word no source can analyze still produces a
// record with zero confidence.
func (g *Aggregator) Analyze(ctx context.Context, word string) Merged {
	records := make(map[string]*ports.PartialRecord, len(g.sources))
	var order []string
	errs := map[string]string{}

	for _, src := range g.sources {
		rec, err := src.Analyze(ctx, word)
		if err != nil {
			errs[src.Name()] = err.Error()
			continue
		}
		if rec == nil {
			continue
		}
		records[src.Name()] = rec
		order = append(order, src.Name())
	}

	merged := Merged{Word: word, Records: records}
	if len(errs) > 0 {
		merged.Errors = errs
	}

	// Lemma: first source (registration order) with an opinion, falling
	// back to the first available stem.
	for _, name := range order {
		if records[name].Lemma != "" {
			merged.Lemma = records[name].Lemma
			break
		}
	}

	// Stem, suffix, base POS, base confidence come from the first source
	// that populated them.
	for _, name := range order {
		rec := records[name]
		if merged.Stem == "" && rec.Stem != "" {
			merged.Stem = rec.Stem
		}
		if merged.Suffix == "" && rec.Suffix != "" {
			merged.Suffix = rec.Suffix
		}
		if merged.BasePOS == nil && len(rec.BasePOS) > 0 {
			merged.BasePOS = rec.BasePOS
		}
		if rec.Confidence > merged.Confidence {
			merged.Confidence = rec.Confidence
		}
	}
	if merged.Lemma == "" {
		merged.Lemma = merged.Stem
	}

	// POS voting.
	votes := map[string]string{}
	for _, name := range order {
		if pos := records[name].POS; pos != "" && pos != "unknown" {
			votes[name] = pos
		}
	}
	merged.POS = tally(votes)
	if merged.POS.Consensus && len(votes) > 1 {
		merged.Confidence = min(merged.Confidence+consensusBoost, 1.0)
	}

	return merged
}

// tally reduces per-source votes to a FieldVote.
func tally(votes map[string]string) FieldVote {
	if len(votes) == 0 {
		return FieldVote{}
	}
	var first string
	agreed := true
	for _, v := range votes {
		if first == "" {
			first = v
		} else if v != first {
			agreed = false
		}
	}
	if agreed {
		return FieldVote{Consensus: true, Value: first, BySource: votes}
	}
	return FieldVote{BySource: votes}
}
