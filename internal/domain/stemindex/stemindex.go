// Package stemindex implements the reversed stem index: an immutable set of
// known stems, each stored character-reversed in a patricia trie, so that
// suffix queries on the original orientation become prefix queries on the
// trie. That one inversion is the reason for a trie over a plain hash set —
// it buys enumeration of whole suffix families, not just exact membership.
//
// Built once from a word list, read-only thereafter. Concurrent readers
// share one instance without locking.
package stemindex

import (
	"errors"
	"sort"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

// ErrNotLoaded reports a query against an index that was never built.
// This is a programming-contract violation, surfaced immediately rather
// than degraded to an empty answer.
var ErrNotLoaded = errors.New("stem index not loaded")

// errStop aborts a trie visit once enough hits are collected.
var errStop = errors.New("stop")

// Hit is one suffix-family match: the full word in original orientation
// and the stem portion left after stripping the queried suffix.
type Hit struct {
	Stem string `json:"stem"`
	Word string `json:"word"`
}

// Index is the reversed stem index. The zero value is unloaded; use Build.
type Index struct {
	trie *patricia.Trie
	// words is the deduplicated, sorted original-orientation snapshot,
	// kept for persistence and stats.
	words []string
}

// Build deduplicates the input (case-folded), reverses each word, and
// constructs the trie. An empty input produces a valid index with zero
// entries, not an error.
//
// Reversed keys are inserted in sorted order so that subtree visits
// enumerate in lexicographic order of the reversed strings. That is the
// index's native order — deliberately not the lexicographic order of the
// original words, since the structure groups words by shared suffix.
func Build(words []string) *Index {
	seen := make(map[string]struct{}, len(words))
	unique := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		unique = append(unique, w)
	}

	reversed := make([]string, len(unique))
	for i, w := range unique {
		reversed[i] = reverse(w)
	}
	sort.Strings(reversed)

	trie := patricia.NewTrie()
	for _, rev := range reversed {
		trie.Insert(patricia.Prefix(rev), reverse(rev))
	}

	sort.Strings(unique)
	return &Index{trie: trie, words: unique}
}

// Len returns the number of indexed stems. Zero for an unloaded index.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.words)
}

// Words returns the sorted, deduplicated word snapshot used to build the
// index. The caller must not mutate it.
func (ix *Index) Words() []string {
	if ix == nil {
		return nil
	}
	return ix.words
}

// Contains reports whether stem is present in the index.
// Cost is O(len(stem)). Returns ErrNotLoaded on an unbuilt index.
func (ix *Index) Contains(stem string) (bool, error) {
	if ix == nil || ix.trie == nil {
		return false, ErrNotLoaded
	}
	stem = strings.ToLower(stem)
	if stem == "" {
		return false, nil
	}
	return ix.trie.Match(patricia.Prefix(reverse(stem))), nil
}

// StemsWithSuffix enumerates indexed words ending with the given suffix
// (marker optional: "-able" and "able" are equivalent). Each hit reports
// the full word and its stem portion with the suffix span stripped.
//
// Results come in the index's native order. maxResults bounds the
// enumeration; zero or negative means unbounded. Each call re-walks the
// trie from scratch.
//
// An empty suffix after marker stripping degenerates to "all words", which
// is disallowed: it returns an empty result, not an error.
func (ix *Index) StemsWithSuffix(suffix string, maxResults int) ([]Hit, error) {
	if ix == nil || ix.trie == nil {
		return nil, ErrNotLoaded
	}
	bare := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(suffix)), "-")
	if bare == "" {
		return nil, nil
	}

	prefix := patricia.Prefix(reverse(bare))
	var hits []Hit
	err := ix.trie.VisitSubtree(prefix, func(_ patricia.Prefix, item patricia.Item) error {
		word := item.(string)
		hits = append(hits, Hit{
			Stem: word[:len(word)-len(bare)],
			Word: word,
		})
		if maxResults > 0 && len(hits) >= maxResults {
			return errStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return nil, err
	}
	return hits, nil
}

// reverse returns s with its runes in reverse order.
func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
