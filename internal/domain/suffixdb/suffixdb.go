// Package suffixdb holds the in-memory suffix database: a mapping from
// suffix key to linguistic metadata, loaded once from a persisted JSON
// document and immutable thereafter. Concurrent readers share one instance
// without locking.
//
// The persisted format:
//
//	{
//	  "suffixes": {
//	    "-ness": {"POS": "noun", "source_POS": ["adjective"], ...},
//	    ...
//	  },
//	  "metadata": {"total_suffixes": 28, "sources": [...]}
//	}
//
// A load failure is a data error for the caller to handle; the app layer
// degrades to Empty() so "no suffix found" stays a valid analysis outcome
// rather than a crash.
package suffixdb

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"
)

// Metadata describes the provenance of a loaded database.
type Metadata struct {
	TotalSuffixes int      `json:"total_suffixes"`
	Language      string   `json:"language,omitempty"`
	Sources       []string `json:"sources,omitempty"`
	GeneratedBy   string   `json:"generated_by,omitempty"`
}

// DB is the loaded suffix database. Immutable after Load; lifecycle is
// load-once-at-startup, read-many. Rebuilding happens out-of-process by
// regenerating the persisted file.
type DB struct {
	entries map[string]*SuffixEntry
	// order holds all bare suffixes sorted longest-first, ties broken
	// lexicographically ascending. Fixed at load time so longest-match
	// scans are deterministic regardless of map iteration.
	order []string
	// byBare maps a bare suffix back to its marker-carrying key.
	byBare map[string]string
	meta   Metadata
}

type persistedDoc struct {
	Suffixes map[string]*SuffixEntry `json:"suffixes"`
	Metadata Metadata                `json:"metadata"`
}

// Empty returns a database with zero suffixes. Every lookup misses,
// which downstream code treats as "no suffix identified".
func Empty() *DB {
	return &DB{
		entries: map[string]*SuffixEntry{},
		byBare:  map[string]string{},
	}
}

// Load parses a persisted suffix database from r.
func Load(r io.Reader) (*DB, error) {
	var doc persistedDoc
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse suffix database: %w", err)
	}
	if doc.Suffixes == nil {
		return nil, fmt.Errorf("parse suffix database: missing \"suffixes\" object")
	}

	db := &DB{
		entries: make(map[string]*SuffixEntry, len(doc.Suffixes)),
		byBare:  make(map[string]string, len(doc.Suffixes)),
		meta:    doc.Metadata,
	}

	for rawKey, entry := range doc.Suffixes {
		key := NormalizeKey(rawKey)
		if key == "" {
			return nil, fmt.Errorf("parse suffix database: empty suffix key %q", rawKey)
		}
		if _, dup := db.entries[key]; dup {
			return nil, fmt.Errorf("parse suffix database: duplicate suffix key %q", key)
		}
		if entry == nil {
			entry = &SuffixEntry{}
		}
		entry.Suffix = key
		db.entries[key] = entry
		bare := strings.TrimPrefix(key, Marker)
		db.byBare[bare] = key
		db.order = append(db.order, bare)
	}

	sort.Slice(db.order, func(i, j int) bool {
		a, b := db.order[i], db.order[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})

	return db, nil
}

// LoadFile reads and parses a persisted suffix database from disk.
func LoadFile(path string) (*DB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open suffix database: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Len returns the number of suffix entries.
func (db *DB) Len() int { return len(db.entries) }

// Metadata returns the provenance block of the persisted document.
func (db *DB) Metadata() Metadata { return db.meta }

// Keys returns all suffix keys in match order (longest first).
func (db *DB) Keys() []string {
	keys := make([]string, len(db.order))
	for i, bare := range db.order {
		keys[i] = db.byBare[bare]
	}
	return keys
}

// LookupExact returns the entry for a suffix key after normalization
// ("ness" and "-ness" both hit "-ness"). O(1).
func (db *DB) LookupExact(key string) (*SuffixEntry, bool) {
	e, ok := db.entries[NormalizeKey(key)]
	return e, ok
}

// FindLongestMatch scans suffixes from longest to shortest and returns the
// first one that word ends with while leaving a stem of at least
// minStemLength runes. Equal-length candidates are tried in lexicographic
// order. The word must be a proper superstring of the suffix — a word that
// IS a suffix never matches it.
//
// A miss is a valid outcome, not an error: it signals "no derivational or
// inflectional suffix identified".
func (db *DB) FindLongestMatch(word string, minStemLength int) (*SuffixEntry, bool) {
	word = strings.ToLower(word)
	if word == "" {
		return nil, false
	}
	for _, bare := range db.order {
		if len(bare) >= len(word) || !strings.HasSuffix(word, bare) {
			continue
		}
		stem := word[:len(word)-len(bare)]
		if utf8.RuneCountInString(stem) < minStemLength {
			continue
		}
		return db.entries[db.byBare[bare]], true
	}
	return nil, false
}
