// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

// Storage persists lexical data to durable storage. The backing store (bbolt)
// is lexicon-scoped: each lexicon name gets its own namespace. Concurrent
// reads are safe; writes are serialized by the adapter.
//
// Crash safety: SaveWordList and SaveSuffixSet must be transactional.
// A crash mid-write must not corrupt previously committed data.
type Storage interface {
	// SaveWordList persists the deduplicated stem list for a lexicon.
	// Overwrites any prior list for this lexicon.
	SaveWordList(lexicon string, words []string) error

	// LoadWordList retrieves the stem list for a lexicon.
	// Returns nil, nil if no list exists (fresh lexicon).
	LoadWordList(lexicon string) ([]string, error)

	// SaveSuffixSet persists a raw suffix database snapshot (the persisted
	// JSON document) for a lexicon. Overwrites any prior snapshot.
	SaveSuffixSet(lexicon string, data []byte) error

	// LoadSuffixSet retrieves the suffix database snapshot for a lexicon.
	// Returns nil, nil if no snapshot exists.
	LoadSuffixSet(lexicon string) ([]byte, error)

	// DeleteLexicon removes all data (word list + suffix set) for a lexicon.
	// Idempotent: deleting a nonexistent lexicon is not an error.
	DeleteLexicon(lexicon string) error
}
