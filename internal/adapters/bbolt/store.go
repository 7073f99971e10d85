// Package bbolt implements the ports.Storage interface using bbolt
// (embedded B+ tree). Each lexicon gets its own top-level bucket holding
// the JSON-encoded word list and the raw suffix database snapshot. Writes
// are transactional — a crash mid-write cannot corrupt previously
// committed data.
package bbolt

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket keys
var (
	keyWords    = []byte("words")
	keySuffixes = []byte("suffixes")
)

// Store implements ports.Storage backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveWordList persists the stem list for a lexicon.
func (s *Store) SaveWordList(lexicon string, words []string) error {
	if words == nil {
		return fmt.Errorf("nil word list")
	}
	data, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("marshal word list: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(lexicon))
		if err != nil {
			return err
		}
		return b.Put(keyWords, data)
	})
}

// LoadWordList retrieves the stem list for a lexicon.
// Returns nil, nil if no list exists (fresh lexicon).
func (s *Store) LoadWordList(lexicon string) ([]string, error) {
	data, err := s.get(lexicon, keyWords)
	if err != nil || data == nil {
		return nil, err
	}
	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("unmarshal word list: %w", err)
	}
	return words, nil
}

// SaveSuffixSet persists a raw suffix database snapshot for a lexicon.
func (s *Store) SaveSuffixSet(lexicon string, data []byte) error {
	if data == nil {
		return fmt.Errorf("nil suffix set")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(lexicon))
		if err != nil {
			return err
		}
		return b.Put(keySuffixes, data)
	})
}

// LoadSuffixSet retrieves the suffix database snapshot for a lexicon.
// Returns nil, nil if no snapshot exists.
func (s *Store) LoadSuffixSet(lexicon string) ([]byte, error) {
	return s.get(lexicon, keySuffixes)
}

// DeleteLexicon removes all data for a lexicon.
// Idempotent: deleting a nonexistent lexicon is not an error.
func (s *Store) DeleteLexicon(lexicon string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket([]byte(lexicon))
		if err == bolt.ErrBucketNotFound {
			return nil
		}
		return err
	})
}

// get copies one value out of a lexicon bucket. bbolt slices are only
// valid within the transaction, so the bytes are copied before return.
func (s *Store) get(lexicon string, key []byte) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(lexicon))
		if b == nil {
			return nil
		}
		if v := b.Get(key); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
