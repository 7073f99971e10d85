// Package app wires the suffix database, stem index, analyzers and
// adapters together. It owns the load-once lifecycle: both data structures
// are built exactly once behind a sync.Once, held in an atomic pointer,
// and handed out by reference to all callers. No write path exists after
// load — a data-file regeneration swaps in a whole freshly built pair.
package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/corey/morpho/internal/domain/aggregate"
	"github.com/corey/morpho/internal/domain/analyzer"
	"github.com/corey/morpho/internal/domain/stemindex"
	"github.com/corey/morpho/internal/domain/suffixdb"
	"github.com/corey/morpho/internal/ports"
	"github.com/corey/morpho/seed"
)

// Data file names looked up under Config.DataDir.
const (
	SuffixFile   = "suffixes.json"
	WordlistFile = "wordlist.txt"
)

// DefaultLexicon is the lexicon name used when none is configured.
const DefaultLexicon = "default"

// Config carries all process settings explicitly. Nothing here is read
// from ambient globals, so multiple differently-configured Apps can
// coexist in one process (tests do exactly that).
type Config struct {
	DataDir       string // directory holding suffixes.json / wordlist.txt overrides
	Lexicon       string // storage namespace; DefaultLexicon when empty
	MinStemLength int    // analyzer.DefaultMinStemLength when zero
	MaxDepth      int    // analyzer.DefaultMaxDepth when zero
}

func (c Config) withDefaults() Config {
	if c.Lexicon == "" {
		c.Lexicon = DefaultLexicon
	}
	if c.MinStemLength <= 0 {
		c.MinStemLength = analyzer.DefaultMinStemLength
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = analyzer.DefaultMaxDepth
	}
	return c
}

// lexstate is one immutable database/index generation. Readers grab the
// whole pair atomically, so a reload never exposes partial state.
type lexstate struct {
	db  *suffixdb.DB
	idx *stemindex.Index
}

// App is the wired lookup service.
type App struct {
	cfg   Config
	store ports.Storage // optional; nil means file/seed data only

	once  sync.Once
	state atomic.Pointer[lexstate]
}

// New creates an App. store may be nil; data then comes from DataDir files
// or the embedded seed. Loading is lazy — the first accessor triggers it.
func New(cfg Config, store ports.Storage) *App {
	return &App{cfg: cfg.withDefaults(), store: store}
}

// ensure performs the once-guarded initial load.
func (a *App) ensure() *lexstate {
	a.once.Do(func() { a.state.Store(a.build()) })
	return a.state.Load()
}

// Reload rebuilds the database/index pair from the current data sources
// and swaps it in atomically. Used by the file watcher after an
// out-of-process regeneration; in-flight readers keep the old generation.
func (a *App) Reload() {
	a.ensure()
	a.state.Store(a.build())
}

// build loads both structures, degrading to empty on data errors.
// Precedence per structure: DataDir file, then storage snapshot, then
// embedded seed. A malformed file degrades to empty (logged, not raised):
// "no suffix found" is a legitimate analysis outcome, a crash is not.
func (a *App) build() *lexstate {
	return &lexstate{db: a.loadDB(), idx: a.loadIndex()}
}

func (a *App) loadDB() *suffixdb.DB {
	if path := a.dataPath(SuffixFile); path != "" {
		db, err := suffixdb.LoadFile(path)
		if err != nil {
			fmt.Printf("[warning] suffix database unavailable (%v) — continuing with empty database\n", err)
			return suffixdb.Empty()
		}
		return db
	}
	if a.store != nil {
		if data, err := a.store.LoadSuffixSet(a.cfg.Lexicon); err == nil && data != nil {
			db, err := suffixdb.Load(bytes.NewReader(data))
			if err != nil {
				fmt.Printf("[warning] stored suffix set unreadable (%v) — continuing with empty database\n", err)
				return suffixdb.Empty()
			}
			return db
		}
	}
	db, err := suffixdb.Load(bytes.NewReader(seed.Suffixes))
	if err != nil {
		fmt.Printf("[warning] embedded suffix seed unreadable (%v) — continuing with empty database\n", err)
		return suffixdb.Empty()
	}
	return db
}

func (a *App) loadIndex() *stemindex.Index {
	if path := a.dataPath(WordlistFile); path != "" {
		words, err := readWordList(path)
		if err != nil {
			fmt.Printf("[warning] word list unavailable (%v) — continuing with empty index\n", err)
			return stemindex.Build(nil)
		}
		return stemindex.Build(words)
	}
	if a.store != nil {
		if words, err := a.store.LoadWordList(a.cfg.Lexicon); err == nil && words != nil {
			return stemindex.Build(words)
		}
	}
	return stemindex.Build(seed.Words())
}

// dataPath returns the DataDir override path if the file exists, else "".
func (a *App) dataPath(name string) string {
	if a.cfg.DataDir == "" {
		return ""
	}
	path := filepath.Join(a.cfg.DataDir, name)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// DB returns the current suffix database generation.
func (a *App) DB() *suffixdb.DB { return a.ensure().db }

// Index returns the current stem index generation.
func (a *App) Index() *stemindex.Index { return a.ensure().idx }

// SuffixAnalyzer is the plain identification endpoint: no stem
// verification, confidence banded on suffix frequency.
func (a *App) SuffixAnalyzer() *analyzer.Analyzer {
	return analyzer.New(a.DB(), nil, analyzer.Config{
		MinStemLength: a.cfg.MinStemLength,
		MaxDepth:      a.cfg.MaxDepth,
		Strategy:      analyzer.StrategyFrequency,
	})
}

// FullAnalyzer is the suffix-first-with-index endpoint: candidate stems
// are verified against the reversed index and confidence reflects that.
func (a *App) FullAnalyzer() *analyzer.Analyzer {
	state := a.ensure()
	return analyzer.New(state.db, state.idx, analyzer.Config{
		MinStemLength: a.cfg.MinStemLength,
		MaxDepth:      a.cfg.MaxDepth,
		Strategy:      analyzer.StrategyStemVerification,
	})
}

// Aggregator merges the built-in sources: the suffix-first analyzer and
// the lexicon check. External backends would be appended here.
func (a *App) Aggregator() *aggregate.Aggregator {
	return aggregate.New(
		aggregate.NewSuffixSource(a.FullAnalyzer()),
		aggregate.NewLexiconSource(a.Index()),
	)
}

// WatchData wires a watcher over the DataDir files so an out-of-process
// regeneration is picked up without restart. No-op when DataDir is unset.
func (a *App) WatchData(w ports.Watcher) error {
	if a.cfg.DataDir == "" {
		return nil
	}
	paths := []string{
		filepath.Join(a.cfg.DataDir, SuffixFile),
		filepath.Join(a.cfg.DataDir, WordlistFile),
	}
	return w.Watch(paths, func(string) { a.Reload() })
}

// readWordList reads one stem per line, skipping blanks and #-comments.
func readWordList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	lines := strings.Split(string(data), "\n")
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, nil
}
