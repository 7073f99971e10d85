// Package seed embeds the default lexical data for compile-time inclusion.
// suffixes.json is a unified suffix database in the persisted format
// documented in suffixdb; wordlist.txt is one lowercase stem per line.
// Both can be overridden at runtime by files in the configured data dir.
//
// Usage:
//
//	db, err := suffixdb.Load(bytes.NewReader(seed.Suffixes))
//	idx := stemindex.Build(seed.Words())
package seed

import (
	_ "embed"
	"strings"
)

//go:embed suffixes.json
var Suffixes []byte

//go:embed wordlist.txt
var wordlistRaw string

// Words returns the embedded word list, one stem per entry.
// Blank lines and #-comments are skipped.
func Words() []string {
	lines := strings.Split(wordlistRaw, "\n")
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words
}
