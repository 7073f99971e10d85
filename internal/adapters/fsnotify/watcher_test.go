package fsnotify

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_FiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "wordlist.txt")
	require.NoError(t, os.WriteFile(target, []byte("happy\n"), 0o644))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	var mu sync.Mutex
	var fired []string
	require.NoError(t, w.Watch([]string{target}, func(path string) {
		mu.Lock()
		fired = append(fired, path)
		mu.Unlock()
	}))

	require.NoError(t, os.WriteFile(target, []byte("happy\nrun\n"), 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(fired) > 0
	}, 3*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	abs, _ := filepath.Abs(target)
	assert.Equal(t, abs, fired[0])
}

func TestWatch_IgnoresUnwatchedSiblings(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "wordlist.txt")
	sibling := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(target, []byte("a\n"), 0o644))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	var mu sync.Mutex
	count := 0
	require.NoError(t, w.Watch([]string{target}, func(string) {
		mu.Lock()
		count++
		mu.Unlock()
	}))

	require.NoError(t, os.WriteFile(sibling, []byte("noise\n"), 0o644))
	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, count)
}

func TestWatch_SurvivesRenameReplacement(t *testing.T) {
	// Regenerators write a temp file and rename it over the target;
	// watching the parent directory keeps catching that.
	dir := t.TempDir()
	target := filepath.Join(dir, "suffixes.json")
	require.NoError(t, os.WriteFile(target, []byte("{}"), 0o644))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	var mu sync.Mutex
	count := 0
	require.NoError(t, w.Watch([]string{target}, func(string) {
		mu.Lock()
		count++
		mu.Unlock()
	}))

	tmp := filepath.Join(dir, ".suffixes.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(`{"suffixes": {}}`), 0o644))
	require.NoError(t, os.Rename(tmp, target))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count > 0
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatch_ChmodDoesNotSuppressWrite(t *testing.T) {
	// A metadata-only event must not start the debounce window: a Write
	// arriving right after a Chmod still has to fire.
	dir := t.TempDir()
	target := filepath.Join(dir, "wordlist.txt")
	require.NoError(t, os.WriteFile(target, []byte("a\n"), 0o644))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	var mu sync.Mutex
	count := 0
	require.NoError(t, w.Watch([]string{target}, func(string) {
		mu.Lock()
		count++
		mu.Unlock()
	}))

	require.NoError(t, os.Chmod(target, 0o600))
	require.NoError(t, os.WriteFile(target, []byte("a\nb\n"), 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count > 0
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatch_NoFilesIsAnError(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	assert.Error(t, w.Watch(nil, func(string) {}))
}

func TestStop_Idempotent(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
