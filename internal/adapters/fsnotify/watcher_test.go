package fsnotify

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsChangesToWatchedFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "experiment.yaml")
	other := filepath.Join(dir, "unrelated.txt")
	require.NoError(t, os.WriteFile(target, []byte("a"), 0644))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	changes := make(chan string, 8)
	require.NoError(t, w.Watch([]string{target}, func(p string) { changes <- p }))

	require.NoError(t, os.WriteFile(target, []byte("b"), 0644))
	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))

	select {
	case p := <-changes:
		abs, _ := filepath.Abs(target)
		assert.Equal(t, abs, p)
	case <-time.After(3 * time.Second):
		t.Fatal("no change event for watched file")
	}

	// The unrelated file in the same directory must not be reported.
	select {
	case p := <-changes:
		t.Fatalf("unexpected event for %s", p)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(target, []byte("a"), 0644))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	changes := make(chan string, 16)
	require.NoError(t, w.Watch([]string{target}, func(p string) { changes <- p }))

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(target, []byte{byte(i)}, 0644))
		time.Sleep(10 * time.Millisecond)
	}

	count := 0
	deadline := time.After(2 * time.Second)
loop:
	for {
		select {
		case <-changes:
			count++
		case <-deadline:
			break loop
		}
	}
	assert.GreaterOrEqual(t, count, 1)
	assert.Less(t, count, 5, "burst of writes must be debounced")
}

func TestWatcher_StopTwice(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
