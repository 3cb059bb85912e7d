package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/cmpfill/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchTargets(t *testing.T) {
	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()

	dir := t.TempDir()
	other := t.TempDir()
	a := filepath.Join(dir, "report.htm")
	b := filepath.Join(dir, "form.01")
	c := filepath.Join(other, "form.01")

	targets, err := watchTargets(watcher, a, b, c)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{a: true, b: true, c: true}, targets)
	assert.ElementsMatch(t, []string{dir, other}, watcher.WatchList())
}

func TestWatchTargets_MissingDirectory(t *testing.T) {
	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()

	_, err = watchTargets(watcher, filepath.Join(t.TempDir(), "nope", "report.htm"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}

func TestWatchLoop_TriggersOnTargetWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "form.01")
	unrelated := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(target, []byte("1 0\n"), 0600))

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()

	targets, err := watchTargets(watcher, target)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	trigger := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, watcher, targets, 100*time.Millisecond, trigger, testutil.NewTestLogger(t))
	}()
	defer func() {
		cancel()
		assert.NoError(t, <-done)
	}()

	require.NoError(t, os.WriteFile(unrelated, []byte("x"), 0600))
	select {
	case name := <-trigger:
		t.Fatalf("unexpected trigger for %s", name)
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(target, []byte("1 0 0\n"), 0600))

	select {
	case name := <-trigger:
		assert.Equal(t, target, name)
	case <-time.After(5 * time.Second):
		t.Fatal("no trigger after writing the target")
	}
}

func TestWatchLoop_StopsWhenCancelled(t *testing.T) {
	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = watchLoop(ctx, watcher, map[string]bool{}, time.Millisecond, make(chan string, 1), testutil.NewTestLogger(t))
	assert.NoError(t, err)
}
