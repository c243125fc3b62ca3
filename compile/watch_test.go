package compile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherRelevant(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "nat.v")

	w, err := NewWatcher([]string{watched}, 0, nil, func(context.Context) {})
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounce)

	assert.True(t, w.relevant(fsnotify.Event{Name: watched, Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: watched, Op: fsnotify.Create}))
	assert.False(t, w.relevant(fsnotify.Event{Name: watched, Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: filepath.Join(dir, "other.v"), Op: fsnotify.Write}))
}

func TestWatcherRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nat.v")
	require.NoError(t, os.WriteFile(path, []byte(natScript), 0644))

	changed := make(chan struct{}, 1)
	w, err := NewWatcher([]string{path}, 10*time.Millisecond, nil, func(context.Context) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// the watch is registered asynchronously, so keep touching the file
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(10 * time.Second)
wait:
	for {
		select {
		case <-changed:
			break wait
		case <-ticker.C:
			require.NoError(t, os.WriteFile(path, []byte(natScript+"\nCheck Zero."), 0644))
		case <-timeout:
			t.Fatal("no change reported")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
