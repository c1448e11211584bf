package ruleset_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/uniques/internal/ruleset"
	"github.com/cory-johannsen/uniques/internal/unique"
)

func TestStore_ReloadSwapsSnapshot(t *testing.T) {
	dir := baseFixture(t)
	logger := zaptest.NewLogger(t)
	store, err := ruleset.NewStore(func() (*ruleset.Ruleset, error) { return ruleset.Load(dir, logger) }, logger)
	require.NoError(t, err)

	first := store.Current()
	require.NotNil(t, first)
	assert.False(t, first.Has(unique.CollectionUnits, "Scout"))

	writeFiles(t, dir, map[string]string{"Units.json": `[{"name": "Scout"}]`})
	second, err := store.Reload()
	require.NoError(t, err)
	assert.Same(t, second, store.Current())
	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, second.Has(unique.CollectionUnits, "Scout"))

	// snapshots already handed out do not change
	assert.False(t, first.Has(unique.CollectionUnits, "Scout"))
}

func TestStore_FailedReloadKeepsPrevious(t *testing.T) {
	logger, logs := newObservedLogger()
	fail := false
	store, err := ruleset.NewStore(func() (*ruleset.Ruleset, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return ruleset.Load(t.TempDir(), logger)
	}, logger)
	require.NoError(t, err)
	before := store.Current()

	fail = true
	got, err := store.Reload()
	require.Error(t, err)
	assert.Same(t, before, got)
	assert.Same(t, before, store.Current())
	assert.Equal(t, 1, logs.FilterMessage("ruleset reload failed, keeping previous snapshot").Len())
}

func TestNewStore_InitialLoadFails(t *testing.T) {
	_, err := ruleset.NewStore(func() (*ruleset.Ruleset, error) {
		return nil, errors.New("boom")
	}, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestStore_ConcurrentReadersSeeCompleteSnapshots(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		reloads := rapid.IntRange(1, 8).Draw(rt, "reloads")
		logger := zaptest.NewLogger(t)
		dir := t.TempDir()
		store, err := ruleset.NewStore(func() (*ruleset.Ruleset, error) { return ruleset.Load(dir, logger) }, logger)
		require.NoError(rt, err)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < reloads; i++ {
				_, _ = store.Reload()
			}
		}()
		for i := 0; i < reloads; i++ {
			assert.NotNil(rt, store.Current())
		}
		wg.Wait()
	})
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir := baseFixture(t)
	logger := zaptest.NewLogger(t)
	store, err := ruleset.NewStore(func() (*ruleset.Ruleset, error) { return ruleset.Load(dir, logger) }, logger)
	require.NoError(t, err)

	w, err := ruleset.NewWatcher(store, []string{dir}, 20*time.Millisecond, logger)
	require.NoError(t, err)
	defer w.Close()

	reloaded := make(chan *ruleset.Ruleset, 4)
	w.OnReload = func(rs *ruleset.Ruleset, err error) {
		if err == nil {
			reloaded <- rs
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Units.json"), []byte(`[{"name": "Scout"}]`), 0o644))
	// unrelated files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case rs := <-reloaded:
		assert.True(t, rs.Has(unique.CollectionUnits, "Scout"))
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after change")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
