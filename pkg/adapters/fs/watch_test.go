package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribe/pkg/adapters/fs"
	"github.com/aretw0/scribe/pkg/core"
)

func nextEvent(t *testing.T, events <-chan core.Event) core.Event {
	t.Helper()
	select {
	case e, ok := <-events:
		require.True(t, ok, "event channel closed unexpectedly")
		return e
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return core.Event{}
}

func TestRepository_Watch(t *testing.T) {
	repo, dir := setupRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := repo.Watch(ctx, "")
	require.NoError(t, err)

	state := repo.State().(fs.RepositoryState)
	assert.True(t, state.WatcherActive)

	require.NoError(t, repo.Save(ctx, sampleDoc("watched")))
	e := nextEvent(t, events)
	assert.Equal(t, core.EventCreate, e.Type)
	assert.Equal(t, "watched", e.Name)

	updated := sampleDoc("watched")
	updated.Text = "changed"
	require.NoError(t, repo.Save(ctx, updated))
	e = nextEvent(t, events)
	assert.Equal(t, core.EventModify, e.Type)
	assert.Equal(t, "watched", e.Name)

	// Non-document files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	require.NoError(t, repo.Delete(ctx, "watched"))
	e = nextEvent(t, events)
	assert.Equal(t, core.EventDelete, e.Type)
	assert.Equal(t, "watched", e.Name)

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, 3*time.Second, 20*time.Millisecond, "events channel should close after cancel")

	assert.Eventually(t, func() bool {
		return !repo.State().(fs.RepositoryState).WatcherActive
	}, time.Second, 10*time.Millisecond)
}

func TestRepository_WatchInvalidPattern(t *testing.T) {
	repo, _ := setupRepo(t)
	_, err := repo.Watch(context.Background(), "[")
	assert.Error(t, err)
}
