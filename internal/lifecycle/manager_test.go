package lifecycle

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkdrop/internal/domain"
	"linkdrop/internal/storage"
)

func setupManager(t *testing.T) (*Manager, *storage.BadgerStore) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.ErrorLevel)

	store, err := storage.NewBadgerStore(t.TempDir(), log)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return NewManager(store, log), store
}

func insertLink(t *testing.T, store *storage.BadgerStore, url, tag string, starred, archived bool, createdAt time.Time) *domain.Link {
	t.Helper()
	link, err := domain.NewLink("Title "+url, url, "example.com", "<p>body</p>", "body", 1, nil, tag, createdAt)
	require.NoError(t, err)
	link.IsStarred = starred
	link.IsArchived = archived
	require.NoError(t, store.InsertLink(context.Background(), link))
	return link
}

func TestManager_ListStarred(t *testing.T) {
	mgr, store := setupManager(t)
	ctx := context.Background()

	now := time.Now()
	insertLink(t, store, "https://a.example/1", "go", true, false, now.Add(-2*time.Hour))
	insertLink(t, store, "https://a.example/2", "go", false, false, now.Add(-time.Hour))
	starredArchived := insertLink(t, store, "https://a.example/3", "go", true, true, now)

	links, err := mgr.ListStarred(ctx)
	require.NoError(t, err)
	require.Len(t, links, 2)

	// Newest first, and starred-but-archived still shows on the front.
	assert.Equal(t, starredArchived.ID, links[0].ID)
	assert.Equal(t, "https://a.example/1", links[1].URL)
}

func TestManager_ListByTagExcludesArchived(t *testing.T) {
	mgr, store := setupManager(t)
	ctx := context.Background()

	now := time.Now()
	kept := insertLink(t, store, "https://a.example/rust", "rust", true, false, now)
	insertLink(t, store, "https://a.example/rust-archived", "rust", true, true, now.Add(-time.Minute))
	insertLink(t, store, "https://a.example/go", "go", true, false, now)

	links, err := mgr.ListByTag(ctx, "rust")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, kept.ID, links[0].ID)
}

func TestManager_ListArchived(t *testing.T) {
	mgr, store := setupManager(t)
	ctx := context.Background()

	now := time.Now()
	archived := insertLink(t, store, "https://a.example/old", "go", false, true, now)
	insertLink(t, store, "https://a.example/current", "go", true, false, now)

	links, err := mgr.ListArchived(ctx, "go")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, archived.ID, links[0].ID)
}

func TestManager_ToggleStarred(t *testing.T) {
	mgr, store := setupManager(t)
	ctx := context.Background()

	link := insertLink(t, store, "https://a.example/1", "go", true, false, time.Now())
	originalUpdatedAt := link.UpdatedAt

	toggled, err := mgr.ToggleStarred(ctx, link.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsStarred, "One toggle flips the flag exactly once")
	assert.False(t, toggled.IsArchived, "Toggling starred leaves archived alone")

	restored, err := mgr.ToggleStarred(ctx, link.ID)
	require.NoError(t, err)
	assert.True(t, restored.IsStarred, "Two toggles restore the original value")

	assert.True(t, restored.UpdatedAt.Equal(originalUpdatedAt), "Toggles do not refresh updated_at")
}

func TestManager_ToggleArchived(t *testing.T) {
	mgr, store := setupManager(t)
	ctx := context.Background()

	link := insertLink(t, store, "https://a.example/1", "go", true, false, time.Now())

	toggled, err := mgr.ToggleArchived(ctx, link.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsArchived)
	assert.True(t, toggled.IsStarred, "A link may be starred and archived at once")
}

func TestManager_ToggleNotFound(t *testing.T) {
	mgr, _ := setupManager(t)
	ctx := context.Background()

	_, err := mgr.ToggleStarred(ctx, "nonexistent-id")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = mgr.ToggleArchived(ctx, "nonexistent-id")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestManager_Remove(t *testing.T) {
	mgr, store := setupManager(t)
	ctx := context.Background()

	link := insertLink(t, store, "https://a.example/1", "go", true, false, time.Now())

	require.NoError(t, mgr.Remove(ctx, link.ID))

	_, err := mgr.GetByID(ctx, link.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, mgr.Remove(ctx, link.ID), storage.ErrNotFound, "Removing twice fails cleanly the second time")
	assert.ErrorIs(t, mgr.Remove(ctx, "nonexistent-id"), storage.ErrNotFound)
}
