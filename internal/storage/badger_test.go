package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkdrop/internal/domain"
)

// setupTestDB creates a temporary BadgerDB store for testing.
func setupTestDB(t *testing.T) *BadgerStore {
	t.Helper()

	testLogger := logrus.New()
	testLogger.SetOutput(os.Stderr)
	testLogger.SetLevel(logrus.ErrorLevel)

	store, err := NewBadgerStore(t.TempDir(), testLogger)
	require.NoError(t, err, "Failed to create test BadgerDB store")

	t.Cleanup(func() {
		assert.NoError(t, store.Close(), "Failed to close test BadgerDB store")
	})
	return store
}

func testLink(t *testing.T, url string, createdAt time.Time) *domain.Link {
	t.Helper()
	link, err := domain.NewLink("Title", url, "example.com", "<p>body</p>", "body", 2, nil, "go", createdAt)
	require.NoError(t, err)
	return link
}

func TestBadgerStore_InsertAndListLinks(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	older := testLink(t, "https://example.com/older", time.Now().Add(-time.Hour))
	newer := testLink(t, "https://example.com/newer", time.Now())

	require.NoError(t, store.InsertLink(ctx, older))
	require.NoError(t, store.InsertLink(ctx, newer))

	assert.NotEmpty(t, older.ID, "Insert should assign an ID")
	assert.NotEmpty(t, newer.ID)
	assert.NotEqual(t, older.ID, newer.ID)

	links, err := store.ListLinks(ctx)
	require.NoError(t, err)
	require.Len(t, links, 2)

	// Newest first.
	assert.Equal(t, newer.URL, links[0].URL)
	assert.Equal(t, older.URL, links[1].URL)
}

func TestBadgerStore_InsertDoesNotDeduplicateURLs(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	first := testLink(t, "https://example.com/same", time.Now().Add(-time.Minute))
	second := testLink(t, "https://example.com/same", time.Now())

	require.NoError(t, store.InsertLink(ctx, first))
	require.NoError(t, store.InsertLink(ctx, second))

	links, err := store.ListLinks(ctx)
	require.NoError(t, err)
	assert.Len(t, links, 2, "Re-saving the same URL inserts a second record")
}

func TestBadgerStore_GetLink(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	link := testLink(t, "https://example.com/a", time.Now())
	require.NoError(t, store.InsertLink(ctx, link))

	got, err := store.GetLink(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, link.URL, got.URL)
	assert.Equal(t, link.Tags, got.Tags)
	assert.True(t, got.IsStarred)
	assert.False(t, got.IsArchived)
	assert.Equal(t, domain.CacheNone, got.Cached.Status)

	_, err = store.GetLink(ctx, "nonexistent-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBadgerStore_UpdateLink(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	link := testLink(t, "https://example.com/a", time.Now())
	require.NoError(t, store.InsertLink(ctx, link))

	updated, err := store.UpdateLink(ctx, link.ID, func(l *domain.Link) error {
		l.IsStarred = !l.IsStarred
		return nil
	})
	require.NoError(t, err)
	assert.False(t, updated.IsStarred)

	got, err := store.GetLink(ctx, link.ID)
	require.NoError(t, err)
	assert.False(t, got.IsStarred, "Mutation should be persisted")

	_, err = store.UpdateLink(ctx, "nonexistent-id", func(l *domain.Link) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBadgerStore_DeleteLink(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	link := testLink(t, "https://example.com/a", time.Now())
	require.NoError(t, store.InsertLink(ctx, link))

	require.NoError(t, store.DeleteLink(ctx, link.ID))

	_, err := store.GetLink(ctx, link.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Second delete of the same id fails cleanly.
	assert.ErrorIs(t, store.DeleteLink(ctx, link.ID), ErrNotFound)
}

func TestBadgerStore_Users(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC()
	user := &domain.User{
		Email:     "user@example.com",
		Password:  "$2a$08$notarealhashbutlongenough",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.InsertUser(ctx, user))
	assert.NotEmpty(t, user.ID)

	got, err := store.GetUserByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.Password, got.Password)

	_, err = store.GetUserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.DeleteUser(ctx, "user@example.com"))
	assert.ErrorIs(t, store.DeleteUser(ctx, "user@example.com"), ErrNotFound)
}
