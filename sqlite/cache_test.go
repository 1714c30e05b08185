package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/ham-zax/distill"
	"github.com/ham-zax/distill/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleResult() *distill.ProcessingResult {
	return &distill.ProcessingResult{
		Success: true,
		Content: "# Title\n\nBody text.\n",
		Title:   "Title",
		Stats: distill.Stats{
			FallbacksUsed: []string{"semantic_query"},
			QualityScore:  72,
		},
		Warnings: []string{"capture truncated to 100 bytes"},
	}
}

func TestCacheService_PutAndGet(t *testing.T) {
	t.Parallel()

	cache, err := sqlite.NewCacheService(openDB(t), time.Hour)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, cache.Put(ctx, "fp1", sampleResult()))

	got, err := cache.Get(ctx, "fp1")
	require.NoError(t, err)
	assert.True(t, got.Success)
	assert.Equal(t, "# Title\n\nBody text.\n", got.Content)
	assert.Equal(t, "Title", got.Title)
	assert.Equal(t, 72, got.Stats.QualityScore)
	assert.Equal(t, []string{"semantic_query"}, got.Stats.FallbacksUsed)
	assert.Equal(t, []string{"capture truncated to 100 bytes"}, got.Warnings)
}

func TestCacheService_MissReturnsNotFound(t *testing.T) {
	t.Parallel()

	cache, err := sqlite.NewCacheService(openDB(t), time.Hour)
	require.NoError(t, err)

	_, err = cache.Get(context.Background(), "absent")
	require.Error(t, err)
	assert.Equal(t, distill.ENOTFOUND, distill.ErrorCode(err))
}

func TestCacheService_ExpiredEntryIsAMiss(t *testing.T) {
	t.Parallel()

	cache, err := sqlite.NewCacheService(openDB(t), time.Hour)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, cache.Put(ctx, "fp1", sampleResult()))

	// Jump past the TTL.
	cache.Now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = cache.Get(ctx, "fp1")
	require.Error(t, err)
	assert.Equal(t, distill.ENOTFOUND, distill.ErrorCode(err))
}

func TestCacheService_PutReplaces(t *testing.T) {
	t.Parallel()

	cache, err := sqlite.NewCacheService(openDB(t), time.Hour)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, cache.Put(ctx, "fp1", sampleResult()))

	updated := sampleResult()
	updated.Content = "updated body\n"
	require.NoError(t, cache.Put(ctx, "fp1", updated))

	got, err := cache.Get(ctx, "fp1")
	require.NoError(t, err)
	assert.Equal(t, "updated body\n", got.Content)
}

func TestCacheService_ValidatesInput(t *testing.T) {
	t.Parallel()

	cache, err := sqlite.NewCacheService(openDB(t), time.Hour)
	require.NoError(t, err)

	ctx := context.Background()
	assert.Equal(t, distill.EINVALID, distill.ErrorCode(cache.Put(ctx, "", sampleResult())))
	assert.Equal(t, distill.EINVALID, distill.ErrorCode(cache.Put(ctx, "fp1", nil)))
}

func TestCacheService_FilterPrimedFromExistingRows(t *testing.T) {
	t.Parallel()

	db := openDB(t)
	ctx := context.Background()

	first, err := sqlite.NewCacheService(db, time.Hour)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "fp1", sampleResult()))

	// A second service over the same database must see the entry even
	// though its filter started empty.
	second, err := sqlite.NewCacheService(db, time.Hour)
	require.NoError(t, err)

	got, err := second.Get(ctx, "fp1")
	require.NoError(t, err)
	assert.Equal(t, "Title", got.Title)
}

func TestCacheService_PurgeExpired(t *testing.T) {
	t.Parallel()

	cache, err := sqlite.NewCacheService(openDB(t), time.Hour)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, cache.Put(ctx, "old", sampleResult()))

	cache.Now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	require.NoError(t, cache.Put(ctx, "fresh", sampleResult()))

	purged, err := cache.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	_, err = cache.Get(ctx, "fresh")
	assert.NoError(t, err)
}
