package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ham-zax/distill/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_OpenInMemory(t *testing.T) {
	t.Parallel()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	defer db.Close()

	var n int
	err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM results").Scan(&n)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDB_OpenFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "distill.db")
	db := sqlite.NewDB(path)
	require.NoError(t, db.Open())
	assert.NoError(t, db.Close())
}

func TestDB_CloseWithoutOpen(t *testing.T) {
	t.Parallel()

	db := sqlite.NewDB(":memory:")
	assert.NoError(t, db.Close())
}
