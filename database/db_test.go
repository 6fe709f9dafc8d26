package database

import (
	"path"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestDB points the package-level handle at a fresh on-disk sqlite file
// for one test. Tests in this package run sequentially and each gets its own
// database.
func setupTestDB(t *testing.T) {
	t.Helper()
	err := InitDB(path.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
}
