package datadir_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"soxutil/internal/datadir"
)

func TestEnsureCreatesLayout(t *testing.T) {
	base := filepath.Join(t.TempDir(), "data")

	dirs, err := datadir.Ensure(base)
	assert.NoError(t, err)

	for _, dir := range []string{dirs.Base, dirs.Logs, dirs.DB, dirs.Uploads, dirs.Exports, dirs.Temp} {
		info, statErr := os.Stat(dir)
		assert.NoError(t, statErr)
		assert.True(t, info.IsDir())
	}
	assert.Equal(t, filepath.Join(base, "uploads"), dirs.Uploads)
}

func TestEnsureIdempotent(t *testing.T) {
	base := filepath.Join(t.TempDir(), "data")

	_, err := datadir.Ensure(base)
	assert.NoError(t, err)
	_, err = datadir.Ensure(base)
	assert.NoError(t, err)
}
