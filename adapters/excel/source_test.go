package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gohappy/domain/core"
	"gohappy/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data_cleaned.csv")
	require.NoError(t, os.WriteFile(path, []byte(rawReport), 0o644))

	src := NewFileSource(path)
	ds, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, []string{"Denmark", "Switzerland"}, ds.CountryNames())

	sum, err := src.Checksum()
	require.NoError(t, err)
	assert.Equal(t, core.NewChecksum([]byte(rawReport)), sum)
}

func TestFileSource_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileSource(filepath.Join(dir, "missing.csv")).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeDatasetError, errors.GetCode(err))

	dup := filepath.Join(dir, "dup.csv")
	require.NoError(t, os.WriteFile(dup, []byte("country_name,year\nSwitzerland,2020\nSwitzerland,2020\n"), 0o644))
	_, err = NewFileSource(dup).Load(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsDatasetError(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFileSource(dup).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
