package dataset

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadMatrix_RoundTripWithMissingCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.csv")
	nan := math.NaN()
	m := [][]float64{
		{1, 0.5, nan},
		{2, nan, 0.25},
	}

	require.NoError(t, SaveMatrix(path, m))
	got, err := LoadMatrix(path)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, 1.0, got[0][0])
	assert.Equal(t, 0.5, got[0][1])
	assert.True(t, math.IsNaN(got[0][2]))
	assert.True(t, math.IsNaN(got[1][1]))
	assert.Equal(t, 0.25, got[1][2])
}

func TestLoadMatrix_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadMatrix(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = LoadMatrix(empty)
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("1,two\n"), 0644))
	_, err = LoadMatrix(bad)
	assert.Error(t, err)

	ragged := filepath.Join(dir, "ragged.csv")
	require.NoError(t, os.WriteFile(ragged, []byte("1,2\n3\n"), 0644))
	_, err = LoadMatrix(ragged)
	assert.Error(t, err)
}

func TestLoad_ShapeAndContextChecks(t *testing.T) {
	dir := t.TempDir()
	ctxPath := filepath.Join(dir, "contexts.csv")
	rewPath := filepath.Join(dir, "rewards.csv")

	require.NoError(t, os.WriteFile(ctxPath, []byte("1,2\n3,4\n"), 0644))
	require.NoError(t, os.WriteFile(rewPath, []byte("1,\n0,1\n"), 0644))

	ds, err := Load(ctxPath, rewPath)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Trials())
	assert.Equal(t, 2, ds.Dim())
	assert.Equal(t, 2, ds.Arms())
	assert.True(t, math.IsNaN(ds.Rewards[0][1]))

	// Row count mismatch.
	require.NoError(t, os.WriteFile(rewPath, []byte("1,0\n"), 0644))
	_, err = Load(ctxPath, rewPath)
	assert.Error(t, err)

	// Missing context cell.
	require.NoError(t, os.WriteFile(ctxPath, []byte("1,\n3,4\n"), 0644))
	require.NoError(t, os.WriteFile(rewPath, []byte("1,0\n0,1\n"), 0644))
	_, err = Load(ctxPath, rewPath)
	assert.Error(t, err)
}
