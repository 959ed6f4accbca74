package pointfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrevorS/dbscan"
	"github.com/TrevorS/dbscan/internal/errors"
)

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("points.CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = FormatFromPath("dir/points.json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = FormatFromPath("points.parquet")
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), ".csv")
}

func TestRead_CSVWithHeaderAndComments(t *testing.T) {
	input := "x,y\n# comment\n0,0\n 0, 1\n10.5,-2\n"
	ds, err := Read(strings.NewReader(input), FormatCSV)
	require.NoError(t, err)

	require.Equal(t, 3, ds.Len())
	assert.Equal(t, 2, ds.Dims())
	assert.Equal(t, []float64{0, 1}, ds.At(1))
	assert.Equal(t, []float64{10.5, -2}, ds.At(2))
}

func TestRead_CSVErrors(t *testing.T) {
	_, err := Read(strings.NewReader("0,0\n1,oops\n"), FormatCSV)
	assert.Error(t, err)

	_, err = Read(strings.NewReader("0,0\n1,1,1\n"), FormatCSV)
	assert.True(t, errors.Is(err, dbscan.ErrDimensionMismatch), "got %v", err)
}

func TestRead_JSON(t *testing.T) {
	ds, err := Read(strings.NewReader(`[[0, 0, 1], [2, 3, 4]]`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, 3, ds.Dims())

	_, err = Read(strings.NewReader(`[[0, 0], [1]]`), FormatJSON)
	assert.True(t, errors.Is(err, dbscan.ErrDimensionMismatch), "got %v", err)

	_, err = Read(strings.NewReader(`{"not": "points"}`), FormatJSON)
	assert.Error(t, err)
}

func TestLoadAndCluster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, []byte("0,0\n0,1\n0,2\n10,10\n"), 0o644))

	ds, err := Load(path)
	require.NoError(t, err)

	res, err := dbscan.Run(ds, 1.5, 2)
	require.NoError(t, err)
	assert.Equal(t, []dbscan.ClusterID{1, 1, 1, dbscan.Noise}, res.Labels)

	out := filepath.Join(t.TempDir(), "labels.csv")
	require.NoError(t, SaveLabels(out, res.Labels))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "index,cluster\n0,1\n1,1\n2,1\n3,0\n", string(data))
}

func TestWriteLabels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLabels(&buf, []dbscan.ClusterID{2, 0}))
	assert.Equal(t, "index,cluster\n0,2\n1,0\n", buf.String())
}
