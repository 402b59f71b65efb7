package neural

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestOf(t *testing.T) {
	nan := math32.NaN()
	inf := math32.Inf(1)
	tests := []struct {
		errs []float32
		best int
	}{
		{[]float32{0.3, 0.1, 0.2}, 1},
		{[]float32{nan, 0.5, 0.4}, 2},
		{[]float32{0.9, inf, nan}, 0},
		{[]float32{0.2}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.best, bestOf(tt.errs), "%v", tt.errs)
	}
}

func TestMeanOf(t *testing.T) {
	assert.InDelta(t, 0.2, meanOf([]float32{0.1, 0.3, math32.NaN()}), 1e-6)
	assert.True(t, math32.IsNaN(meanOf([]float32{math32.NaN()})))
}

func TestDump(t *testing.T) {
	s := makeStatistics()
	s.update([]string{"a", "b"}, []float32{0.5, 0.25})
	s.update([]string{"a", "b"}, []float32{0.125, 0.0625})
	assert.Equal(t, []float32{0.5, 0.125}, s.History("a"))

	filename := filepath.Join(t.TempDir(), "stats.csv")
	require.NoError(t, s.Dump(filename))

	f, err := os.Open(filename)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"a", "b"},
		{"0.500000", "0.250000"},
		{"0.125000", "0.062500"},
	}, records)
}
