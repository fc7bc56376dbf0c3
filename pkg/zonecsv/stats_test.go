package zonecsv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	root := t.TempDir()
	path := writeScenario(t, root, "MTP25_2020",
		"ZONE,VALUE\n5,a\n1200,b\n1200,c\n3000,d\n7,e\n")

	opts := DefaultStatsOptions()
	opts.SampleCap = 2
	result, err := Stats(path, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"ZONE", "VALUE"}, result.Header)
	assert.Equal(t, 5, result.Rows)
	assert.Equal(t, 4, result.UniqueZones)
	assert.Equal(t, int64(5), result.MinZone)
	assert.Equal(t, int64(3000), result.MaxZone)
	assert.InDelta(t, 603.5, result.MedianZone, 1e-9)
	assert.Equal(t, int64(1000), result.Threshold)
	assert.Equal(t, [][]string{{"1200", "b"}, {"1200", "c"}}, result.Samples)
}

func TestStatsWithPrefix(t *testing.T) {
	root := t.TempDir()
	path := writeScenario(t, root, "MTP25_2020", "ZONE,VALUE\nZ10,a\nZ2000,b\n")

	opts := DefaultStatsOptions()
	opts.ZonePrefix = "Z"
	result, err := Stats(path, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), result.MaxZone)
	assert.Len(t, result.Samples, 1)
}

func TestStatsHeaderOnly(t *testing.T) {
	root := t.TempDir()
	path := writeScenario(t, root, "MTP25_2020", "ZONE,VALUE\n")

	result, err := Stats(path, DefaultStatsOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, result.UniqueZones)
	assert.Equal(t, int64(0), result.MaxZone)
	assert.Empty(t, result.Samples)
}

func TestStatsErrors(t *testing.T) {
	root := t.TempDir()
	empty := writeScenario(t, root, "empty", "")
	invalid := writeScenario(t, root, "invalid", "ZONE,VALUE\n1,a\nabc,b\n")
	malformed := writeScenario(t, root, "malformed", "ZONE,VALUE\n1\n")

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing", filepath.Join(root, "nope.csv"), ErrMissingSource},
		{"empty", empty, ErrEmptySource},
		{"invalid zone", invalid, ErrInvalidZone},
		{"malformed", malformed, ErrMalformedRow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Stats(tt.path, DefaultStatsOptions())
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Stats(invalid, DefaultStatsOptions())
	assert.Contains(t, err.Error(), "line 3")
}
