package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplesNewestFirst(t *testing.T) {
	var s Samples
	s.Add(200)
	s.Add(180)
	s.Add(220)
	assert.Equal(t, []float64{220, 180, 200}, s.Values())
}

func TestSamplesCap(t *testing.T) {
	var s Samples
	for i := 1; i <= maxSamples+3; i++ {
		s.Add(float64(i * 10))
	}
	assert.Equal(t, maxSamples, s.Len())
	assert.Equal(t, 280.0, s.Values()[0])
	assert.Equal(t, 40.0, s.Values()[maxSamples-1])
}

func TestSamplesStats(t *testing.T) {
	var s Samples
	assert.Zero(t, s.Mean())
	assert.Zero(t, s.Best())

	s.Add(200)
	s.Add(150)
	s.Add(250)
	assert.InDelta(t, 200.0, s.Mean(), 1e-9)
	assert.Equal(t, 150.0, s.Best())
}

func TestSamplesClear(t *testing.T) {
	var s Samples
	s.Add(123)
	s.Clear()
	assert.Zero(t, s.Len())
	assert.Zero(t, s.Mean())
}

func TestSamplesSave(t *testing.T) {
	var s Samples
	s.Add(201.5)
	s.Add(188.25)

	path := filepath.Join(t.TempDir(), "reactions.csv")
	require.NoError(t, s.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "reaction_ms", lines[0])
	assert.Equal(t, "188.25", lines[1])
	assert.Equal(t, "201.50", lines[2])
}
