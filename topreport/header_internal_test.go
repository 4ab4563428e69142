package topreport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericPrefix(t *testing.T) {
	tests := []struct {
		token  string
		number string
		suffix string
	}{
		{"10.90s", "10.90", "s"},
		{"45.87%", "45.87", "%"},
		{"512.25kB", "512.25", "kB"},
		{"0", "0", ""},
		{"120ms", "120", "ms"},
		{"abc", "", "abc"},
		{"", "", ""},
	}
	for _, tt := range tests {
		number, suffix := numericPrefix(tt.token)
		assert.Equal(t, tt.number, number, tt.token)
		assert.Equal(t, tt.suffix, suffix, tt.token)
	}
}

func TestHeaderAndBodyNumbers(t *testing.T) {
	assert.InDelta(t, 542.34, headerNumber("542.34%"), 1e-9)
	assert.Zero(t, headerNumber("n/a"))
	assert.Zero(t, headerNumber("1.2.3s"))

	v, err := bodyNumber(" 6.00s", "cum")
	require.NoError(t, err)
	assert.InDelta(t, 6.0, v, 1e-9)

	_, err = bodyNumber("%", "sum%")
	require.ErrorIs(t, err, ErrInvalidFormat)
	assert.EqualError(t, err, `invalid profile format: column sum%: cannot parse "%" as a number`)
}

func TestHeaderLinesRoundTrip(t *testing.T) {
	parallelism := []Parallelism{
		{Duration: 2.01, TotalSamplesTime: 10.90, TotalSamplesPercentage: 542.34},
		{Duration: 30.004, TotalSamplesTime: 0.126, TotalSamplesPercentage: 0.42},
		{},
	}
	for _, want := range parallelism {
		got, err := parseParallelism(FormatParallelismLine(want))
		require.NoError(t, err)
		assert.InDelta(t, want.Duration, got.Duration, 0.01)
		assert.InDelta(t, want.TotalSamplesTime, got.TotalSamplesTime, 0.01)
		assert.InDelta(t, want.TotalSamplesPercentage, got.TotalSamplesPercentage, 0.01)
	}

	nodes := []struct {
		nodes TotalNodes
		unit  string
	}{
		{TotalNodes{CollectedTime: 10.90, CollectedPercentage: 100, TotalTime: 10.90}, "s"},
		{TotalNodes{CollectedTime: 1024.5, CollectedPercentage: 97.456, TotalTime: 1051.25}, "kB"},
		{TotalNodes{CollectedTime: 3, CollectedPercentage: 12.5, TotalTime: 24}, ""},
	}
	for _, tt := range nodes {
		got, unit, err := parseTotalNodes(FormatTotalNodesLine(tt.nodes, tt.unit))
		require.NoError(t, err)
		assert.Equal(t, tt.unit, unit)
		assert.InDelta(t, tt.nodes.CollectedTime, got.CollectedTime, 0.01)
		assert.InDelta(t, tt.nodes.CollectedPercentage, got.CollectedPercentage, 0.01)
		assert.InDelta(t, tt.nodes.TotalTime, got.TotalTime, 0.01)
	}
}

func TestTypeLineRoundTrip(t *testing.T) {
	for _, typ := range []string{"cpu", "inuse_space", "delay"} {
		rest, ok := strings.CutPrefix(FormatTypeLine(Header{ProfileType: typ}), typePrefix)
		require.True(t, ok)
		assert.Equal(t, typ, rest)
	}
}
