package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected Statistics
	}{
		{
			name:     "empty",
			input:    nil,
			expected: Statistics{},
		},
		{
			name:     "single",
			input:    []int{5},
			expected: Statistics{Mean: 5, Median: 5, Mode: 5, Min: 5, Max: 5},
		},
		{
			name:     "even spread",
			input:    []int{2, 4, 6, 8, 10},
			expected: Statistics{Mean: 6, Median: 6, Mode: 2, Min: 2, Max: 10, StdDev: 2.8284271247461903},
		},
		{
			name:     "odd median",
			input:    []int{9, 1, 7, 3, 5},
			expected: Statistics{Mean: 5, Median: 5, Mode: 9, Min: 1, Max: 9, StdDev: 2.8284271247461903},
		},
		{
			name:     "even length median",
			input:    []int{4, 1, 3, 2},
			expected: Statistics{Mean: 2.5, Median: 2.5, Mode: 4, Min: 1, Max: 4, StdDev: 1.118033988749895},
		},
		{
			name:     "mode tie keeps first seen",
			input:    []int{7, 3, 3, 7, 1},
			expected: Statistics{Mean: 4.2, Median: 3, Mode: 7, Min: 1, Max: 7, StdDev: 2.4},
		},
		{
			name:     "mode tie ignores which value reached the count first",
			input:    []int{1, 2, 2, 1},
			expected: Statistics{Mean: 1.5, Median: 1.5, Mode: 1, Min: 1, Max: 2, StdDev: 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.input)
			assert.InDelta(t, tt.expected.Mean, got.Mean, 1e-9)
			assert.InDelta(t, tt.expected.Median, got.Median, 1e-9)
			assert.InDelta(t, tt.expected.StdDev, got.StdDev, 1e-9)
			assert.Equal(t, tt.expected.Mode, got.Mode)
			assert.Equal(t, tt.expected.Min, got.Min)
			assert.Equal(t, tt.expected.Max, got.Max)
		})
	}
}

func TestComputeDoesNotReorderInput(t *testing.T) {
	input := []int{3, 1, 2}
	_ = Compute(input)
	assert.Equal(t, []int{3, 1, 2}, input)
}
