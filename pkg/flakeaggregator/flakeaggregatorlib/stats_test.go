package flakeaggregatorlib

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSummarizeBuildFailures(t *testing.T) {
	testCases := []struct {
		name     string
		counts   []int
		expected BuildFailureSummary
	}{
		{
			name:     "no builds",
			expected: BuildFailureSummary{},
		},
		{
			name:     "single build",
			counts:   []int{4},
			expected: BuildFailureSummary{Builds: 1, Mean: 4, Median: 4, Max: 4},
		},
		{
			name:     "mean is rounded",
			counts:   []int{1, 0, 1},
			expected: BuildFailureSummary{Builds: 3, Mean: 0.67, Median: 1, Max: 1},
		},
		{
			name:     "even number of builds",
			counts:   []int{0, 2, 10, 4},
			expected: BuildFailureSummary{Builds: 4, Mean: 4, Median: 3, Max: 10},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := SummarizeBuildFailures(tc.counts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.expected, actual); diff != "" {
				t.Errorf("unexpected summary: %s", diff)
			}
		})
	}
}
