package flakeaggregatorlib

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// BuildFailureSummary describes how many tests fail per build in a job's window.
type BuildFailureSummary struct {
	Builds int     `json:"builds"`
	Mean   float64 `json:"mean_failures_per_build"`
	Median float64 `json:"median_failures_per_build"`
	Max    float64 `json:"max_failures_per_build"`
}

// SummarizeBuildFailures summarizes per-build failure counts. No builds yield an empty summary.
func SummarizeBuildFailures(counts []int) (BuildFailureSummary, error) {
	if len(counts) == 0 {
		return BuildFailureSummary{}, nil
	}
	data := stats.LoadRawData(counts)

	mean, err := stats.Mean(data)
	if err != nil {
		return BuildFailureSummary{}, fmt.Errorf("failed to calculate mean: %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return BuildFailureSummary{}, fmt.Errorf("failed to calculate median: %w", err)
	}
	maximum, err := stats.Max(data)
	if err != nil {
		return BuildFailureSummary{}, fmt.Errorf("failed to calculate max: %w", err)
	}
	mean, err = stats.Round(mean, 2)
	if err != nil {
		return BuildFailureSummary{}, fmt.Errorf("failed to round mean: %w", err)
	}

	return BuildFailureSummary{
		Builds: len(counts),
		Mean:   mean,
		Median: median,
		Max:    maximum,
	}, nil
}
