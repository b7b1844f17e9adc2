//go:generate mockgen -source=interfaces.go -destination=zz_generated.mock_interfaces.go -package=flakeaggregatorapi

package flakeaggregatorapi

import "context"

// CIClient is the read-only view of a CI server the aggregation needs.
// Implementations are constructed by the caller and injected, there is no global client.
type CIClient interface {
	ListJobs(ctx context.Context) ([]string, error)
	// GetJob returns an *UnknownJobError when the server has no job with that name.
	GetJob(ctx context.Context, name string) (JobHandle, error)
}

// JobHandle gives access to the build history of one job.
type JobHandle interface {
	GetJobName() string
	// GetLastBuildNumber returns 0 for a job that never built.
	GetLastBuildNumber(ctx context.Context) (int, error)
	// GetBuild returns a *BuildNotFoundError when the build does not exist (anymore).
	GetBuild(ctx context.Context, number int) (BuildHandle, error)
}

// BuildHandle is a single build of a job.
type BuildHandle interface {
	GetBuildNumber() int
	// HasResultSet is false for builds that did not publish a test report.
	HasResultSet() bool
	GetResultSet(ctx context.Context) (*BuildResultSet, error)
}
