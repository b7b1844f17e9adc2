package flakeaggregatorlib

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/openshift/ci-flake-aggregator/pkg/flakeaggregator/flakeaggregatorapi"
	"github.com/openshift/ci-flake-aggregator/pkg/util/slices"
)

// RepeatedJobMarker selects the jobs aggregated when none are named explicitly.
const RepeatedJobMarker = "_rep"

// Aggregator folds the test failures of recent builds into failure indexes.
// It processes jobs and builds strictly one after the other.
type Aggregator struct {
	client  flakeaggregatorapi.CIClient
	options ClassificationOptions
	logger  logrus.FieldLogger
	metrics *Metrics
}

// NewAggregator creates an Aggregator. metrics may be nil.
func NewAggregator(client flakeaggregatorapi.CIClient, options ClassificationOptions, logger logrus.FieldLogger, metrics *Metrics) *Aggregator {
	return &Aggregator{
		client:  client,
		options: options,
		logger:  logger,
		metrics: metrics,
	}
}

// JobAggregate holds the failures seen in the last builds of a single job.
type JobAggregate struct {
	JobName         string
	LastBuildNumber int
	// Window is the number of builds actually visited after clamping.
	Window       int
	BuildNumbers []int

	// Failures lists every test that failed at least once, in order of first failure.
	Failures   []string
	FailureSet sets.Set[string]
	// Occurrences maps a test to the ascending build numbers it failed in.
	Occurrences      flakeaggregatorapi.FailureIndex[int]
	FailuresPerBuild map[int]int
}

func newJobAggregate(jobName string, lastBuildNumber, window int) *JobAggregate {
	return &JobAggregate{
		JobName:          jobName,
		LastBuildNumber:  lastBuildNumber,
		Window:           window,
		FailureSet:       sets.New[string](),
		Occurrences:      flakeaggregatorapi.FailureIndex[int]{},
		FailuresPerBuild: map[int]int{},
	}
}

func (a *JobAggregate) record(buildNumber int, failures []string) {
	a.BuildNumbers = append(a.BuildNumbers, buildNumber)
	a.FailuresPerBuild[buildNumber] = len(failures)
	for _, failure := range failures {
		a.Occurrences.Add(failure, buildNumber)
		if !a.FailureSet.Has(failure) {
			a.FailureSet.Insert(failure)
			a.Failures = append(a.Failures, failure)
		}
	}
}

// FailureCounts returns the number of failures of every visited build, in build order.
func (a *JobAggregate) FailureCounts() []int {
	counts := make([]int, 0, len(a.BuildNumbers))
	for _, buildNumber := range a.BuildNumbers {
		counts = append(counts, a.FailuresPerBuild[buildNumber])
	}
	return counts
}

// CrossJobAggregate holds the failures of several jobs.
type CrossJobAggregate struct {
	// FailingJobs maps a test to the jobs it failed in, each job at most once.
	FailingJobs flakeaggregatorapi.FailureIndex[string]
	Jobs        []*JobAggregate
	// SkippedJobs were requested but do not exist on the CI server.
	SkippedJobs []string
}

// EffectiveWindow clamps the requested number of builds to the builds that exist.
func EffectiveWindow(requested, lastBuildNumber int) int {
	return max(0, min(requested, lastBuildNumber))
}

// WindowBuildNumbers lists the window builds ending at lastBuildNumber, ascending.
func WindowBuildNumbers(lastBuildNumber, window int) []int {
	buildNumbers := make([]int, 0, window)
	for buildNumber := lastBuildNumber - window + 1; buildNumber <= lastBuildNumber; buildNumber++ {
		buildNumbers = append(buildNumbers, buildNumber)
	}
	return buildNumbers
}

// FailuresFromResultSet returns the names of failing tests in resultSet, in result set order.
func (a *Aggregator) FailuresFromResultSet(logger logrus.FieldLogger, resultSet *flakeaggregatorapi.BuildResultSet) []string {
	var failures []string
	for _, name := range resultSet.Names() {
		outcome, _ := resultSet.Get(name)
		if outcome == nil {
			logger.WithField("test", name).Warn("test result is missing, skipping")
			continue
		}
		if a.options.CountsAsFailure(logger, name, outcome) {
			failures, _ = slices.UniqueAdd(failures, name)
		}
	}
	return failures
}

// ExtractBuildFailures returns the failing tests of one build. A build without a test
// report, or one the server no longer has, has no failures.
func (a *Aggregator) ExtractBuildFailures(ctx context.Context, job flakeaggregatorapi.JobHandle, buildNumber int) ([]string, error) {
	build, err := job.GetBuild(ctx, buildNumber)
	if err != nil {
		if flakeaggregatorapi.IsBuildNotFound(err) {
			a.logger.WithFields(logrus.Fields{"job": job.GetJobName(), "build": buildNumber}).WithError(err).Warn("build does not exist, treating it as having no test results")
			a.metrics.recordBuildWithoutResults(job.GetJobName())
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to get build %d of job %s: %w", buildNumber, job.GetJobName(), err)
	}
	return a.BuildFailures(ctx, job.GetJobName(), build)
}

// BuildFailures returns the failing tests of build, which belongs to job jobName.
// A build without a test report has no failures.
func (a *Aggregator) BuildFailures(ctx context.Context, jobName string, build flakeaggregatorapi.BuildHandle) ([]string, error) {
	buildNumber := build.GetBuildNumber()
	logger := a.logger.WithFields(logrus.Fields{"job": jobName, "build": buildNumber})
	if !build.HasResultSet() {
		logger.Debug("build has no test results")
		a.metrics.recordBuildWithoutResults(jobName)
		return []string{}, nil
	}
	resultSet, err := build.GetResultSet(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get test results of build %d of job %s: %w", buildNumber, jobName, err)
	}

	failures := a.FailuresFromResultSet(logger, resultSet)
	if failures == nil {
		failures = []string{}
	}
	return failures, nil
}

// AggregateJob folds the failures of the last lastNBuilds builds of job.
func (a *Aggregator) AggregateJob(ctx context.Context, job flakeaggregatorapi.JobHandle, lastNBuilds int) (*JobAggregate, error) {
	jobName := job.GetJobName()
	logger := a.logger.WithField("job", jobName)

	lastBuildNumber, err := job.GetLastBuildNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get the last build number of job %s: %w", jobName, err)
	}
	window := EffectiveWindow(lastNBuilds, lastBuildNumber)
	if window < lastNBuilds {
		logger.Warnf("will process only the last %d builds for job %s", window, jobName)
	}

	aggregate := newJobAggregate(jobName, lastBuildNumber, window)
	for _, buildNumber := range WindowBuildNumbers(lastBuildNumber, window) {
		logger.WithField("build", buildNumber).Info("Processing build")
		failures, err := a.ExtractBuildFailures(ctx, job, buildNumber)
		if err != nil {
			return nil, err
		}
		logger.Infof("%d test failures for build number %d", len(failures), buildNumber)
		a.metrics.recordBuild(jobName, len(failures))
		aggregate.record(buildNumber, failures)
	}
	logger.Infof("%d total test failures for job %s", len(aggregate.Failures), jobName)

	return aggregate, nil
}

// AggregateJobs aggregates every named job and records in which jobs each test failed.
// Jobs unknown to the CI server are skipped.
func (a *Aggregator) AggregateJobs(ctx context.Context, jobNames []string, lastNBuilds int) (*CrossJobAggregate, error) {
	result := &CrossJobAggregate{FailingJobs: flakeaggregatorapi.FailureIndex[string]{}}
	for _, jobName := range jobNames {
		job, err := a.client.GetJob(ctx, jobName)
		if err != nil {
			if flakeaggregatorapi.IsUnknownJob(err) {
				a.logger.WithField("job", jobName).Warn("Job does not exist, skipping")
				a.metrics.recordSkippedJob()
				result.SkippedJobs = append(result.SkippedJobs, jobName)
				continue
			}
			return nil, fmt.Errorf("failed to get job %s: %w", jobName, err)
		}

		aggregate, err := a.AggregateJob(ctx, job, lastNBuilds)
		if err != nil {
			return nil, err
		}
		result.Jobs = append(result.Jobs, aggregate)
		for _, failure := range aggregate.Failures {
			result.FailingJobs.AddUnique(failure, jobName)
		}
	}
	return result, nil
}

// DefaultJobNames lists the repeated jobs of the CI server, sorted.
func DefaultJobNames(ctx context.Context, client flakeaggregatorapi.CIClient) ([]string, error) {
	allJobs, err := client.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	var jobNames []string
	for _, jobName := range allJobs {
		if strings.Contains(jobName, RepeatedJobMarker) {
			jobNames = append(jobNames, jobName)
		}
	}
	sort.Strings(jobNames)
	return jobNames, nil
}
