package newfailurediffer

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/openshift/ci-flake-aggregator/pkg/flakeaggregator/flakeaggregatorapi"
	"github.com/openshift/ci-flake-aggregator/pkg/flakeaggregator/flakeaggregatorlib"
)

type DiffBuildOptions struct {
	client         flakeaggregatorapi.CIClient
	baselineJob    string
	baselineBuilds int
	job            string
	// buildNumber 0 selects the last build of job.
	buildNumber    int
	testNames      []string
	classification flakeaggregatorlib.ClassificationOptions
	reporter       *flakeaggregatorlib.Reporter
	logger         logrus.FieldLogger
}

func (o *DiffBuildOptions) Run(ctx context.Context) error {
	aggregator := flakeaggregatorlib.NewAggregator(o.client, o.classification, o.logger, o.reporter.Metrics())

	baselineJob, err := o.client.GetJob(ctx, o.baselineJob)
	if err != nil {
		return fmt.Errorf("failed to get baseline job: %w", err)
	}
	o.logger.Infof("Getting test failures for the last %d builds of %s", o.baselineBuilds, o.baselineJob)
	aggregate, err := aggregator.AggregateJob(ctx, baselineJob, o.baselineBuilds)
	if err != nil {
		return err
	}

	job := baselineJob
	if o.job != o.baselineJob {
		if job, err = o.client.GetJob(ctx, o.job); err != nil {
			return fmt.Errorf("failed to get job: %w", err)
		}
	}
	buildNumber := o.buildNumber
	if buildNumber == 0 {
		if buildNumber, err = job.GetLastBuildNumber(ctx); err != nil {
			return fmt.Errorf("failed to get the last build number of job %s: %w", o.job, err)
		}
		if buildNumber == 0 {
			return fmt.Errorf("job %s has no builds", o.job)
		}
	}

	// Unlike the builds of the baseline, the build under test must exist.
	build, err := job.GetBuild(ctx, buildNumber)
	if err != nil {
		return fmt.Errorf("failed to get build %d of job %s: %w", buildNumber, o.job, err)
	}
	failures, err := aggregator.BuildFailures(ctx, o.job, build)
	if err != nil {
		return err
	}
	o.logger.Infof("%d test failures for build number %d of job %s", len(failures), buildNumber, o.job)

	baseline := flakeaggregatorlib.NewBaseline(aggregate, o.job, buildNumber)
	diff := flakeaggregatorlib.DiffFailures(sets.New(failures...), baseline.FailureSet())
	report := flakeaggregatorlib.NewBuildDiffReport(o.job, buildNumber, baseline, diff, o.testNames)
	return o.reporter.ReportBuildDiff(ctx, o.logger, report)
}
