package failinglister

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/openshift/ci-flake-aggregator/pkg/flakeaggregator/flakeaggregatorapi"
	"github.com/openshift/ci-flake-aggregator/pkg/flakeaggregator/flakeaggregatorlib"
	"github.com/openshift/ci-flake-aggregator/pkg/util/slices"
)

type ListFailuresOptions struct {
	client         flakeaggregatorapi.CIClient
	// jobNames may be empty, in which case the repeated jobs of the server are used.
	jobNames       []string
	builds         int
	classification flakeaggregatorlib.ClassificationOptions
	reporter       *flakeaggregatorlib.Reporter
	logger         logrus.FieldLogger
}

func (o *ListFailuresOptions) Run(ctx context.Context) error {
	jobNames := slices.Dedupe(o.jobNames)
	if len(jobNames) == 0 {
		var err error
		jobNames, err = flakeaggregatorlib.DefaultJobNames(ctx, o.client)
		if err != nil {
			return err
		}
		o.logger.Infof("Aggregating the %d repeated jobs", len(jobNames))
	}

	aggregator := flakeaggregatorlib.NewAggregator(o.client, o.classification, o.logger, o.reporter.Metrics())
	aggregate, err := aggregator.AggregateJobs(ctx, jobNames, o.builds)
	if err != nil {
		return err
	}

	report, err := flakeaggregatorlib.NewFailureReport(aggregate)
	if err != nil {
		return err
	}
	return o.reporter.ReportFailures(ctx, o.logger, report)
}
