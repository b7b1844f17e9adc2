package flakeaggregatorlib

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
	"github.com/spf13/pflag"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"sigs.k8s.io/prow/pkg/config/secret"
)

const (
	outputFlag       = "output"
	slackChannelFlag = "slack-channel"
)

// ReportFlags decide where the outcome of a command goes.
type ReportFlags struct {
	Output             string
	SlackChannel       string
	SlackTokenPath     string
	MetricsPushGateway string
}

func NewReportFlags() *ReportFlags {
	return &ReportFlags{
		Output: string(OutputFormatChecklist),
	}
}

func (f *ReportFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&f.Output, outputFlag, "o", f.Output, fmt.Sprintf("Output format, one of %q.", []string{string(OutputFormatChecklist), string(OutputFormatJSON), string(OutputFormatYAML)}))
	fs.StringVar(&f.SlackChannel, slackChannelFlag, f.SlackChannel, "Also post the report to this Slack channel.")
	fs.StringVar(&f.SlackTokenPath, "slack-token-path", f.SlackTokenPath, "Path to the file containing the Slack bot token.")
	fs.StringVar(&f.MetricsPushGateway, "metrics-push-gateway", f.MetricsPushGateway, "URL of a Prometheus Pushgateway to push run metrics to.")
}

func (f *ReportFlags) Validate() error {
	var errs []error
	if _, err := ParseOutputFormat(f.Output); err != nil {
		errs = append(errs, err)
	}
	if len(f.SlackChannel) > 0 && len(f.SlackTokenPath) == 0 {
		errs = append(errs, fmt.Errorf("--slack-channel requires --slack-token-path"))
	}
	return utilerrors.NewAggregate(errs)
}

// ToReporter builds a Reporter writing to out. Metrics are pushed grouped under pushJob.
func (f *ReportFlags) ToReporter(out io.Writer, pushJob string) (*Reporter, error) {
	format, err := ParseOutputFormat(f.Output)
	if err != nil {
		return nil, err
	}
	reporter := &Reporter{
		out:         out,
		format:      format,
		metrics:     NewMetrics(),
		pushGateway: f.MetricsPushGateway,
		pushJob:     pushJob,
	}
	if len(f.SlackChannel) > 0 {
		if err := secret.Add(f.SlackTokenPath); err != nil {
			return nil, fmt.Errorf("failed to start secrets agent: %w", err)
		}
		reporter.slackClient = slack.New(string(secret.GetSecret(f.SlackTokenPath)))
		reporter.slackChannel = f.SlackChannel
	}
	return reporter, nil
}

// Reporter writes reports and delivers them to the optional sinks.
type Reporter struct {
	out    io.Writer
	format OutputFormat

	slackClient  SlackClient
	slackChannel string

	metrics     *Metrics
	pushGateway string
	pushJob     string
}

// Metrics are collected during the run and pushed along with the report.
func (r *Reporter) Metrics() *Metrics {
	return r.metrics
}

func (r *Reporter) ReportFailures(ctx context.Context, logger logrus.FieldLogger, report *FailureReport) error {
	if err := WriteFailureReport(r.out, report, r.format); err != nil {
		return err
	}
	var errs []error
	if r.slackClient != nil {
		if err := PostFailureReport(logger, r.slackClient, r.slackChannel, report); err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, r.pushMetrics(ctx, logger)...)
	return utilerrors.NewAggregate(errs)
}

func (r *Reporter) ReportBuildDiff(ctx context.Context, logger logrus.FieldLogger, report *BuildDiffReport) error {
	if err := WriteBuildDiffReport(r.out, report, r.format); err != nil {
		return err
	}
	var errs []error
	if r.slackClient != nil {
		if err := PostBuildDiffReport(logger, r.slackClient, r.slackChannel, report); err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, r.pushMetrics(ctx, logger)...)
	return utilerrors.NewAggregate(errs)
}

func (r *Reporter) pushMetrics(ctx context.Context, logger logrus.FieldLogger) []error {
	if len(r.pushGateway) == 0 {
		return nil
	}
	if err := r.metrics.Push(ctx, r.pushGateway, r.pushJob); err != nil {
		return []error{err}
	}
	logger.WithField("gateway", r.pushGateway).Debug("Pushed metrics")
	return nil
}
