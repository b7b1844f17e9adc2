package failinglister

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/openshift/ci-flake-aggregator/pkg/flakeaggregator/flakeaggregatorlib"
)

const defaultBuilds = 25

type ListFailuresFlags struct {
	CIClient       *flakeaggregatorlib.CIClientFlags
	Classification *flakeaggregatorlib.ClassificationFlags
	Report         *flakeaggregatorlib.ReportFlags
	Config         *flakeaggregatorlib.ConfigFlags

	JobNames []string
	Builds   int
}

func NewListFailuresFlags() *ListFailuresFlags {
	return &ListFailuresFlags{
		CIClient:       flakeaggregatorlib.NewCIClientFlags(),
		Classification: flakeaggregatorlib.NewClassificationFlags(),
		Report:         flakeaggregatorlib.NewReportFlags(),
		Config:         &flakeaggregatorlib.ConfigFlags{},

		Builds: defaultBuilds,
	}
}

func (f *ListFailuresFlags) BindFlags(fs *pflag.FlagSet) {
	f.CIClient.BindFlags(fs)
	f.Classification.BindFlags(fs)
	f.Report.BindFlags(fs)
	f.Config.BindFlags(fs)

	fs.StringArrayVar(&f.JobNames, "job-names", f.JobNames, fmt.Sprintf("The flag can be specified multiple times to name the jobs to aggregate. Defaults to every job whose name contains %q.", flakeaggregatorlib.RepeatedJobMarker))
	fs.IntVarP(&f.Builds, "builds", "n", f.Builds, "Number of most recent builds to aggregate per job.")
}

func NewListFailuresCommand() *cobra.Command {
	f := NewListFailuresFlags()

	cmd := &cobra.Command{
		Use:   "list-failures",
		Short: "List the tests that failed in the recent builds of a set of jobs",
		Long: `List every test that failed at least once in the last builds of a set of jobs,
together with the jobs it failed in.

A test counts as failing when the CI server reports it as failing for at least one
build. Skipped tests and placeholder results are left out unless asked for.
Jobs that do not exist are skipped with a warning.
`,
		SilenceUsage: true,

		Example: `./flake-aggregator list-failures \
--job-names=nightly_linux_repeated \
--job-names=nightly_win_rep \
-n 10`,

		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if err := f.Config.Apply(afero.NewOsFs(), cmd.Flags()); err != nil {
				logrus.WithError(err).Fatal("Failed to load config")
			}
			if err := f.Validate(); err != nil {
				logrus.WithError(err).Fatal("Flags are invalid")
			}
			o, err := f.ToOptions(ctx)
			if err != nil {
				logrus.WithError(err).Fatal("Failed to build runtime options")
			}

			if err := o.Run(ctx); err != nil {
				logrus.WithError(err).Fatal("Command failed")
			}

			return nil
		},

		Args: flakeaggregatorlib.NoArgs,
	}

	f.BindFlags(cmd.Flags())

	return cmd
}

// Validate checks to see if the user-input is likely to produce functional runtime options
func (f *ListFailuresFlags) Validate() error {
	var errs []error
	if f.Builds <= 0 {
		errs = append(errs, fmt.Errorf("--builds must be positive, got %d", f.Builds))
	}
	for _, jobName := range f.JobNames {
		if len(jobName) == 0 {
			errs = append(errs, fmt.Errorf("--job-names must not be empty"))
			break
		}
	}
	errs = append(errs, f.CIClient.Validate(), f.Report.Validate())
	return utilerrors.NewAggregate(errs)
}

func (f *ListFailuresFlags) ToOptions(ctx context.Context) (*ListFailuresOptions, error) {
	logger := logrus.WithField("command", "list-failures")

	client, err := f.CIClient.NewCIClient(logger)
	if err != nil {
		return nil, err
	}
	reporter, err := f.Report.ToReporter(os.Stdout, "flake-aggregator-list-failures")
	if err != nil {
		return nil, err
	}

	return &ListFailuresOptions{
		client:         client,
		jobNames:       f.JobNames,
		builds:         f.Builds,
		classification: f.Classification.ToOptions(),
		reporter:       reporter,
		logger:         logger,
	}, nil
}
