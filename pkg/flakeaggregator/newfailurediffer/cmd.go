package newfailurediffer

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

const defaultBaselineBuilds = 25

type DiffBuildFlags struct {
	CIClient       *flakeaggregatorlib.CIClientFlags
	Classification *flakeaggregatorlib.ClassificationFlags
	Report         *flakeaggregatorlib.ReportFlags
	Config         *flakeaggregatorlib.ConfigFlags

	Platform       string
	BaselineJob    string
	BaselineBuilds int
	Job            string
	BuildNumber    int
	TestNames      []string
}

func NewDiffBuildFlags() *DiffBuildFlags {
	return &DiffBuildFlags{
		CIClient:       flakeaggregatorlib.NewCIClientFlags(),
		Classification: flakeaggregatorlib.NewClassificationFlags(),
		Report:         flakeaggregatorlib.NewReportFlags(),
		Config:         &flakeaggregatorlib.ConfigFlags{},

		BaselineBuilds: defaultBaselineBuilds,
	}
}

func (f *DiffBuildFlags) BindFlags(fs *pflag.FlagSet) {
	f.CIClient.BindFlags(fs)
	f.Classification.BindFlags(fs)
	f.Report.BindFlags(fs)
	f.Config.BindFlags(fs)

	fs.StringVar(&f.Platform, "platform", f.Platform, "Compare against the nightly repeated job of this platform, ex: linux|linux-aarch64|osx|windows")
	fs.StringVar(&f.BaselineJob, "baseline-job", f.BaselineJob, "Compare against this job. Mutually exclusive with --platform.")
	fs.IntVar(&f.BaselineBuilds, "baseline-builds", f.BaselineBuilds, "Number of most recent builds of the baseline job that make up the history.")
	fs.StringVar(&f.Job, "job", f.Job, "The job of the build to check. Defaults to the baseline job.")
	fs.IntVar(&f.BuildNumber, "build-number", f.BuildNumber, "The build to check. Defaults to the last build of --job.")
	fs.StringArrayVar(&f.TestNames, "test-name", f.TestNames, "The flag can be specified multiple times to look up whether single tests failed in the baseline before.")
}

func NewDiffBuildCommand() *cobra.Command {
	f := NewDiffBuildFlags()

	cmd := &cobra.Command{
		Use:   "diff-build",
		Short: "Separate the new test failures of a build from the known flaky ones",
		Long: `Compare the failing tests of one build against the failures seen in the recent
builds of a baseline job, usually the nightly job that repeats the test suite.

Failures the baseline has seen before are known to be flaky. All others are new.
When the build is part of the baseline window, it is left out of the baseline.
`,
		SilenceUsage: true,

		Example: `To check build 629 of ci_linux against the last 25 nightly linux builds, run:

./flake-aggregator diff-build \
--platform=linux \
--job=ci_linux \
--build-number=629`,

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
func (f *DiffBuildFlags) Validate() error {
	var errs []error
	if len(f.Platform) > 0 && len(f.BaselineJob) > 0 {
		errs = append(errs, fmt.Errorf("cannot specify both --platform and --baseline-job"))
	}
	if len(f.Platform) == 0 && len(f.BaselineJob) == 0 {
		errs = append(errs, fmt.Errorf("exactly one of --platform or --baseline-job must be specified"))
	}
	if len(f.Platform) > 0 {
		if _, err := flakeaggregatorlib.ParsePlatform(f.Platform); err != nil {
			errs = append(errs, err)
		}
	}
	if f.BaselineBuilds <= 0 {
		errs = append(errs, fmt.Errorf("--baseline-builds must be positive, got %d", f.BaselineBuilds))
	}
	if f.BuildNumber < 0 {
		errs = append(errs, fmt.Errorf("--build-number must not be negative, got %d", f.BuildNumber))
	}
	errs = append(errs, f.CIClient.Validate(), f.Report.Validate())
	return utilerrors.NewAggregate(errs)
}

func (f *DiffBuildFlags) baselineJobName() (string, error) {
	if len(f.BaselineJob) > 0 {
		return f.BaselineJob, nil
	}
	platform, err := flakeaggregatorlib.ParsePlatform(f.Platform)
	if err != nil {
		return "", err
	}
	return flakeaggregatorlib.NightlyRepeatedJobName(platform)
}

func (f *DiffBuildFlags) ToOptions(ctx context.Context) (*DiffBuildOptions, error) {
	baselineJob, err := f.baselineJobName()
	if err != nil {
		return nil, err
	}
	job := f.Job
	if len(job) == 0 {
		job = baselineJob
	}
	logger := logrus.WithFields(logrus.Fields{"command": "diff-build", "baseline": baselineJob})

	client, err := f.CIClient.NewCIClient(logger)
	if err != nil {
		return nil, err
	}
	reporter, err := f.Report.ToReporter(os.Stdout, "flake-aggregator-diff-build")
	if err != nil {
		return nil, err
	}

	return &DiffBuildOptions{
		client:         client,
		baselineJob:    baselineJob,
		baselineBuilds: f.BaselineBuilds,
		job:            job,
		buildNumber:    f.BuildNumber,
		testNames:      f.TestNames,
		classification: f.Classification.ToOptions(),
		reporter:       reporter,
		logger:         logger,
	}, nil
}
