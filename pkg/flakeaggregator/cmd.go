package flakeaggregator

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openshift/ci-flake-aggregator/pkg/flakeaggregator/failinglister"
	"github.com/openshift/ci-flake-aggregator/pkg/flakeaggregator/newfailurediffer"
)

// Overall usage
// 1. list-failures aggregates the last builds of the nightly repeated jobs into the list of tests
//    that failed at least once, and the jobs they failed in. The list is the triage checklist for
//    flaky tests.
// 2. diff-build takes a single build, usually of a CI job, and splits its failures into the ones
//    the nightly repeated job of the same platform has seen before and the new ones.

func NewFlakeAggregatorCommand() *cobra.Command {
	logLevel := logrus.InfoLevel.String()

	cmd := &cobra.Command{
		Use:  "flake-aggregator",
		Long: `Commands associated with finding flaky tests in the results of CI jobs`,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			logrus.SetLevel(level)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, fmt.Sprintf("Level of logging verbosity, one of %v.", logrus.AllLevels))

	cmd.AddCommand(failinglister.NewListFailuresCommand())
	cmd.AddCommand(newfailurediffer.NewDiffBuildCommand())

	return cmd
}
