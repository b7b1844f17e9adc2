// flake-aggregator reads the test results of recent CI builds and reports which tests are
// flaky, and which failures of a build are new.
package main

import (
	goflag "flag"
	"os"

	"github.com/spf13/pflag"

	"sigs.k8s.io/prow/pkg/logrusutil"

	"github.com/openshift/ci-flake-aggregator/pkg/flakeaggregator"
)

func main() {
	logrusutil.ComponentInit()

	cmd := flakeaggregator.NewFlakeAggregatorCommand()
	pflag.CommandLine.AddGoFlagSet(goflag.CommandLine)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
