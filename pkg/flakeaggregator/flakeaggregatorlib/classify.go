package flakeaggregatorlib

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/openshift/ci-flake-aggregator/pkg/flakeaggregator/flakeaggregatorapi"
)

// ClassificationOptions decide which failing outcomes count towards the failure accounting.
type ClassificationOptions struct {
	// IncludeSkippedTests counts skipped tests that report a failure age.
	IncludeSkippedTests bool
	// SkipMissingResults drops placeholder entries named *missing_result.
	SkipMissingResults bool
}

// DefaultClassificationOptions is the single source of truth for the classification defaults
// shared by every command.
func DefaultClassificationOptions() ClassificationOptions {
	return ClassificationOptions{
		IncludeSkippedTests: false,
		SkipMissingResults:  true,
	}
}

// IsFailure is true when the test has been failing for at least one build. The status is not consulted.
func IsFailure(logger logrus.FieldLogger, outcome *flakeaggregatorapi.TestOutcome) bool {
	if outcome == nil {
		logger.Warn("test result is missing, skipping")
		return false
	}
	return outcome.Age > 0
}

func IsSkipped(logger logrus.FieldLogger, outcome *flakeaggregatorapi.TestOutcome) bool {
	if outcome == nil {
		logger.Warn("test result is missing, skipping")
		return false
	}
	return outcome.Status == flakeaggregatorapi.TestStatusSkipped
}

// IsMissingResult reports whether name is a placeholder for a test that produced no result.
func IsMissingResult(name string) bool {
	return strings.HasSuffix(name, flakeaggregatorapi.MissingResultSuffix)
}

// CountsAsFailure applies the options on top of IsFailure.
func (o ClassificationOptions) CountsAsFailure(logger logrus.FieldLogger, name string, outcome *flakeaggregatorapi.TestOutcome) bool {
	if !o.IncludeSkippedTests && IsSkipped(logger, outcome) {
		return false
	}
	if o.SkipMissingResults && IsMissingResult(name) {
		return false
	}
	return IsFailure(logger, outcome)
}

type ClassificationFlags struct {
	IncludeSkippedTests bool
	SkipMissingResults  bool
}

func NewClassificationFlags() *ClassificationFlags {
	defaults := DefaultClassificationOptions()
	return &ClassificationFlags{
		IncludeSkippedTests: defaults.IncludeSkippedTests,
		SkipMissingResults:  defaults.SkipMissingResults,
	}
}

const (
	includeSkippedTestsFlag = "include-skipped-tests"
	skipMissingResultsFlag  = "skip-missing-results"
)

func (f *ClassificationFlags) BindFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&f.IncludeSkippedTests, includeSkippedTestsFlag, f.IncludeSkippedTests, "Count skipped tests that report a failure age as failures.")
	fs.BoolVar(&f.SkipMissingResults, skipMissingResultsFlag, f.SkipMissingResults, "Ignore placeholder results whose name ends in "+flakeaggregatorapi.MissingResultSuffix+". Set to false to count them as failures.")
}

func (f *ClassificationFlags) ToOptions() ClassificationOptions {
	return ClassificationOptions{
		IncludeSkippedTests: f.IncludeSkippedTests,
		SkipMissingResults:  f.SkipMissingResults,
	}
}
