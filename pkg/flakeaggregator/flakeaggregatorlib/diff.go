package flakeaggregatorlib

import (
	"fmt"
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/openshift/ci-flake-aggregator/pkg/flakeaggregator/flakeaggregatorapi"
)

// FailureDiff partitions the failures of a candidate build against a history.
type FailureDiff struct {
	// Existing failures were seen in the history before, so they are known to be flaky.
	Existing sets.Set[string]
	// New failures were never seen in the history.
	New sets.Set[string]
}

// DiffFailures splits candidate into the failures already in history and the new ones.
// Neither input is modified.
func DiffFailures(candidate, history sets.Set[string]) FailureDiff {
	existing := candidate.Intersection(history)
	return FailureDiff{
		Existing: existing,
		New:      candidate.Difference(existing),
	}
}

// Baseline is the failure history a single build is compared against.
type Baseline struct {
	JobName         string
	LastBuildNumber int
	// Window is the number of builds the history was taken from.
	Window      int
	Occurrences flakeaggregatorapi.FailureIndex[int]
}

// NewBaseline turns aggregate into the history of build buildNumber of job jobName.
// The build itself is left out when it is part of the aggregated window.
func NewBaseline(aggregate *JobAggregate, jobName string, buildNumber int) Baseline {
	excluded := aggregate.JobName == jobName && slices.Contains(aggregate.BuildNumbers, buildNumber)
	occurrences := flakeaggregatorapi.FailureIndex[int]{}
	for testName, builds := range aggregate.Occurrences {
		for _, build := range builds {
			if excluded && build == buildNumber {
				continue
			}
			occurrences.Add(testName, build)
		}
	}
	window := aggregate.Window
	if excluded {
		window--
	}
	return Baseline{
		JobName:         aggregate.JobName,
		LastBuildNumber: aggregate.LastBuildNumber,
		Window:          window,
		Occurrences:     occurrences,
	}
}

func (b Baseline) FailureSet() sets.Set[string] {
	return b.Occurrences.TestNameSet()
}

const (
	lookupStatusNew      = "new"
	lookupStatusExisting = "existing"
)

// TestLookup is the history of a single test in a job's occurrence index.
type TestLookup struct {
	TestName string `json:"test_name"`
	Status   string `json:"status"`
	// FailedInBuilds is empty for new tests.
	FailedInBuilds []int `json:"failed_in_builds,omitempty"`
}

// LookupTest reports whether testName has failed in the indexed builds before.
func LookupTest(occurrences flakeaggregatorapi.FailureIndex[int], testName string) TestLookup {
	builds, ok := occurrences.Get(testName)
	if !ok {
		return TestLookup{TestName: testName, Status: lookupStatusNew}
	}
	return TestLookup{TestName: testName, Status: lookupStatusExisting, FailedInBuilds: builds}
}

func (l TestLookup) String() string {
	if l.Status == lookupStatusNew {
		return lookupStatusNew
	}
	return fmt.Sprintf("%s: %v", lookupStatusExisting, l.FailedInBuilds)
}
