package flakeaggregatorapi

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/openshift/ci-flake-aggregator/pkg/util/slices"
)

// FailureIndex maps a test name to where it was observed failing: build numbers when
// folding the builds of one job, job names when folding across jobs.
// A test name is only present once something was recorded for it.
type FailureIndex[T comparable] map[string][]T

// Add records one more failing location for testName.
func (i FailureIndex[T]) Add(testName string, where T) {
	i[testName] = append(i[testName], where)
}

// AddUnique records where for testName unless it is already recorded. It returns
// whether the index changed.
func (i FailureIndex[T]) AddUnique(testName string, where T) bool {
	updated, added := slices.UniqueAdd(i[testName], where)
	i[testName] = updated
	return added
}

// Get returns a copy of the locations recorded for testName.
func (i FailureIndex[T]) Get(testName string) ([]T, bool) {
	where, ok := i[testName]
	if !ok {
		return nil, false
	}
	return append([]T(nil), where...), true
}

// TestNames returns the indexed test names, sorted.
func (i FailureIndex[T]) TestNames() []string {
	return sets.List(sets.KeySet(map[string][]T(i)))
}

// TestNameSet returns the indexed test names as a set.
func (i FailureIndex[T]) TestNameSet() sets.Set[string] {
	return sets.KeySet(map[string][]T(i))
}
