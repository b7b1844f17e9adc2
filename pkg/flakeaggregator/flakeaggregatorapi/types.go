package flakeaggregatorapi

// TestStatus is the status a CI server reports for a single test case.
type TestStatus string

const (
	TestStatusPassed     TestStatus = "PASSED"
	TestStatusFailed     TestStatus = "FAILED"
	TestStatusSkipped    TestStatus = "SKIPPED"
	TestStatusFixed      TestStatus = "FIXED"
	TestStatusRegression TestStatus = "REGRESSION"
)

// MissingResultSuffix marks a placeholder entry emitted when a test produced no
// result at all, as opposed to a real test case.
const MissingResultSuffix = "missing_result"

// TestOutcome is the result of one named test within one build.
type TestOutcome struct {
	Name string
	// Age is the number of consecutive builds the test has been failing.
	// Zero means the test is not failing.
	Age    int
	Status TestStatus
}

// BuildResultSet is the ordered set of test outcomes of a single build.
// A nil outcome stands for an entry the CI server listed without data.
type BuildResultSet struct {
	names    []string
	outcomes map[string]*TestOutcome
}

// NewBuildResultSet creates a result set holding outcomes in the given order.
func NewBuildResultSet(outcomes ...*TestOutcome) *BuildResultSet {
	r := &BuildResultSet{outcomes: make(map[string]*TestOutcome, len(outcomes))}
	for _, outcome := range outcomes {
		if outcome == nil {
			continue
		}
		r.Set(outcome.Name, outcome)
	}
	return r
}

// Set records the outcome for name. Setting a name twice replaces the outcome but keeps
// the position of the first insertion.
func (r *BuildResultSet) Set(name string, outcome *TestOutcome) {
	if r.outcomes == nil {
		r.outcomes = map[string]*TestOutcome{}
	}
	if _, ok := r.outcomes[name]; !ok {
		r.names = append(r.names, name)
	}
	r.outcomes[name] = outcome
}

// Merge records outcome for name like Set, except that a name seen before keeps the
// outcome that reports a failure. A test run more than once in a build, in retries or in
// matrix children, fails the build if any of its runs failed.
func (r *BuildResultSet) Merge(name string, outcome *TestOutcome) {
	if existing, ok := r.outcomes[name]; ok && !outranks(outcome, existing) {
		return
	}
	r.Set(name, outcome)
}

// outranks orders outcomes by how much failure they report: failing beats failing but skipped,
// which beats passing, which beats no data. Within a rank the older failure wins.
func outranks(outcome, existing *TestOutcome) bool {
	if rank, existingRank := failureRank(outcome), failureRank(existing); rank != existingRank {
		return rank > existingRank
	}
	return outcome != nil && existing != nil && outcome.Age > existing.Age
}

func failureRank(outcome *TestOutcome) int {
	switch {
	case outcome == nil:
		return -1
	case outcome.Age > 0 && outcome.Status != TestStatusSkipped:
		return 2
	case outcome.Age > 0:
		return 1
	default:
		return 0
	}
}

// Get returns the outcome for name and whether name is part of the result set at all.
func (r *BuildResultSet) Get(name string) (*TestOutcome, bool) {
	if r == nil {
		return nil, false
	}
	outcome, ok := r.outcomes[name]
	return outcome, ok
}

// Names returns the test names in insertion order.
func (r *BuildResultSet) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.names...)
}

func (r *BuildResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}
