package jenkins

import "github.com/openshift/ci-flake-aggregator/pkg/flakeaggregator/flakeaggregatorapi"

// The types below are the subset of the Jenkins remote access API the client reads.
// See https://www.jenkins.io/doc/book/using/remote-access-api/

type jobList struct {
	Jobs []jobReference `json:"jobs"`
}

type jobReference struct {
	Name string `json:"name"`
}

type jobInfo struct {
	Name string `json:"name"`
	// LastBuild is null for a job that never ran.
	LastBuild *buildReference `json:"lastBuild"`
}

type buildReference struct {
	Number int `json:"number"`
}

type buildInfo struct {
	Number  int           `json:"number"`
	Result  string        `json:"result"`
	Actions []buildAction `json:"actions"`
}

// buildAction is empty for every action other than the test result action.
type buildAction struct {
	TotalCount *int `json:"totalCount,omitempty"`
}

func (b *buildInfo) hasTestResults() bool {
	for _, action := range b.Actions {
		if action.TotalCount != nil {
			return true
		}
	}
	return false
}

// testReport is either a plain report with suites, or the report of a matrix build
// that aggregates the reports of its children.
type testReport struct {
	Suites       []testSuite   `json:"suites"`
	ChildReports []childReport `json:"childReports"`
}

type childReport struct {
	Result *testReport `json:"result"`
}

type testSuite struct {
	Name  string      `json:"name"`
	Cases []*testCase `json:"cases"`
}

type testCase struct {
	ClassName string `json:"className"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Status    string `json:"status"`
}

// Identifier is the name the aggregation knows a test case by.
func (c *testCase) Identifier() string {
	if len(c.ClassName) == 0 {
		return c.Name
	}
	return c.ClassName + "." + c.Name
}

func (c *testCase) toOutcome() *flakeaggregatorapi.TestOutcome {
	return &flakeaggregatorapi.TestOutcome{
		Name:   c.Identifier(),
		Age:    c.Age,
		Status: flakeaggregatorapi.TestStatus(c.Status),
	}
}

// addTo flattens the report, including the reports of matrix children, into resultSet.
// A case reported by several children keeps its failing outcome.
func (r *testReport) addTo(resultSet *flakeaggregatorapi.BuildResultSet) {
	if r == nil {
		return
	}
	for _, suite := range r.Suites {
		for _, testCase := range suite.Cases {
			if testCase == nil {
				continue
			}
			resultSet.Merge(testCase.Identifier(), testCase.toOutcome())
		}
	}
	for _, child := range r.ChildReports {
		child.Result.addTo(resultSet)
	}
}
