package junit

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/openshift/ci-flake-aggregator/pkg/flakeaggregator/flakeaggregatorapi"
)

// Parse reads a report whose root element is either <testsuites> or a single <testsuite>.
func Parse(data []byte) (*TestSuites, error) {
	root, err := rootElement(data)
	if err != nil {
		return nil, err
	}
	switch root {
	case "testsuites":
		suites := &TestSuites{}
		if err := xml.Unmarshal(data, suites); err != nil {
			return nil, fmt.Errorf("failed to unmarshal testsuites: %w", err)
		}
		return suites, nil
	case "testsuite":
		suite := &TestSuite{}
		if err := xml.Unmarshal(data, suite); err != nil {
			return nil, fmt.Errorf("failed to unmarshal testsuite: %w", err)
		}
		return &TestSuites{Suites: []*TestSuite{suite}}, nil
	default:
		return nil, fmt.Errorf("unexpected root element <%s>, expected <testsuites> or <testsuite>", root)
	}
}

func rootElement(data []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err != nil {
			return "", fmt.Errorf("failed to find the root element: %w", err)
		}
		if start, ok := token.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

// Identifier is the name the aggregation knows a test case by.
func (c *TestCase) Identifier() string {
	if len(c.Classname) == 0 {
		return c.Name
	}
	return c.Classname + "." + c.Name
}

// Outcome maps the test case onto a CI test outcome. A report carries no history, so a
// failing test counts as failing for one build.
func (c *TestCase) Outcome() *flakeaggregatorapi.TestOutcome {
	outcome := &flakeaggregatorapi.TestOutcome{Name: c.Identifier(), Status: flakeaggregatorapi.TestStatusPassed}
	switch {
	case c.Failure != nil || c.Error != nil:
		outcome.Status = flakeaggregatorapi.TestStatusFailed
		outcome.Age = 1
	case c.Skipped != nil:
		outcome.Status = flakeaggregatorapi.TestStatusSkipped
	}
	return outcome
}

// AddTo records every test case of the suites, nested ones included, in resultSet.
// A test case reported more than once keeps its failing outcome.
func (s *TestSuites) AddTo(resultSet *flakeaggregatorapi.BuildResultSet) {
	for _, suite := range s.Suites {
		suite.addTo(resultSet)
	}
}

func (s *TestSuite) addTo(resultSet *flakeaggregatorapi.BuildResultSet) {
	if s == nil {
		return
	}
	for _, testCase := range s.TestCases {
		if testCase == nil {
			continue
		}
		resultSet.Merge(testCase.Identifier(), testCase.Outcome())
	}
	for _, child := range s.Children {
		child.addTo(resultSet)
	}
}
