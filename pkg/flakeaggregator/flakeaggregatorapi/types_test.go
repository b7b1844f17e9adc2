package flakeaggregatorapi

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildResultSetOrder(t *testing.T) {
	resultSet := NewBuildResultSet(
		&TestOutcome{Name: "b.test_two", Status: TestStatusPassed},
		nil,
		&TestOutcome{Name: "a.test_one", Age: 2, Status: TestStatusFailed},
	)
	resultSet.Set("c.test_missing", nil)
	resultSet.Set("b.test_two", &TestOutcome{Name: "b.test_two", Age: 1, Status: TestStatusRegression})

	if diff := cmp.Diff([]string{"b.test_two", "a.test_one", "c.test_missing"}, resultSet.Names()); diff != "" {
		t.Errorf("unexpected names:\n%s", diff)
	}
	if resultSet.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", resultSet.Len())
	}

	outcome, ok := resultSet.Get("b.test_two")
	if !ok || outcome.Status != TestStatusRegression {
		t.Errorf("expected replaced outcome, got %#v (present: %t)", outcome, ok)
	}
	outcome, ok = resultSet.Get("c.test_missing")
	if !ok || outcome != nil {
		t.Errorf("expected present nil outcome, got %#v (present: %t)", outcome, ok)
	}
	if _, ok := resultSet.Get("unknown"); ok {
		t.Error("expected unknown test to be absent")
	}
}

func TestBuildResultSetMerge(t *testing.T) {
	testCases := []struct {
		name     string
		outcomes []*TestOutcome
		expected *TestOutcome
	}{
		{
			name: "failing run followed by a passing run",
			outcomes: []*TestOutcome{
				{Name: "rclpy.TestTimer.test_cancel", Age: 1, Status: TestStatusFailed},
				{Name: "rclpy.TestTimer.test_cancel", Status: TestStatusPassed},
			},
			expected: &TestOutcome{Name: "rclpy.TestTimer.test_cancel", Age: 1, Status: TestStatusFailed},
		},
		{
			name: "passing run followed by a failing run",
			outcomes: []*TestOutcome{
				{Name: "rclpy.TestTimer.test_cancel", Status: TestStatusPassed},
				{Name: "rclpy.TestTimer.test_cancel", Age: 1, Status: TestStatusRegression},
			},
			expected: &TestOutcome{Name: "rclpy.TestTimer.test_cancel", Age: 1, Status: TestStatusRegression},
		},
		{
			name: "failure beats a skipped test with a failure age",
			outcomes: []*TestOutcome{
				{Name: "rclpy.TestTimer.test_cancel", Age: 4, Status: TestStatusSkipped},
				{Name: "rclpy.TestTimer.test_cancel", Age: 1, Status: TestStatusFailed},
			},
			expected: &TestOutcome{Name: "rclpy.TestTimer.test_cancel", Age: 1, Status: TestStatusFailed},
		},
		{
			name: "older failure wins",
			outcomes: []*TestOutcome{
				{Name: "rclpy.TestTimer.test_cancel", Age: 1, Status: TestStatusFailed},
				{Name: "rclpy.TestTimer.test_cancel", Age: 3, Status: TestStatusFailed},
				{Name: "rclpy.TestTimer.test_cancel", Age: 2, Status: TestStatusFailed},
			},
			expected: &TestOutcome{Name: "rclpy.TestTimer.test_cancel", Age: 3, Status: TestStatusFailed},
		},
		{
			name: "outcome beats no data",
			outcomes: []*TestOutcome{
				nil,
				{Name: "rclpy.TestTimer.test_cancel", Status: TestStatusPassed},
				nil,
			},
			expected: &TestOutcome{Name: "rclpy.TestTimer.test_cancel", Status: TestStatusPassed},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resultSet := NewBuildResultSet()
			resultSet.Set("rcl.test_init.test_ok", &TestOutcome{Name: "rcl.test_init.test_ok", Status: TestStatusPassed})
			for _, outcome := range tc.outcomes {
				resultSet.Merge("rclpy.TestTimer.test_cancel", outcome)
			}
			if diff := cmp.Diff([]string{"rcl.test_init.test_ok", "rclpy.TestTimer.test_cancel"}, resultSet.Names()); diff != "" {
				t.Errorf("unexpected names:\n%s", diff)
			}
			actual, _ := resultSet.Get("rclpy.TestTimer.test_cancel")
			if diff := cmp.Diff(tc.expected, actual); diff != "" {
				t.Errorf("unexpected outcome:\n%s", diff)
			}
		})
	}
}

func TestNilBuildResultSet(t *testing.T) {
	var resultSet *BuildResultSet
	if resultSet.Len() != 0 {
		t.Errorf("expected empty nil result set")
	}
	if names := resultSet.Names(); names != nil {
		t.Errorf("expected no names, got %v", names)
	}
	if _, ok := resultSet.Get("a"); ok {
		t.Error("expected nothing in a nil result set")
	}
}

func TestFailureIndex(t *testing.T) {
	byBuild := FailureIndex[int]{}
	byBuild.Add("T1", 1)
	byBuild.Add("T1", 3)
	byBuild.Add("A", 3)

	if diff := cmp.Diff(FailureIndex[int]{"T1": {1, 3}, "A": {3}}, byBuild); diff != "" {
		t.Errorf("unexpected index:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A", "T1"}, byBuild.TestNames()); diff != "" {
		t.Errorf("unexpected test names:\n%s", diff)
	}

	builds, ok := byBuild.Get("T1")
	if !ok {
		t.Fatal("expected T1 to be indexed")
	}
	builds[0] = 42
	if byBuild["T1"][0] != 1 {
		t.Error("Get must not expose the index storage")
	}
	if _, ok := byBuild.Get("B"); ok {
		t.Error("expected B not to be indexed")
	}

	byJob := FailureIndex[string]{}
	for _, job := range []string{"job_x", "job_y", "job_x"} {
		byJob.AddUnique("T2", job)
	}
	if diff := cmp.Diff(FailureIndex[string]{"T2": {"job_x", "job_y"}}, byJob); diff != "" {
		t.Errorf("unexpected index:\n%s", diff)
	}
	if !byJob.TestNameSet().Has("T2") {
		t.Error("expected T2 in the name set")
	}
}

func TestErrors(t *testing.T) {
	unknown := fmt.Errorf("failed to resolve: %w", &UnknownJobError{JobName: "nightly_osx_repeated"})
	if !IsUnknownJob(unknown) {
		t.Errorf("expected %v to be an unknown job error", unknown)
	}
	if IsBuildNotFound(unknown) {
		t.Errorf("did not expect %v to be a build not found error", unknown)
	}
	if unknown.Error() != `failed to resolve: unknown job "nightly_osx_repeated"` {
		t.Errorf("unexpected message %q", unknown.Error())
	}

	notFound := fmt.Errorf("failed: %w", &BuildNotFoundError{JobName: "nightly_osx_repeated", BuildNumber: 7})
	if !IsBuildNotFound(notFound) {
		t.Errorf("expected %v to be a build not found error", notFound)
	}
	if IsUnknownJob(notFound) {
		t.Errorf("did not expect %v to be an unknown job error", notFound)
	}
}
