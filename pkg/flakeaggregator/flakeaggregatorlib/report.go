package flakeaggregatorlib

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
	"sigs.k8s.io/yaml"
)

type OutputFormat string

const (
	OutputFormatChecklist OutputFormat = "checklist"
	OutputFormatJSON      OutputFormat = "json"
	OutputFormatYAML      OutputFormat = "yaml"
)

var knownOutputFormats = sets.New(OutputFormatChecklist, OutputFormatJSON, OutputFormatYAML)

func ParseOutputFormat(value string) (OutputFormat, error) {
	format := OutputFormat(value)
	if !knownOutputFormats.Has(format) {
		return "", fmt.Errorf("unknown output format %s, valid values are: %+q", value, sets.List(knownOutputFormats))
	}
	return format, nil
}

// checklister is a report that renders as a markdown checklist.
type checklister interface {
	Checklist() string
}

func writeReport(w io.Writer, report checklister, format OutputFormat) error {
	var raw []byte
	switch format {
	case OutputFormatChecklist:
		raw = []byte(report.Checklist())
	case OutputFormatJSON:
		serialized, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		raw = append(serialized, '\n')
	case OutputFormatYAML:
		serialized, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		raw = serialized
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

type FailureReportEntry struct {
	TestName string   `json:"test_name"`
	Jobs     []string `json:"jobs"`
}

type JobReport struct {
	JobName          string              `json:"job_name"`
	LastBuildNumber  int                 `json:"last_build_number"`
	FailingTests     int                 `json:"failing_tests"`
	FailuresPerBuild BuildFailureSummary `json:"failures_per_build"`
}

// FailureReport lists every test that failed at least once across a set of jobs.
type FailureReport struct {
	Failures    []FailureReportEntry `json:"failures"`
	Total       int                  `json:"total"`
	Jobs        []JobReport          `json:"jobs,omitempty"`
	SkippedJobs []string             `json:"skipped_jobs,omitempty"`
}

// NewFailureReport builds the report for aggregate, sorted by test name.
func NewFailureReport(aggregate *CrossJobAggregate) (*FailureReport, error) {
	report := &FailureReport{
		Failures:    []FailureReportEntry{},
		SkippedJobs: aggregate.SkippedJobs,
	}
	for _, testName := range aggregate.FailingJobs.TestNames() {
		jobs, _ := aggregate.FailingJobs.Get(testName)
		report.Failures = append(report.Failures, FailureReportEntry{TestName: testName, Jobs: jobs})
	}
	report.Total = len(report.Failures)

	for _, job := range aggregate.Jobs {
		summary, err := SummarizeBuildFailures(job.FailureCounts())
		if err != nil {
			return nil, fmt.Errorf("failed to summarize failures of job %s: %w", job.JobName, err)
		}
		report.Jobs = append(report.Jobs, JobReport{
			JobName:          job.JobName,
			LastBuildNumber:  job.LastBuildNumber,
			FailingTests:     len(job.Failures),
			FailuresPerBuild: summary,
		})
	}
	return report, nil
}

func (r *FailureReport) Checklist() string {
	builder := &strings.Builder{}
	for _, entry := range r.Failures {
		fmt.Fprintf(builder, "- [ ] %s, %v\n", entry.TestName, entry.Jobs)
	}
	fmt.Fprintf(builder, "Total failing tests: %d\n", r.Total)
	return builder.String()
}

func WriteFailureReport(w io.Writer, report *FailureReport, format OutputFormat) error {
	return writeReport(w, report, format)
}

type ExistingFailure struct {
	TestName       string `json:"test_name"`
	FailedInBuilds []int  `json:"failed_in_builds"`
}

// BuildDiffReport separates the failures of one build into new and known flaky ones.
type BuildDiffReport struct {
	JobName           string            `json:"job_name"`
	BuildNumber       int               `json:"build_number"`
	BaselineJobName   string            `json:"baseline_job_name"`
	BaselineLastBuild int               `json:"baseline_last_build"`
	BaselineBuilds    int               `json:"baseline_builds"`
	New               []string          `json:"new"`
	Existing          []ExistingFailure `json:"existing"`
	Lookups           []TestLookup      `json:"lookups,omitempty"`
}

// NewBuildDiffReport builds the report of diff for build buildNumber of jobName against baseline.
// Every test in lookups is looked up in the baseline occurrences.
func NewBuildDiffReport(jobName string, buildNumber int, baseline Baseline, diff FailureDiff, lookups []string) *BuildDiffReport {
	report := &BuildDiffReport{
		JobName:           jobName,
		BuildNumber:       buildNumber,
		BaselineJobName:   baseline.JobName,
		BaselineLastBuild: baseline.LastBuildNumber,
		BaselineBuilds:    baseline.Window,
		New:               sets.List(diff.New),
		Existing:          []ExistingFailure{},
	}
	for _, testName := range sets.List(diff.Existing) {
		builds, _ := baseline.Occurrences.Get(testName)
		report.Existing = append(report.Existing, ExistingFailure{TestName: testName, FailedInBuilds: builds})
	}
	for _, testName := range lookups {
		report.Lookups = append(report.Lookups, LookupTest(baseline.Occurrences, testName))
	}
	return report
}

func (r *BuildDiffReport) Checklist() string {
	builder := &strings.Builder{}
	fmt.Fprintf(builder, "New test failures for build %d of job %s:\n", r.BuildNumber, r.JobName)
	for _, testName := range r.New {
		fmt.Fprintf(builder, "- [ ] %s\n", testName)
	}
	fmt.Fprintf(builder, "Known flaky test failures (seen in the last %d builds of job %s):\n", r.BaselineBuilds, r.BaselineJobName)
	for _, failure := range r.Existing {
		fmt.Fprintf(builder, "- [ ] %s, %v\n", failure.TestName, failure.FailedInBuilds)
	}
	fmt.Fprintf(builder, "Total: %d new, %d existing\n", len(r.New), len(r.Existing))
	for _, lookup := range r.Lookups {
		fmt.Fprintf(builder, "%s: %s\n", lookup.TestName, lookup)
	}
	return builder.String()
}

func WriteBuildDiffReport(w io.Writer, report *BuildDiffReport, format OutputFormat) error {
	return writeReport(w, report, format)
}
