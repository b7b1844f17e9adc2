package flakeaggregatorlib

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
)

type pushGateway struct {
	lock     sync.Mutex
	requests []string
	bodies   []string
}

func (g *pushGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	g.lock.Lock()
	defer g.lock.Unlock()
	g.requests = append(g.requests, r.Method+" "+r.URL.Path)
	g.bodies = append(g.bodies, string(body))
	w.WriteHeader(http.StatusOK)
}

func TestReportFlagsValidate(t *testing.T) {
	testCases := []struct {
		name    string
		flags   ReportFlags
		wantErr bool
	}{
		{name: "defaults", flags: *NewReportFlags()},
		{name: "yaml", flags: ReportFlags{Output: "yaml"}},
		{name: "unknown output", flags: ReportFlags{Output: "table"}, wantErr: true},
		{name: "channel without token", flags: ReportFlags{Output: "json", SlackChannel: "C0123"}, wantErr: true},
		{name: "channel with token", flags: ReportFlags{Output: "json", SlackChannel: "C0123", SlackTokenPath: "/etc/slack/token"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.flags.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("expected error: %t, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestReportFailures(t *testing.T) {
	gateway := &pushGateway{}
	server := httptest.NewServer(gateway)
	defer server.Close()

	report, err := NewFailureReport(testCrossJobAggregate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := &bytes.Buffer{}
	slackClient := &fakeSlackClient{}
	reporter := &Reporter{
		out:          out,
		format:       OutputFormatChecklist,
		slackClient:  slackClient,
		slackChannel: "C0123",
		metrics:      NewMetrics(),
		pushGateway:  server.URL,
		pushJob:      "flake-aggregator-list-failures",
	}
	reporter.Metrics().recordBuild("nightly_linux_repeated", 3)

	if err := reporter.ReportFailures(context.Background(), logrus.New(), report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != report.Checklist() {
		t.Errorf("expected the checklist to be written, got %q", out.String())
	}
	if len(slackClient.channels) != 1 {
		t.Errorf("expected one slack message, got %d", len(slackClient.channels))
	}
	if len(gateway.requests) != 1 || gateway.requests[0] != "PUT /metrics/job/flake-aggregator-list-failures" {
		t.Fatalf("unexpected push requests: %v", gateway.requests)
	}
	if !strings.Contains(gateway.bodies[0], "flake_aggregator_test_failures_total") {
		t.Error("expected the pushed metrics to contain the failure counter")
	}
}

func TestReportBuildDiffWithoutSinks(t *testing.T) {
	out := &bytes.Buffer{}
	reporter := &Reporter{out: out, format: OutputFormatJSON, metrics: NewMetrics()}
	report := NewBuildDiffReport("ci_linux", 7311, Baseline{JobName: "nightly_linux_repeated", Window: 25}, FailureDiff{}, nil)
	if err := reporter.ReportBuildDiff(context.Background(), logrus.New(), report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), `"job_name": "ci_linux"`) {
		t.Errorf("expected a json report, got %s", out.String())
	}
}

func TestReportFailuresCollectsSinkErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	report, err := NewFailureReport(testCrossJobAggregate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reporter := &Reporter{
		out:          io.Discard,
		format:       OutputFormatYAML,
		slackClient:  &fakeSlackClient{err: io.ErrUnexpectedEOF},
		slackChannel: "C0123",
		metrics:      NewMetrics(),
		pushGateway:  server.URL,
		pushJob:      "flake-aggregator-list-failures",
	}
	err = reporter.ReportFailures(context.Background(), logrus.New(), report)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "failed to post report") || !strings.Contains(err.Error(), "failed to push metrics") {
		t.Errorf("expected both sink errors, got %v", err)
	}
}

func TestNilMetrics(t *testing.T) {
	var metrics *Metrics
	metrics.recordBuild("nightly_linux_repeated", 1)
	metrics.recordBuildWithoutResults("nightly_linux_repeated")
	metrics.recordSkippedJob()
	if err := metrics.Push(context.Background(), "http://127.0.0.1:0", "job"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
