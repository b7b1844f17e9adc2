package jenkins

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openshift/ci-flake-aggregator/pkg/flakeaggregator/flakeaggregatorapi"
)

const (
	jobListTree    = "jobs[name]"
	jobTree        = "name,lastBuild[number]"
	buildTree      = "number,result,actions[totalCount]"
	testCaseFields = "suites[name,cases[className,name,age,status]]"
)

var testReportTree = fmt.Sprintf("%s,childReports[result[%s]]", testCaseFields, testCaseFields)

type Options struct {
	BaseURL string
	// User and Token enable basic authentication. Token is called for every request.
	User    string
	Token   func() []byte
	Timeout time.Duration
}

// Client reads jobs, builds and test reports from the JSON API of a Jenkins server.
type Client struct {
	baseURL    string
	user       string
	token      func() []byte
	httpClient *http.Client
	logger     logrus.FieldLogger
}

var _ flakeaggregatorapi.CIClient = &Client{}

func NewClient(options Options, logger logrus.FieldLogger) (*Client, error) {
	baseURL := strings.TrimSuffix(options.BaseURL, "/")
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s as url: %w", options.BaseURL, err)
	}
	if len(parsedURL.Scheme) == 0 || len(parsedURL.Host) == 0 {
		return nil, fmt.Errorf("jenkins url %q must be absolute", options.BaseURL)
	}
	return &Client{
		baseURL:    baseURL,
		user:       options.User,
		token:      options.Token,
		httpClient: &http.Client{Timeout: options.Timeout},
		logger:     logger.WithField("jenkins", baseURL),
	}, nil
}

type statusError struct {
	url        string
	statusCode int
	body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("got unexpected http status code %d for url %s. Response body:\n%s", e.statusCode, e.url, e.body)
}

func isNotFound(err error) bool {
	var target *statusError
	return errors.As(err, &target) && target.statusCode == http.StatusNotFound
}

// jobPath turns a possibly foldered job name like a/b into job/a/job/b.
func jobPath(jobName string) string {
	var segments []string
	for _, segment := range strings.Split(jobName, "/") {
		segments = append(segments, "job", url.PathEscape(segment))
	}
	return strings.Join(segments, "/")
}

// apiURL is the api/json document below the already escaped path, restricted to tree.
func (c *Client) apiURL(path, tree string) string {
	segments := []string{c.baseURL}
	if len(path) > 0 {
		segments = append(segments, path)
	}
	segments = append(segments, "api/json")
	return strings.Join(segments, "/") + "?" + url.Values{"tree": []string{tree}}.Encode()
}

func (c *Client) getJSON(ctx context.Context, path, tree string, into interface{}) error {
	urlString := c.apiURL(path, tree)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlString, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", urlString, err)
	}
	if len(c.user) > 0 {
		var token []byte
		if c.token != nil {
			token = c.token()
		}
		req.SetBasicAuth(c.user, string(token))
	}

	c.logger.WithField("url", urlString).Debug("Requesting")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to GET %s: %w", urlString, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body for request to %s: %w", urlString, err)
	}
	if resp.StatusCode != http.StatusOK {
		return &statusError{url: urlString, statusCode: resp.StatusCode, body: string(body)}
	}
	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("failed to unmarshal response from %s: %w", urlString, err)
	}
	return nil
}

func (c *Client) ListJobs(ctx context.Context) ([]string, error) {
	jobs := &jobList{}
	if err := c.getJSON(ctx, "", jobListTree, jobs); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(jobs.Jobs))
	for _, job := range jobs.Jobs {
		names = append(names, job.Name)
	}
	return names, nil
}

func (c *Client) GetJob(ctx context.Context, name string) (flakeaggregatorapi.JobHandle, error) {
	info := &jobInfo{}
	if err := c.getJSON(ctx, jobPath(name), jobTree, info); err != nil {
		if isNotFound(err) {
			return nil, &flakeaggregatorapi.UnknownJobError{JobName: name}
		}
		return nil, err
	}
	handle := &job{client: c, name: name}
	if info.LastBuild != nil {
		handle.lastBuildNumber = info.LastBuild.Number
	}
	return handle, nil
}

type job struct {
	client          *Client
	name            string
	lastBuildNumber int
}

func (j *job) GetJobName() string {
	return j.name
}

// GetLastBuildNumber returns the number seen when the job was fetched, 0 if it never ran.
func (j *job) GetLastBuildNumber(context.Context) (int, error) {
	return j.lastBuildNumber, nil
}

func (j *job) buildPath(number int) string {
	return jobPath(j.name) + "/" + strconv.Itoa(number)
}

func (j *job) GetBuild(ctx context.Context, number int) (flakeaggregatorapi.BuildHandle, error) {
	info := &buildInfo{}
	if err := j.client.getJSON(ctx, j.buildPath(number), buildTree, info); err != nil {
		if isNotFound(err) {
			return nil, &flakeaggregatorapi.BuildNotFoundError{JobName: j.name, BuildNumber: number}
		}
		return nil, err
	}
	return &build{job: j, number: number, hasTestResults: info.hasTestResults()}, nil
}

type build struct {
	job            *job
	number         int
	hasTestResults bool
}

func (b *build) GetBuildNumber() int {
	return b.number
}

func (b *build) HasResultSet() bool {
	return b.hasTestResults
}

func (b *build) GetResultSet(ctx context.Context) (*flakeaggregatorapi.BuildResultSet, error) {
	report := &testReport{}
	if err := b.job.client.getJSON(ctx, b.job.buildPath(b.number)+"/testReport", testReportTree, report); err != nil {
		if isNotFound(err) {
			b.job.client.logger.WithFields(logrus.Fields{"job": b.job.name, "build": b.number}).Debug("Build has no test report")
			return flakeaggregatorapi.NewBuildResultSet(), nil
		}
		return nil, err
	}
	resultSet := flakeaggregatorapi.NewBuildResultSet()
	report.addTo(resultSet)
	return resultSet, nil
}
