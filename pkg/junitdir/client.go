// Package junitdir serves build results from JUnit reports kept on disk, laid out as
// <root>/<job>/<build number>/**/*.xml, optionally gzipped.
package junitdir

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/openshift/ci-flake-aggregator/pkg/flakeaggregator/flakeaggregatorapi"
	"github.com/openshift/ci-flake-aggregator/pkg/junit"
	"github.com/openshift/ci-flake-aggregator/pkg/util/gzip"
)

var reportSuffixes = []string{".xml", ".xml.gz"}

type Client struct {
	fs     afero.Fs
	root   string
	logger logrus.FieldLogger
}

var _ flakeaggregatorapi.CIClient = &Client{}

func NewClient(fs afero.Fs, root string, logger logrus.FieldLogger) *Client {
	return &Client{
		fs:     fs,
		root:   root,
		logger: logger.WithField("junit-dir", root),
	}
}

func (c *Client) ListJobs(context.Context) ([]string, error) {
	entries, err := afero.ReadDir(c.fs, c.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs in %s: %w", c.root, err)
	}
	var jobs []string
	for _, entry := range entries {
		if entry.IsDir() {
			jobs = append(jobs, entry.Name())
		}
	}
	return jobs, nil
}

func (c *Client) GetJob(_ context.Context, name string) (flakeaggregatorapi.JobHandle, error) {
	jobDir := filepath.Join(c.root, name)
	entries, err := afero.ReadDir(c.fs, jobDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || isNotDir(c.fs, jobDir) {
			return nil, &flakeaggregatorapi.UnknownJobError{JobName: name}
		}
		return nil, fmt.Errorf("failed to list builds of job %s: %w", name, err)
	}

	j := &job{client: c, name: name, dir: jobDir}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		number, err := strconv.Atoi(entry.Name())
		if err != nil || number <= 0 {
			c.logger.WithField("job", name).Debugf("Ignoring directory %s, it is not a build number", entry.Name())
			continue
		}
		j.lastBuildNumber = max(j.lastBuildNumber, number)
	}
	return j, nil
}

func isNotDir(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && !info.IsDir()
}

type job struct {
	client          *Client
	name            string
	dir             string
	lastBuildNumber int
}

func (j *job) GetJobName() string {
	return j.name
}

func (j *job) GetLastBuildNumber(context.Context) (int, error) {
	return j.lastBuildNumber, nil
}

func (j *job) GetBuild(_ context.Context, number int) (flakeaggregatorapi.BuildHandle, error) {
	buildDir := filepath.Join(j.dir, strconv.Itoa(number))
	info, err := j.client.fs.Stat(buildDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &flakeaggregatorapi.BuildNotFoundError{JobName: j.name, BuildNumber: number}
		}
		return nil, fmt.Errorf("failed to stat build %d of job %s: %w", number, j.name, err)
	}
	if !info.IsDir() {
		return nil, &flakeaggregatorapi.BuildNotFoundError{JobName: j.name, BuildNumber: number}
	}

	var reports []string
	if err := afero.Walk(j.client.fs, buildDir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && isReport(path) {
			reports = append(reports, path)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to find reports of build %d of job %s: %w", number, j.name, err)
	}
	sort.Strings(reports)

	return &build{job: j, number: number, reports: reports}, nil
}

func isReport(path string) bool {
	for _, suffix := range reportSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

type build struct {
	job     *job
	number  int
	reports []string
}

func (b *build) GetBuildNumber() int {
	return b.number
}

func (b *build) HasResultSet() bool {
	return len(b.reports) > 0
}

// GetResultSet merges all reports of the build. A test reported twice keeps its last outcome.
func (b *build) GetResultSet(context.Context) (*flakeaggregatorapi.BuildResultSet, error) {
	resultSet := flakeaggregatorapi.NewBuildResultSet()
	for _, path := range b.reports {
		raw, err := gzip.ReadFileMaybeGZIP(b.job.client.fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		suites, err := junit.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		suites.AddTo(resultSet)
	}
	return resultSet, nil
}
