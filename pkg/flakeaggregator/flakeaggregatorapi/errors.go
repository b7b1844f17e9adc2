package flakeaggregatorapi

import (
	"errors"
	"fmt"
)

// UnknownJobError is returned when a CI server has no job of the given name.
type UnknownJobError struct {
	JobName string
}

func (e *UnknownJobError) Error() string {
	return fmt.Sprintf("unknown job %q", e.JobName)
}

// BuildNotFoundError is returned when a job has no build with the given number,
// typically because it was discarded by the server's retention policy.
type BuildNotFoundError struct {
	JobName     string
	BuildNumber int
}

func (e *BuildNotFoundError) Error() string {
	return fmt.Sprintf("build %d of job %q not found", e.BuildNumber, e.JobName)
}

func IsUnknownJob(err error) bool {
	var target *UnknownJobError
	return errors.As(err, &target)
}

func IsBuildNotFound(err error) bool {
	var target *BuildNotFoundError
	return errors.As(err, &target)
}
