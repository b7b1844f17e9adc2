package flakeaggregatorlib

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"sigs.k8s.io/prow/pkg/config/secret"

	"github.com/openshift/ci-flake-aggregator/pkg/flakeaggregator/flakeaggregatorapi"
	"github.com/openshift/ci-flake-aggregator/pkg/jenkins"
	"github.com/openshift/ci-flake-aggregator/pkg/junitdir"
)

const (
	DefaultJenkinsURL     = "http://ci.ros2.org"
	defaultJenkinsTimeout = 30 * time.Second

	jenkinsURLFlag = "jenkins-url"
	junitDirFlag   = "junit-dir"
)

// CIClientFlags select where build results are read from: a Jenkins server or a
// directory of JUnit reports laid out as <root>/<job>/<build>/*.xml.
type CIClientFlags struct {
	JenkinsURL       string
	JenkinsUser      string
	JenkinsTokenPath string
	JenkinsTimeout   time.Duration

	JUnitDir string
}

func NewCIClientFlags() *CIClientFlags {
	return &CIClientFlags{
		JenkinsTimeout: defaultJenkinsTimeout,
	}
}

func (f *CIClientFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.JenkinsURL, jenkinsURLFlag, f.JenkinsURL, fmt.Sprintf("Base URL of the Jenkins server. Defaults to %s when --%s is not set.", DefaultJenkinsURL, junitDirFlag))
	fs.StringVar(&f.JenkinsUser, "jenkins-user", f.JenkinsUser, "User for basic authentication against Jenkins.")
	fs.StringVar(&f.JenkinsTokenPath, "jenkins-token-path", f.JenkinsTokenPath, "Path to the file containing the Jenkins API token of --jenkins-user.")
	fs.DurationVar(&f.JenkinsTimeout, "jenkins-timeout", f.JenkinsTimeout, "Timeout of a single request to Jenkins.")
	fs.StringVar(&f.JUnitDir, junitDirFlag, f.JUnitDir, fmt.Sprintf("Read results from JUnit reports under this directory instead of Jenkins. Mutually exclusive with --%s.", jenkinsURLFlag))
}

func (f *CIClientFlags) Validate() error {
	var errs []error
	if len(f.JenkinsURL) > 0 && len(f.JUnitDir) > 0 {
		errs = append(errs, fmt.Errorf("--%s and --%s are mutually exclusive", jenkinsURLFlag, junitDirFlag))
	}
	if len(f.JenkinsTokenPath) > 0 && len(f.JenkinsUser) == 0 {
		errs = append(errs, fmt.Errorf("--jenkins-token-path requires --jenkins-user"))
	}
	if f.JenkinsTimeout <= 0 {
		errs = append(errs, fmt.Errorf("--jenkins-timeout must be positive, got %s", f.JenkinsTimeout))
	}
	return utilerrors.NewAggregate(errs)
}

func (f *CIClientFlags) jenkinsURL() string {
	if len(f.JenkinsURL) == 0 {
		return DefaultJenkinsURL
	}
	return f.JenkinsURL
}

// NewCIClient builds the client selected by the flags.
func (f *CIClientFlags) NewCIClient(logger logrus.FieldLogger) (flakeaggregatorapi.CIClient, error) {
	if len(f.JUnitDir) > 0 {
		return junitdir.NewClient(afero.NewOsFs(), f.JUnitDir, logger), nil
	}

	var token func() []byte
	if len(f.JenkinsTokenPath) > 0 {
		if err := secret.Add(f.JenkinsTokenPath); err != nil {
			return nil, fmt.Errorf("failed to start secrets agent: %w", err)
		}
		token = secret.GetTokenGenerator(f.JenkinsTokenPath)
	}
	return jenkins.NewClient(jenkins.Options{
		BaseURL: f.jenkinsURL(),
		User:    f.JenkinsUser,
		Token:   token,
		Timeout: f.JenkinsTimeout,
	}, logger)
}
