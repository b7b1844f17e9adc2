package flakeaggregatorlib

import (
	"fmt"
	"strconv"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"sigs.k8s.io/yaml"
)

const (
	jobNamesFlag = "job-names"
	buildsFlag   = "builds"
	configFlag   = "config"
)

// Config holds the settings that can be kept in a file instead of being passed as flags.
// Flags given on the command line win over the file.
type Config struct {
	JobNames            []string `json:"job_names,omitempty"`
	Builds              *int     `json:"builds,omitempty"`
	IncludeSkippedTests *bool    `json:"include_skipped_tests,omitempty"`
	SkipMissingResults  *bool    `json:"skip_missing_results,omitempty"`
	JenkinsURL          string   `json:"jenkins_url,omitempty"`
	Output              string   `json:"output,omitempty"`
	SlackChannel        string   `json:"slack_channel,omitempty"`
}

func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	config := &Config{}
	if err := yaml.UnmarshalStrict(raw, config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
	}
	return config, nil
}

// ApplyTo sets every configured value on flags that exist in flags and were not changed
// on the command line.
func (c *Config) ApplyTo(flags *pflag.FlagSet) error {
	values := map[string][]string{}
	if len(c.JobNames) > 0 {
		values[jobNamesFlag] = c.JobNames
	}
	if c.Builds != nil {
		values[buildsFlag] = []string{strconv.Itoa(*c.Builds)}
	}
	if c.IncludeSkippedTests != nil {
		values[includeSkippedTestsFlag] = []string{strconv.FormatBool(*c.IncludeSkippedTests)}
	}
	if c.SkipMissingResults != nil {
		values[skipMissingResultsFlag] = []string{strconv.FormatBool(*c.SkipMissingResults)}
	}
	if len(c.JenkinsURL) > 0 && !flags.Changed(junitDirFlag) {
		values[jenkinsURLFlag] = []string{c.JenkinsURL}
	}
	if len(c.Output) > 0 {
		values[outputFlag] = []string{c.Output}
	}
	if len(c.SlackChannel) > 0 {
		values[slackChannelFlag] = []string{c.SlackChannel}
	}

	for name, flagValues := range values {
		flag := flags.Lookup(name)
		if flag == nil || flag.Changed {
			continue
		}
		for _, value := range flagValues {
			if err := flags.Set(name, value); err != nil {
				return fmt.Errorf("invalid value %q for %s in config: %w", value, name, err)
			}
		}
	}
	return nil
}

// ConfigFlags bind --config.
type ConfigFlags struct {
	Path string
}

func (f *ConfigFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.Path, configFlag, f.Path, "Optional YAML file with default settings. Flags given on the command line take precedence.")
}

// Apply loads the config file, if any, into flags. It must run after flags are parsed and before they are validated.
func (f *ConfigFlags) Apply(fs afero.Fs, flags *pflag.FlagSet) error {
	if len(f.Path) == 0 {
		return nil
	}
	config, err := LoadConfig(fs, f.Path)
	if err != nil {
		return err
	}
	return config.ApplyTo(flags)
}
