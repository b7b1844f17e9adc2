package flakeaggregatorlib

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Platform is an operating system the nightly repeated jobs run on.
type Platform string

const (
	PlatformLinux        Platform = "linux"
	PlatformLinuxAarch64 Platform = "linux-aarch64"
	PlatformOSX          Platform = "osx"
	PlatformWindows      Platform = "windows"
)

var knownPlatforms = sets.New(PlatformLinux, PlatformLinuxAarch64, PlatformOSX, PlatformWindows)

func ParsePlatform(value string) (Platform, error) {
	platform := Platform(value)
	if !knownPlatforms.Has(platform) {
		return "", fmt.Errorf("unknown platform %s, valid values are: %+q", value, sets.List(knownPlatforms))
	}
	return platform, nil
}

// NightlyRepeatedJobName returns the name of the nightly job that repeats the test suite on platform.
func NightlyRepeatedJobName(platform Platform) (string, error) {
	switch platform {
	case PlatformWindows:
		return "nightly_win_rep", nil
	case PlatformLinux, PlatformLinuxAarch64, PlatformOSX:
		return fmt.Sprintf("nightly_%s_repeated", platform), nil
	default:
		return "", fmt.Errorf("no nightly repeated job for platform %q", platform)
	}
}
