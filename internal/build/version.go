package build

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// AppMajor is the major version number of this build.
	AppMajor uint = 0

	// AppMinor is the minor version number of this build.
	AppMinor uint = 1

	// AppPatch is the patch version number of this build.
	AppPatch uint = 0

	// AppPreRelease, if non-empty, identifies this build as a
	// pre-release (e.g. "beta", "rc1"), set via -ldflags at release time.
	AppPreRelease = "beta"

	// Commit is the full VCS commit hash this binary was built from, set
	// via -ldflags at release time. Falls back to CommitHash, read from
	// the embedded VCS build info, when unset.
	Commit string

	// CommitHash is the VCS commit hash embedded by the Go toolchain at
	// build time, used as a fallback when Commit was not set via
	// -ldflags.
	CommitHash string

	// RawTags is the comma-separated list of build tags this binary was
	// compiled with, set via -ldflags at release time.
	RawTags string
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			CommitHash = setting.Value
			break
		}
	}
}

// Version returns the application version as a properly formed string per
// the semantic versioning 2.0.0 spec (http://semver.org/).
func Version() string {
	version := fmt.Sprintf("%d.%d.%d", AppMajor, AppMinor, AppPatch)
	if AppPreRelease != "" {
		version = fmt.Sprintf("%s-%s", version, AppPreRelease)
	}
	return version
}

// GoVersion is the version of Go used to build this binary.
var GoVersion = runtime.Version()

// Tags returns the list of build tags this binary was compiled with.
func Tags() []string {
	if RawTags == "" {
		return nil
	}

	var tags []string
	tag := ""
	for _, r := range RawTags {
		if r == ',' {
			tags = append(tags, tag)
			tag = ""
			continue
		}
		tag += string(r)
	}
	if tag != "" {
		tags = append(tags, tag)
	}
	return tags
}
