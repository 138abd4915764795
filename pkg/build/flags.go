// SPDX-License-Identifier: MIT
//
// Package build holds version metadata injected at link time, for example:
//
//	go build -ldflags "-X soundsystem/pkg/build.buildName=soundsystem \
//	  -X soundsystem/pkg/build.buildVersion=0.1.0 ..."
//
// Development builds run with "unknown" values; Initialize reports which flag
// is missing so release pipelines can fail early.
package build

import (
	"errors"
	"fmt"
)

// Description is the one-line summary shown by the CLI.
const Description = "Render a live trace of decoded audio and follow engine events"

// ldFlags is the build metadata exposed by GetBuildFlags.
type ldFlags struct {
	Name    string
	Time    string
	Commit  string
	Version string
}

// String formats the metadata for `--version`.
func (f *ldFlags) String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", f.Version, f.Commit, f.Time)
}

var (
	buildName    string
	buildTime    string
	buildCommit  string
	buildVersion string
	buildFlags   = &ldFlags{
		Name:    "soundsystem",
		Time:    "unknown",
		Commit:  "unknown",
		Version: "unknown",
	}
)

// Initialize copies the ldflags variables into the exported metadata. It returns
// an error naming every missing flag; values that are present are still copied.
func Initialize() error {
	var errs []error
	set := func(dst *string, src, name string) {
		if src == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
			return
		}
		*dst = src
	}

	set(&buildFlags.Name, buildName, "BuildName")
	set(&buildFlags.Time, buildTime, "BuildTime")
	set(&buildFlags.Commit, buildCommit, "BuildCommit")
	set(&buildFlags.Version, buildVersion, "BuildVersion")

	return errors.Join(errs...)
}

// GetBuildFlags returns the current build information.
func GetBuildFlags() *ldFlags {
	return buildFlags
}
