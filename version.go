/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package kinesisctl

import "runtime"

// Version information set by build flags:
//
//	go build -ldflags "\
//	  -X github.com/suparena/kinesisctl.Version=0.1.0 \
//	  -X github.com/suparena/kinesisctl.GitCommit=$(git rev-parse --short HEAD) \
//	  -X github.com/suparena/kinesisctl.BuildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ) \
//	  -X github.com/suparena/kinesisctl.GoVersion=$(go env GOVERSION)" \
//	  ./cmd/kinesisctl
var (
	// Version is the semantic version of kinesisctl
	Version = "0.1.0"

	// GitCommit is the git commit hash (set by build flags)
	GitCommit = "unknown"

	// BuildDate is the build date (set by build flags)
	BuildDate = "unknown"

	// GoVersion is the Go version used to build (set by build flags)
	GoVersion = "unknown"
)

// VersionInfo contains version information
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// GetVersionInfo returns the version information. GoVersion falls back to
// the running toolchain when the build did not set it.
func GetVersionInfo() VersionInfo {
	goVersion := GoVersion
	if goVersion == "" || goVersion == "unknown" {
		goVersion = runtime.Version()
	}
	return VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: goVersion,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}
