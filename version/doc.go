// Package version exposes the build metadata stamped into the binary.
//
// Release pipelines set the package variables through -ldflags:
//
//	go build -ldflags "\
//	  -X github.com/skillsenselab/authflow/version.Version=1.2.0 \
//	  -X github.com/skillsenselab/authflow/version.GitCommit=$(git rev-parse --short HEAD) \
//	  -X github.com/skillsenselab/authflow/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// When the variables are left at their defaults, GetVersionInfo falls back
// to the VCS details the Go toolchain records in the binary's build info.
package version
