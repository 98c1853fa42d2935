// Package buildinfo holds version information injected at link time:
//
//	go build -ldflags "-X github.com/Deps-Tech/deps-registry/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/Deps-Tech/deps-registry/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/Deps-Tech/deps-registry/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/depsreg
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("depsreg %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
