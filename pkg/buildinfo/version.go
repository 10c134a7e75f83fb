// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "-X github.com/MrZhangFengfeng/dataVisualization/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/MrZhangFengfeng/dataVisualization/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/MrZhangFengfeng/dataVisualization/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/dataviz
package buildinfo

import "fmt"

var (
	// Version is the semantic version, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Fields returns the build information as key/value pairs for health
// endpoints and structured logs.
func Fields() map[string]string {
	return map[string]string{
		"version": Version,
		"commit":  Commit,
		"built":   Date,
	}
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
