// Package buildinfo holds the version stamped into sunburst binaries.
//
// Release builds override the variables with the linker:
//
//	go build -ldflags "-X github.com/matzehuels/sunburst/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/sunburst/pkg/buildinfo.Commit=$(git rev-parse HEAD)" ./cmd/sunburst
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build stamp reported by GET /version.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the current build stamp.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// ShortCommit is the first seven characters of the commit SHA.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 7 {
		return i.Commit[:7]
	}
	return i.Commit
}

// Template is the cobra --version template.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} %s (%s, built %s)\n", i.Version, i.ShortCommit(), i.Date)
}
