// Package buildinfo carries version metadata stamped in at link time via
// -ldflags "-X github.com/guncedev/gunce/internal/buildinfo.Version=...".
package buildinfo

import "fmt"

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// String renders the stamped metadata in a single line.
func String() string {
	return fmt.Sprintf("gunce %s (built %s, commit %s)", Version, Date, Commit)
}
