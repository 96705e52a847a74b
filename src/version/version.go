// Package version provides build info and version strings
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build-time variables - set via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info contains all version information
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	OS        string `json:"os" yaml:"os"`
	Arch      string `json:"arch" yaml:"arch"`
}

// Get returns the current version info
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// String returns a formatted version string
func (i Info) String() string {
	return fmt.Sprintf("%s (%s/%s)", i.Version, i.OS, i.Arch)
}

// Full returns a detailed version string
func (i Info) Full(binaryName string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s v%s (%s) built %s\n", binaryName, i.Version, i.Commit, i.BuildDate)
	sb.WriteString("\nBuild Info:\n")
	fmt.Fprintf(&sb, "  Go: %s\n", i.GoVersion)
	fmt.Fprintf(&sb, "  OS/Arch: %s/%s\n", i.OS, i.Arch)
	return sb.String()
}
