package version

import (
	"fmt"
	"runtime"
)

// Build information. Populated at build time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Static binary information.
var (
	BinaryName = "proxasaurus-mcp-server"
	GoVersion  = runtime.Version()
	Platform   = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
)

// GetVersionInfo returns a human-readable version summary.
func GetVersionInfo() string {
	return fmt.Sprintf(`%s
  Version:    %s
  Git commit: %s
  Built:      %s
  Go version: %s
  Platform:   %s`,
		BinaryName, Version, GitCommit, BuildDate, GoVersion, Platform)
}
