package cli

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  `Display CLI version information and backend reachability.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVersion(cmd.Context())
		},
	}
}

func (c *CLI) runVersion(ctx context.Context) error {
	info := VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}

	backendStatus := "not configured"
	if client := c.newClient(); client.Configured() {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx); err == nil {
			backendStatus = "reachable"
		} else {
			backendStatus = "unavailable"
		}
	}

	if c.jsonOutput {
		output := struct {
			VersionInfo
			Backend struct {
				URL    string `json:"url,omitempty"`
				Status string `json:"status"`
			} `json:"backend"`
		}{
			VersionInfo: info,
		}
		output.Backend.URL = c.cfg.Backend.URL
		output.Backend.Status = backendStatus
		return c.outputJSON(output)
	}

	c.println("Showroom CLI")
	c.printf("  Version:    %s\n", info.Version)
	c.printf("  Git Commit: %s\n", info.GitCommit)
	c.printf("  Build Date: %s\n", info.BuildDate)
	c.printf("  Go Version: %s\n", info.GoVersion)
	c.printf("  OS/Arch:    %s/%s\n", info.OS, info.Arch)

	c.println("")
	c.println("Backend:")
	if c.cfg.Backend.URL != "" {
		c.printf("  URL:    %s\n", c.cfg.Backend.URL)
	}
	c.printf("  Status: %s\n", backendStatus)

	return nil
}

// VersionInfo represents version information for JSON output.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// SetVersionInfo sets the version information (called from main).
func SetVersionInfo(version, commit, date string) {
	if version != "" {
		Version = version
	}
	if commit != "" {
		GitCommit = commit
	}
	if date != "" {
		BuildDate = date
	}
}

// GetVersionString returns a formatted version string.
func GetVersionString() string {
	return fmt.Sprintf("showroom version %s (commit: %s, built: %s)",
		Version, GitCommit, BuildDate)
}
