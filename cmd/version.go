package cmd

import (
	"fmt"
	"runtime"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"

	"github.com/workix/desktop/internal/desktop"
)

var verLog = logging.Logger("version")

// Build information set by ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var versionJSON bool

// buildInfo describes the running binary.
type buildInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Name:      desktop.AppName,
		Version:   desktop.Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display the version reported to the front-end by get_app_version, along
with the commit, build time and Go toolchain of this binary.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentBuild()
		verLog.Debugw("Version requested", "version", info.Version, "commit", info.Commit)

		if versionJSON {
			return printJSON(cmd, info)
		}

		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s, %s %s)\n",
			info.Name, info.Version, info.Commit, info.BuildTime, info.GoVersion, info.Platform)
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "print version information as JSON")
}
