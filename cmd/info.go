package cmd

import (
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show application information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		return printJSON(cmd, app.GetAppInfo())
	},
}

var sysinfoCmd = &cobra.Command{
	Use:   "sysinfo",
	Short: "Show operating system information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		return printJSON(cmd, app.GetSystemInfo())
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(sysinfoCmd)
}
