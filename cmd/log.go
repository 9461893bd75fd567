package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log <level> <message...>",
	Short: "Write a message through the front-end log sink",
	Long: `Write a message the way log_message does for the front-end: error level
goes to stderr, warn, info and any other level to stdout.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, sink, err := newApp(cmd)
		if err != nil {
			return err
		}
		app.LogMessage(args[0], strings.Join(args[1:], " "))
		_ = sink.Sync()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
}
