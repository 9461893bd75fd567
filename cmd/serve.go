package cmd

import (
	"context"
	"fmt"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/workix/desktop/internal/providers"
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the command bridge",
	Long: `Start the loopback HTTP bridge the desktop web view invokes host commands
through. Commands are served under /invoke/<command>; /health and /metrics
are served alongside.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := fx.New(
			fx.Supply(GetConfig()),
			fx.WithLogger(func() fxevent.Logger {
				return &fxevent.ZapLogger{Logger: logging.Logger("fx").Desugar()}
			}),
			providers.Module,
		)
		if err := app.Err(); err != nil {
			return fmt.Errorf("building bridge: %w", err)
		}

		startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
		defer cancel()
		if err := app.Start(startCtx); err != nil {
			return fmt.Errorf("starting bridge: %w", err)
		}

		// Done fires on SIGINT and SIGTERM.
		sig := <-app.Done()
		callLog.Infow("Stopping bridge", "signal", sig.String())

		stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
		defer cancel()
		return app.Stop(stopCtx)
	},
}

func init() {
	rootCmd.AddCommand(ServeCmd)

	ServeCmd.Flags().String("host", "127.0.0.1", "bridge host")
	ServeCmd.Flags().Int("port", 1420, "bridge port")
	ServeCmd.Flags().Float64("rate-limit", 0, "invocations per second allowed per caller (0 disables)")

	cobra.CheckErr(v.BindPFlag("bridge.host", ServeCmd.Flags().Lookup("host")))
	cobra.CheckErr(v.BindPFlag("bridge.port", ServeCmd.Flags().Lookup("port")))
	cobra.CheckErr(v.BindPFlag("bridge.rate_limit", ServeCmd.Flags().Lookup("rate-limit")))
}
