package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"

	"github.com/workix/desktop/internal/config"
	"github.com/workix/desktop/internal/desktop"
)

var (
	cfgFile string
	v       = config.New()
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "workix-desktop",
	Short: "Workix Desktop native host",
	Long: `Workix Desktop is the native host of the EPC Service Management Platform
desktop front-end.

It serves the command bridge the web view invokes, proxies backend API calls,
and exposes the same commands on the command line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if Version != "" && Version != "dev" {
		desktop.Version = Version
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.workix-desktop/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json, color)")
	rootCmd.PersistentFlags().String("backend-url", "", "backend API base URL")
	rootCmd.PersistentFlags().Duration("backend-timeout", 0, "backend request timeout (0 disables)")

	// Bind flags to viper
	cobra.CheckErr(v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")))
	cobra.CheckErr(v.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format")))
	cobra.CheckErr(v.BindPFlag("backend.base_url", rootCmd.PersistentFlags().Lookup("backend-url")))
	cobra.CheckErr(v.BindPFlag("backend.timeout", rootCmd.PersistentFlags().Lookup("backend-timeout")))
}

func initConfig() error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".workix-desktop"))
		}
	}

	var err error
	cfg, err = config.Load(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	return setupLogging(cfg.Log)
}

func setupLogging(lc config.LogConfig) error {
	lvl := logging.LevelInfo
	if lc.Level != "" {
		var err error
		lvl, err = logging.LevelFromString(lc.Level)
		if err != nil {
			return fmt.Errorf("invalid log level (%s): %w", lc.Level, err)
		}
	}

	format := logging.PlaintextOutput
	switch lc.Format {
	case "json":
		format = logging.JSONOutput
	case "color":
		format = logging.ColorizedOutput
	}

	// Logs go to stderr so command output on stdout stays machine readable.
	logging.SetupLogging(logging.Config{
		Format: format,
		Level:  lvl,
		Stderr: true,
	})
	return nil
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}
