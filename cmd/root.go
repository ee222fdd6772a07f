package cmd

import (
	"log/slog"
	"os"

	"github.com/ellavondegurechaff/allowlist/allowlist"
	"github.com/ellavondegurechaff/allowlist/allowlist/logger"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "unknown"

	configPath string
)

var rootCmd = &cobra.Command{
	Use:           "allowlist",
	Short:         "Discord bot that runs allowlist applications",
	Long:          "Runs the bot when no subcommand is given, the same as serve.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          serveCMD.RunE,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
	rootCmd.Flags().BoolVar(&syncCommands, "sync-commands", false, "Whether to sync commands to discord")
}

func Execute() {
	slog.SetDefault(slog.New(logger.NewHandler(slog.LevelInfo, nil)))
	if err := rootCmd.Execute(); err != nil {
		logger.LogError("Command failed", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and switches the default logger to its level.
func loadConfig() (*allowlist.Config, error) {
	cfg, err := allowlist.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(logger.NewHandler(cfg.Log.Level, nil)))
	return cfg, nil
}
