// Package cli implements the churchill command line: the HTTP server, the
// MCP server and offline commands for searching documents, asking questions
// and managing the voice budget.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lillianfidler/churchill-falls-assistant/internal/config"
	"github.com/lillianfidler/churchill-falls-assistant/internal/logger"
)

// Global flags shared by every command.
var (
	configPath string
	envFile    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "churchill",
	Short: "Churchill Falls document assistant",
	Long: `Answers questions about the Churchill Falls hydroelectric project from a
fixed set of source documents, by text or by voice.

Configuration is read from config.toml (optional), a .env file (optional)
and the environment. ANTHROPIC_API_KEY is required for chat; ElevenLabs
credentials enable spoken answers.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config.toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file (default ./.env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context so servers shut down gracefully.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer logger.Sync()
	return rootCmd.ExecuteContext(ctx)
}

// loadConfig reads the configuration and applies its logging section.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath, envFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Init(logger.Options{JSON: cfg.Logging.JSON, File: cfg.Logging.File})
	logger.SetVerbose(verbose || cfg.Logging.Verbose)
	return cfg, nil
}

// setup loads the configuration and wires the services a command needs.
func setup(ctx context.Context, needs capability) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newApp(ctx, cfg, needs)
}
