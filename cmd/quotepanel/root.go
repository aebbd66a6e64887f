package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"quotepanel/internal/platform/config"
	"quotepanel/internal/platform/logging"
)

var (
	configPath string
	cfg        *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "quotepanel",
	Short:        "Intraday stock quote panel backed by Alpha Vantage",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default $CONFIG_PATH)")
	rootCmd.AddCommand(serveCmd, tuiCmd, quoteCmd)
}

// setupLogging installs the configured slog logger as the default.
func setupLogging(w io.Writer) {
	slog.SetDefault(logging.New(cfg.Log.Level, cfg.Log.Format, w))
}

// logWriter returns where the terminal commands send logs: a file when LOG_FILE is set, nowhere otherwise.
func logWriter() (io.Writer, func(), error) {
	path := os.Getenv("LOG_FILE")
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
