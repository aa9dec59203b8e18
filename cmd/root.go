package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/waylayout/internal/config"
	"github.com/bnema/waylayout/internal/logger"
)

var (
	configPath  string
	backendName string
	logLevel    string

	rootCmd = &cobra.Command{
		Use:   "waylayout",
		Short: "waylayout - output window layout editor",
		Long: `waylayout edits where the output windows of a rendering cluster go.
Place one or two windows on the detected monitors, pick a projection for each,
preview the result in the terminal and export the cluster document the
renderer reads at startup.`,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/waylayout/waylayout.toml)")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "", "monitor detection backend: auto, wlr-randr, xrandr, static")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// loadConfig runs before every command
func loadConfig(cmd *cobra.Command, args []string) error {
	config.SetConfigPath(configPath)
	if err := config.Init(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	cfg := config.Get()
	if backendName != "" {
		cfg.Display.Backend = backendName
	}

	switch {
	case logLevel != "":
		logger.SetLevel(logLevel)
	case cfg.Logging.LogLevel != "":
		logger.SetLevel(cfg.Logging.LogLevel)
	}
	return nil
}

// openLogFile sends log output to the configured file while a full screen UI
// owns the terminal. The returned func restores stderr.
func openLogFile() (func(), error) {
	path := config.Get().Logging.LogFile
	if path == "" {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		f.Close()
	}, nil
}
