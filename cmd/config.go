package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/waylayout/internal/config"
	"github.com/bnema/waylayout/internal/logger"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage waylayout configuration",
	Long:  `Inspect and initialize the configuration file and manage the SSH key whitelist.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		logger.Info("Current Configuration:")
		logger.Infof("Config file: %s\n", config.GetConfigPath())

		logger.Info("[Editor]")
		logger.Infof("  Max Window Pixels: %d", cfg.Editor.MaxWindowPixels)
		logger.Infof("  Default Projection: %s", cfg.Editor.DefaultProjection)
		logger.Infof("  Default Quality: %d", cfg.Editor.DefaultQuality)
		logger.Infof("  Profile Path: %s", cfg.Editor.ProfilePath)

		logger.Info("\n[Preview]")
		logger.Infof("  Size: %dx%d cells", cfg.Preview.Columns, cfg.Preview.Rows)

		logger.Info("\n[Display]")
		logger.Infof("  Backend: %s", cfg.Display.Backend)
		for i, m := range cfg.Display.Monitors {
			logger.Infof("  Static Monitor %d: %s %dx%d at (%d, %d)", i+1, m.Name, m.Width, m.Height, m.X, m.Y)
		}

		logger.Info("\n[Export]")
		logger.Infof("  Path: %s", cfg.Export.Path)
		logger.Infof("  Master Address: %s", cfg.Export.MasterAddress)
		logger.Infof("  Port: %d", cfg.Export.Port)

		logger.Info("\n[Server]")
		logger.Infof("  Port: %d", cfg.Server.Port)
		logger.Infof("  Bind Address: %s", cfg.Server.BindAddress)
		logger.Infof("  Max Sessions: %d", cfg.Server.MaxSessions)
		logger.Infof("  SSH Host Key: %s", cfg.Server.SSHHostKeyPath)
		logger.Infof("  SSH Whitelist Only: %v", cfg.Server.SSHWhitelistOnly)
		logger.Infof("  SSH Whitelisted Keys: %d", len(cfg.Server.SSHWhitelist))

		if cfg.Logging.LogLevel != "" || cfg.Logging.LogFile != "" {
			logger.Info("\n[Logging]")
			logger.Infof("  Level: %s", cfg.Logging.LogLevel)
			logger.Infof("  File: %s", cfg.Logging.LogFile)
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GetConfigPath())
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := config.GetConfigPath()
		if _, err := os.Stat(configPath); err == nil {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				logger.Infof("Configuration file already exists at: %s", configPath)
				logger.Info("Use --force to overwrite")
				return nil
			}
		}

		if err := config.Save(); err != nil {
			return err
		}

		logger.Infof("Configuration initialized at: %s", configPath)
		logger.Info("\nYou can now:")
		logger.Info("  - Edit the configuration file directly")
		logger.Info("  - Use 'waylayout monitors' to check monitor detection")
		logger.Info("  - Use 'waylayout edit' to create a layout")

		return nil
	},
}

var configSSHCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Manage the SSH key whitelist of 'waylayout serve'",
}

var configSSHListCmd = &cobra.Command{
	Use:   "list",
	Short: "List whitelisted SSH keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		if len(cfg.Server.SSHWhitelist) == 0 {
			logger.Info("No SSH keys in whitelist")
		} else {
			logger.Info("Whitelisted SSH Keys:")
			for i, fp := range cfg.Server.SSHWhitelist {
				logger.Infof("%d. %s", i+1, fp)
			}
		}

		if cfg.Server.SSHWhitelistOnly {
			logger.Info("\nWhitelist-only mode is ENABLED")
		} else {
			logger.Info("\nWhitelist-only mode is DISABLED, all SSH keys are accepted")
		}
		return nil
	},
}

var configSSHAddCmd = &cobra.Command{
	Use:   "add <fingerprint>",
	Short: "Add an SSH key fingerprint to the whitelist",
	Long: `Add an SSH key to the whitelist. The fingerprint is the SHA256 form
printed by 'ssh-keygen -lf key.pub' and logged by 'waylayout serve' when an
unknown key is refused.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fingerprint := args[0]
		if !strings.HasPrefix(fingerprint, "SHA256:") {
			return fmt.Errorf("expected a SHA256 fingerprint, got %q", fingerprint)
		}

		if err := config.AddSSHKeyToWhitelist(fingerprint); err != nil {
			return err
		}

		logger.Infof("Added SSH key to whitelist: %s", fingerprint)
		return nil
	},
}

var configSSHRemoveCmd = &cobra.Command{
	Use:   "remove <fingerprint>",
	Short: "Remove SSH key from whitelist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fingerprint := args[0]

		if err := config.RemoveSSHKeyFromWhitelist(fingerprint); err != nil {
			return err
		}

		logger.Infof("Removed SSH key from whitelist: %s", fingerprint)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSSHCmd)

	configSSHCmd.AddCommand(configSSHListCmd)
	configSSHCmd.AddCommand(configSSHAddCmd)
	configSSHCmd.AddCommand(configSSHRemoveCmd)

	configInitCmd.Flags().Bool("force", false, "Force overwrite existing configuration")

	rootCmd.AddCommand(configCmd)
}
