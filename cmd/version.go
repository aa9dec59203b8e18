package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bnema/waylayout/internal/logger"
)

var (
	// Version info set by main package
	Version = "0.1.0-dev"
	Commit  string
	Date    string
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		logger.Infof("waylayout %s", Version)
		if Commit != "" {
			logger.Infof("commit: %s", Commit)
		}
		if Date != "" {
			logger.Infof("built: %s", Date)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
