package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/waylayout/internal/config"
	"github.com/bnema/waylayout/internal/logger"
	"github.com/bnema/waylayout/internal/profile"
	"github.com/bnema/waylayout/internal/ui"
)

var (
	editProfile string
	editExport  string
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a window layout in the terminal",
	Long: `Open the layout editor on the detected monitors. When the profile file
exists it is loaded first; ctrl+s writes it back and ctrl+e writes the
cluster document.`,
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editProfile, "profile", "p", "", "profile to load and save (default from editor.profile_path)")
	editCmd.Flags().StringVarP(&editExport, "export", "e", "", "cluster document to write (default from export.path)")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	profilePath := editProfile
	if profilePath == "" {
		profilePath = cfg.Editor.ProfilePath
	}
	exportPath := editExport
	if exportPath == "" {
		exportPath = cfg.Export.Path
	}

	editor, err := newEditor(cfg, profilePath, exportPath)
	if err != nil {
		return err
	}

	restoreLog, err := openLogFile()
	if err != nil {
		return err
	}
	defer restoreLog()

	runner := ui.NewProgramRunner(ui.DefaultProgramConfig())
	return runner.Run(cmd.Context(), editor)
}

// newEditor builds an editor on the detected monitors, restoring profilePath
// when it exists.
func newEditor(cfg *config.Config, profilePath, exportPath string) (*ui.Editor, error) {
	monitors, err := monitorRects(cfg)
	if err != nil {
		return nil, err
	}
	layoutOpts, err := layoutOptions(cfg)
	if err != nil {
		return nil, err
	}

	opts := editorOptions(cfg, profilePath, exportPath)
	if profilePath != "" {
		snap, err := profile.Load(profilePath)
		switch {
		case err == nil:
			logger.Infof("Loaded profile %s", profilePath)
			opts.Initial = &snap
		case errors.Is(err, os.ErrNotExist):
			logger.Debugf("Profile %s does not exist yet", profilePath)
		default:
			return nil, err
		}
	}

	return ui.NewSession(monitors, opts, layoutOpts...)
}
