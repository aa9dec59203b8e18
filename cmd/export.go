package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/waylayout/internal/config"
	"github.com/bnema/waylayout/internal/export"
	"github.com/bnema/waylayout/internal/layout"
	"github.com/bnema/waylayout/internal/logger"
	"github.com/bnema/waylayout/internal/profile"
	"github.com/bnema/waylayout/internal/ui"
)

var (
	exportProfile string
	exportOutput  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the cluster document for a saved profile",
	Long: `Load a profile on the detected monitors and write the cluster document
without opening the editor. Use -o - to print it.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportProfile, "profile", "p", "", "profile to export")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file, - for stdout (default from export.path)")
	_ = exportCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	monitors, err := monitorRects(cfg)
	if err != nil {
		return err
	}
	layoutOpts, err := layoutOptions(cfg)
	if err != nil {
		return err
	}
	d, err := layout.NewDisplay(monitors, nil, layoutOpts...)
	if err != nil {
		return err
	}
	if err := profile.Apply(exportProfile, d); err != nil {
		return err
	}

	cluster := export.Build(d, exportOptions(cfg))

	out := exportOutput
	if out == "" {
		out = cfg.Export.Path
	}
	if out == "-" {
		return export.Write(cmd.OutOrStdout(), cluster)
	}

	if err := export.WriteFile(out, cluster); err != nil {
		return err
	}
	logger.Infof("Exported %s to %s", exportProfile, out)

	panel := ui.InfoPanel{Title: "Exported windows", Width: 60}
	for _, w := range d.LiveWindowControls() {
		line := fmt.Sprintf("%s: %s on monitor %d, %s", w.Label(), w.Dimensions(), w.MonitorIndex()+1, w.Projection())
		if w.GUIWindow() || len(d.LiveWindowControls()) == 1 {
			line += " (GUI)"
		}
		panel.Content = append(panel.Content, line)
	}
	fmt.Fprintln(cmd.OutOrStdout(), panel.View())
	return nil
}
