package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/bnema/waylayout/internal/config"
	"github.com/bnema/waylayout/internal/export"
	"github.com/bnema/waylayout/internal/layout"
	"github.com/bnema/waylayout/internal/logger"
	"github.com/bnema/waylayout/internal/profile"
)

// newLayoutAnswers holds what the new-layout form asks for
type newLayoutAnswers struct {
	Windows     int
	Monitors    [layout.MaxWindows]int
	Projection  layout.Projection
	Fullscreen  bool
	ProfilePath string
	ExportPath  string
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a layout by answering a few questions",
	Long: `Ask for the number of windows, their monitors and projection, then
save the result as a profile that 'waylayout edit' can refine.`,
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	monitors, err := monitorRects(cfg)
	if err != nil {
		return err
	}
	layoutOpts, err := layoutOptions(cfg)
	if err != nil {
		return err
	}

	answers := newLayoutAnswers{
		Windows:     1,
		Fullscreen:  true,
		ProfilePath: cfg.Editor.ProfilePath,
		ExportPath:  cfg.Export.Path,
	}
	if p, err := layout.ParseProjection(cfg.Editor.DefaultProjection); err == nil {
		answers.Projection = p
	}

	if err := newLayoutForm(monitors, &answers).Run(); err != nil {
		return fmt.Errorf("layout creation cancelled: %w", err)
	}

	d, err := buildNewLayout(monitors, answers, layoutOpts...)
	if err != nil {
		return err
	}

	if err := profile.Save(answers.ProfilePath, d.Snapshot()); err != nil {
		return err
	}
	logger.Infof("Saved profile to %s", answers.ProfilePath)

	if answers.ExportPath != "" {
		if err := export.WriteFile(answers.ExportPath, export.Build(d, exportOptions(cfg))); err != nil {
			return err
		}
		logger.Infof("Exported cluster document to %s", answers.ExportPath)
	}
	return nil
}

func newLayoutForm(monitors []layout.Rect, a *newLayoutAnswers) *huh.Form {
	monitorOptions := make([]huh.Option[int], len(monitors))
	for i, m := range monitors {
		monitorOptions[i] = huh.NewOption(fmt.Sprintf("%d: %s", i+1, m), i)
	}

	projectionOptions := make([]huh.Option[layout.Projection], 0, len(layout.Projections()))
	for _, p := range layout.Projections() {
		projectionOptions = append(projectionOptions, huh.NewOption(p.String(), p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Number of windows").
				Options(huh.NewOption("One window", 1), huh.NewOption("Two windows", 2)).
				Value(&a.Windows),
			huh.NewSelect[layout.Projection]().
				Title("Projection").
				Description("Applied to every window, change it per window in the editor").
				Options(projectionOptions...).
				Value(&a.Projection),
			huh.NewConfirm().
				Title("Fill the selected monitors?").
				Value(&a.Fullscreen),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Monitor for window 1").
				Options(monitorOptions...).
				Value(&a.Monitors[0]),
		).WithHideFunc(func() bool { return len(monitors) < 2 }),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Monitor for window 2").
				Options(monitorOptions...).
				Value(&a.Monitors[1]),
		).WithHideFunc(func() bool { return a.Windows < 2 || len(monitors) < 2 }),
		huh.NewGroup(
			huh.NewInput().
				Title("Profile file").
				Value(&a.ProfilePath).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("a profile file is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Cluster document").
				Description("Leave empty to skip the export").
				Value(&a.ExportPath),
		),
	)
}

// buildNewLayout turns form answers into a layout. With two windows the
// first one hosts the GUI.
func buildNewLayout(monitors []layout.Rect, a newLayoutAnswers, opts ...layout.Option) (*layout.Display, error) {
	if a.Windows < 1 || a.Windows > layout.MaxWindows {
		return nil, fmt.Errorf("window count must be 1 or %d, got %d", layout.MaxWindows, a.Windows)
	}

	d, err := layout.NewDisplay(monitors, nil, opts...)
	if err != nil {
		return nil, err
	}
	if a.Windows == 2 {
		d.ToggleSecondWindow()
	}

	for i, w := range d.LiveWindowControls() {
		if a.Monitors[i] < 0 || a.Monitors[i] >= len(monitors) {
			return nil, fmt.Errorf("window %d: monitor %d does not exist", i+1, a.Monitors[i]+1)
		}
		w.SetMonitor(a.Monitors[i])
		w.SetProjection(a.Projection)
		if a.Fullscreen {
			w.SetFullscreen()
		}
	}
	if a.Windows == 2 {
		d.WindowControl(0).SetGuiWindow(true)
	}
	return d, nil
}
