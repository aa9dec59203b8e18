package cmd

import (
	"fmt"

	"github.com/bnema/waylayout/internal/config"
	"github.com/bnema/waylayout/internal/display"
	"github.com/bnema/waylayout/internal/export"
	"github.com/bnema/waylayout/internal/layout"
	"github.com/bnema/waylayout/internal/ui"
)

// detectMonitors runs monitor detection with the configured backend. Static
// monitors from the config file are always passed along as the fallback.
func detectMonitors(cfg *config.Config) (*display.Display, error) {
	static := make([]*display.Monitor, len(cfg.Display.Monitors))
	for i, m := range cfg.Display.Monitors {
		static[i] = &display.Monitor{
			Name:   m.Name,
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		}
	}

	disp, err := display.New(display.Options{
		Backend: cfg.Display.Backend,
		Static:  static,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to detect monitors: %w", err)
	}
	return disp, nil
}

// monitorRects returns the geometry of the detected monitors
func monitorRects(cfg *config.Config) ([]layout.Rect, error) {
	disp, err := detectMonitors(cfg)
	if err != nil {
		return nil, err
	}
	defer disp.Close()
	return disp.Rects(), nil
}

// layoutOptions turns the [editor] section into defaults for new windows
func layoutOptions(cfg *config.Config) ([]layout.Option, error) {
	projection, err := layout.ParseProjection(cfg.Editor.DefaultProjection)
	if err != nil {
		return nil, fmt.Errorf("editor.default_projection: %w", err)
	}
	quality, ok := layout.QualityIndexForValue(cfg.Editor.DefaultQuality)
	if !ok {
		return nil, fmt.Errorf("editor.default_quality: %d is not a supported resolution", cfg.Editor.DefaultQuality)
	}

	defaults := layout.WindowConfig{
		Projection:    projection,
		Quality:       quality,
		Decorated:     true,
		FovHorizontal: layout.DefaultFovHorizontal,
		FovVertical:   layout.DefaultFovVertical,
	}
	return []layout.Option{
		layout.WithMaxWindowPixels(cfg.Editor.MaxWindowPixels),
		layout.WithDefaults(defaults),
	}, nil
}

func exportOptions(cfg *config.Config) export.Options {
	return export.Options{
		MasterAddress: cfg.Export.MasterAddress,
		Port:          cfg.Export.Port,
	}
}

func editorOptions(cfg *config.Config, profilePath, exportPath string) ui.EditorOptions {
	return ui.EditorOptions{
		ProfilePath: profilePath,
		ExportPath:  exportPath,
		Export:      exportOptions(cfg),
		PreviewCols: cfg.Preview.Columns,
		PreviewRows: cfg.Preview.Rows,
	}
}
