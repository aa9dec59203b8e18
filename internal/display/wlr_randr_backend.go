package display

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/bnema/waylayout/internal/logger"
)

const wlrRandrTimeout = 5 * time.Second

// wlrRandrBackend uses wlr-randr for display detection
type wlrRandrBackend struct {
	path string
}

func newWlrRandrBackend() (Backend, error) {
	// Check if wlr-randr is available
	path, err := exec.LookPath("wlr-randr")
	if err != nil {
		return nil, fmt.Errorf("wlr-randr not found. Please install wlr-randr: https://gitlab.freedesktop.org/emersion/wlr-randr")
	}

	return &wlrRandrBackend{path: path}, nil
}

func (w *wlrRandrBackend) Name() string {
	return BackendWlrRandr
}

func (w *wlrRandrBackend) GetMonitors() ([]*Monitor, error) {
	output, err := w.run("--json")
	if err != nil {
		logger.Debug("JSON mode failed, falling back to text parsing", "err", err)
		return w.getMonitorsText()
	}

	monitors, err := parseWlrRandrJSON(output)
	if err != nil {
		logger.Debug("could not parse wlr-randr JSON, falling back to text parsing", "err", err)
		return w.getMonitorsText()
	}
	return monitors, nil
}

func (w *wlrRandrBackend) getMonitorsText() ([]*Monitor, error) {
	output, err := w.run()
	if err != nil {
		return nil, fmt.Errorf("failed to run wlr-randr: %w", err)
	}
	return parseWlrRandrText(output)
}

func (w *wlrRandrBackend) run(args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), wlrRandrTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, w.path, args...).CombinedOutput()
	if err != nil {
		if len(output) > 0 {
			logger.Debugf("wlr-randr %s error: %s", strings.Join(args, " "), string(output))
		}
		return nil, err
	}
	return output, nil
}

func (w *wlrRandrBackend) Close() error {
	return nil
}

type wlrRandrOutput struct {
	Name      string  `json:"name"`
	Enabled   bool    `json:"enabled"`
	Scale     float64 `json:"scale"`
	Primary   bool    `json:"primary"`
	Model     string  `json:"model"`
	Make      string  `json:"make"`
	Transform string  `json:"transform"`
	Position  struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"position"`
	Modes []struct {
		Width   int     `json:"width"`
		Height  int     `json:"height"`
		Refresh float64 `json:"refresh"`
		Current bool    `json:"current"`
	} `json:"modes"`
}

// parseWlrRandrJSON reads the output of `wlr-randr --json`
func parseWlrRandrJSON(data []byte) ([]*Monitor, error) {
	var outputs []wlrRandrOutput
	if err := json.Unmarshal(data, &outputs); err != nil {
		return nil, fmt.Errorf("invalid wlr-randr JSON: %w", err)
	}

	var monitors []*Monitor
	for i, output := range outputs {
		if !output.Enabled {
			continue
		}

		var width, height int
		for _, mode := range output.Modes {
			if mode.Current {
				width, height = mode.Width, mode.Height
				break
			}
		}

		// Rotated outputs swap their mode dimensions
		switch output.Transform {
		case "90", "270", "flipped-90", "flipped-270":
			width, height = height, width
		}

		// Skip monitors with invalid dimensions
		if width == 0 || height == 0 {
			logger.Warnf("Skipping monitor %s with invalid dimensions: %dx%d", output.Name, width, height)
			continue
		}

		scale := output.Scale
		if scale == 0 {
			scale = 1.0
		}

		monitors = append(monitors, &Monitor{
			ID:      fmt.Sprintf("%d", i),
			Name:    output.Name,
			X:       output.Position.X,
			Y:       output.Position.Y,
			Width:   width,
			Height:  height,
			Scale:   scale,
			Primary: output.Primary,
		})
	}

	if len(monitors) == 0 {
		return nil, fmt.Errorf("no active monitors found")
	}
	return monitors, nil
}

// parseWlrRandrText reads the human readable output of `wlr-randr`
func parseWlrRandrText(data []byte) ([]*Monitor, error) {
	var monitors []*Monitor
	var current *Monitor
	enabled := true

	flush := func() {
		if current != nil && enabled && current.Width > 0 && current.Height > 0 {
			monitors = append(monitors, current)
		}
	}

	for _, raw := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		// Output names start at column 0, their properties are indented
		if raw[0] != ' ' && raw[0] != '\t' {
			flush()
			parts := strings.Fields(raw)
			current = &Monitor{
				ID:    fmt.Sprintf("%d", len(monitors)),
				Name:  parts[0],
				Scale: 1.0, // Default scale
			}
			enabled = true
			continue
		}
		if current == nil {
			continue
		}

		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "Enabled:"):
			enabled = strings.Contains(line, "yes")

		case strings.HasPrefix(line, "Position:"):
			// Format is "Position: x,y"
			coords := strings.Split(strings.TrimSpace(strings.TrimPrefix(line, "Position:")), ",")
			if len(coords) == 2 {
				fmt.Sscanf(coords[0], "%d", &current.X)
				fmt.Sscanf(coords[1], "%d", &current.Y)
			}

		case strings.HasPrefix(line, "Scale:"):
			fmt.Sscanf(strings.TrimPrefix(line, "Scale:"), "%f", &current.Scale)

		case strings.Contains(line, "current"):
			// Format: "1920x1080 px, 60.000000 Hz (preferred, current)"
			var w, h int
			if n, _ := fmt.Sscanf(line, "%dx%d", &w, &h); n == 2 {
				current.Width = w
				current.Height = h
			}
		}
	}
	flush()

	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors detected from wlr-randr output")
	}
	return monitors, nil
}
