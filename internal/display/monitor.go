// Package display detects the monitors windows can be placed on
package display

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bnema/waylayout/internal/layout"
	"github.com/bnema/waylayout/internal/logger"
)

// Monitor represents a physical display
type Monitor struct {
	ID      string
	Name    string
	X       int // Position in global coordinate space
	Y       int
	Width   int
	Height  int
	Primary bool
	Scale   float64
}

// Bounds returns the monitor's boundaries
func (m *Monitor) Bounds() (x1, y1, x2, y2 int) {
	return m.X, m.Y, m.X + m.Width, m.Y + m.Height
}

// Contains checks if a point is within this monitor
func (m *Monitor) Contains(x, y int) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

// Rect returns the monitor geometry in desktop space
func (m *Monitor) Rect() layout.Rect {
	return layout.Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
}

// Backend interface for different display detection methods
type Backend interface {
	Name() string
	GetMonitors() ([]*Monitor, error)
	Close() error
}

// Backend names accepted by Options.Backend
const (
	BackendAuto     = "auto"
	BackendWlrRandr = "wlr-randr"
	BackendXRandr   = "xrandr"
	BackendStatic   = "static"
)

// Options selects how monitors are detected
type Options struct {
	// Backend forces one backend; empty or "auto" tries them in order
	Backend string
	// Static monitors are used by the static backend and as the last fallback
	Static []*Monitor
}

// Display holds the detected monitor setup
type Display struct {
	monitors []*Monitor
	backend  Backend
}

// New detects the monitors with the first backend that works
func New(opts Options) (*Display, error) {
	logger.Debug("Display.New: Starting monitor detection", "backend", opts.Backend)

	factories := map[string]func() (Backend, error){
		BackendWlrRandr: newWlrRandrBackend,
		BackendXRandr:   newXRandrBackend,
		BackendStatic:   func() (Backend, error) { return newStaticBackend(opts.Static) },
	}

	order := []string{BackendWlrRandr, BackendXRandr, BackendStatic}
	switch opts.Backend {
	case "", BackendAuto:
	default:
		if _, ok := factories[opts.Backend]; !ok {
			return nil, fmt.Errorf("unknown display backend %q (want %s)", opts.Backend,
				strings.Join(append([]string{BackendAuto}, order...), ", "))
		}
		order = []string{opts.Backend}
	}

	var errs []string
	for _, name := range order {
		backend, err := factories[name]()
		if err != nil {
			logger.Debugf("Display.New: Backend %s unavailable: %v", name, err)
			errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			continue
		}

		monitors, err := backend.GetMonitors()
		if err != nil {
			logger.Debugf("Display.New: Backend %s failed: %v", name, err)
			errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			backend.Close()
			continue
		}

		logger.Debugf("Display.New: Detected %d monitor(s) with %s", len(monitors), name)
		sortMonitors(monitors)
		determinePrimaryMonitor(monitors)
		return &Display{monitors: monitors, backend: backend}, nil
	}

	return nil, fmt.Errorf("no display backend available (%s)", strings.Join(errs, "; "))
}

// GetMonitors returns all detected monitors
func (d *Display) GetMonitors() []*Monitor {
	return d.monitors
}

// Rects returns the monitor geometries in detection order
func (d *Display) Rects() []layout.Rect {
	rects := make([]layout.Rect, len(d.monitors))
	for i, m := range d.monitors {
		rects[i] = m.Rect()
	}
	return rects
}

// BackendName reports which backend found the monitors
func (d *Display) BackendName() string {
	if d.backend == nil {
		return ""
	}
	return d.backend.Name()
}

// GetPrimaryMonitor returns the primary monitor
func (d *Display) GetPrimaryMonitor() *Monitor {
	for _, m := range d.monitors {
		if m.Primary {
			return m
		}
	}
	// Fallback to first monitor
	if len(d.monitors) > 0 {
		return d.monitors[0]
	}
	return nil
}

// GetMonitorAt returns the monitor containing the given coordinates
func (d *Display) GetMonitorAt(x, y int) *Monitor {
	for _, m := range d.monitors {
		if m.Contains(x, y) {
			return m
		}
	}
	return nil
}

// VirtualSize returns the size of the box enclosing every monitor
func (d *Display) VirtualSize() (int, int) {
	var box layout.Rect
	for _, m := range d.monitors {
		box = box.Union(m.Rect())
	}
	return box.Width, box.Height
}

// Close cleans up resources
func (d *Display) Close() error {
	if d.backend != nil {
		return d.backend.Close()
	}
	return nil
}

// sortMonitors orders monitors left to right, then top to bottom, so monitor
// indices in the editor follow the physical layout.
func sortMonitors(monitors []*Monitor) {
	sort.SliceStable(monitors, func(i, j int) bool {
		if monitors[i].X != monitors[j].X {
			return monitors[i].X < monitors[j].X
		}
		return monitors[i].Y < monitors[j].Y
	})
}

// determinePrimaryMonitor sets the primary monitor based on position
// The monitor at position (0,0) is considered primary, with fallback to first monitor
func determinePrimaryMonitor(monitors []*Monitor) {
	for _, monitor := range monitors {
		if monitor.Primary {
			return
		}
	}

	for _, monitor := range monitors {
		if monitor.X == 0 && monitor.Y == 0 {
			monitor.Primary = true
			return
		}
	}

	if len(monitors) > 0 {
		monitors[0].Primary = true
	}
}
