package layout

import (
	"errors"

	"github.com/bnema/waylayout/internal/logger"
)

// MaxWindows is how many WindowControls a Display allocates
const MaxWindows = 2

// Preview is the monitor-layout preview a Display keeps in sync with its
// windows. Only the Display calls into it.
type Preview interface {
	SetMonitorResolutions(monitors []Rect)
	SetActiveWindowCount(n int)
	MapWindowToPreview(monitorIndex, windowIndex int, r Rect)
}

// State is the window-count state of a Display
type State int

const (
	OneWindow State = iota
	TwoWindows
)

func (s State) String() string {
	if s == TwoWindows {
		return "two windows"
	}
	return "one window"
}

const (
	labelAddSecond    = "Add 2nd window"
	labelRemoveSecond = "Remove 2nd window"
)

// ErrNoMonitors is returned when a Display is created without monitors
var ErrNoMonitors = errors.New("no monitors to place windows on")

// Option configures a Display
type Option func(*Display)

// WithMaxWindowPixels bounds window sizes and offsets
func WithMaxWindowPixels(n int) Option {
	return func(d *Display) {
		d.maxPixels = n
	}
}

// WithDefaults applies a starting config to every window after allocation.
// Geometry in c is ignored, each window keeps its own default rect.
func WithDefaults(c WindowConfig) Option {
	return func(d *Display) {
		d.defaults = &c
	}
}

// Display owns the WindowControls of one layout and the preview that shows
// them on the monitors. Only the first ActiveWindowCount controls are live;
// hidden controls keep their values so showing them again restores the edits.
type Display struct {
	monitors  []Rect
	preview   Preview
	maxPixels int
	defaults  *WindowConfig

	controls []*WindowControl
	state    State
}

// NewDisplay allocates both WindowControls, wires them to the preview and
// starts with one window shown.
func NewDisplay(monitors []Rect, preview Preview, opts ...Option) (*Display, error) {
	if len(monitors) == 0 {
		return nil, ErrNoMonitors
	}
	d := &Display{
		monitors:  append([]Rect(nil), monitors...),
		preview:   preview,
		maxPixels: DefaultMaxWindowPixels,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.preview == nil {
		d.preview = nopPreview{}
	}

	d.preview.SetMonitorResolutions(d.monitors)
	d.AddWindowControl()
	d.AddWindowControl()
	d.hideSecondWindow()

	logger.Debug("display created", "monitors", len(d.monitors), "windows", len(d.controls))
	return d, nil
}

// AddWindowControl allocates another WindowControl. It does nothing once
// MaxWindows controls exist.
func (d *Display) AddWindowControl() {
	if len(d.controls) >= MaxWindows {
		return
	}
	w := NewWindowControl(len(d.controls), d.monitors, d.maxPixels)
	if d.defaults != nil {
		c := *d.defaults
		c.Rect = w.Dimensions()
		c.Monitor = 0
		c.GUIWindow = false
		w.Apply(c)
	}
	w.SetObserver(d)
	d.controls = append(d.controls, w)
	d.preview.MapWindowToPreview(w.MonitorIndex(), w.Index(), w.Dimensions())
}

// ToggleSecondWindow switches between showing one and two windows
func (d *Display) ToggleSecondWindow() {
	if d.state == OneWindow {
		d.showSecondWindow()
	} else {
		d.hideSecondWindow()
	}
	logger.Debug("toggled second window", "state", d.state)
}

func (d *Display) showSecondWindow() {
	d.state = TwoWindows
	d.syncWindowCount()
}

func (d *Display) hideSecondWindow() {
	d.state = OneWindow
	d.syncWindowCount()
}

func (d *Display) syncWindowCount() {
	d.preview.SetActiveWindowCount(d.ActiveWindowCount())
}

// OnWindowChanged forwards a geometry change to the preview
func (d *Display) OnWindowChanged(monitorIndex, windowIndex int, r Rect) {
	d.preview.MapWindowToPreview(monitorIndex, windowIndex, r)
}

// OnGuiFlagRequested clears the GUI flag on every window except windowIndex
func (d *Display) OnGuiFlagRequested(windowIndex int) {
	for _, w := range d.controls {
		if w.Index() != windowIndex {
			w.ClearGuiWindow()
		}
	}
}

// State returns the current window-count state
func (d *Display) State() State {
	return d.state
}

// ActiveWindowCount returns how many windows are live
func (d *Display) ActiveWindowCount() int {
	if d.state == TwoWindows && len(d.controls) > 1 {
		return 2
	}
	return 1
}

// SecondPanelVisible reports whether the second window's fields are shown
func (d *Display) SecondPanelVisible() bool {
	return d.state == TwoWindows
}

// ToggleLabel is the caption of the control that calls ToggleSecondWindow
func (d *Display) ToggleLabel() string {
	if d.state == TwoWindows {
		return labelRemoveSecond
	}
	return labelAddSecond
}

// WindowControls returns every allocated control, live or hidden
func (d *Display) WindowControls() []*WindowControl {
	return d.controls
}

// LiveWindowControls returns the controls that are currently shown
func (d *Display) LiveWindowControls() []*WindowControl {
	return d.controls[:d.ActiveWindowCount()]
}

// WindowControl returns the control at index i, or nil
func (d *Display) WindowControl(i int) *WindowControl {
	if i < 0 || i >= len(d.controls) {
		return nil
	}
	return d.controls[i]
}

// Monitors returns the monitor resolutions windows can be placed on
func (d *Display) Monitors() []Rect {
	return d.monitors
}

// MaxPixels returns the size and offset bound of every window
func (d *Display) MaxPixels() int {
	return d.maxPixels
}

// Snapshot is the complete editor state of a Display
type Snapshot struct {
	ActiveWindows int            `yaml:"active_windows"`
	Monitors      []Rect         `yaml:"monitors"`
	Windows       []WindowConfig `yaml:"windows"`
}

// Snapshot captures every allocated window, hidden ones included
func (d *Display) Snapshot() Snapshot {
	s := Snapshot{
		ActiveWindows: d.ActiveWindowCount(),
		Monitors:      append([]Rect(nil), d.monitors...),
	}
	for _, w := range d.controls {
		s.Windows = append(s.Windows, w.Config())
	}
	return s
}

// Restore applies a snapshot taken from this or another Display. Extra
// windows in s are ignored. At most one window keeps the GUI flag.
func (d *Display) Restore(s Snapshot) {
	gui := -1
	for i, c := range s.Windows {
		w := d.WindowControl(i)
		if w == nil {
			break
		}
		if c.GUIWindow {
			if gui >= 0 {
				c.GUIWindow = false
			} else {
				gui = i
			}
		}
		w.Apply(c)
	}
	if gui >= 0 {
		d.OnGuiFlagRequested(gui)
	}
	if (s.ActiveWindows > 1) != (d.state == TwoWindows) {
		d.ToggleSecondWindow()
	}
}

type nopPreview struct{}

func (nopPreview) SetMonitorResolutions([]Rect)     {}
func (nopPreview) SetActiveWindowCount(int)         {}
func (nopPreview) MapWindowToPreview(int, int, Rect) {}
