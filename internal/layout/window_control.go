package layout

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bnema/waylayout/internal/logger"
)

// WindowObserver receives changes made through a WindowControl. Display is
// the only implementation in this module; WindowControls never touch the
// preview themselves.
type WindowObserver interface {
	// OnWindowChanged is called synchronously after the geometry or target
	// monitor of a window changed.
	OnWindowChanged(monitorIndex, windowIndex int, r Rect)
	// OnGuiFlagRequested is called when a window asks to become the GUI window.
	OnGuiFlagRequested(windowIndex int)
}

const (
	DefaultFovHorizontal = 80.0
	DefaultFovVertical   = 50.534
)

var defaultWindowRects = []Rect{
	{X: 50, Y: 50, Width: 1280, Height: 720},
	{X: 150, Y: 150, Width: 1280, Height: 720},
}

// DefaultWindowRect returns the starting geometry for the window at index
func DefaultWindowRect(index int) Rect {
	if index >= 0 && index < len(defaultWindowRects) {
		return defaultWindowRects[index]
	}
	r := defaultWindowRects[0]
	r.X += 100 * index
	r.Y += 100 * index
	return r
}

// WindowControl holds the editable state of one output window. Text setters
// mirror what an input field delivers while the user types, so malformed or
// incomplete text is dropped silently and the last valid value is kept.
type WindowControl struct {
	index     int
	monitors  []Rect
	maxPixels int
	observer  WindowObserver

	dims         Rect
	monitorIndex int
	name         string

	projection   Projection
	qualityIndex int
	fovH         float64
	fovV         float64
	heightOffset float64

	decorated bool
	guiWindow bool
	spout     bool
}

// NewWindowControl creates the control for window index placed on monitor 0.
// monitors is shared with the owning Display and must not be empty.
func NewWindowControl(index int, monitors []Rect, maxPixels int) *WindowControl {
	if maxPixels < MinWindowPixels {
		maxPixels = DefaultMaxWindowPixels
	}
	return &WindowControl{
		index:        index,
		monitors:     monitors,
		maxPixels:    maxPixels,
		dims:         DefaultWindowRect(index),
		projection:   Planar,
		qualityIndex: DefaultQualityIndex,
		fovH:         DefaultFovHorizontal,
		fovV:         DefaultFovVertical,
		decorated:    true,
	}
}

// SetObserver registers the receiver of change notifications
func (w *WindowControl) SetObserver(o WindowObserver) {
	w.observer = o
}

func (w *WindowControl) notify() {
	if w.observer != nil {
		w.observer.OnWindowChanged(w.monitorIndex, w.index, w.dims)
	}
}

// SetSize updates one dimension from text. Empty, malformed and out of range
// text leave the size alone. The current geometry is announced either way.
func (w *WindowControl) SetSize(dim Dimension, text string) {
	v, err := SizeRange(w.maxPixels).Parse(text)
	if err == nil {
		w.setSizeValue(dim, v)
	} else if !errors.Is(err, ErrIncomplete) {
		logger.Debug("ignoring size input", "window", w.index, "dim", dim, "text", text, "err", err)
	}
	w.notify()
}

func (w *WindowControl) setSizeValue(dim Dimension, v int) {
	if dim == Height {
		w.dims.Height = v
	} else {
		w.dims.Width = v
	}
}

// SetOffset updates one offset axis from text. Empty text only re-announces
// the geometry. Text that does not parse, like a lone "-" typed before the
// digits, is dropped without a notification. The size is kept as it was.
func (w *WindowControl) SetOffset(axis Axis, text string) {
	v, err := OffsetRange(w.maxPixels).Parse(text)
	if err != nil {
		if text == "" {
			w.notify()
		}
		return
	}
	size := w.dims
	if axis == AxisY {
		w.dims.Y = v
		w.dims.Height = size.Height
	} else {
		w.dims.X = v
		w.dims.Width = size.Width
	}
	w.notify()
}

// SetMonitor moves the window to another monitor. Unknown indices are ignored.
func (w *WindowControl) SetMonitor(index int) {
	if index < 0 || index >= len(w.monitors) {
		return
	}
	w.monitorIndex = index
	w.notify()
}

// SetProjection switches the projection type. Spout output is dropped when
// the new projection cannot carry it.
func (w *WindowControl) SetProjection(p Projection) {
	if !p.Valid() {
		return
	}
	w.projection = p
	if w.spout && !p.AllowsSpout() {
		w.spout = false
	}
}

// SetQuality selects an entry of the quality table
func (w *WindowControl) SetQuality(index int) {
	if _, ok := QualityAt(index); ok {
		w.qualityIndex = index
	}
}

// SetSpoutOutput toggles Spout sharing. Enabling it on a projection that
// cannot carry it switches the window to Equirectangular.
func (w *WindowControl) SetSpoutOutput(enabled bool) {
	w.spout = enabled
	if enabled && !w.projection.AllowsSpout() {
		w.projection = Equirectangular
	}
}

// SetFullscreen covers the selected monitor with an undecorated window. Each
// side is capped at the pixel limit.
func (w *WindowControl) SetFullscreen() {
	mon := w.monitors[w.monitorIndex]
	w.dims = Rect{
		X:      0,
		Y:      0,
		Width:  min(mon.Width, w.maxPixels),
		Height: min(mon.Height, w.maxPixels),
	}
	w.decorated = false
	w.notify()
}

// SetGuiWindow sets the GUI flag. Enabling it asks the observer to clear the
// flag on every other window.
func (w *WindowControl) SetGuiWindow(enabled bool) {
	w.guiWindow = enabled
	if enabled && w.observer != nil {
		w.observer.OnGuiFlagRequested(w.index)
	}
}

// ClearGuiWindow unsets the GUI flag without notifying anyone
func (w *WindowControl) ClearGuiWindow() {
	w.guiWindow = false
}

// SetDecorated toggles the window border
func (w *WindowControl) SetDecorated(decorated bool) {
	w.decorated = decorated
}

// SetName sets the window name used in the export
func (w *WindowControl) SetName(name string) {
	w.name = name
}

// SetFovHorizontal updates the horizontal field of view from text
func (w *WindowControl) SetFovHorizontal(text string) {
	if v, err := FovHorizontalRange.Parse(text); err == nil {
		w.fovH = v
	}
}

// SetFovVertical updates the vertical field of view from text
func (w *WindowControl) SetFovVertical(text string) {
	if v, err := FovVerticalRange.Parse(text); err == nil {
		w.fovV = v
	}
}

// SetHeightOffset updates the cylindrical height offset from text
func (w *WindowControl) SetHeightOffset(text string) {
	if v, err := HeightOffsetRange.Parse(text); err == nil {
		w.heightOffset = v
	}
}

func (w *WindowControl) Index() int { return w.index }

// Label is the heading shown above the window's fields
func (w *WindowControl) Label() string {
	return "Window " + strconv.Itoa(w.index+1)
}

// Size returns width and height
func (w *WindowControl) Size() (int, int) {
	return w.dims.Width, w.dims.Height
}

// Offset returns the position relative to the selected monitor
func (w *WindowControl) Offset() (int, int) {
	return w.dims.X, w.dims.Y
}

// Dimensions returns offset and size as one rect
func (w *WindowControl) Dimensions() Rect {
	return w.dims
}

func (w *WindowControl) MonitorIndex() int { return w.monitorIndex }
func (w *WindowControl) MonitorCount() int { return len(w.monitors) }
func (w *WindowControl) MaxPixels() int { return w.maxPixels }
func (w *WindowControl) Projection() Projection { return w.projection }
func (w *WindowControl) QualityIndex() int { return w.qualityIndex }
func (w *WindowControl) FovHorizontal() float64 { return w.fovH }
func (w *WindowControl) FovVertical() float64 { return w.fovV }
func (w *WindowControl) HeightOffset() float64 { return w.heightOffset }
func (w *WindowControl) Decorated() bool { return w.decorated }
func (w *WindowControl) GUIWindow() bool { return w.guiWindow }
func (w *WindowControl) SpoutOutput() bool { return w.spout }
func (w *WindowControl) Name() string { return w.name }

// Visibility returns which projection-dependent fields apply right now
func (w *WindowControl) Visibility() FieldVisibility {
	return w.projection.Visibility()
}

// QualityValue returns the cube-map resolution of the selected quality
func (w *WindowControl) QualityValue() int {
	q, _ := QualityAt(w.qualityIndex)
	return q.Value
}

// WindowConfig is a value snapshot of one WindowControl
type WindowConfig struct {
	Name          string     `yaml:"name"`
	Rect          Rect       `yaml:"rect"`
	Monitor       int        `yaml:"monitor"`
	Projection    Projection `yaml:"projection"`
	Quality       int        `yaml:"quality"`
	Decorated     bool       `yaml:"decorated"`
	GUIWindow     bool       `yaml:"gui_window"`
	SpoutOutput   bool       `yaml:"spout_output"`
	FovHorizontal float64    `yaml:"fov_horizontal"`
	FovVertical   float64    `yaml:"fov_vertical"`
	HeightOffset  float64    `yaml:"height_offset"`
}

// Config returns the current values
func (w *WindowControl) Config() WindowConfig {
	return WindowConfig{
		Name:          w.name,
		Rect:          w.dims,
		Monitor:       w.monitorIndex,
		Projection:    w.projection,
		Quality:       w.qualityIndex,
		Decorated:     w.decorated,
		GUIWindow:     w.guiWindow,
		SpoutOutput:   w.spout,
		FovHorizontal: w.fovH,
		FovVertical:   w.fovV,
		HeightOffset:  w.heightOffset,
	}
}

// Apply restores a snapshot. Every value goes through the same checks as
// interactive input; values that fail them keep the current setting. The GUI
// flag is applied without the exclusivity callback, Display.Restore sorts
// that out for the whole set.
func (w *WindowControl) Apply(c WindowConfig) {
	w.name = c.Name
	sizes := SizeRange(w.maxPixels)
	offsets := OffsetRange(w.maxPixels)
	if _, err := sizes.Parse(strconv.Itoa(c.Rect.Width)); err == nil {
		w.dims.Width = c.Rect.Width
	}
	if _, err := sizes.Parse(strconv.Itoa(c.Rect.Height)); err == nil {
		w.dims.Height = c.Rect.Height
	}
	if _, err := offsets.Parse(strconv.Itoa(c.Rect.X)); err == nil {
		w.dims.X = c.Rect.X
	}
	if _, err := offsets.Parse(strconv.Itoa(c.Rect.Y)); err == nil {
		w.dims.Y = c.Rect.Y
	}
	if c.Monitor >= 0 && c.Monitor < len(w.monitors) {
		w.monitorIndex = c.Monitor
	}
	w.SetProjection(c.Projection)
	w.SetQuality(c.Quality)
	w.SetSpoutOutput(c.SpoutOutput)
	w.decorated = c.Decorated
	w.guiWindow = c.GUIWindow
	w.SetFovHorizontal(formatFloat(c.FovHorizontal))
	w.SetFovVertical(formatFloat(c.FovVertical))
	w.SetHeightOffset(formatFloat(c.HeightOffset))
	w.notify()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (w *WindowControl) String() string {
	return fmt.Sprintf("%s %s on monitor %d (%s)", w.Label(), w.dims, w.monitorIndex, w.projection)
}
