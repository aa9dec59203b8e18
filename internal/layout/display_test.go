package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mappedWindow struct {
	monitor int
	rect    Rect
}

type fakePreview struct {
	monitors    []Rect
	activeCount int
	windows     map[int]mappedWindow
	mapCalls    int
}

func newFakePreview() *fakePreview {
	return &fakePreview{windows: make(map[int]mappedWindow)}
}

func (p *fakePreview) SetMonitorResolutions(monitors []Rect) {
	p.monitors = monitors
}

func (p *fakePreview) SetActiveWindowCount(n int) {
	p.activeCount = n
}

func (p *fakePreview) MapWindowToPreview(monitorIndex, windowIndex int, r Rect) {
	p.mapCalls++
	p.windows[windowIndex] = mappedWindow{monitorIndex, r}
}

func newTestDisplay(t *testing.T) (*Display, *fakePreview) {
	t.Helper()
	p := newFakePreview()
	d, err := NewDisplay(testMonitors, p)
	require.NoError(t, err)
	return d, p
}

func TestNewDisplay(t *testing.T) {
	d, p := newTestDisplay(t)

	assert.Equal(t, OneWindow, d.State())
	assert.Equal(t, 1, d.ActiveWindowCount())
	assert.Len(t, d.WindowControls(), MaxWindows)
	assert.Len(t, d.LiveWindowControls(), 1)
	assert.False(t, d.SecondPanelVisible())
	assert.Equal(t, "Add 2nd window", d.ToggleLabel())

	assert.Equal(t, testMonitors, p.monitors)
	assert.Equal(t, 1, p.activeCount)
	require.Len(t, p.windows, 2)
	assert.Equal(t, DefaultWindowRect(0), p.windows[0].rect)
	assert.Equal(t, DefaultWindowRect(1), p.windows[1].rect)
}

func TestNewDisplayWithoutMonitors(t *testing.T) {
	d, err := NewDisplay(nil, newFakePreview())
	assert.ErrorIs(t, err, ErrNoMonitors)
	assert.Nil(t, d)
}

func TestNewDisplayNilPreview(t *testing.T) {
	d, err := NewDisplay(testMonitors, nil)
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		d.WindowControl(0).SetSize(Width, "800")
		d.ToggleSecondWindow()
	})
}

func TestAddWindowControlIsBounded(t *testing.T) {
	d, _ := newTestDisplay(t)

	d.AddWindowControl()
	d.AddWindowControl()

	assert.Len(t, d.WindowControls(), 2)
}

func TestRestoreClearsGuiOutsideSnapshot(t *testing.T) {
	d, _ := newTestDisplay(t)
	d.WindowControl(1).SetGuiWindow(true)

	snap := d.Snapshot()
	snap.ActiveWindows = 1
	snap.Windows = snap.Windows[:1]
	snap.Windows[0].GUIWindow = true

	d.Restore(snap)

	assert.True(t, d.WindowControl(0).GUIWindow())
	assert.False(t, d.WindowControl(1).GUIWindow())
}

func TestToggleSecondWindow(t *testing.T) {
	d, p := newTestDisplay(t)

	d.ToggleSecondWindow()
	assert.Equal(t, TwoWindows, d.State())
	assert.Equal(t, 2, d.ActiveWindowCount())
	assert.Equal(t, 2, p.activeCount)
	assert.True(t, d.SecondPanelVisible())
	assert.Equal(t, "Remove 2nd window", d.ToggleLabel())
	assert.Len(t, d.LiveWindowControls(), 2)

	d.ToggleSecondWindow()
	assert.Equal(t, OneWindow, d.State())
	assert.Equal(t, 1, p.activeCount)
	assert.False(t, d.SecondPanelVisible())
}

func TestToggleKeepsHiddenValues(t *testing.T) {
	d, _ := newTestDisplay(t)

	d.ToggleSecondWindow()
	b := d.WindowControl(1)
	b.SetSize(Width, "777")
	b.SetProjection(Cylindrical)

	d.ToggleSecondWindow()
	d.ToggleSecondWindow()

	width, _ := b.Size()
	assert.Equal(t, 777, width)
	assert.Equal(t, Cylindrical, d.WindowControl(1).Projection())
}

func TestWindowChangesReachPreview(t *testing.T) {
	d, p := newTestDisplay(t)
	calls := p.mapCalls

	w := d.WindowControl(0)
	w.SetMonitor(1)
	w.SetOffset(AxisX, "25")

	assert.Equal(t, calls+2, p.mapCalls)
	assert.Equal(t, mappedWindow{1, Rect{X: 25, Y: 50, Width: 1280, Height: 720}}, p.windows[0])
}

func TestGuiWindowExclusive(t *testing.T) {
	d, _ := newTestDisplay(t)
	d.ToggleSecondWindow()
	a, b := d.WindowControl(0), d.WindowControl(1)

	a.SetGuiWindow(true)
	assert.True(t, a.GUIWindow())

	b.SetGuiWindow(true)
	assert.True(t, b.GUIWindow())
	assert.False(t, a.GUIWindow())

	a.SetGuiWindow(true)
	assert.True(t, a.GUIWindow())
	assert.False(t, b.GUIWindow())
}

func TestDisplayOptions(t *testing.T) {
	d, err := NewDisplay(testMonitors, nil,
		WithMaxWindowPixels(4000),
		WithDefaults(WindowConfig{
			Projection:    Fisheye,
			Quality:       4,
			Decorated:     false,
			GUIWindow:     true,
			FovHorizontal: DefaultFovHorizontal,
			FovVertical:   DefaultFovVertical,
		}),
	)
	require.NoError(t, err)

	for i, w := range d.WindowControls() {
		assert.Equal(t, Fisheye, w.Projection())
		assert.Equal(t, 2048, w.QualityValue())
		assert.False(t, w.Decorated())
		assert.False(t, w.GUIWindow())
		assert.Equal(t, DefaultWindowRect(i), w.Dimensions())
	}

	w := d.WindowControl(0)
	w.SetSize(Width, "5000")
	width, _ := w.Size()
	assert.Equal(t, 1280, width)
}

func TestSnapshotRestore(t *testing.T) {
	d, _ := newTestDisplay(t)
	d.ToggleSecondWindow()
	d.WindowControl(1).SetSize(Height, "480")
	d.WindowControl(1).SetGuiWindow(true)
	d.WindowControl(0).SetName("left")
	d.ToggleSecondWindow()

	snap := d.Snapshot()
	assert.Equal(t, 1, snap.ActiveWindows)
	require.Len(t, snap.Windows, 2)

	other, p := newTestDisplay(t)
	other.Restore(snap)

	assert.Equal(t, OneWindow, other.State())
	assert.Equal(t, "left", other.WindowControl(0).Name())
	_, h := other.WindowControl(1).Size()
	assert.Equal(t, 480, h)
	assert.True(t, other.WindowControl(1).GUIWindow())
	assert.Equal(t, 480, p.windows[1].rect.Height)

	snap.ActiveWindows = 2
	other.Restore(snap)
	assert.Equal(t, TwoWindows, other.State())
}

func TestRestoreKeepsSingleGuiWindow(t *testing.T) {
	d, _ := newTestDisplay(t)
	snap := d.Snapshot()
	snap.Windows[0].GUIWindow = true
	snap.Windows[1].GUIWindow = true
	snap.Windows = append(snap.Windows, snap.Windows[0])

	d.Restore(snap)

	assert.True(t, d.WindowControl(0).GUIWindow())
	assert.False(t, d.WindowControl(1).GUIWindow())
	assert.Len(t, d.WindowControls(), 2)
}
