package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/waylayout/internal/layout"
)

var dualMonitors = []layout.Rect{
	{X: 0, Y: 0, Width: 1920, Height: 1080},
	{X: 1920, Y: 0, Width: 2560, Height: 1440},
}

func newDualPreview(t *testing.T) *Preview {
	t.Helper()
	p := New(60, 20)
	p.SetMonitorResolutions(dualMonitors)
	return p
}

func TestMonitorsFitCanvas(t *testing.T) {
	p := newDualPreview(t)
	cols, rows := p.Size()
	canvas := layout.Rect{Width: cols, Height: rows}

	left, ok := p.MonitorRect(0)
	require.True(t, ok)
	right, ok := p.MonitorRect(1)
	require.True(t, ok)

	assert.Equal(t, left, left.Intersect(canvas), "monitor must be inside the canvas")
	assert.Equal(t, right, right.Intersect(canvas), "monitor must be inside the canvas")
	assert.True(t, left.Intersect(right).Empty(), "side by side monitors must not overlap")
	assert.Equal(t, left.Right(), right.X)
	assert.Equal(t, left.Y, right.Y)
	assert.Greater(t, right.Width, left.Width)
	assert.Greater(t, right.Height, left.Height)

	_, ok = p.MonitorRect(2)
	assert.False(t, ok)
}

func TestFullscreenWindowCoversMonitor(t *testing.T) {
	p := newDualPreview(t)

	p.MapWindowToPreview(1, 0, layout.Rect{Width: 2560, Height: 1440})

	win, ok := p.WindowRect(0)
	require.True(t, ok)
	mon, _ := p.MonitorRect(1)
	assert.Equal(t, mon, win)
}

func TestWindowClippedToMonitor(t *testing.T) {
	p := newDualPreview(t)
	mon, _ := p.MonitorRect(0)

	p.MapWindowToPreview(0, 0, layout.Rect{X: 1000, Y: 500, Width: 4000, Height: 4000})
	win, _ := p.WindowRect(0)
	assert.Equal(t, win, win.Intersect(mon))
	assert.False(t, win.Empty())

	p.MapWindowToPreview(0, 1, layout.Rect{X: 5000, Y: 0, Width: 100, Height: 100})
	win, ok := p.WindowRect(1)
	assert.True(t, ok)
	assert.True(t, win.Empty())
}

func TestMapIgnoresUnknownIndices(t *testing.T) {
	p := newDualPreview(t)
	assert.NotPanics(t, func() {
		p.MapWindowToPreview(5, 0, layout.Rect{Width: 10, Height: 10})
		p.MapWindowToPreview(0, 7, layout.Rect{Width: 10, Height: 10})
		p.MapWindowToPreview(-1, -1, layout.Rect{})
	})
	_, ok := p.WindowRect(0)
	assert.False(t, ok)

	empty := New(40, 10)
	assert.NotPanics(t, func() {
		empty.MapWindowToPreview(0, 0, layout.Rect{Width: 10, Height: 10})
	})
}

func TestActiveWindowCountLimitsRendering(t *testing.T) {
	p := newDualPreview(t)
	p.MapWindowToPreview(0, 0, layout.Rect{X: 50, Y: 50, Width: 1280, Height: 720})
	p.MapWindowToPreview(1, 1, layout.Rect{X: 150, Y: 150, Width: 1280, Height: 720})

	out := p.Render()
	assert.Contains(t, out, string(windowGlyphs[0]))
	assert.NotContains(t, out, string(windowGlyphs[1]))

	p.SetActiveWindowCount(2)
	out = p.Render()
	assert.Contains(t, out, string(windowGlyphs[0]))
	assert.Contains(t, out, string(windowGlyphs[1]))

	p.SetActiveWindowCount(5)
	assert.Equal(t, layout.MaxWindows, p.ActiveWindowCount())
}

func TestRenderDimensions(t *testing.T) {
	p := newDualPreview(t)
	lines := strings.Split(p.Render(), "\n")
	require.Len(t, lines, 20)
	for _, l := range lines {
		assert.Equal(t, 60, len([]rune(l)))
	}
	assert.Contains(t, p.Render(), "1")
	assert.Contains(t, p.Render(), "2")
	assert.NotEmpty(t, p.View())
}

func TestResizeReprojectsWindows(t *testing.T) {
	p := newDualPreview(t)
	p.MapWindowToPreview(0, 0, layout.Rect{Width: 1920, Height: 1080})
	before, _ := p.WindowRect(0)

	p.Resize(120, 40)

	after, _ := p.WindowRect(0)
	mon, _ := p.MonitorRect(0)
	assert.Equal(t, mon, after)
	assert.Greater(t, after.Width, before.Width)
}

func TestRemovedMonitorDropsItsWindows(t *testing.T) {
	p := newDualPreview(t)
	p.MapWindowToPreview(0, 0, layout.Rect{Width: 800, Height: 600})
	p.MapWindowToPreview(1, 1, layout.Rect{Width: 800, Height: 600})
	p.SetActiveWindowCount(2)

	p.SetMonitorResolutions(dualMonitors[:1])

	_, ok := p.WindowRect(0)
	assert.True(t, ok)
	_, ok = p.WindowRect(1)
	assert.False(t, ok, "window on a removed monitor is no longer drawn")
}

func TestWithDisplay(t *testing.T) {
	p := New(60, 20)
	d, err := layout.NewDisplay(dualMonitors, p)
	require.NoError(t, err)

	d.WindowControl(0).SetMonitor(1)
	d.WindowControl(0).SetFullscreen()

	win, _ := p.WindowRect(0)
	mon, _ := p.MonitorRect(1)
	assert.Equal(t, mon, win)
	assert.Equal(t, 1, p.ActiveWindowCount())

	d.ToggleSecondWindow()
	assert.Equal(t, 2, p.ActiveWindowCount())
}
