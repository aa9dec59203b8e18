package layout

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedChange struct {
	monitor int
	window  int
	rect    Rect
}

type recordingObserver struct {
	changes    []recordedChange
	guiRequest []int
}

func (o *recordingObserver) OnWindowChanged(monitorIndex, windowIndex int, r Rect) {
	o.changes = append(o.changes, recordedChange{monitorIndex, windowIndex, r})
}

func (o *recordingObserver) OnGuiFlagRequested(windowIndex int) {
	o.guiRequest = append(o.guiRequest, windowIndex)
}

var testMonitors = []Rect{
	{X: 0, Y: 0, Width: 1920, Height: 1080},
	{X: 1920, Y: 0, Width: 2560, Height: 1440},
}

func newTestControl(t *testing.T) (*WindowControl, *recordingObserver) {
	t.Helper()
	w := NewWindowControl(0, testMonitors, DefaultMaxWindowPixels)
	obs := &recordingObserver{}
	w.SetObserver(obs)
	return w, obs
}

func TestNewWindowControlDefaults(t *testing.T) {
	w := NewWindowControl(1, testMonitors, 0)

	assert.Equal(t, Rect{X: 150, Y: 150, Width: 1280, Height: 720}, w.Dimensions())
	assert.Equal(t, DefaultMaxWindowPixels, w.MaxPixels())
	assert.Equal(t, 0, w.MonitorIndex())
	assert.Equal(t, Planar, w.Projection())
	assert.Equal(t, 1024, w.QualityValue())
	assert.True(t, w.Decorated())
	assert.False(t, w.GUIWindow())
	assert.False(t, w.SpoutOutput())
	assert.InDelta(t, 80.0, w.FovHorizontal(), 1e-9)
	assert.InDelta(t, 50.534, w.FovVertical(), 1e-9)
	assert.Equal(t, "Window 2", w.Label())
}

func TestSetSize(t *testing.T) {
	tests := []struct {
		name       string
		dim        Dimension
		text       string
		wantWidth  int
		wantHeight int
	}{
		{"width", Width, "1600", 1600, 720},
		{"height", Height, "900", 1280, 900},
		{"minimum width", Width, "10", 10, 720},
		{"maximum height", Height, "10000", 1280, 10000},
		{"empty ignored", Width, "", 1280, 720},
		{"below floor ignored", Width, "9", 1280, 720},
		{"above max ignored", Height, "10001", 1280, 720},
		{"negative ignored", Width, "-5", 1280, 720},
		{"garbage ignored", Height, "abc", 1280, 720},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, obs := newTestControl(t)
			x, y := w.Offset()

			w.SetSize(tt.dim, tt.text)

			width, height := w.Size()
			assert.Equal(t, tt.wantWidth, width)
			assert.Equal(t, tt.wantHeight, height)
			nx, ny := w.Offset()
			assert.Equal(t, x, nx, "offset must not change")
			assert.Equal(t, y, ny, "offset must not change")
			require.Len(t, obs.changes, 1, "size edits always notify")
			assert.Equal(t, w.Dimensions(), obs.changes[0].rect)
		})
	}
}

func TestSetSizeAllValidWidths(t *testing.T) {
	w, _ := newTestControl(t)
	for _, v := range []string{"10", "11", "640", "1919", "4096", "9999", "10000"} {
		_, before := w.Size()
		w.SetSize(Width, v)
		width, height := w.Size()
		assert.Equal(t, v, strconv.Itoa(width))
		assert.Equal(t, before, height)
	}
}

func TestSetOffset(t *testing.T) {
	t.Run("valid value keeps size", func(t *testing.T) {
		w, obs := newTestControl(t)
		w.SetSize(Width, "1000")
		obs.changes = nil

		w.SetOffset(AxisX, "-300")

		assert.Equal(t, Rect{X: -300, Y: 50, Width: 1000, Height: 720}, w.Dimensions())
		require.Len(t, obs.changes, 1)
		assert.Equal(t, 0, obs.changes[0].window)
	})

	t.Run("y axis", func(t *testing.T) {
		w, _ := newTestControl(t)
		w.SetOffset(AxisY, "42")
		x, y := w.Offset()
		assert.Equal(t, 50, x)
		assert.Equal(t, 42, y)
	})

	t.Run("lone minus is ignored without notification", func(t *testing.T) {
		w, obs := newTestControl(t)
		before := w.Dimensions()

		assert.NotPanics(t, func() { w.SetOffset(AxisX, "-") })

		assert.Equal(t, before, w.Dimensions())
		assert.Empty(t, obs.changes)
	})

	t.Run("garbage is ignored without notification", func(t *testing.T) {
		w, obs := newTestControl(t)
		before := w.Dimensions()
		w.SetOffset(AxisY, "12a")
		w.SetOffset(AxisY, "20000")
		assert.Equal(t, before, w.Dimensions())
		assert.Empty(t, obs.changes)
	})

	t.Run("empty keeps value but notifies", func(t *testing.T) {
		w, obs := newTestControl(t)
		before := w.Dimensions()
		w.SetOffset(AxisX, "")
		assert.Equal(t, before, w.Dimensions())
		assert.Len(t, obs.changes, 1)
	})
}

func TestSetMonitor(t *testing.T) {
	w, obs := newTestControl(t)

	w.SetMonitor(1)
	assert.Equal(t, 1, w.MonitorIndex())
	require.Len(t, obs.changes, 1)
	assert.Equal(t, 1, obs.changes[0].monitor)

	w.SetMonitor(2)
	w.SetMonitor(-1)
	assert.Equal(t, 1, w.MonitorIndex())
	assert.Len(t, obs.changes, 1)
}

func TestSetProjectionVisibility(t *testing.T) {
	tests := []struct {
		projection Projection
		want       FieldVisibility
	}{
		{Planar, FieldVisibility{FOV: true}},
		{Fisheye, FieldVisibility{Quality: true, Spout: true}},
		{SphericalMirror, FieldVisibility{Quality: true}},
		{Cylindrical, FieldVisibility{Quality: true, HeightOffset: true}},
		{Equirectangular, FieldVisibility{Quality: true, Spout: true}},
	}

	for _, tt := range tests {
		t.Run(tt.projection.String(), func(t *testing.T) {
			w, _ := newTestControl(t)
			w.SetProjection(tt.projection)
			assert.Equal(t, tt.projection, w.Projection())
			assert.Equal(t, tt.want, w.Visibility())
		})
	}
}

func TestSpoutOutput(t *testing.T) {
	t.Run("planar is forced to equirectangular", func(t *testing.T) {
		w, _ := newTestControl(t)
		w.SetSpoutOutput(true)
		assert.True(t, w.SpoutOutput())
		assert.Equal(t, Equirectangular, w.Projection())
	})

	t.Run("cylindrical is forced to equirectangular", func(t *testing.T) {
		w, _ := newTestControl(t)
		w.SetProjection(Cylindrical)
		w.SetSpoutOutput(true)
		assert.Equal(t, Equirectangular, w.Projection())
	})

	t.Run("fisheye is kept", func(t *testing.T) {
		w, _ := newTestControl(t)
		w.SetProjection(Fisheye)
		w.SetSpoutOutput(true)
		assert.Equal(t, Fisheye, w.Projection())
	})

	t.Run("switching to planar drops spout", func(t *testing.T) {
		w, _ := newTestControl(t)
		w.SetSpoutOutput(true)
		w.SetProjection(Planar)
		assert.False(t, w.SpoutOutput())
	})
}

func TestSetFullscreen(t *testing.T) {
	for i, mon := range testMonitors {
		w, obs := newTestControl(t)
		w.SetMonitor(i)
		w.SetOffset(AxisX, "-77")
		obs.changes = nil

		w.SetFullscreen()

		assert.Equal(t, Rect{X: 0, Y: 0, Width: mon.Width, Height: mon.Height}, w.Dimensions())
		assert.False(t, w.Decorated())
		require.Len(t, obs.changes, 1)
		assert.Equal(t, i, obs.changes[0].monitor)
	}
}

func TestSetFullscreenRespectsPixelLimit(t *testing.T) {
	d, err := NewDisplay([]Rect{{Width: 3840, Height: 2160}}, nil, WithMaxWindowPixels(2000))
	require.NoError(t, err)
	w := d.WindowControl(0)

	w.SetFullscreen()
	assert.Equal(t, Rect{Width: 2000, Height: 2000}, w.Dimensions())

	restored, err := NewDisplay([]Rect{{Width: 3840, Height: 2160}}, nil, WithMaxWindowPixels(2000))
	require.NoError(t, err)
	restored.Restore(d.Snapshot())
	assert.Equal(t, w.Dimensions(), restored.WindowControl(0).Dimensions())
}

func TestSetGuiWindow(t *testing.T) {
	w, obs := newTestControl(t)

	w.SetGuiWindow(true)
	assert.True(t, w.GUIWindow())
	assert.Equal(t, []int{0}, obs.guiRequest)

	w.SetGuiWindow(false)
	assert.False(t, w.GUIWindow())
	assert.Equal(t, []int{0}, obs.guiRequest, "disabling does not ask for exclusivity")
}

func TestFloatFields(t *testing.T) {
	w, _ := newTestControl(t)

	w.SetFovHorizontal("120.5")
	w.SetFovHorizontal("181")
	w.SetFovHorizontal("-")
	assert.InDelta(t, 120.5, w.FovHorizontal(), 1e-9)

	w.SetFovVertical("-90")
	w.SetFovVertical("x")
	assert.InDelta(t, -90.0, w.FovVertical(), 1e-9)

	w.SetHeightOffset("2.25")
	w.SetHeightOffset("1e7")
	assert.InDelta(t, 2.25, w.HeightOffset(), 1e-9)
}

func TestSetQuality(t *testing.T) {
	w, _ := newTestControl(t)
	w.SetQuality(5)
	assert.Equal(t, 5, w.QualityIndex())
	assert.Equal(t, 4096, w.QualityValue())

	w.SetQuality(len(Qualities()))
	assert.Equal(t, 5, w.QualityIndex())
}

func TestApplyRoundTrip(t *testing.T) {
	src, _ := newTestControl(t)
	src.SetName("dome")
	src.SetMonitor(1)
	src.SetSize(Width, "2000")
	src.SetOffset(AxisY, "-40")
	src.SetProjection(Fisheye)
	src.SetSpoutOutput(true)
	src.SetQuality(7)
	src.SetDecorated(false)

	dst, obs := newTestControl(t)
	dst.Apply(src.Config())

	assert.Equal(t, src.Config(), dst.Config())
	assert.NotEmpty(t, obs.changes)
}

func TestApplyRejectsInvalidValues(t *testing.T) {
	w, _ := newTestControl(t)
	before := w.Config()

	w.Apply(WindowConfig{
		Rect:          Rect{X: 99999, Y: 0, Width: 3, Height: 50000},
		Monitor:       9,
		Projection:    Projection(42),
		Quality:       -1,
		FovHorizontal: 500,
		FovVertical:   10,
		Decorated:     true,
	})

	assert.Equal(t, before.Rect.X, w.Dimensions().X)
	assert.Equal(t, 0, w.Dimensions().Y)
	assert.Equal(t, before.Rect.Width, w.Dimensions().Width)
	assert.Equal(t, before.Rect.Height, w.Dimensions().Height)
	assert.Equal(t, before.Monitor, w.MonitorIndex())
	assert.Equal(t, before.Projection, w.Projection())
	assert.Equal(t, before.Quality, w.QualityIndex())
	assert.InDelta(t, before.FovHorizontal, w.FovHorizontal(), 1e-9)
	assert.InDelta(t, 10.0, w.FovVertical(), 1e-9)
}
