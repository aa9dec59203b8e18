package profile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/waylayout/internal/layout"
)

var monitors = []layout.Rect{
	{X: 0, Y: 0, Width: 1920, Height: 1080},
	{X: 1920, Y: 0, Width: 2560, Height: 1440},
}

func newDisplay(t *testing.T) *layout.Display {
	t.Helper()
	d, err := layout.NewDisplay(monitors, nil)
	require.NoError(t, err)
	return d
}

func TestSaveLoadRestoresLayout(t *testing.T) {
	src := newDisplay(t)
	src.ToggleSecondWindow()
	a, b := src.WindowControl(0), src.WindowControl(1)
	a.SetName("left")
	a.SetSize(layout.Width, "800")
	a.SetOffset(layout.AxisY, "-20")
	b.SetMonitor(1)
	b.SetProjection(layout.Cylindrical)
	b.SetHeightOffset("2.5")
	b.SetGuiWindow(true)

	path := filepath.Join(t.TempDir(), "profiles", "two.yaml")
	require.NoError(t, Save(path, src.Snapshot()))

	dst := newDisplay(t)
	require.NoError(t, Apply(path, dst))

	assert.Equal(t, layout.TwoWindows, dst.State())
	assert.Equal(t, src.Snapshot(), dst.Snapshot())
}

func TestEncodeWritesProjectionNames(t *testing.T) {
	d := newDisplay(t)
	d.WindowControl(0).SetProjection(layout.SphericalMirror)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, d.Snapshot()))

	assert.Contains(t, buf.String(), "version: 1")
	assert.Contains(t, buf.String(), "projection: Spherical Mirror")
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"unknown key", "version: 1\nlayout:\n  bogus: true\n"},
		{"bad projection", "version: 1\nlayout:\n  windows:\n    - projection: Hexagonal\n"},
		{"newer version", "version: 99\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.Error(t, err)
		})
	}

	_, err := Decode([]byte("version: 99\n"))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
	_, err = Decode(nil)
	assert.EqualError(t, err, "profile is empty")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyIgnoresInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := `version: 1
layout:
  active_windows: 1
  windows:
    - name: huge
      rect: {x: 10, y: 20, width: 999999, height: 600}
      monitor: 7
      projection: Fisheye
      quality: 42
      decorated: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	d := newDisplay(t)
	require.NoError(t, Apply(path, d))

	w := d.WindowControl(0)
	width, height := w.Size()
	assert.Equal(t, 1280, width, "out of range width keeps the default")
	assert.Equal(t, 600, height)
	assert.Equal(t, 0, w.MonitorIndex())
	assert.Equal(t, layout.Fisheye, w.Projection())
	assert.Equal(t, layout.DefaultQualityIndex, w.QualityIndex())
	assert.Equal(t, "huge", w.Name())
}
