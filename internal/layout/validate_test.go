package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntRangeValidate(t *testing.T) {
	sizes := SizeRange(DefaultMaxWindowPixels)
	offsets := OffsetRange(DefaultMaxWindowPixels)

	tests := []struct {
		name    string
		r       IntRange
		text    string
		wantErr bool
	}{
		{"empty size", sizes, "", false},
		{"partial size below floor", sizes, "1", false},
		{"size in range", sizes, "1920", false},
		{"size above max", sizes, "10001", true},
		{"negative size", sizes, "-1", true},
		{"lone minus on size", sizes, "-", true},
		{"lone minus on offset", offsets, "-", false},
		{"negative offset", offsets, "-10000", false},
		{"offset below min", offsets, "-10001", true},
		{"letters", offsets, "1x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFloatRangeParse(t *testing.T) {
	v, err := FovHorizontalRange.Parse("-180")
	assert.NoError(t, err)
	assert.InDelta(t, -180.0, v, 1e-9)

	_, err = FovVerticalRange.Parse("-")
	assert.ErrorIs(t, err, ErrIncomplete)

	assert.NoError(t, FovVerticalRange.Validate("."))
	assert.Error(t, FovVerticalRange.Validate("90.5"))
	assert.Error(t, HeightOffsetRange.Validate("abc"))
}

func TestParseProjection(t *testing.T) {
	for _, p := range Projections() {
		got, err := ParseProjection(p.String())
		assert.NoError(t, err)
		assert.Equal(t, p, got)
	}

	got, err := ParseProjection("spherical-mirror")
	assert.NoError(t, err)
	assert.Equal(t, SphericalMirror, got)

	_, err = ParseProjection("cubemap")
	assert.Error(t, err)
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	assert.Equal(t, Rect{X: 50, Y: 50, Width: 50, Height: 50}, a.Intersect(Rect{X: 50, Y: 50, Width: 100, Height: 100}))
	assert.True(t, a.Intersect(Rect{X: 200, Y: 0, Width: 10, Height: 10}).Empty())
	assert.Equal(t, Rect{X: 0, Y: -10, Width: 300, Height: 110}, a.Union(Rect{X: 200, Y: -10, Width: 100, Height: 20}))
}
