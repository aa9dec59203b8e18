package layout

import (
	"fmt"
	"strings"
)

// Projection is the rendering projection of an output window. The numeric
// values are the order the editor lists them in.
type Projection int

const (
	Planar Projection = iota
	Fisheye
	SphericalMirror
	Cylindrical
	Equirectangular
)

var projectionNames = []string{
	Planar:          "Planar",
	Fisheye:         "Fisheye",
	SphericalMirror: "Spherical Mirror",
	Cylindrical:     "Cylindrical",
	Equirectangular: "Equirectangular",
}

// Projections returns every projection in display order
func Projections() []Projection {
	return []Projection{Planar, Fisheye, SphericalMirror, Cylindrical, Equirectangular}
}

// Valid reports whether p is a known projection
func (p Projection) Valid() bool {
	return p >= Planar && p <= Equirectangular
}

func (p Projection) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Projection(%d)", int(p))
	}
	return projectionNames[p]
}

// MarshalText encodes p by name
func (p Projection) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid projection %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a projection name
func (p *Projection) UnmarshalText(text []byte) error {
	v, err := ParseProjection(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// AllowsSpout reports whether a window using p may share its output over Spout
func (p Projection) AllowsSpout() bool {
	return p == Fisheye || p == Equirectangular
}

// ParseProjection accepts a projection name, case and space insensitive
// ("spherical-mirror", "SphericalMirror" and "Spherical Mirror" all match).
func ParseProjection(s string) (Projection, error) {
	key := normalizeName(s)
	for _, p := range Projections() {
		if normalizeName(p.String()) == key {
			return p, nil
		}
	}
	return Planar, fmt.Errorf("unknown projection %q", s)
}

func normalizeName(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// FieldVisibility lists which projection-dependent fields apply to a window
type FieldVisibility struct {
	Quality      bool
	FOV          bool
	HeightOffset bool
	Spout        bool
}

// Visibility returns the fields that are relevant for p
func (p Projection) Visibility() FieldVisibility {
	return FieldVisibility{
		Quality:      p != Planar,
		FOV:          p == Planar,
		HeightOffset: p == Cylindrical,
		Spout:        p.AllowsSpout(),
	}
}

// Quality is one entry of the cube-map resolution table used by the
// non-planar projections.
type Quality struct {
	Label string
	Value int
}

var qualities = []Quality{
	{"Low (256)", 256},
	{"Medium (512)", 512},
	{"High (1K)", 1024},
	{"1.5K (1536)", 1536},
	{"2K (2048)", 2048},
	{"4K (4096)", 4096},
	{"8K (8192)", 8192},
	{"16K (16384)", 16384},
	{"32K (32768)", 32768},
	{"64K (65536)", 65536},
}

// DefaultQualityIndex is High (1K)
const DefaultQualityIndex = 2

// Qualities returns a copy of the quality table
func Qualities() []Quality {
	out := make([]Quality, len(qualities))
	copy(out, qualities)
	return out
}

// QualityAt returns the quality at index i
func QualityAt(i int) (Quality, bool) {
	if i < 0 || i >= len(qualities) {
		return Quality{}, false
	}
	return qualities[i], true
}

// QualityIndexForValue finds the table index of a resolution value
func QualityIndexForValue(v int) (int, bool) {
	for i, q := range qualities {
		if q.Value == v {
			return i, true
		}
	}
	return 0, false
}
