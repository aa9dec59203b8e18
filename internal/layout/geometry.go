// Package layout holds the editable state of a window layout: one
// WindowControl per output window and the Display that owns them and keeps
// the monitor preview in sync.
package layout

import "fmt"

// Rect is a rectangle in pixels. Window rects are relative to the origin of
// the monitor they are placed on, monitor rects live in desktop space.
type Rect struct {
	X      int `yaml:"x" json:"x"`
	Y      int `yaml:"y" json:"y"`
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Right returns the exclusive right edge
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Empty reports whether the rect has no area
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersect returns the overlap of r and o, or a zero Rect if they are disjoint
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.Right(), o.Right())
	y2 := min(r.Bottom(), o.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Union returns the smallest rect containing r and o
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x1 := min(r.X, o.X)
	y1 := min(r.Y, o.Y)
	x2 := max(r.Right(), o.Right())
	y2 := max(r.Bottom(), o.Bottom())
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Dimension selects the width or height of a window
type Dimension int

const (
	Width Dimension = iota
	Height
)

func (d Dimension) String() string {
	if d == Height {
		return "height"
	}
	return "width"
}

// Axis selects the horizontal or vertical offset of a window
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}
