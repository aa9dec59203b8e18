package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinWindowPixels is the smallest width or height a window may have
	MinWindowPixels = 10
	// DefaultMaxWindowPixels bounds sizes and offsets unless configured otherwise
	DefaultMaxWindowPixels = 10000

	MinFovHorizontal = -180.0
	MaxFovHorizontal = 180.0
	MinFovVertical   = -90.0
	MaxFovVertical   = 90.0

	MinHeightOffset = -1000000.0
	MaxHeightOffset = 1000000.0
)

// ErrIncomplete marks text that is not a value yet but may become one with
// more typing, like a lone minus sign.
var ErrIncomplete = errors.New("incomplete input")

// IntRange validates integer text the way an input field does while the user
// is typing: empty text and a lone sign are accepted as intermediate states,
// anything else must parse and fall inside [Min, Max].
type IntRange struct {
	Min int
	Max int
}

// Validate returns nil for text the field may hold
func (r IntRange) Validate(text string) error {
	_, err := r.Parse(text)
	if errors.Is(err, ErrIncomplete) {
		return nil
	}
	return err
}

// Parse converts text to an int. Intermediate states return ErrIncomplete.
func (r IntRange) Parse(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" || ((text == "-" && r.Min < 0) || text == "+") {
		return 0, ErrIncomplete
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", text)
	}
	if v < r.Min || v > r.Max {
		// a partially typed value below the minimum can still grow into range
		if v >= 0 && v < r.Min && v <= r.Max {
			return v, ErrIncomplete
		}
		return v, fmt.Errorf("%d out of range [%d, %d]", v, r.Min, r.Max)
	}
	return v, nil
}

// FloatRange is the floating point counterpart of IntRange
type FloatRange struct {
	Min float64
	Max float64
}

// Validate returns nil for text the field may hold
func (r FloatRange) Validate(text string) error {
	_, err := r.Parse(text)
	if errors.Is(err, ErrIncomplete) {
		return nil
	}
	return err
}

// Parse converts text to a float64. Intermediate states such as "-" or "."
// return ErrIncomplete.
func (r FloatRange) Parse(text string) (float64, error) {
	text = strings.TrimSpace(text)
	switch text {
	case "", "-", "+", ".", "-.", "+.":
		return 0, ErrIncomplete
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", text)
	}
	if v < r.Min || v > r.Max {
		return v, fmt.Errorf("%g out of range [%g, %g]", v, r.Min, r.Max)
	}
	return v, nil
}

// SizeRange returns the validator for window width and height fields
func SizeRange(maxPixels int) IntRange {
	return IntRange{Min: MinWindowPixels, Max: maxPixels}
}

// OffsetRange returns the validator for window offset fields
func OffsetRange(maxPixels int) IntRange {
	return IntRange{Min: -maxPixels, Max: maxPixels}
}

var (
	FovHorizontalRange = FloatRange{Min: MinFovHorizontal, Max: MaxFovHorizontal}
	FovVerticalRange   = FloatRange{Min: MinFovVertical, Max: MaxFovVertical}
	HeightOffsetRange  = FloatRange{Min: MinHeightOffset, Max: MaxHeightOffset}
)
