package ui

import (
	"fmt"
	"strconv"

	"github.com/bnema/waylayout/internal/layout"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindSelect
	kindCheck
	kindButton
)

type fieldID int

const (
	fieldName fieldID = iota
	fieldWidth
	fieldHeight
	fieldX
	fieldY
	fieldMonitor
	fieldFullscreen
	fieldProjection
	fieldQuality
	fieldFovH
	fieldFovV
	fieldHeightOffset
	fieldSpout
	fieldDecorated
	fieldGUI
	fieldToggleWindow
)

var textFields = []fieldID{fieldName, fieldWidth, fieldHeight, fieldX, fieldY, fieldFovH, fieldFovV, fieldHeightOffset}

var fieldLabels = map[fieldID]string{
	fieldName:         "Name",
	fieldWidth:        "Width",
	fieldHeight:       "Height",
	fieldX:            "X offset",
	fieldY:            "Y offset",
	fieldMonitor:      "Monitor",
	fieldFullscreen:   "Fullscreen",
	fieldProjection:   "Projection",
	fieldQuality:      "Quality",
	fieldFovH:         "Horizontal FOV",
	fieldFovV:         "Vertical FOV",
	fieldHeightOffset: "Height offset",
	fieldSpout:        "Spout output",
	fieldDecorated:    "Decorations",
	fieldGUI:          "GUI window",
}

func (f fieldID) kind() fieldKind {
	switch f {
	case fieldMonitor, fieldProjection, fieldQuality:
		return kindSelect
	case fieldSpout, fieldDecorated, fieldGUI:
		return kindCheck
	case fieldFullscreen, fieldToggleWindow:
		return kindButton
	default:
		return kindText
	}
}

func (f fieldID) label() string {
	return fieldLabels[f]
}

// fieldRef names one form field. Window is -1 for fields that are not tied
// to a window.
type fieldRef struct {
	window int
	id     fieldID
}

var toggleWindowRef = fieldRef{window: -1, id: fieldToggleWindow}

// windowFields lists the fields of w in form order, skipping the ones the
// current projection does not use.
func windowFields(w *layout.WindowControl) []fieldRef {
	i := w.Index()
	vis := w.Visibility()

	ids := []fieldID{fieldName, fieldWidth, fieldHeight, fieldX, fieldY, fieldMonitor, fieldFullscreen, fieldProjection}
	if vis.Quality {
		ids = append(ids, fieldQuality)
	}
	if vis.FOV {
		ids = append(ids, fieldFovH, fieldFovV)
	}
	if vis.HeightOffset {
		ids = append(ids, fieldHeightOffset)
	}
	if vis.Spout {
		ids = append(ids, fieldSpout)
	}
	ids = append(ids, fieldDecorated, fieldGUI)

	refs := make([]fieldRef, len(ids))
	for j, id := range ids {
		refs[j] = fieldRef{window: i, id: id}
	}
	return refs
}

// validator returns the keystroke filter of a text field
func validator(w *layout.WindowControl, id fieldID) func(string) error {
	switch id {
	case fieldWidth, fieldHeight:
		return layout.SizeRange(w.MaxPixels()).Validate
	case fieldX, fieldY:
		return layout.OffsetRange(w.MaxPixels()).Validate
	case fieldFovH:
		return layout.FovHorizontalRange.Validate
	case fieldFovV:
		return layout.FovVerticalRange.Validate
	case fieldHeightOffset:
		return layout.HeightOffsetRange.Validate
	}
	return nil
}

// controlText is what a text field shows for the current value of w
func controlText(w *layout.WindowControl, id fieldID) string {
	width, height := w.Size()
	x, y := w.Offset()
	switch id {
	case fieldName:
		return w.Name()
	case fieldWidth:
		return strconv.Itoa(width)
	case fieldHeight:
		return strconv.Itoa(height)
	case fieldX:
		return strconv.Itoa(x)
	case fieldY:
		return strconv.Itoa(y)
	case fieldFovH:
		return strconv.FormatFloat(w.FovHorizontal(), 'f', -1, 64)
	case fieldFovV:
		return strconv.FormatFloat(w.FovVertical(), 'f', -1, 64)
	case fieldHeightOffset:
		return strconv.FormatFloat(w.HeightOffset(), 'f', -1, 64)
	}
	return ""
}

// applyText feeds text field input to w
func applyText(w *layout.WindowControl, id fieldID, text string) {
	switch id {
	case fieldName:
		w.SetName(text)
	case fieldWidth:
		w.SetSize(layout.Width, text)
	case fieldHeight:
		w.SetSize(layout.Height, text)
	case fieldX:
		w.SetOffset(layout.AxisX, text)
	case fieldY:
		w.SetOffset(layout.AxisY, text)
	case fieldFovH:
		w.SetFovHorizontal(text)
	case fieldFovV:
		w.SetFovVertical(text)
	case fieldHeightOffset:
		w.SetHeightOffset(text)
	}
}

// cycleSelect moves a selector by delta options, wrapping around
func cycleSelect(w *layout.WindowControl, id fieldID, delta int) bool {
	switch id {
	case fieldMonitor:
		w.SetMonitor(wrap(w.MonitorIndex()+delta, w.MonitorCount()))
	case fieldProjection:
		ps := layout.Projections()
		w.SetProjection(ps[wrap(int(w.Projection())+delta, len(ps))])
	case fieldQuality:
		w.SetQuality(wrap(w.QualityIndex()+delta, len(layout.Qualities())))
	default:
		return false
	}
	return true
}

func selectLabel(w *layout.WindowControl, monitors []layout.Rect, id fieldID) string {
	switch id {
	case fieldMonitor:
		i := w.MonitorIndex()
		return fmt.Sprintf("%d: %s", i+1, monitors[i])
	case fieldProjection:
		return w.Projection().String()
	case fieldQuality:
		q, _ := layout.QualityAt(w.QualityIndex())
		return q.Label
	}
	return ""
}

func checked(w *layout.WindowControl, id fieldID) bool {
	switch id {
	case fieldSpout:
		return w.SpoutOutput()
	case fieldDecorated:
		return w.Decorated()
	case fieldGUI:
		return w.GUIWindow()
	}
	return false
}

// toggleCheck flips a checkbox field
func toggleCheck(w *layout.WindowControl, id fieldID) bool {
	switch id {
	case fieldSpout:
		w.SetSpoutOutput(!w.SpoutOutput())
	case fieldDecorated:
		w.SetDecorated(!w.Decorated())
	case fieldGUI:
		w.SetGuiWindow(!w.GUIWindow())
	default:
		return false
	}
	return true
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}
