// Package export turns the live windows of a layout into a cluster document
// the renderer reads at startup.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bnema/waylayout/internal/layout"
)

const documentVersion = 1

// GUITag marks the window that hosts the user interface
const GUITag = "GUI"

// Options fills in the parts of the document that are not per window
type Options struct {
	MasterAddress string
	Port          int
}

// Cluster is the root of the exported document
type Cluster struct {
	Version       int    `json:"version"`
	MasterAddress string `json:"masteraddress"`
	Nodes         []Node `json:"nodes"`
}

// Node is one machine of the cluster. The editor always produces one.
type Node struct {
	Address string   `json:"address"`
	Port    int      `json:"port"`
	Windows []Window `json:"windows"`
}

type IVec2 struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type FVec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Window is one output window
type Window struct {
	ID        int        `json:"id"`
	Name      string     `json:"name,omitempty"`
	Monitor   int        `json:"monitor"`
	Pos       IVec2      `json:"pos"`
	Size      IVec2      `json:"size"`
	Border    bool       `json:"border"`
	Tags      []string   `json:"tags,omitempty"`
	Spout     *Spout     `json:"spout,omitempty"`
	Viewports []Viewport `json:"viewports"`
}

// Spout shares the window's output with other applications
type Spout struct {
	Enabled bool   `json:"enabled"`
	Name    string `json:"name,omitempty"`
}

// Viewport covers the whole window in normalized coordinates
type Viewport struct {
	Pos        FVec2      `json:"pos"`
	Size       FVec2      `json:"size"`
	Projection Projection `json:"projection"`
}

// Projection carries only the parameters its type uses
type Projection struct {
	Type         string   `json:"type"`
	FOV          *FOV     `json:"fov,omitempty"`
	Quality      int      `json:"quality,omitempty"`
	HeightOffset *float64 `json:"heightoffset,omitempty"`
}

// FOV is the field of view of a planar projection in degrees
type FOV struct {
	Horizontal float64 `json:"hfov"`
	Vertical   float64 `json:"vfov"`
}

var projectionTypes = map[layout.Projection]string{
	layout.Planar:          "PlanarProjection",
	layout.Fisheye:         "FisheyeProjection",
	layout.SphericalMirror: "SphericalMirrorProjection",
	layout.Cylindrical:     "CylindricalProjection",
	layout.Equirectangular: "EquirectangularProjection",
}

// Build creates the document for the windows that are currently shown.
// A single live window always gets the GUI tag.
func Build(d *layout.Display, opts Options) Cluster {
	live := d.LiveWindowControls()

	node := Node{
		Address: opts.MasterAddress,
		Port:    opts.Port,
	}
	for i, w := range live {
		node.Windows = append(node.Windows, buildWindow(i, w, len(live) == 1))
	}

	return Cluster{
		Version:       documentVersion,
		MasterAddress: opts.MasterAddress,
		Nodes:         []Node{node},
	}
}

func buildWindow(id int, w *layout.WindowControl, onlyWindow bool) Window {
	width, height := w.Size()
	x, y := w.Offset()

	win := Window{
		ID:      id,
		Name:    w.Name(),
		Monitor: w.MonitorIndex(),
		Pos:     IVec2{X: x, Y: y},
		Size:    IVec2{X: width, Y: height},
		Border:  w.Decorated(),
		Viewports: []Viewport{{
			Pos:        FVec2{X: 0, Y: 0},
			Size:       FVec2{X: 1, Y: 1},
			Projection: buildProjection(w),
		}},
	}
	if onlyWindow || w.GUIWindow() {
		win.Tags = []string{GUITag}
	}
	if w.SpoutOutput() {
		win.Spout = &Spout{Enabled: true, Name: w.Name()}
	}
	return win
}

func buildProjection(w *layout.WindowControl) Projection {
	p := Projection{Type: projectionTypes[w.Projection()]}
	vis := w.Visibility()
	if vis.FOV {
		p.FOV = &FOV{Horizontal: w.FovHorizontal(), Vertical: w.FovVertical()}
	}
	if vis.Quality {
		p.Quality = w.QualityValue()
	}
	if vis.HeightOffset {
		offset := w.HeightOffset()
		p.HeightOffset = &offset
	}
	return p
}

// Write encodes the document as indented JSON
func Write(w io.Writer, c Cluster) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode cluster document: %w", err)
	}
	return nil
}

// WriteFile writes the document to path, creating parent directories
func WriteFile(path string, c Cluster) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := Write(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
