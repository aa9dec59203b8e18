// Package preview draws the monitor layout and the windows placed on it into
// a character-cell canvas for the terminal editor.
package preview

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/waylayout/internal/layout"
)

// cellAspect is how many pixels tall a cell is for every pixel of width
const cellAspect = 2.0

const defaultMargin = 1

type slot struct {
	mapped  bool
	monitor int
	pixels  layout.Rect // relative to its monitor, as the window control reports it
	cells   layout.Rect
}

// Preview implements layout.Preview for a fixed-size character canvas. Window
// rects are translated by their monitor's origin, scaled with the same factor
// as the monitors and clipped to the monitor they are on.
type Preview struct {
	cols   int
	rows   int
	margin int

	monitors     []layout.Rect
	monitorCells []layout.Rect
	desktop      layout.Rect
	pixelsPerCol float64
	offsetCol    int
	offsetRow    int

	windows [layout.MaxWindows]slot
	active  int

	styles Styles
}

// New creates a preview canvas of cols x rows cells
func New(cols, rows int) *Preview {
	return &Preview{
		cols:   max(cols, 8),
		rows:   max(rows, 4),
		margin: defaultMargin,
		active: 1,
		styles: DefaultStyles(),
	}
}

// SetStyles replaces the colours used by View
func (p *Preview) SetStyles(s Styles) {
	p.styles = s
}

// Size returns the canvas size in cells
func (p *Preview) Size() (cols, rows int) {
	return p.cols, p.rows
}

// Resize changes the canvas size and re-projects everything already mapped
func (p *Preview) Resize(cols, rows int) {
	p.cols = max(cols, 8)
	p.rows = max(rows, 4)
	if len(p.monitors) > 0 {
		p.SetMonitorResolutions(p.monitors)
	}
}

// SetMonitorResolutions fits the bounding box of all monitors into the canvas
func (p *Preview) SetMonitorResolutions(monitors []layout.Rect) {
	p.monitors = append([]layout.Rect(nil), monitors...)
	p.monitorCells = p.monitorCells[:0]
	p.desktop = layout.Rect{}
	for _, m := range p.monitors {
		p.desktop = p.desktop.Union(m)
	}
	if p.desktop.Empty() {
		return
	}

	availCols := float64(p.cols - 2*p.margin)
	availRows := float64(p.rows - 2*p.margin)
	p.pixelsPerCol = math.Max(
		float64(p.desktop.Width)/availCols,
		float64(p.desktop.Height)/(availRows*cellAspect),
	)

	usedCols := int(math.Round(float64(p.desktop.Width) / p.pixelsPerCol))
	usedRows := int(math.Round(float64(p.desktop.Height) / (p.pixelsPerCol * cellAspect)))
	p.offsetCol = (p.cols - usedCols) / 2
	p.offsetRow = (p.rows - usedRows) / 2

	for _, m := range p.monitors {
		p.monitorCells = append(p.monitorCells, p.toCells(m))
	}

	// monitor geometry changed, so every window has to be projected again
	for i := range p.windows {
		s := p.windows[i]
		switch {
		case !s.mapped:
		case s.monitor >= len(p.monitorCells):
			p.windows[i].mapped = false
		default:
			p.MapWindowToPreview(s.monitor, i, s.pixels)
		}
	}
}

// SetActiveWindowCount limits drawing to the first n windows
func (p *Preview) SetActiveWindowCount(n int) {
	p.active = min(max(n, 0), layout.MaxWindows)
}

// ActiveWindowCount returns how many windows are drawn
func (p *Preview) ActiveWindowCount() int {
	return p.active
}

// MapWindowToPreview projects a window rect into canvas cells
func (p *Preview) MapWindowToPreview(monitorIndex, windowIndex int, r layout.Rect) {
	if windowIndex < 0 || windowIndex >= len(p.windows) {
		return
	}
	if monitorIndex < 0 || monitorIndex >= len(p.monitorCells) {
		return
	}
	mon := p.monitors[monitorIndex]
	desktop := layout.Rect{X: mon.X + r.X, Y: mon.Y + r.Y, Width: r.Width, Height: r.Height}
	p.windows[windowIndex] = slot{
		mapped:  true,
		monitor: monitorIndex,
		pixels:  r,
		cells:   p.toCells(desktop).Intersect(p.monitorCells[monitorIndex]),
	}
}

// MonitorRect returns the canvas rect of monitor i
func (p *Preview) MonitorRect(i int) (layout.Rect, bool) {
	if i < 0 || i >= len(p.monitorCells) {
		return layout.Rect{}, false
	}
	return p.monitorCells[i], true
}

// WindowRect returns the canvas rect of window i. The rect is empty when the
// window lies completely outside its monitor.
func (p *Preview) WindowRect(i int) (layout.Rect, bool) {
	if i < 0 || i >= len(p.windows) || !p.windows[i].mapped {
		return layout.Rect{}, false
	}
	return p.windows[i].cells, true
}

func (p *Preview) toCells(r layout.Rect) layout.Rect {
	if p.pixelsPerCol == 0 {
		return layout.Rect{}
	}
	x1 := p.col(r.X)
	y1 := p.row(r.Y)
	x2 := p.col(r.Right())
	y2 := p.row(r.Bottom())
	return layout.Rect{X: x1, Y: y1, Width: max(x2-x1, 1), Height: max(y2-y1, 1)}
}

func (p *Preview) col(x int) int {
	return p.offsetCol + int(math.Round(float64(x-p.desktop.X)/p.pixelsPerCol))
}

func (p *Preview) row(y int) int {
	return p.offsetRow + int(math.Round(float64(y-p.desktop.Y)/(p.pixelsPerCol*cellAspect)))
}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellMonitor
	cellWindow0
	cellWindow1
)

var windowGlyphs = []rune{'▓', '▒'}

type canvas struct {
	runes [][]rune
	kinds [][]cellKind
}

func (p *Preview) draw() canvas {
	c := canvas{
		runes: make([][]rune, p.rows),
		kinds: make([][]cellKind, p.rows),
	}
	for y := range c.runes {
		c.runes[y] = []rune(strings.Repeat(" ", p.cols))
		c.kinds[y] = make([]cellKind, p.cols)
	}

	for i, m := range p.monitorCells {
		c.outline(m)
		c.label(m, strconv.Itoa(i+1))
	}
	for i := 0; i < p.active; i++ {
		s := p.windows[i]
		if !s.mapped || s.cells.Empty() {
			continue
		}
		c.fill(s.cells, windowGlyphs[i], cellWindow0+cellKind(i))
	}
	return c
}

func (c canvas) set(x, y int, r rune, k cellKind) {
	if y < 0 || y >= len(c.runes) || x < 0 || x >= len(c.runes[y]) {
		return
	}
	c.runes[y][x] = r
	c.kinds[y][x] = k
}

func (c canvas) outline(r layout.Rect) {
	x2, y2 := r.Right()-1, r.Bottom()-1
	for x := r.X; x <= x2; x++ {
		c.set(x, r.Y, '─', cellMonitor)
		c.set(x, y2, '─', cellMonitor)
	}
	for y := r.Y; y <= y2; y++ {
		c.set(r.X, y, '│', cellMonitor)
		c.set(x2, y, '│', cellMonitor)
	}
	c.set(r.X, r.Y, '┌', cellMonitor)
	c.set(x2, r.Y, '┐', cellMonitor)
	c.set(r.X, y2, '└', cellMonitor)
	c.set(x2, y2, '┘', cellMonitor)
}

func (c canvas) label(r layout.Rect, text string) {
	for i, ch := range text {
		c.set(r.X+1+i, r.Y+1, ch, cellMonitor)
	}
}

func (c canvas) fill(r layout.Rect, glyph rune, k cellKind) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			c.set(x, y, glyph, k)
		}
	}
}

// Render returns the canvas as plain text, one line per row
func (p *Preview) Render() string {
	c := p.draw()
	lines := make([]string, len(c.runes))
	for y, row := range c.runes {
		lines[y] = string(row)
	}
	return strings.Join(lines, "\n")
}

// View returns the canvas coloured with the preview styles
func (p *Preview) View() string {
	c := p.draw()
	var b strings.Builder
	for y, row := range c.runes {
		if y > 0 {
			b.WriteByte('\n')
		}
		// render runs of the same kind with one style call
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && c.kinds[y][x] == c.kinds[y][start] {
				continue
			}
			b.WriteString(p.styles.forKind(c.kinds[y][start]).Render(string(row[start:x])))
			start = x
		}
	}
	return b.String()
}

// Styles colours the preview
type Styles struct {
	Monitor lipgloss.Style
	Windows [layout.MaxWindows]lipgloss.Style
}

// DefaultStyles matches the window colours used by the editor panels
func DefaultStyles() Styles {
	return Styles{
		Monitor: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Windows: [layout.MaxWindows]lipgloss.Style{
			lipgloss.NewStyle().Foreground(WindowColor(0)),
			lipgloss.NewStyle().Foreground(WindowColor(1)),
		},
	}
}

// WindowColor is the colour that identifies window i across the UI
func WindowColor(i int) lipgloss.Color {
	colors := []lipgloss.Color{"39", "214"}
	return colors[i%len(colors)]
}

func (s Styles) forKind(k cellKind) lipgloss.Style {
	switch k {
	case cellMonitor:
		return s.Monitor
	case cellWindow0, cellWindow1:
		return s.Windows[int(k-cellWindow0)]
	default:
		return lipgloss.NewStyle()
	}
}
