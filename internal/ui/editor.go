package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/waylayout/internal/export"
	"github.com/bnema/waylayout/internal/layout"
	"github.com/bnema/waylayout/internal/logger"
	"github.com/bnema/waylayout/internal/preview"
	"github.com/bnema/waylayout/internal/profile"
)

// EditorOptions configures an Editor
type EditorOptions struct {
	Title       string
	ProfilePath string
	ExportPath  string
	Export      export.Options
	PreviewCols int
	PreviewRows int
	// Initial is restored into the new layout by NewSession
	Initial *layout.Snapshot
}

type profileSavedMsg struct {
	path string
	err  error
}

type exportedMsg struct {
	path    string
	windows int
	err     error
}

// Editor is the interactive layout editor. It edits a layout.Display through
// a form with one panel per live window and draws the layout on a preview of
// the monitors.
type Editor struct {
	base    *BaseUI
	display *layout.Display
	preview *preview.Preview
	opts    EditorOptions

	keys      keyMap
	help      help.Model
	statusBar *StatusBar
	message   Message

	inputs map[fieldRef]*textinput.Model
	focus  fieldRef
}

// NewSession creates the preview, the display feeding it and an Editor over
// both.
func NewSession(monitors []layout.Rect, opts EditorOptions, layoutOpts ...layout.Option) (*Editor, error) {
	p := preview.New(opts.PreviewCols, opts.PreviewRows)
	d, err := layout.NewDisplay(monitors, p, layoutOpts...)
	if err != nil {
		return nil, err
	}
	if opts.Initial != nil {
		d.Restore(*opts.Initial)
	}
	return NewEditor(d, p, opts), nil
}

// NewEditor creates an editor for d. p must be the preview d reports to.
func NewEditor(d *layout.Display, p *preview.Preview, opts EditorOptions) *Editor {
	if opts.Title == "" {
		opts.Title = "waylayout"
	}

	e := &Editor{
		display:   d,
		preview:   p,
		opts:      opts,
		keys:      defaultKeyMap(),
		help:      help.New(),
		statusBar: NewStatusBar(opts.Title),
		inputs:    make(map[fieldRef]*textinput.Model),
	}
	e.statusBar.Status = e.profileLabel()

	for _, w := range d.WindowControls() {
		for _, id := range textFields {
			in := textinput.New()
			in.Prompt = ""
			in.Width = 10
			in.CharLimit = 12
			if id == fieldName {
				in.Width = 16
				in.CharLimit = 64
				in.Placeholder = w.Label()
			}
			in.Validate = validator(w, id)
			in.SetValue(controlText(w, id))
			e.inputs[fieldRef{window: w.Index(), id: id}] = &in
		}
	}

	e.setFocus(e.fields()[0])
	return e
}

// Display returns the edited layout
func (e *Editor) Display() *layout.Display {
	return e.display
}

// SetBase implements UIModel
func (e *Editor) SetBase(base *BaseUI) {
	e.base = base
}

// OnShutdown implements UIModel
func (e *Editor) OnShutdown() error {
	if !e.statusBar.Saved {
		logger.Warn("Editor closed with unsaved changes", "profile", e.opts.ProfilePath)
	}
	return nil
}

// Init implements tea.Model
func (e *Editor) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (e *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if e.base != nil {
		if cmd := e.base.BaseUpdate(msg); cmd != nil {
			return e, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.resize(msg)
		return e, nil

	case profileSavedMsg:
		if msg.err != nil {
			e.setMessage(MessageError, msg.err.Error())
			return e, nil
		}
		e.statusBar.Saved = true
		e.statusBar.Status = e.profileLabel()
		e.setMessage(MessageSuccess, "Saved profile to "+msg.path)
		return e, nil

	case exportedMsg:
		if msg.err != nil {
			e.setMessage(MessageError, msg.err.Error())
			return e, nil
		}
		e.setMessage(MessageSuccess, fmt.Sprintf("Exported %d window(s) to %s", msg.windows, msg.path))
		return e, nil

	case tea.KeyMsg:
		return e, e.handleKey(msg)
	}

	if in, ok := e.inputs[e.focus]; ok {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return e, cmd
	}
	return e, nil
}

func (e *Editor) handleKey(msg tea.KeyMsg) tea.Cmd {
	kind := e.focus.id.kind()

	switch {
	case key.Matches(msg, e.keys.Quit):
		return e.quit()
	case key.Matches(msg, e.keys.Next):
		return e.moveFocus(1)
	case key.Matches(msg, e.keys.Prev):
		return e.moveFocus(-1)
	case key.Matches(msg, e.keys.SecondWindow):
		e.display.ToggleSecondWindow()
		e.modified()
		return e.ensureFocus()
	case key.Matches(msg, e.keys.Fullscreen):
		e.focusedWindow().SetFullscreen()
		e.modified()
		e.syncInputs()
		e.refreshFocusedInput()
		return nil
	case key.Matches(msg, e.keys.Save):
		return e.saveProfile()
	case key.Matches(msg, e.keys.Export):
		return e.export()
	}

	if kind == kindText {
		if msg.String() == "enter" {
			return e.moveFocus(1)
		}
		return e.updateInput(msg)
	}

	switch {
	case key.Matches(msg, e.keys.Help):
		e.help.ShowAll = !e.help.ShowAll
	case key.Matches(msg, e.keys.Left), key.Matches(msg, e.keys.Right):
		delta := 1
		if key.Matches(msg, e.keys.Left) {
			delta = -1
		}
		if cycleSelect(e.focusedWindow(), e.focus.id, delta) {
			e.modified()
		}
	case key.Matches(msg, e.keys.Toggle):
		return e.activate()
	}
	return nil
}

// updateInput forwards a key to the focused text field. Keystrokes that would
// leave the field invalid are dropped.
func (e *Editor) updateInput(msg tea.KeyMsg) tea.Cmd {
	in := e.inputs[e.focus]
	prev, pos := in.Value(), in.Position()

	next, cmd := in.Update(msg)
	if next.Err != nil {
		next.SetValue(prev)
		next.SetCursor(pos)
	}
	*in = next

	if next.Value() != prev {
		applyText(e.focusedWindow(), e.focus.id, next.Value())
		e.modified()
	}
	return cmd
}

func (e *Editor) activate() tea.Cmd {
	w := e.focusedWindow()
	switch e.focus.id {
	case fieldFullscreen:
		w.SetFullscreen()
	case fieldToggleWindow:
		e.display.ToggleSecondWindow()
	case fieldMonitor, fieldProjection, fieldQuality:
		cycleSelect(w, e.focus.id, 1)
	default:
		if !toggleCheck(w, e.focus.id) {
			return nil
		}
	}
	e.modified()
	return e.ensureFocus()
}

func (e *Editor) quit() tea.Cmd {
	if e.base != nil {
		if cmd := e.base.InitiateShutdown(); cmd != nil {
			return cmd
		}
	}
	return tea.Quit
}

func (e *Editor) saveProfile() tea.Cmd {
	path := e.opts.ProfilePath
	if path == "" {
		e.setMessage(MessageWarning, "No profile path set, start with --profile")
		return nil
	}
	snap := e.display.Snapshot()
	return func() tea.Msg {
		return profileSavedMsg{path: path, err: profile.Save(path, snap)}
	}
}

func (e *Editor) export() tea.Cmd {
	path := e.opts.ExportPath
	if path == "" {
		e.setMessage(MessageWarning, "No export path set, start with --export")
		return nil
	}
	cluster := export.Build(e.display, e.opts.Export)
	windows := e.display.ActiveWindowCount()
	return func() tea.Msg {
		return exportedMsg{path: path, windows: windows, err: export.WriteFile(path, cluster)}
	}
}

// fields lists every focusable field in form order
func (e *Editor) fields() []fieldRef {
	var refs []fieldRef
	for _, w := range e.display.LiveWindowControls() {
		refs = append(refs, windowFields(w)...)
	}
	return append(refs, toggleWindowRef)
}

func (e *Editor) focusIndex() int {
	for i, ref := range e.fields() {
		if ref == e.focus {
			return i
		}
	}
	return -1
}

func (e *Editor) moveFocus(delta int) tea.Cmd {
	fields := e.fields()
	i := e.focusIndex()
	if i < 0 {
		i = 0
	} else {
		i = wrap(i+delta, len(fields))
	}
	return e.setFocus(fields[i])
}

// ensureFocus moves focus to the first field when the focused one is gone
func (e *Editor) ensureFocus() tea.Cmd {
	e.syncInputs()
	if e.focusIndex() >= 0 {
		return nil
	}
	return e.setFocus(e.fields()[0])
}

func (e *Editor) setFocus(ref fieldRef) tea.Cmd {
	if in, ok := e.inputs[e.focus]; ok {
		in.Blur()
	}
	e.focus = ref
	e.syncInputs()

	if in, ok := e.inputs[ref]; ok {
		in.SetValue(controlText(e.display.WindowControl(ref.window), ref.id))
		in.CursorEnd()
		return in.Focus()
	}
	return nil
}

// syncInputs refreshes every text field except the focused one from its
// window, so edits made elsewhere and rejected partial input both show the
// value actually in effect.
func (e *Editor) syncInputs() {
	for ref, in := range e.inputs {
		if ref == e.focus {
			continue
		}
		in.SetValue(controlText(e.display.WindowControl(ref.window), ref.id))
	}
}

// refreshFocusedInput overwrites the text being edited with the value in
// effect, for changes that did not come from typing.
func (e *Editor) refreshFocusedInput() {
	if in, ok := e.inputs[e.focus]; ok {
		in.SetValue(controlText(e.focusedWindow(), e.focus.id))
		in.CursorEnd()
	}
}

func (e *Editor) focusedWindow() *layout.WindowControl {
	if e.focus.window < 0 {
		return e.display.WindowControl(0)
	}
	return e.display.WindowControl(e.focus.window)
}

func (e *Editor) modified() {
	e.statusBar.Saved = false
	e.statusBar.Status = e.profileLabel() + " (modified)"
	e.message = Message{}
}

func (e *Editor) setMessage(t MessageType, content string) {
	e.message = Message{Type: t, Content: content}
}

func (e *Editor) profileLabel() string {
	if e.opts.ProfilePath == "" {
		return "unsaved layout"
	}
	return e.opts.ProfilePath
}

func (e *Editor) resize(msg tea.WindowSizeMsg) {
	e.statusBar.Update(msg)
	e.help.Width = msg.Width

	cols := max(msg.Width-4, 8)
	rows := max(msg.Height/3, 4)
	if e.opts.PreviewRows > 0 {
		rows = min(rows, e.opts.PreviewRows)
	}
	e.preview.Resize(cols, rows)
}

// View implements tea.Model
func (e *Editor) View() string {
	var b strings.Builder

	b.WriteString(e.statusBar.View())
	b.WriteString("\n")
	b.WriteString(BoxStyle.Render(e.preview.View()))
	b.WriteString("\n")

	var panels []string
	for _, w := range e.display.LiveWindowControls() {
		panels = append(panels, e.windowPanel(w))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	b.WriteString("\n")
	b.WriteString(e.buttonView(toggleWindowRef, e.display.ToggleLabel()))
	b.WriteString("\n")

	if msg := e.message.View(); msg != "" {
		b.WriteString(msg)
		b.WriteString("\n")
	}
	b.WriteString(e.help.View(e.keys))

	return b.String()
}

func (e *Editor) windowPanel(w *layout.WindowControl) string {
	color := preview.WindowColor(w.Index())
	title := lipgloss.NewStyle().Bold(true).Foreground(color).Render(w.Label())
	if w.GUIWindow() {
		title += SubtleStyle.Render(" (GUI)")
	}

	lines := []string{title}
	for _, ref := range windowFields(w) {
		lines = append(lines, e.fieldView(w, ref))
	}

	focused := e.focus.window == w.Index()
	return WindowPanelStyle(color, focused).Render(strings.Join(lines, "\n"))
}

func (e *Editor) fieldView(w *layout.WindowControl, ref fieldRef) string {
	focused := ref == e.focus
	labelStyle, valueStyle := FieldLabelStyle, FieldValueStyle
	if focused {
		labelStyle, valueStyle = FocusedLabelStyle, FocusedValueStyle
	}

	var value string
	switch ref.id.kind() {
	case kindText:
		value = e.inputs[ref].View()
	case kindSelect:
		value = valueStyle.Render(FormatSelect(selectLabel(w, e.display.Monitors(), ref.id)))
	case kindCheck:
		value = valueStyle.Render(FormatCheckbox(checked(w, ref.id)))
	case kindButton:
		return e.buttonView(ref, ref.id.label())
	}
	return labelStyle.Render(ref.id.label()) + value
}

func (e *Editor) buttonView(ref fieldRef, label string) string {
	if ref == e.focus {
		return FocusedButtonStyle.Render(label)
	}
	return ButtonStyle.Render(label)
}
