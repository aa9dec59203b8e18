package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusBar shows the editor title and whether the layout has unsaved edits
type StatusBar struct {
	Width  int
	Title  string
	Status string
	Saved  bool
}

// NewStatusBar creates a new status bar
func NewStatusBar(title string) *StatusBar {
	return &StatusBar{
		Title: title,
		Saved: true,
	}
}

// Update tracks the terminal width
func (s *StatusBar) Update(msg tea.Msg) *StatusBar {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		s.Width = msg.Width
	}
	return s
}

// View renders the status bar
func (s *StatusBar) View() string {
	title := TitleStyle.Render(s.Title)
	status := FormatStatus(s.Saved, s.Status)

	gap := s.Width - lipgloss.Width(title) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}

	return title + strings.Repeat(" ", gap) + status
}

// InfoPanel represents a panel with information
type InfoPanel struct {
	Title   string
	Content []string
	Width   int
}

// View renders the info panel
func (p *InfoPanel) View() string {
	var b strings.Builder

	if p.Title != "" {
		b.WriteString(SubheaderStyle.Render(p.Title))
		b.WriteString("\n")
	}

	for i, line := range p.Content {
		b.WriteString(TextStyle.Render(line))
		if i < len(p.Content)-1 {
			b.WriteString("\n")
		}
	}

	return BoxStyle.Width(p.Width).Render(b.String())
}

// MonitorInfo displays the detected monitors
type MonitorInfo struct {
	Monitors []Monitor
	Backend  string
	Width    int
}

// Monitor is one row of MonitorInfo
type Monitor struct {
	Name     string
	Size     string
	Position string
	Scale    float64
	Primary  bool
}

// View renders the monitor info
func (m *MonitorInfo) View() string {
	var b strings.Builder

	header := fmt.Sprintf("Detected %d monitor(s)", len(m.Monitors))
	if m.Backend != "" {
		header += " via " + m.Backend
	}
	b.WriteString(SubheaderStyle.Render(header + ":"))
	b.WriteString("\n\n")

	for i, mon := range m.Monitors {
		name := mon.Name
		if mon.Primary {
			name += " " + InfoStyle.Render("(primary)")
		}

		b.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, IconMonitor, BoldStyle.Render(name)))
		b.WriteString(fmt.Sprintf("   %s at %s",
			TextStyle.Render(mon.Size),
			SubtleStyle.Render(mon.Position)))
		if mon.Scale != 0 && mon.Scale != 1.0 {
			b.WriteString(SubtleStyle.Render(fmt.Sprintf(" scale %.2gx", mon.Scale)))
		}

		if i < len(m.Monitors)-1 {
			b.WriteString("\n\n")
		}
	}

	return BoxStyle.Width(m.Width).Render(b.String())
}

// Message displays a styled message
type Message struct {
	Type    MessageType
	Content string
}

// MessageType represents the type of message
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// View renders the message
func (m *Message) View() string {
	if m.Content == "" {
		return ""
	}

	var style lipgloss.Style
	var prefix string

	switch m.Type {
	case MessageSuccess:
		style = SuccessStyle
		prefix = IconSuccess + " "
	case MessageWarning:
		style = WarningStyle
		prefix = IconWarning + " "
	case MessageError:
		style = ErrorStyle
		prefix = IconError + " "
	default:
		style = InfoStyle
		prefix = IconInfo + " "
	}

	return style.Render(prefix + m.Content)
}
