// Package ui provides the terminal editor and the shared styling of the
// waylayout CLI
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - consistent across the application
var (
	ColorPrimary   = lipgloss.Color("39")  // Bright blue
	ColorSecondary = lipgloss.Color("205") // Pink/magenta
	ColorSuccess   = lipgloss.Color("82")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorInfo      = lipgloss.Color("86")  // Cyan

	ColorText      = lipgloss.Color("252") // Light gray
	ColorSubtle    = lipgloss.Color("241") // Medium gray
	ColorMuted     = lipgloss.Color("238") // Dark gray
	ColorHighlight = lipgloss.Color("255") // White

	ColorSaved    = ColorSuccess
	ColorModified = ColorWarning
	ColorActive   = ColorPrimary
	ColorInactive = ColorSubtle
)

// Base styles
var (
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	SubheaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorMuted).
			Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle).
			Padding(0, 1)

	ListItemStyle = lipgloss.NewStyle().
			Foreground(ColorText)
)

// Editor styles
var (
	SavedIndicator = lipgloss.NewStyle().
			Foreground(ColorSaved).
			Render("●")

	ModifiedIndicator = lipgloss.NewStyle().
				Foreground(ColorModified).
				Render("○")

	ControlKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	ControlDescStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Width(16)

	FocusedLabelStyle = FieldLabelStyle.
				Foreground(ColorHighlight).
				Bold(true)

	FieldValueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	FocusedValueStyle = lipgloss.NewStyle().
				Foreground(ColorActive)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorMuted).
			Padding(0, 1)

	FocusedButtonStyle = ButtonStyle.
				Foreground(ColorHighlight).
				Background(ColorActive)
)

// WindowPanelStyle frames the form of one window in the window's preview color
func WindowPanelStyle(color lipgloss.Color, focused bool) lipgloss.Style {
	style := BoxStyle.BorderForeground(ColorSubtle)
	if focused {
		style = style.BorderForeground(color)
	}
	return style
}

// FormatControl renders a key hint
func FormatControl(key, desc string) string {
	return ControlKeyStyle.Render(key) + " - " + ControlDescStyle.Render(desc)
}

// FormatStatus prefixes status with the saved or modified indicator
func FormatStatus(saved bool, status string) string {
	indicator := ModifiedIndicator
	if saved {
		indicator = SavedIndicator
	}
	return indicator + " " + status
}

func FormatListItem(item string, active bool) string {
	style := ListItemStyle
	if active {
		style = style.Foreground(ColorActive)
	}
	return "  • " + style.Render(item)
}

// FormatCheckbox renders a checkbox value
func FormatCheckbox(checked bool) string {
	if checked {
		return "[" + IconCheck + "]"
	}
	return "[ ]"
}

// FormatSelect renders the current option of a cycling selector
func FormatSelect(option string) string {
	return fmt.Sprintf("‹ %s ›", option)
}

// Icons
var (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "i"
	IconCheck   = "✓"
	IconMonitor = "▭"
)

// Center places content in the middle of width columns
func Center(width int, content string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

// CreateSeparator creates a horizontal line separator
func CreateSeparator(width int, char string) string {
	if width <= 0 {
		width = 50
	}
	if char == "" {
		char = "─"
	}

	return lipgloss.NewStyle().
		Foreground(ColorSubtle).
		Render(strings.Repeat(char, width))
}
