package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestStatusBar(t *testing.T) {
	t.Run("creates new status bar", func(t *testing.T) {
		sb := NewStatusBar("waylayout")

		if sb.Title != "waylayout" {
			t.Errorf("Expected title 'waylayout', got %q", sb.Title)
		}
		if !sb.Saved {
			t.Error("Expected a new status bar to start saved")
		}
	})

	t.Run("renders status bar", func(t *testing.T) {
		sb := NewStatusBar("waylayout")
		sb.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
		sb.Status = "Editing"
		sb.Saved = false

		if sb.Width != 80 {
			t.Errorf("Expected width 80, got %d", sb.Width)
		}

		view := sb.View()
		for _, want := range []string{"waylayout", "Editing", "○"} {
			if !strings.Contains(view, want) {
				t.Errorf("Status bar should contain %q", want)
			}
		}
	})
}

func TestInfoPanel(t *testing.T) {
	tests := []struct {
		name     string
		panel    InfoPanel
		mustHave []string
	}{
		{
			name: "with title",
			panel: InfoPanel{
				Title:   "Export",
				Content: []string{"Window 1", "Window 2"},
				Width:   50,
			},
			mustHave: []string{"Export", "Window 1", "Window 2"},
		},
		{
			name: "without title",
			panel: InfoPanel{
				Content: []string{"Just content"},
				Width:   50,
			},
			mustHave: []string{"Just content"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := tt.panel.View()

			for _, must := range tt.mustHave {
				if !strings.Contains(view, must) {
					t.Errorf("InfoPanel should contain %q", must)
				}
			}
		})
	}
}

func TestMonitorInfo(t *testing.T) {
	mi := MonitorInfo{
		Backend: "wlr-randr",
		Monitors: []Monitor{
			{
				Name:     "DP-1",
				Size:     "1920x1080",
				Position: "0,0",
				Primary:  true,
			},
			{
				Name:     "DP-2",
				Size:     "2560x1440",
				Position: "1920,0",
				Scale:    1.5,
			},
		},
		Width: 80,
	}

	view := mi.View()

	for _, want := range []string{
		"Detected 2 monitor(s) via wlr-randr",
		"DP-1",
		"DP-2",
		"(primary)",
		"2560x1440",
		"scale 1.5x",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("MonitorInfo should contain %q", want)
		}
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name   string
		msg    Message
		prefix string
	}{
		{
			name:   "info message",
			msg:    Message{Type: MessageInfo, Content: "Information"},
			prefix: IconInfo,
		},
		{
			name:   "success message",
			msg:    Message{Type: MessageSuccess, Content: "Saved"},
			prefix: IconSuccess,
		},
		{
			name:   "warning message",
			msg:    Message{Type: MessageWarning, Content: "Careful"},
			prefix: IconWarning,
		},
		{
			name:   "error message",
			msg:    Message{Type: MessageError, Content: "Failed"},
			prefix: IconError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := tt.msg.View()

			if !strings.Contains(view, tt.msg.Content) {
				t.Errorf("Message should contain %q", tt.msg.Content)
			}
			if !strings.Contains(view, tt.prefix) {
				t.Errorf("Message should have prefix %q", tt.prefix)
			}
		})
	}

	empty := Message{}
	if empty.View() != "" {
		t.Error("empty message should render nothing")
	}
}
