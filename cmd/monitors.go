package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/waylayout/internal/config"
	"github.com/bnema/waylayout/internal/ui"
)

// DisplayInfo represents the display information output
type DisplayInfo struct {
	Backend  string        `json:"backend,omitempty"`
	Monitors []MonitorInfo `json:"monitors"`
	Error    string        `json:"error,omitempty"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	Index   int     `json:"index"`
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Primary bool    `json:"primary"`
	Scale   float64 `json:"scale"`
}

var (
	jsonOutput bool
)

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "Show monitor configuration",
	Long: `Display the monitors windows can be placed on, in the order the editor
numbers them.`,
	RunE: runMonitors,
}

func init() {
	monitorsCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.AddCommand(monitorsCmd)
}

func runMonitors(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	disp, err := detectMonitors(config.Get())
	if err != nil {
		if jsonOutput {
			return json.NewEncoder(out).Encode(DisplayInfo{Error: err.Error()})
		}
		return err
	}
	defer disp.Close()

	monitors := disp.GetMonitors()

	if jsonOutput {
		info := DisplayInfo{
			Backend:  disp.BackendName(),
			Monitors: make([]MonitorInfo, len(monitors)),
		}
		for i, mon := range monitors {
			info.Monitors[i] = MonitorInfo{
				Index:   i,
				ID:      mon.ID,
				Name:    mon.Name,
				X:       mon.X,
				Y:       mon.Y,
				Width:   mon.Width,
				Height:  mon.Height,
				Primary: mon.Primary,
				Scale:   mon.Scale,
			}
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	if len(monitors) == 0 {
		fmt.Fprintln(out, "No monitors detected")
		return nil
	}

	view := ui.MonitorInfo{Backend: disp.BackendName(), Width: 60}
	for _, mon := range monitors {
		view.Monitors = append(view.Monitors, ui.Monitor{
			Name:     mon.Name,
			Size:     fmt.Sprintf("%dx%d", mon.Width, mon.Height),
			Position: fmt.Sprintf("(%d, %d)", mon.X, mon.Y),
			Scale:    mon.Scale,
			Primary:  mon.Primary,
		})
	}
	fmt.Fprintln(out, view.View())

	if len(monitors) > 1 {
		w, h := disp.VirtualSize()
		fmt.Fprintf(out, "Total virtual screen: %dx%d\n", w, h)
	}

	return nil
}
