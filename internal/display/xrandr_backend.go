package display

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// xrandrBackend asks the X server (or XWayland) for active CRTCs
type xrandrBackend struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

func newXRandrBackend() (Backend, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}
	if err := randr.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("randr init failed: %w", err)
	}
	return &xrandrBackend{xu: xu, root: xu.RootWin()}, nil
}

func (x *xrandrBackend) Name() string {
	return BackendXRandr
}

func (x *xrandrBackend) GetMonitors() ([]*Monitor, error) {
	conn := x.xu.Conn()

	resources, err := randr.GetScreenResources(conn, x.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(conn, x.root).Reply(); err == nil {
		primary = reply.Output
	}

	var monitors []*Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(conn, info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		monitors = append(monitors, &Monitor{
			ID:      fmt.Sprintf("%d", i),
			Name:    name,
			X:       int(info.X),
			Y:       int(info.Y),
			Width:   int(info.Width),
			Height:  int(info.Height),
			Primary: primary != 0 && info.Outputs[0] == primary,
			Scale:   1.0,
		})
	}

	if len(monitors) == 0 {
		return nil, fmt.Errorf("no active CRTCs found")
	}
	return monitors, nil
}

func (x *xrandrBackend) Close() error {
	x.xu.Conn().Close()
	return nil
}
