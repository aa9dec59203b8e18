package display

import "fmt"

// staticBackend serves monitors listed in the config file. It covers headless
// machines and layouts prepared for a different host.
type staticBackend struct {
	monitors []*Monitor
}

func newStaticBackend(monitors []*Monitor) (Backend, error) {
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no static monitors configured")
	}
	return &staticBackend{monitors: monitors}, nil
}

func (s *staticBackend) Name() string {
	return BackendStatic
}

func (s *staticBackend) GetMonitors() ([]*Monitor, error) {
	out := make([]*Monitor, 0, len(s.monitors))
	for i, m := range s.monitors {
		if m.Width <= 0 || m.Height <= 0 {
			return nil, fmt.Errorf("static monitor %d (%s) has invalid size %dx%d", i, m.Name, m.Width, m.Height)
		}
		c := *m
		if c.ID == "" {
			c.ID = fmt.Sprintf("%d", i)
		}
		if c.Scale == 0 {
			c.Scale = 1.0
		}
		out = append(out, &c)
	}
	return out, nil
}

func (s *staticBackend) Close() error {
	return nil
}
