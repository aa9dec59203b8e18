// Package profile stores editor layouts as YAML so a session can be resumed.
package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bnema/waylayout/internal/layout"
	"github.com/bnema/waylayout/internal/logger"
)

// FormatVersion is written into every profile
const FormatVersion = 1

// ErrUnsupportedVersion is returned for profiles written by a newer format
var ErrUnsupportedVersion = errors.New("unsupported profile version")

// File is the on-disk shape of a profile
type File struct {
	Version int             `yaml:"version"`
	Layout  layout.Snapshot `yaml:"layout"`
}

// Encode writes s as a YAML profile
func Encode(w io.Writer, s layout.Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(File{Version: FormatVersion, Layout: s}); err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return enc.Close()
}

// Decode reads a YAML profile. Unknown keys are rejected.
func Decode(data []byte) (layout.Snapshot, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return layout.Snapshot{}, fmt.Errorf("profile is empty")
		}
		return layout.Snapshot{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	if f.Version > FormatVersion {
		return layout.Snapshot{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, f.Version)
	}
	return f.Layout, nil
}

// Save writes s to path
func Save(path string, s layout.Snapshot) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create profile directory: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	logger.Debugf("Saved profile to %s", path)
	return nil
}

// Load reads the snapshot stored at path
func Load(path string) (layout.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return layout.Snapshot{}, fmt.Errorf("failed to read profile: %w", err)
	}
	s, err := Decode(data)
	if err != nil {
		return layout.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Apply loads path into d. Monitors recorded in the profile are informational,
// windows on a monitor index d does not have stay on their current monitor.
func Apply(path string, d *layout.Display) error {
	s, err := Load(path)
	if err != nil {
		return err
	}
	if len(s.Monitors) != len(d.Monitors()) {
		logger.Warn("profile was saved with a different monitor count",
			"saved", len(s.Monitors), "current", len(d.Monitors()))
	}
	d.Restore(s)
	return nil
}
