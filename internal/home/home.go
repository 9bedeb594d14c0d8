// Package home manages the docaudit home directory where analysis
// artifacts are persisted.
package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the docaudit home directory.
	DefaultDirName = ".docaudit"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the docaudit home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.docaudit).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// OriginalsDir returns the directory holding uploaded documents as received.
func (d *Dir) OriginalsDir() string {
	return filepath.Join(d.path, "originals")
}

// OriginalPath returns the stored original for an analysis.
func (d *Dir) OriginalPath(analysisID string) string {
	return filepath.Join(d.OriginalsDir(), analysisID+".pdf")
}

// ReportsDir returns the directory holding analysis reports.
func (d *Dir) ReportsDir() string {
	return filepath.Join(d.path, "reports")
}

// ReportPath returns the report file for an analysis.
func (d *Dir) ReportPath(analysisID string) string {
	return filepath.Join(d.ReportsDir(), analysisID+".json")
}

// OverlaysDir returns the directory holding annotated overlay documents.
func (d *Dir) OverlaysDir() string {
	return filepath.Join(d.path, "overlays")
}

// OverlayPath returns the annotated document for an analysis.
// kind is "suspicious" or "fonts".
func (d *Dir) OverlayPath(analysisID, kind string) string {
	return filepath.Join(d.OverlaysDir(), fmt.Sprintf("%s.%s.pdf", analysisID, kind))
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	for _, p := range []string{d.OriginalsDir(), d.ReportsDir(), d.OverlaysDir()} {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", p, err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
