// Package export writes the current overlay to files other tools can open.
// Nothing here is ever read back.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"asciiline/internal/overlay"

	"github.com/rs/zerolog/log"
)

// Output file names inside the export directory
const (
	KMLFile      = "waypoints.kml"
	GeoJSONFile  = "waypoints.geojson"
	PolylineFile = "waypoints.polyline"
)

// Exporter writes overlay descriptions into a directory
type Exporter struct {
	dir string
}

// Result lists the files written by one export
type Result struct {
	KML      string
	GeoJSON  string
	Polyline string
}

// NewExporter creates an exporter writing into dir.
// If dir is empty, uses ~/.asciiline/exports
func NewExporter(dir string) (*Exporter, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".asciiline", "exports")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	return &Exporter{
		dir: dir,
	}, nil
}

// Dir returns the export directory
func (e *Exporter) Dir() string {
	return e.dir
}

// Export writes the description as KML, GeoJSON and an encoded polyline,
// replacing the files of any earlier export
func (e *Exporter) Export(desc overlay.Description) (Result, error) {
	result := Result{
		KML:      filepath.Join(e.dir, KMLFile),
		GeoJSON:  filepath.Join(e.dir, GeoJSONFile),
		Polyline: filepath.Join(e.dir, PolylineFile),
	}

	if err := writeFile(result.KML, func(w io.Writer) error { return WriteKML(w, desc) }); err != nil {
		return Result{}, err
	}

	if err := writeFile(result.GeoJSON, func(w io.Writer) error { return WriteGeoJSON(w, desc) }); err != nil {
		return Result{}, err
	}

	if err := writeFile(result.Polyline, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, EncodePolyline(desc))
		return err
	}); err != nil {
		return Result{}, err
	}

	log.Info().
		Str("dir", e.dir).
		Int("waypoints", len(desc.Markers)).
		Stringer("style", desc.Style).
		Msg("Overlay exported")

	return result, nil
}

// writeFile writes through a temp file so a failed export never leaves a
// truncated file behind
func writeFile(path string, write func(io.Writer) error) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if err := write(tmpFile); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("failed to save %s: %w", filepath.Base(path), err)
	}

	return nil
}
