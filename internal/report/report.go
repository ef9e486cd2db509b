// Package report turns scan results into a serializable summary, written as
// JSON by the MCP tools and as YAML by the command line.
package report

import (
	"errors"
	"fmt"
	"image"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/stripe-orient/internal/detection"
)

// Scan outcomes.
const (
	OutcomeNoPattern = "no_pattern"
	OutcomeSingle    = "single"
	OutcomeAmbiguous = "ambiguous"
)

// Marker describes one marker.
type Marker struct {
	Axis         string `json:"axis" yaml:"axis"`
	LeadsWithRed bool   `json:"leads_with_red" yaml:"leads_with_red"`
	X            int    `json:"x" yaml:"x"`
	Y            int    `json:"y" yaml:"y"`
	Rotation     int    `json:"rotation" yaml:"rotation"`
	Description  string `json:"description" yaml:"description"`
}

// FromMarker converts a detected marker.
func FromMarker(m detection.Marker) Marker {
	return Marker{
		Axis:         m.Axis.String(),
		LeadsWithRed: m.LeadsWithRed,
		X:            m.At.X,
		Y:            m.At.Y,
		Rotation:     m.Rotation(),
		Description:  m.String(),
	}
}

// Scan lists every marker found in one image and the resulting outcome.
type Scan struct {
	Path    string   `json:"path,omitempty" yaml:"path,omitempty"`
	Width   int      `json:"width" yaml:"width"`
	Height  int      `json:"height" yaml:"height"`
	Count   int      `json:"count" yaml:"count"`
	Outcome string   `json:"outcome" yaml:"outcome"`
	Markers []Marker `json:"markers" yaml:"markers"`
}

// Outcome names the result Classify gives for markers.
func Outcome(markers []detection.Marker) string {
	_, err := detection.Classify(markers)
	switch {
	case errors.Is(err, detection.ErrNoPattern):
		return OutcomeNoPattern
	case errors.Is(err, detection.ErrAmbiguousPattern):
		return OutcomeAmbiguous
	default:
		return OutcomeSingle
	}
}

// NewScan builds the report for an image with the given bounds.
func NewScan(path string, bounds image.Rectangle, markers []detection.Marker) *Scan {
	s := &Scan{
		Path:    path,
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		Count:   len(markers),
		Outcome: Outcome(markers),
		Markers: make([]Marker, 0, len(markers)),
	}
	for _, m := range markers {
		s.Markers = append(s.Markers, FromMarker(m))
	}
	return s
}

// WriteYAML writes the report to w as a YAML document.
func (s *Scan) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return enc.Close()
}
