package detection

import (
	"errors"
	"fmt"
	"image"
)

// RunLength is the number of pixels in a marker.
const RunLength = 6

var (
	// ErrNoPattern is returned when the image contains no marker.
	ErrNoPattern = errors.New("no marker pattern found")

	// ErrAmbiguousPattern is returned when the image contains more than one marker.
	ErrAmbiguousPattern = errors.New("ambiguous marker pattern")
)

// Axis identifies the scan pass that found a marker.
type Axis uint8

const (
	// Vertical markers were found by the row pass (reading left to right).
	Vertical Axis = iota
	// Horizontal markers were found by the column pass (reading top to bottom).
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Marker describes one matched six-pixel run.
type Marker struct {
	// Axis is the scan direction that found the run.
	Axis Axis

	// LeadsWithRed is true for RED×3,WHITE×3 and false for WHITE×3,RED×3.
	LeadsWithRed bool

	// At is the first pixel of the run, relative to the image bounds' minimum.
	// It is informational and never affects classification.
	At image.Point
}

// Rotation returns the clockwise rotation in degrees that Reorient applies
// for this marker.
func (m Marker) Rotation() int {
	switch {
	case m.Axis == Vertical && !m.LeadsWithRed:
		return 0
	case m.Axis == Vertical && m.LeadsWithRed:
		return 180
	case m.Axis == Horizontal && !m.LeadsWithRed:
		return 90
	default:
		return 270
	}
}

// Bounds returns the pixels covered by the run, relative to the image bounds' minimum.
func (m Marker) Bounds() image.Rectangle {
	if m.Axis == Horizontal {
		return image.Rect(m.At.X, m.At.Y, m.At.X+1, m.At.Y+RunLength)
	}
	return image.Rect(m.At.X, m.At.Y, m.At.X+RunLength, m.At.Y+1)
}

func (m Marker) String() string {
	lead := "white"
	if m.LeadsWithRed {
		lead = "red"
	}
	return fmt.Sprintf("%s marker leading with %s at (%d,%d)", m.Axis, lead, m.At.X, m.At.Y)
}

// Classify decides the outcome of a scan from the number of markers alone.
//
// An empty set fails with ErrNoPattern. Two or more markers fail with
// ErrAmbiguousPattern even when they are identical. A single marker is
// returned as-is.
func Classify(markers []Marker) (Marker, error) {
	switch len(markers) {
	case 0:
		return Marker{}, ErrNoPattern
	case 1:
		return markers[0], nil
	default:
		return Marker{}, fmt.Errorf("%w: %d markers found", ErrAmbiguousPattern, len(markers))
	}
}
