// Package detection finds the red/white stripe marker in an image and
// normalizes the image orientation from it.
//
// A marker is a run of six pixels, three pure white (255,255,255) followed by
// three pure red (255,0,0), or the reverse. Colors are compared exactly; any
// other color, including near-white or near-red, never takes part in a match.
//
// # Pipeline
//
// Normalization runs in three stages:
//
//  1. BuildGrid: the image is converted once into a Grid of ColorCodes.
//  2. Scan: the grid is read row by row (left to right) and column by column
//     (top to bottom). Every start position that matches either six-pixel
//     sequence yields its own Marker. Overlapping matches are kept as-is.
//  3. Classify and Reorient: zero markers fail with ErrNoPattern, two or more
//     fail with ErrAmbiguousPattern, and exactly one selects the rotation.
//
// # Axis Naming
//
// Marker.Axis names the scan direction that found the run, not the visual
// direction of the stripe:
//   - Vertical: found by the row pass; rotated by 0 or 180 degrees
//   - Horizontal: found by the column pass; rotated by 90 or 270 degrees and
//     the output width and height are swapped
//
// # Rotation
//
// Rotations are affine transforms sampled with bilinear interpolation
// (golang.org/x/image/draw.BiLinear). Angles follow image coordinates with Y
// pointing down, so a positive quarter turn is clockwise on screen. Every
// rotation is a multiple of 90 degrees and maps pixel centers onto pixel
// centers, so output pixels are exact copies of input pixels.
//
// # Coordinate System
//
// Marker positions are relative to the image bounds' minimum point:
//   - X: column of the first pixel of the run
//   - Y: row of the first pixel of the run
//
// # Thread Safety
//
// All functions are stateless and safe for concurrent use. The grid build and
// the two scan passes use goroutines internally; results never depend on
// scheduling.
package detection
