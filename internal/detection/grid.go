package detection

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/parallel"
)

// ColorCode is the exact-match classification of a pixel color.
type ColorCode uint8

const (
	// Other is any color that is neither pure white nor pure red.
	Other ColorCode = iota
	// White is (255,255,255).
	White
	// Red is (255,0,0).
	Red
)

// String returns "white", "red" or "other".
func (c ColorCode) String() string {
	switch c {
	case White:
		return "white"
	case Red:
		return "red"
	default:
		return "other"
	}
}

// CodeOf classifies a color by exact comparison of its 8-bit RGB components.
// Alpha is ignored; premultiplied colors are converted to straight RGB first.
func CodeOf(c color.Color) ColorCode {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	switch {
	case n.R == 255 && n.G == 255 && n.B == 255:
		return White
	case n.R == 255 && n.G == 0 && n.B == 0:
		return Red
	default:
		return Other
	}
}

// Grid is an immutable height × width matrix of ColorCodes.
//
// Cell (row, col) holds the code of the image pixel at
// (bounds.Min.X+col, bounds.Min.Y+row).
type Grid struct {
	width  int
	height int
	cells  []ColorCode // row-major
}

// BuildGrid converts img into a Grid of identical dimensions.
//
// Rows are classified in parallel; the result is the same as a sequential
// build.
func BuildGrid(img image.Image) *Grid {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	g := &Grid{
		width:  w,
		height: h,
		cells:  make([]ColorCode, w*h),
	}

	parallel.Line(h, func(start, end int) {
		for row := start; row < end; row++ {
			line := g.cells[row*w : (row+1)*w]
			for col := range line {
				line[col] = CodeOf(img.At(bounds.Min.X+col, bounds.Min.Y+row))
			}
		}
	})

	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// At returns the code at (row, col). Out-of-range cells report Other.
func (g *Grid) At(row, col int) ColorCode {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return Other
	}
	return g.cells[row*g.width+col]
}
