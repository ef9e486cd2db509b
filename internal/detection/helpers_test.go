package detection

import (
	"image"
	"image/color"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

// createTestImage creates a solid-color RGBA image
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createUniqueImage creates an image where every pixel has a distinct color
// (for sizes up to 256x256), none of them pure red or pure white.
func createUniqueImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 7, 255})
		}
	}
	return img
}

// paintColor maps a pattern character to a color: R red, W white, anything else black.
func paintColor(ch byte) color.RGBA {
	switch ch {
	case 'R':
		return red
	case 'W':
		return white
	default:
		return black
	}
}

// paintRow paints pattern left to right starting at (x, y)
func paintRow(img *image.RGBA, x, y int, pattern string) {
	for i := 0; i < len(pattern); i++ {
		img.SetRGBA(x+i, y, paintColor(pattern[i]))
	}
}

// paintColumn paints pattern top to bottom starting at (x, y)
func paintColumn(img *image.RGBA, x, y int, pattern string) {
	for i := 0; i < len(pattern); i++ {
		img.SetRGBA(x, y+i, paintColor(pattern[i]))
	}
}

// sameRGBA reports whether two RGBA images have identical bounds and pixels
func sameRGBA(a, b *image.RGBA) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	for y := a.Bounds().Min.Y; y < a.Bounds().Max.Y; y++ {
		for x := a.Bounds().Min.X; x < a.Bounds().Max.X; x++ {
			if a.RGBAAt(x, y) != b.RGBAAt(x, y) {
				return false
			}
		}
	}
	return true
}
