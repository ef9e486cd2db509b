package detection

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Reorient returns a new image rotated according to m:
//
//	Vertical,   white first: identity, W × H
//	Vertical,   red first:   180° about the center, W × H
//	Horizontal, white first: 90° clockwise, H × W
//	Horizontal, red first:   270° clockwise (90° counter-clockwise), H × W
//
// The source is never modified. The output has the same concrete type as the
// source when that type can be drawn into; otherwise it is an *image.RGBA.
func Reorient(img image.Image, m Marker) image.Image {
	sr := img.Bounds()
	w, h := float64(sr.Dx()), float64(sr.Dy())

	var (
		s2d  f64.Aff3
		size image.Point
	)
	switch m.Rotation() {
	case 0:
		// An identity transform samples every pixel center exactly.
		dst := newImageLike(img, image.Rect(0, 0, sr.Dx(), sr.Dy()))
		draw.Copy(dst, image.Point{}, img, sr, draw.Src, nil)
		return dst
	case 180:
		s2d = rotation(2, w/2, h/2)
		size = image.Pt(sr.Dx(), sr.Dy())
	case 90:
		// The pivot sits on the diagonal at half the source height, which
		// lands the rotated image exactly inside the H × W canvas.
		s2d = rotation(1, h/2, h/2)
		size = image.Pt(sr.Dy(), sr.Dx())
	default:
		offset := (h - w) / 2
		s2d = concat(rotation(3, w/2, h/2), translation(offset, offset))
		size = image.Pt(sr.Dy(), sr.Dx())
	}
	// Work in coordinates relative to the source origin.
	s2d = concat(s2d, translation(-float64(sr.Min.X), -float64(sr.Min.Y)))

	dst := newImageLike(img, image.Rectangle{Max: size})
	draw.BiLinear.Transform(dst, s2d, img, sr, draw.Src, nil)
	return dst
}

func translation(tx, ty float64) f64.Aff3 {
	return f64.Aff3{1, 0, tx, 0, 1, ty}
}

// rotation returns a rotation by quarterTurns × 90° about (px, py). With Y
// pointing down a positive turn is clockwise on screen. Quarter turns use
// exact sines and cosines so pixel centers map onto pixel centers.
func rotation(quarterTurns int, px, py float64) f64.Aff3 {
	var cos, sin float64
	switch ((quarterTurns % 4) + 4) % 4 {
	case 0:
		cos, sin = 1, 0
	case 1:
		cos, sin = 0, 1
	case 2:
		cos, sin = -1, 0
	case 3:
		cos, sin = 0, -1
	}
	return f64.Aff3{
		cos, -sin, px - cos*px + sin*py,
		sin, cos, py - sin*px - cos*py,
	}
}

// concat returns the transform that applies n first and then m.
func concat(m, n f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		m[0]*n[0] + m[1]*n[3],
		m[0]*n[1] + m[1]*n[4],
		m[0]*n[2] + m[1]*n[5] + m[2],
		m[3]*n[0] + m[4]*n[3],
		m[3]*n[1] + m[4]*n[4],
		m[3]*n[2] + m[4]*n[5] + m[5],
	}
}

// newImageLike allocates an image with the same pixel type as src.
func newImageLike(src image.Image, r image.Rectangle) draw.Image {
	switch s := src.(type) {
	case *image.RGBA:
		return image.NewRGBA(r)
	case *image.NRGBA:
		return image.NewNRGBA(r)
	case *image.RGBA64:
		return image.NewRGBA64(r)
	case *image.NRGBA64:
		return image.NewNRGBA64(r)
	case *image.Gray:
		return image.NewGray(r)
	case *image.Gray16:
		return image.NewGray16(r)
	case *image.Paletted:
		return image.NewPaletted(r, append(s.Palette[:0:0], s.Palette...))
	default:
		return image.NewRGBA(r)
	}
}
