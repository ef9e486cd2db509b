package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// MaxScale is the largest magnification Crop accepts.
const MaxScale = 64.0

// EncodedImage is a PNG image carried as base64 text.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodeBase64PNG encodes img as PNG and wraps the bytes as base64.
func EncodeBase64PNG(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, err
	}

	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Crop extracts a rectangular region from an image.
//
// A scale other than 1 magnifies or shrinks the crop with nearest-neighbor
// sampling so individual pixels stay distinguishable. scale must be in
// (0, MaxScale].
func Crop(img image.Image, x1, y1, x2, y2 int, scale float64) (*EncodedImage, error) {
	bounds := img.Bounds()

	// Validate coordinates
	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}
	if err := checkScale(scale); err != nil {
		return nil, err
	}

	var cropped image.Image = imaging.Crop(img, image.Rect(x1, y1, x2, y2))

	if scale != 1.0 {
		newWidth, newHeight := scaledSize(cropped.Bounds(), scale)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.NearestNeighbor)
	}

	return EncodeBase64PNG(cropped)
}

// CropAround crops region grown by margin pixels on every side. The grown
// rectangle is clipped to the image bounds. A maxPixels above zero rejects
// crops whose scaled output would exceed it with ErrImageTooLarge.
func CropAround(img image.Image, region image.Rectangle, margin int, scale float64, maxPixels int) (*EncodedImage, error) {
	if margin < 0 {
		return nil, fmt.Errorf("margin must be non-negative, got %d", margin)
	}
	if err := checkScale(scale); err != nil {
		return nil, err
	}

	r := region.Inset(-margin).Intersect(img.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("region %v does not overlap image bounds %v", region, img.Bounds())
	}

	if w, h := scaledSize(r, scale); maxPixels > 0 && w*h > maxPixels {
		return nil, fmt.Errorf("%w: %dx%d crop exceeds %d pixels", ErrImageTooLarge, w, h, maxPixels)
	}

	return Crop(img, r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, scale)
}

func checkScale(scale float64) error {
	if !(scale > 0 && scale <= MaxScale) {
		return fmt.Errorf("scale must be in (0, %g], got %g", MaxScale, scale)
	}
	return nil
}

// scaledSize returns the dimensions of r after scaling, never below 1x1.
func scaledSize(r image.Rectangle, scale float64) (int, int) {
	return max(1, int(float64(r.Dx())*scale)), max(1, int(float64(r.Dy())*scale))
}
