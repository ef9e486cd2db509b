package detection

import (
	"context"
	"image"
)

// Normalize runs the full pipeline on img: build the grid, scan it, classify
// the markers, and rotate. It returns the rotated image and the marker that
// selected the rotation, or ErrNoPattern / ErrAmbiguousPattern.
func Normalize(img image.Image) (image.Image, Marker, error) {
	m, err := Classify(Scan(BuildGrid(img)))
	if err != nil {
		return nil, Marker{}, err
	}
	return Reorient(img, m), m, nil
}

// NormalizeContext is Normalize with concurrent scan passes. ctx is checked
// between stages; a cancelled context aborts with ctx.Err().
func NormalizeContext(ctx context.Context, img image.Image) (image.Image, Marker, error) {
	return normalize(ctx, img, true)
}

// NormalizeSequential is NormalizeContext with both scan passes run on the
// calling goroutine.
func NormalizeSequential(ctx context.Context, img image.Image) (image.Image, Marker, error) {
	return normalize(ctx, img, false)
}

func normalize(ctx context.Context, img image.Image, parallel bool) (image.Image, Marker, error) {
	markers, err := FindMarkers(ctx, img, parallel)
	if err != nil {
		return nil, Marker{}, err
	}

	m, err := Classify(markers)
	if err != nil {
		return nil, Marker{}, err
	}

	if err := ctx.Err(); err != nil {
		return nil, Marker{}, err
	}
	return Reorient(img, m), m, nil
}

// FindMarkers builds the grid for img and scans it. With parallel set the
// two passes run concurrently; otherwise they run in order on the calling
// goroutine. Either way the result order is the same.
func FindMarkers(ctx context.Context, img image.Image, parallel bool) ([]Marker, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g := BuildGrid(img)
	if parallel {
		return ScanContext(ctx, g)
	}

	markers := scanRows(ctx, g)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	markers = append(markers, scanColumns(ctx, g)...)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return markers, nil
}
