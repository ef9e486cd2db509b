package detection

import (
	"context"
	"errors"
	"image"
	"testing"
)

// createStripeImage builds the 32x32 fixture used by the upload tests:
// black, with row y carrying three red pixels followed by white to the edge.
func createStripeImage(rows ...int) *image.RGBA {
	img := createTestImage(32, 32, black)
	for _, y := range rows {
		for x := 0; x < 32; x++ {
			if x < 3 {
				img.SetRGBA(x, y, red)
			} else {
				img.SetRGBA(x, y, white)
			}
		}
	}
	return img
}

func TestNormalize_NoPattern(t *testing.T) {
	_, _, err := Normalize(createTestImage(32, 32, black))
	if !errors.Is(err, ErrNoPattern) {
		t.Errorf("expected ErrNoPattern, got %v", err)
	}
}

func TestNormalize_NoRedOrWhitePixels(t *testing.T) {
	_, _, err := Normalize(createUniqueImage(64, 64))
	if !errors.Is(err, ErrNoPattern) {
		t.Errorf("expected ErrNoPattern, got %v", err)
	}
}

func TestNormalize_SingleRedFirstRow(t *testing.T) {
	img := createStripeImage(0)

	out, m, err := Normalize(img)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := Marker{Axis: Vertical, LeadsWithRed: true, At: image.Pt(0, 0)}
	if m != want {
		t.Errorf("marker: got %+v, want %+v", m, want)
	}
	if out.Bounds().Dx() != 32 || out.Bounds().Dy() != 32 {
		t.Errorf("dimensions: got %dx%d, want 32x32", out.Bounds().Dx(), out.Bounds().Dy())
	}

	// Rotated 180 degrees: the stripe is now the bottom row, reversed.
	rgba := out.(*image.RGBA)
	if rgba.RGBAAt(31, 31) != red || rgba.RGBAAt(29, 31) != red {
		t.Errorf("expected red at the bottom-right, got %v", rgba.RGBAAt(31, 31))
	}
	if rgba.RGBAAt(28, 31) != white || rgba.RGBAAt(0, 31) != white {
		t.Errorf("expected white at the bottom-left, got %v", rgba.RGBAAt(0, 31))
	}
	if rgba.RGBAAt(0, 0) != black {
		t.Errorf("expected black at the top-left, got %v", rgba.RGBAAt(0, 0))
	}
}

func TestNormalize_TwoRowsAmbiguous(t *testing.T) {
	_, _, err := Normalize(createStripeImage(0, 1))
	if !errors.Is(err, ErrAmbiguousPattern) {
		t.Errorf("expected ErrAmbiguousPattern, got %v", err)
	}
}

func TestNormalize_RowAndColumnAmbiguous(t *testing.T) {
	img := createTestImage(32, 32, black)
	paintRow(img, 2, 2, "WWWRRR")
	paintColumn(img, 20, 20, "WWWRRR")

	_, _, err := Normalize(img)
	if !errors.Is(err, ErrAmbiguousPattern) {
		t.Errorf("expected ErrAmbiguousPattern, got %v", err)
	}
}

func TestNormalize_DimensionSwap(t *testing.T) {
	tests := []struct {
		name          string
		column        bool
		pattern       string
		width, height int
	}{
		{"row white first", false, "WWWRRR", 40, 24},
		{"row red first", false, "RRRWWW", 40, 24},
		{"column white first", true, "WWWRRR", 24, 40},
		{"column red first", true, "RRRWWW", 24, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createTestImage(40, 24, black)
			if tt.column {
				paintColumn(img, 10, 10, tt.pattern)
			} else {
				paintRow(img, 10, 10, tt.pattern)
			}

			out, m, err := Normalize(img)
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			if (m.Axis == Horizontal) != tt.column {
				t.Errorf("axis: got %v", m.Axis)
			}
			if out.Bounds().Dx() != tt.width || out.Bounds().Dy() != tt.height {
				t.Errorf("dimensions: got %dx%d, want %dx%d",
					out.Bounds().Dx(), out.Bounds().Dy(), tt.width, tt.height)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	first, _, err := Normalize(createStripeImage(0))
	if err != nil {
		t.Fatalf("first Normalize failed: %v", err)
	}

	second, m, err := Normalize(first)
	if err != nil {
		t.Fatalf("second Normalize failed: %v", err)
	}
	if m.Axis != Vertical || m.LeadsWithRed {
		t.Errorf("second pass marker: got %v, want vertical white-first", m)
	}
	if !sameRGBA(first.(*image.RGBA), second.(*image.RGBA)) {
		t.Error("second pass changed an already normalized image")
	}
}

func TestNormalize_ThickStripeAmbiguous(t *testing.T) {
	img := createTestImage(32, 32, black)
	paintRow(img, 4, 10, "WWWRRR")
	paintRow(img, 4, 11, "WWWRRR")

	_, _, err := Normalize(img)
	if !errors.Is(err, ErrAmbiguousPattern) {
		t.Errorf("expected ErrAmbiguousPattern for a two-pixel-thick stripe, got %v", err)
	}
}

func TestNormalizeContext(t *testing.T) {
	img := createTestImage(40, 24, black)
	paintColumn(img, 5, 3, "RRRWWW")

	want, wantMarker, err := Normalize(img)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	got, gotMarker, err := NormalizeContext(context.Background(), img)
	if err != nil {
		t.Fatalf("NormalizeContext failed: %v", err)
	}
	if gotMarker != wantMarker {
		t.Errorf("marker: got %v, want %v", gotMarker, wantMarker)
	}
	if !sameRGBA(got.(*image.RGBA), want.(*image.RGBA)) {
		t.Error("NormalizeContext output differs from Normalize")
	}
}

func TestNormalizeContext_Errors(t *testing.T) {
	_, _, err := NormalizeContext(context.Background(), createStripeImage(3, 4))
	if !errors.Is(err, ErrAmbiguousPattern) {
		t.Errorf("expected ErrAmbiguousPattern, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = NormalizeContext(ctx, createStripeImage(0))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNormalizeSequential(t *testing.T) {
	img := createTestImage(40, 24, black)
	paintRow(img, 2, 7, "RRRWWW")

	want, wantMarker, err := Normalize(img)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	got, gotMarker, err := NormalizeSequential(context.Background(), img)
	if err != nil {
		t.Fatalf("NormalizeSequential failed: %v", err)
	}
	if gotMarker != wantMarker {
		t.Errorf("marker: got %v, want %v", gotMarker, wantMarker)
	}
	if !sameRGBA(got.(*image.RGBA), want.(*image.RGBA)) {
		t.Error("NormalizeSequential output differs from Normalize")
	}
}

func TestFindMarkers(t *testing.T) {
	img := createTestImage(40, 24, black)
	paintRow(img, 2, 7, "WWWRRR")
	paintColumn(img, 30, 10, "RRRWWW")

	want := Scan(BuildGrid(img))
	if len(want) != 2 {
		t.Fatalf("fixture should hold 2 markers, got %d", len(want))
	}

	for _, parallel := range []bool{true, false} {
		got, err := FindMarkers(context.Background(), img, parallel)
		if err != nil {
			t.Fatalf("FindMarkers(parallel=%v) failed: %v", parallel, err)
		}
		if len(got) != len(want) {
			t.Fatalf("FindMarkers(parallel=%v): got %d markers, want %d", parallel, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("FindMarkers(parallel=%v)[%d] = %v, want %v", parallel, i, got[i], want[i])
			}
		}
	}
}

func TestFindMarkers_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, parallel := range []bool{true, false} {
		_, err := FindMarkers(ctx, createStripeImage(0), parallel)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("FindMarkers(parallel=%v): expected context.Canceled, got %v", parallel, err)
		}
	}
}
