package detection

import (
	"context"
	"image"

	"golang.org/x/sync/errgroup"
)

var (
	whiteLed = [RunLength]ColorCode{White, White, White, Red, Red, Red}
	redLed   = [RunLength]ColorCode{Red, Red, Red, White, White, White}
)

// Scan returns every marker in the grid: the row pass first, then the column
// pass, each in raster order. Overlapping runs are not merged, so a stripe
// painted more than one pixel thick produces one marker per line it covers.
func Scan(g *Grid) []Marker {
	markers := scanRows(context.Background(), g)
	return append(markers, scanColumns(context.Background(), g)...)
}

// ScanContext is Scan with the two passes running concurrently. It stops early
// and returns ctx.Err() when ctx is cancelled. The returned order matches Scan.
func ScanContext(ctx context.Context, g *Grid) ([]Marker, error) {
	var rows, cols []Marker

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		rows = scanRows(egCtx, g)
		return egCtx.Err()
	})
	eg.Go(func() error {
		cols = scanColumns(egCtx, g)
		return egCtx.Err()
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return append(rows, cols...), nil
}

// scanRows reads each row left to right.
func scanRows(ctx context.Context, g *Grid) []Marker {
	var markers []Marker
	for row := 0; row < g.height; row++ {
		if ctx.Err() != nil {
			return nil
		}
		for col := 0; col+RunLength-1 < g.width; col++ {
			var run [RunLength]ColorCode
			for i := range run {
				run[i] = g.At(row, col+i)
			}
			if leadsWithRed, ok := matchRun(run); ok {
				markers = append(markers, Marker{
					Axis:         Vertical,
					LeadsWithRed: leadsWithRed,
					At:           image.Pt(col, row),
				})
			}
		}
	}
	return markers
}

// scanColumns reads each column top to bottom. Results are emitted in raster
// order (by start row, then column) so the output is independent of the
// traversal direction.
func scanColumns(ctx context.Context, g *Grid) []Marker {
	var markers []Marker
	for row := 0; row+RunLength-1 < g.height; row++ {
		if ctx.Err() != nil {
			return nil
		}
		for col := 0; col < g.width; col++ {
			var run [RunLength]ColorCode
			for i := range run {
				run[i] = g.At(row+i, col)
			}
			if leadsWithRed, ok := matchRun(run); ok {
				markers = append(markers, Marker{
					Axis:         Horizontal,
					LeadsWithRed: leadsWithRed,
					At:           image.Pt(col, row),
				})
			}
		}
	}
	return markers
}

// matchRun reports whether run is a marker and which color leads it.
func matchRun(run [RunLength]ColorCode) (leadsWithRed, ok bool) {
	if run[0] == Other {
		return false, false
	}
	switch run {
	case whiteLed:
		return false, true
	case redLed:
		return true, true
	}
	return false, false
}
