// Package locate answers "which block contains this point?" for stations,
// SAR pixels, Mogi sources and block-interior markers.
//
// What:
//
//   - Each block is an orb.Polygon: its outer ring, then one ring per island
//     it surrounds. A point inside an island is not inside the block.
//   - Candidates come from a bulk-loaded R-tree of outer-ring bounding
//     boxes; only candidates get the exact crossing-number test
//     (planar.PolygonContains).
//   - Rings are unwrapped lon/lat, so a query longitude is normalized to
//     [0, 360) and tried at lon, lon+360 and lon-360.
//   - A point on a shared boundary is inside every block it touches; the
//     lowest block label wins, so the answer never depends on scan order.
//     A point on an island's boundary belongs to the island only.
//   - A point inside no block gets the fallback label (label.Unresolved by
//     default). Non-finite points get the fallback too; nothing panics.
//   - LocateAll splits the query set into chunks located concurrently; each
//     point owns one output slot, the Locator itself is read-only.
//
// Errors:
//
//	ErrMismatch        - polygons and labels differ in length.
//	ErrBadLabel        - a polygon carries a negative label.
//	ErrOptionViolation - an invalid Option was supplied.
package locate

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/katalvlaran/faultclosure/label"
)

// Sentinel errors for point location.
var (
	// ErrMismatch indicates polygons and labels of different lengths.
	ErrMismatch = errors.New("locate: polygons and labels differ in length")

	// ErrBadLabel indicates a negative polygon label.
	ErrBadLabel = errors.New("locate: polygon label must be non-negative")

	// ErrOptionViolation indicates an invalid Option was supplied.
	ErrOptionViolation = errors.New("locate: invalid option supplied")
)

// DefaultChunkSize is the number of points one LocateAll task handles.
const DefaultChunkSize = 1024

// Option configures a Locator.
type Option func(*Options)

// Options holds locator parameters.
type Options struct {
	// Fallback is the label of points inside no block.
	Fallback int

	// Workers bounds the goroutines used by LocateAll.
	Workers int

	// ChunkSize is the number of points per LocateAll task.
	ChunkSize int

	err error
}

// DefaultOptions returns Options with Fallback = label.Unresolved,
// Workers = GOMAXPROCS and ChunkSize = DefaultChunkSize.
func DefaultOptions() Options {
	return Options{
		Fallback:  label.Unresolved,
		Workers:   runtime.GOMAXPROCS(0),
		ChunkSize: DefaultChunkSize,
	}
}

// WithFallback sets the label returned for points inside no block.
func WithFallback(lbl int) Option {
	return func(o *Options) { o.Fallback = lbl }
}

// WithWorkers bounds LocateAll concurrency; n must be positive.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: workers must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithChunkSize sets the points per LocateAll task; n must be positive.
func WithChunkSize(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: chunk size must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.ChunkSize = n
	}
}
