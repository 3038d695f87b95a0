package closure

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/katalvlaran/faultclosure/area"
	"github.com/katalvlaran/faultclosure/label"
	"github.com/katalvlaran/faultclosure/locate"
	"github.com/katalvlaran/faultclosure/matcher"
	"github.com/katalvlaran/faultclosure/trace"
)

// Sentinel errors added by the facade.
var (
	// ErrBadBlock is returned for a block label outside the result.
	ErrBadBlock = errors.New("closure: block label out of range")

	// ErrMarkerMismatch is returned when markers and blocks do not pair up
	// one to one.
	ErrMarkerMismatch = errors.New("closure: markers do not match blocks")

	// ErrOptionViolation is returned when an invalid facade Option is supplied.
	ErrOptionViolation = errors.New("closure: invalid option supplied")
)

// Segment is one fault trace in degrees. Longitudes may use either the
// (-180, 180] or the [0, 360) convention, mixed freely.
type Segment struct {
	Lon1, Lat1 float64
	Lon2, Lat2 float64
}

// Polygon is one traced loop of the network.
type Polygon struct {
	// Vertices are vertex ids in walk order.
	Vertices []int

	// Segments[i] is the input segment of the i-th polygon edge.
	Segments []int

	// Ring is the closed ring in unwrapped degrees.
	Ring orb.Ring

	// Holes are the outer rings of the islands inside this face, shifted
	// into the frame of Ring.
	Holes []orb.Ring

	// Area is the signed plate-carrée area in square degrees; positive for
	// counter-clockwise rings.
	Area float64

	// Kind is Interior, Exterior, Outer or Sliver.
	Kind area.Kind

	// Parent is the polygon surrounding an island's outer ring, or -1.
	Parent int

	// Block is the polygon's block label, label.Exterior, or
	// label.Unresolved for a sliver. An island's outer ring carries the
	// label of the face around it.
	Block int
}

// Diagnostics summarizes a Result.
type Diagnostics struct {
	Segments   int
	Vertices   int
	Polygons   int
	Blocks     int
	Degenerate int
	Unresolved int
	Pruned     int
	Components int
	Islands    int
	Slivers    int
	Overlaps   int
}

// Option configures Run.
type Option func(*Options)

// Options gathers the stage options of one Run.
// Invalid stage options are reported by the stage that owns them.
type Options struct {
	// Logger receives pipeline diagnostics.
	Logger *zap.Logger

	match  []matcher.Option
	trace  []trace.Option
	area   []area.Option
	label  []label.Option
	locate []locate.Option

	exteriorBlock bool
	westFirst     bool

	err error
}

// DefaultOptions returns Options with a no-op logger and every stage at its
// own defaults.
func DefaultOptions() Options {
	return Options{Logger: zap.NewNop()}
}

// WithLogger sets the diagnostics logger; nil is rejected.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			o.err = fmt.Errorf("%w: nil logger", ErrOptionViolation)
			return
		}
		o.Logger = l
	}
}

// WithTolerance sets the endpoint merge distance in degrees.
func WithTolerance(tol float64) Option {
	return func(o *Options) { o.match = append(o.match, matcher.WithTolerance(tol)) }
}

// WithMaxSteps caps the length of a single polygon walk.
func WithMaxSteps(n int) Option {
	return func(o *Options) { o.trace = append(o.trace, trace.WithMaxSteps(n)) }
}

// WithTieTolerance sets the relative tolerance for exterior area ties.
func WithTieTolerance(tol float64) Option {
	return func(o *Options) { o.area = append(o.area, area.WithTieTolerance(tol)) }
}

// WithSliverTolerance sets the |area|, in square degrees, at or below which a
// face counts as a zero-width sliver.
func WithSliverTolerance(tol float64) Option {
	return func(o *Options) { o.area = append(o.area, area.WithSliverTolerance(tol)) }
}

// WithOrder selects the block numbering.
func WithOrder(order label.Order) Option {
	return func(o *Options) { o.label = append(o.label, label.WithOrder(order)) }
}

// WithExteriorBlock keeps the exterior as the last block. Points outside
// every interior block then locate to it instead of label.Unresolved.
func WithExteriorBlock() Option {
	return func(o *Options) {
		o.exteriorBlock = true
		o.label = append(o.label, label.WithExteriorBlock())
	}
}

// WithWestFirst reorders every segment so that its first endpoint is the
// western one before anything else runs. Labels then refer to the reordered
// segments; Result.Swapped lists the segments that were flipped.
func WithWestFirst() Option {
	return func(o *Options) { o.westFirst = true }
}

// WithWorkers bounds the goroutines used for point location.
func WithWorkers(n int) Option {
	return func(o *Options) { o.locate = append(o.locate, locate.WithWorkers(n)) }
}
