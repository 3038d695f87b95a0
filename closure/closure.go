package closure

import (
	"fmt"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/katalvlaran/faultclosure/area"
	"github.com/katalvlaran/faultclosure/halfedge"
	"github.com/katalvlaran/faultclosure/label"
	"github.com/katalvlaran/faultclosure/locate"
	"github.com/katalvlaran/faultclosure/lonlat"
	"github.com/katalvlaran/faultclosure/matcher"
	"github.com/katalvlaran/faultclosure/trace"
)

// Result is the closed, labeled fault network. It is read-only after Run
// and safe for concurrent use.
type Result struct {
	// Vertices holds the matched endpoints, longitude in [0, 360).
	Vertices []lonlat.Point

	// Polygons holds every traced loop in discovery order.
	Polygons []Polygon

	// Blocks maps a block label to its polygon index.
	Blocks []int

	// Labels has one west/east pair per input segment.
	Labels []label.Pair

	// Exterior is the polygon index of the unbounded face, or -1 when no
	// polygon was traced.
	Exterior int

	// ExteriorLabel is the exterior's block label with WithExteriorBlock,
	// label.Exterior otherwise.
	ExteriorLabel int

	// Degenerate lists zero-length input segments.
	Degenerate []int

	// Unresolved lists segments with at least one side outside every
	// polygon, degenerate ones included.
	Unresolved []int

	// Components lists the vertex ids of each connected piece of the network.
	Components [][]int

	// Swapped lists segments whose endpoints WithWestFirst exchanged.
	Swapped []int

	// Overlaps lists segments left unresolved because they run along
	// another segment past one of its vertices.
	Overlaps []int

	segments []matcher.Segment
	pruned   int
	locator  *locate.Locator
	log      *zap.Logger
}

// Run closes the fault network described by segs.
//
// Steps:
//  1. Match endpoints into vertices.
//  2. Build the half-edge graph.
//  3. Trace the faces, pruning dangling chains.
//  4. Classify the faces into interior, exterior, outer and sliver, and
//     attach islands to the faces around them.
//  5. Number the blocks and label both sides of every segment.
//  6. Index the block shapes for point location.
//
// Unresolved segments are reported, never fatal. Malformed input, an
// invalid option or an ambiguous exterior fails the run.
func Run(segs []Segment, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	log := o.Logger

	// 1) Endpoint matching.
	in := make([]matcher.Segment, len(segs))
	var swapped []int
	for i, s := range segs {
		p1 := lonlat.Point{Lon: s.Lon1, Lat: s.Lat1}
		p2 := lonlat.Point{Lon: s.Lon2, Lat: s.Lat2}
		if o.westFirst && lonlat.Finite(p1) && lonlat.Finite(p2) {
			var sw bool
			if p1, p2, sw = lonlat.OrderWestFirst(p1, p2); sw {
				swapped = append(swapped, i)
			}
		}
		in[i] = matcher.Segment{P1: p1, P2: p2}
	}
	tab, err := matcher.Match(in, o.match...)
	if err != nil {
		return nil, fmt.Errorf("closure: Run: %w", err)
	}
	log.Debug("matched endpoints",
		zap.Int("segments", len(segs)),
		zap.Int("vertices", len(tab.Vertices)),
		zap.Float64("tolerance", tab.Tolerance))
	if len(tab.Degenerate) > 0 {
		log.Warn("dropped zero-length segments",
			zap.Int("count", len(tab.Degenerate)),
			zap.Ints("indices", tab.Degenerate))
	}

	// 2) Half-edge graph.
	g, err := halfedge.Build(tab)
	if err != nil {
		return nil, fmt.Errorf("closure: Run: %w", err)
	}

	// 3) Face tracing.
	traceOpts := append([]trace.Option{
		trace.WithOnPolygon(func(idx int, p *trace.Polygon) {
			log.Debug("traced polygon",
				zap.Int("index", idx),
				zap.Int("edges", p.Len()),
				zap.Ints("segments", p.Segments))
		}),
		trace.WithOnUnresolved(func(hs []int) {
			log.Debug("abandoned open walk", zap.Ints("half_edges", hs))
		}),
	}, o.trace...)
	tr, err := trace.Trace(g, traceOpts...)
	if err != nil {
		return nil, fmt.Errorf("closure: Run: %w", err)
	}
	if len(tr.Overlaps) > 0 {
		log.Warn("found overlapping collinear segments",
			zap.Int("count", len(tr.Overlaps)),
			zap.Ints("indices", tr.Overlaps))
	}

	// 4) Exterior detection; skipped when nothing closed.
	rings := make([]orb.Ring, len(tr.Polygons))
	for i := range tr.Polygons {
		rings[i] = tr.Polygons[i].Ring
	}
	var cls *area.Classification
	if len(rings) > 0 {
		if cls, err = area.Classify(rings, o.area...); err != nil {
			return nil, fmt.Errorf("closure: Run: %w", err)
		}
	}

	// 5) Block labels.
	lbl, err := label.Assign(tr, cls, g, len(segs), o.label...)
	if err != nil {
		return nil, fmt.Errorf("closure: Run: %w", err)
	}

	r := &Result{
		Vertices:      tab.Vertices,
		Polygons:      make([]Polygon, len(tr.Polygons)),
		Blocks:        lbl.BlockPolygon,
		Labels:        lbl.Pairs,
		Exterior:      -1,
		ExteriorLabel: lbl.ExteriorLabel,
		Degenerate:    tab.Degenerate,
		Unresolved:    lbl.Unresolved,
		Components:    g.Components(),
		Swapped:       swapped,
		Overlaps:      tr.Overlaps,
		segments:      in,
		pruned:        tr.Pruned,
		log:           log,
	}
	if cls != nil {
		r.Exterior = cls.Exterior
	}
	for i, p := range tr.Polygons {
		shape := cls.Polygon(rings, i)
		r.Polygons[i] = Polygon{
			Vertices: p.Vertices,
			Segments: p.Segments,
			Ring:     p.Ring,
			Holes:    shape[1:],
			Area:     cls.Areas[i],
			Kind:     cls.Kinds[i],
			Parent:   cls.Parent[i],
			Block:    lbl.PolygonBlock[i],
		}
	}
	if cls != nil {
		if sl := cls.Slivers(); len(sl) > 0 {
			log.Debug("collapsed zero-area faces between duplicate segments",
				zap.Int("count", len(sl)),
				zap.Ints("polygons", sl))
		}
	}

	// 6) Locator over the block shapes. The exterior, when kept as a block,
	// is left out: every miss already falls back to its label.
	var shapes []orb.Polygon
	var blockLabels []int
	for b := range r.Blocks {
		if b == r.ExteriorLabel {
			continue
		}
		shapes = append(shapes, r.shape(b))
		blockLabels = append(blockLabels, b)
	}
	locOpts := o.locate
	if o.exteriorBlock {
		locOpts = append(locOpts, locate.WithFallback(r.ExteriorLabel))
	}
	if r.locator, err = locate.New(shapes, blockLabels, locOpts...); err != nil {
		return nil, fmt.Errorf("closure: Run: %w", err)
	}

	if len(r.Unresolved) > 0 {
		log.Warn("found unprocessed segment indices",
			zap.Int("count", len(r.Unresolved)),
			zap.Ints("indices", r.Unresolved))
	}
	log.Info("closed fault network",
		zap.Int("segments", len(segs)),
		zap.Int("polygons", len(r.Polygons)),
		zap.Int("blocks", len(r.Blocks)),
		zap.Int("components", len(r.Components)),
		zap.Int("pruned_half_edges", tr.Pruned))

	return r, nil
}
