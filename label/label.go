package label

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/faultclosure/area"
	"github.com/katalvlaran/faultclosure/halfedge"
	"github.com/katalvlaran/faultclosure/lonlat"
	"github.com/katalvlaran/faultclosure/trace"
)

// Assign numbers the interior polygons of tr and labels the nSegments input
// segments. cls may be nil only when tr holds no polygons.
//
// Steps:
//  1. Number the interior polygons in the requested order.
//  2. Map exterior and outer polygons to the exterior label, islands to the
//     label of the face around them.
//  3. Visit every half-edge and write its face's label on the west side
//     (forward half-edge) or east side (reverse) of its segment. A side
//     facing a sliver takes the label of the face across the sliver.
//
// Complexity: O(E + P log P) for E half-edges and P polygons, plus the
// length of every sliver walk for the half-edges on it.
func Assign(tr *trace.Result, cls *area.Classification, g *halfedge.Graph, nSegments int, opts ...Option) (*Labels, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if tr == nil || g == nil {
		return nil, ErrNilInput
	}
	if len(tr.Polygons) > 0 && cls == nil {
		return nil, fmt.Errorf("%w: classification required for %d polygons", ErrNilInput, len(tr.Polygons))
	}
	if cls != nil && len(cls.Kinds) != len(tr.Polygons) {
		return nil, fmt.Errorf("%w: %d classified polygons, %d traced", ErrMismatch, len(cls.Kinds), len(tr.Polygons))
	}
	if len(tr.EdgePolygon) != g.NumEdges() {
		return nil, fmt.Errorf("%w: %d traced half-edges, %d in graph", ErrMismatch, len(tr.EdgePolygon), g.NumEdges())
	}

	l := &Labels{
		Pairs:         make([]Pair, nSegments),
		PolygonBlock:  make([]int, len(tr.Polygons)),
		ExteriorLabel: Exterior,
	}

	// 1) Interior polygons → block labels.
	var interior []int
	if cls != nil {
		interior = cls.Interior()
	}
	if o.Order == OrderCentroid {
		sortByCentroid(tr, interior)
	}
	for i := range l.PolygonBlock {
		l.PolygonBlock[i] = Exterior
		if cls != nil && cls.Kinds[i] == area.Sliver {
			l.PolygonBlock[i] = Unresolved
		}
	}
	for b, pi := range interior {
		l.PolygonBlock[pi] = b
	}
	l.BlockPolygon = interior

	// 2) Optionally keep the exterior as the last block, then let every
	// island face the block around it.
	if cls != nil {
		if o.ExteriorBlock {
			l.ExteriorLabel = len(interior)
			l.BlockPolygon = append(l.BlockPolygon, cls.Exterior)
			for i, k := range cls.Kinds {
				if k == area.Exterior || k == area.Outer {
					l.PolygonBlock[i] = l.ExteriorLabel
				}
			}
		}
		for i, p := range cls.Parent {
			if p >= 0 {
				l.PolygonBlock[i] = l.PolygonBlock[p]
			}
		}
	}

	// 3) Half-edges → segment sides.
	for i := range l.Pairs {
		l.Pairs[i] = Pair{West: Unresolved, East: Unresolved}
	}
	for h := 0; h < g.NumEdges(); h++ {
		e := g.Edge(h)
		if e.Segment < 0 || e.Segment >= nSegments {
			return nil, fmt.Errorf("%w: half-edge %d refers to segment %d of %d", ErrMismatch, h, e.Segment, nSegments)
		}
		lbl := faceLabel(h, tr, cls, g, l.PolygonBlock)
		if e.Forward {
			l.Pairs[e.Segment].West = lbl
		} else {
			l.Pairs[e.Segment].East = lbl
		}
	}

	for i, p := range l.Pairs {
		if !p.Resolved() {
			l.Unresolved = append(l.Unresolved, i)
		}
	}

	return l, nil
}

// faceLabel returns the label of the face left of h. Slivers have no width:
// the walk steps across to the segment stacked on h and continues from its
// other side, until it reaches a face that is not a sliver.
func faceLabel(h int, tr *trace.Result, cls *area.Classification, g *halfedge.Graph, block []int) int {
	for i, n := 0, len(tr.Polygons)+1; i < n; i++ {
		pi := tr.EdgePolygon[h]
		if pi == trace.None {
			return Unresolved
		}
		if cls.Kinds[pi] != area.Sliver {
			return block[pi]
		}
		k := stacked(g, tr.Polygons[pi].HalfEdges, h)
		if k == halfedge.None {
			return Unresolved
		}
		h = g.Twin(k)
	}

	return Unresolved
}

// stacked returns the half-edge of walk running back along h between the
// same two vertices, or halfedge.None.
func stacked(g *halfedge.Graph, walk []int, h int) int {
	e := g.Edge(h)
	for _, k := range walk {
		ek := g.Edge(k)
		if k != h && k != e.Twin && ek.Origin == e.Dest && ek.Dest == e.Origin {
			return k
		}
	}

	return halfedge.None
}

// sortByCentroid orders polygon indices by centroid longitude in [0, 360),
// then latitude, then index.
func sortByCentroid(tr *trace.Result, idx []int) {
	type key struct{ lon, lat float64 }
	keys := make(map[int]key, len(idx))
	for _, pi := range idx {
		c := area.Centroid(tr.Polygons[pi].Ring)
		keys[pi] = key{lon: lonlat.Wrap360(c[0]), lat: c[1]}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if ka.lon != kb.lon {
			return ka.lon < kb.lon
		}
		if ka.lat != kb.lat {
			return ka.lat < kb.lat
		}
		return idx[a] < idx[b]
	})
}
