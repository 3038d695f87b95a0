// Package faultclosure turns a map of fault traces into closed tectonic
// blocks: which blocks exist, which block lies west and east of every fault
// segment, and which block contains any given point.
//
// 🚀 What is faultclosure?
//
//	A pure-Go planar closure engine for fault networks on the sphere:
//		• Endpoint matching: noisy, mixed-convention endpoints → vertices
//		• Half-edge graph: angularly sorted fans, twins, components
//		• Face tracing: every closed loop, dangling chains pruned & reported
//		• Exterior detection: signed areas, pole-closed global faces, islands
//		• Labeling: stable block ids, west/east label per segment
//		• Point location: R-tree + crossing number, parallel batches
//
// ✨ Why faultclosure?
//
//   - Honest – unresolved segments are listed and logged, never dropped
//   - Periodic – longitudes in (-180, 180] and [0, 360) mix freely; blocks
//     straddling the 0/360 meridian or encircling a pole close correctly
//   - Deterministic – the same input always yields the same labels
//   - Pure Go – no cgo
//
// Packages, in pipeline order:
//
//	lonlat/   - longitude wrap, periodic deltas, ring unwrapping, great-circle lengths
//	matcher/  - endpoint deduplication with a tolerance
//	halfedge/ - half-edge arena, CCW fans, next-edge rule, overlaps, components
//	trace/    - face walks, dangling-chain pruning
//	area/     - signed area, centroid, exterior/island/sliver classification
//	label/    - block numbering and west/east segment labels
//	locate/   - point-in-block queries
//	closure/  - the whole pipeline behind one Run call
//
// Quick ASCII example:
//
//	3 ──── 2 ──── 5
//	│  B0  │  B1  │
//	0 ──── 1 ──── 4
//
// seven segments close into two blocks; the segment 1→2 has B0 to its west
// and B1 to its east, and the point (0.5, 0.5) lies in B0.
//
//	go get github.com/katalvlaran/faultclosure
package faultclosure
