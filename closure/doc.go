// Package closure runs the whole fault-network pipeline: it turns an
// unordered set of fault segments on the sphere into closed blocks,
// west/east block labels per segment, and a point locator.
//
// Pipeline:
//
//	segments ─▶ matcher.Match ─▶ halfedge.Build ─▶ trace.Trace
//	                                                   │
//	                   locate.New ◀── label.Assign ◀── area.Classify
//
// Run returns a Result. Segments that could not be closed into a loop
// (dangling ends, gaps, zero-length traces, segments overlapping another
// one) are never dropped silently: they are listed in Result.Unresolved and
// logged as a warning.
//
// A closed loop lying inside a block is an island: it is its own block, a
// hole in the block around it, and its outer side carries that block's
// label. Duplicate segments bound zero-width slivers, which are not blocks;
// the duplicates take the labels of the segment they repeat.
//
// Result answers the questions the surrounding model asks:
//
//   - AssignPoints: which block contains each station, pixel or source?
//   - MatchMarkers: which interior marker belongs to each block?
//   - BlockCentroid, BlockArea, BlockShape: per-block summaries.
//   - FeatureCollection: the blocks as GeoJSON polygons, islands as holes.
//   - Diagnostics: counts for reporting.
//
// Logging goes through go.uber.org/zap (WithLogger); the default logger
// discards everything. Lower packages only return data and errors.
//
// Errors from the stages are wrapped with "closure: Run:" and keep their
// package sentinels, so callers test them with errors.Is:
//
//	matcher.ErrNoSegments, matcher.ErrNonFinite, matcher.ErrBadLatitude
//	area.ErrExteriorTie
//	<pkg>.ErrOptionViolation for an invalid stage option
//
// The facade adds ErrBadBlock, ErrMarkerMismatch and ErrOptionViolation.
package closure
