// Package lonlat holds the coordinate conventions shared by every stage of
// the closure pipeline.
//
// What:
//
//   - Longitudes are normalized into [0, 360) before any comparison (Wrap360).
//   - Differences between longitudes are periodic and fall in (-180, 180] (Delta).
//   - Planar work (bearings, areas, containment) happens in plate-carrée
//     degrees, with vectors computed through Sub so that a leg crossing the
//     0/360 meridian is short, not ~360° long.
//   - Rings are "unwrapped" (UnwrapRing) so that consecutive longitudes are
//     continuous; a ring encircling a pole is closed through that pole
//     (CloseRing) so it still has a finite planar area.
//   - Great-circle lengths (Distance, LengthKm) and the west-first endpoint
//     ordering (OrderWestFirst) are computed on the sphere with golang/geo.
//
// Complexity:
//
//   - Every scalar helper is O(1); ring helpers are O(n) in the ring length.
package lonlat
