// Package relate implements spec.md §4.3's predicate kernel: the DE-9IM
// relate matrix and the derived predicates built on it (Intersects,
// Contains, Within, Disjoint, Touches, Crosses, Overlaps, Equals, Covers,
// CoveredBy, DWithin). Point/Line/Polygon pairs are classified by direct
// geometric tests (point-in-ring, segment intersection, endpoint
// adjacency); polygon-polygon relate uses boundary-intersection and
// containment sampling rather than a full planar-subdivision overlay
// (see pkg/overlay), which is exact for simple (non-self-intersecting)
// polygons but approximates the interior-interior intersection dimension
// for polygons whose boundaries cross without one containing the other.
package relate
