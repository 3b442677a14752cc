// Package overlay implements spec.md §4.4's overlay kernel: the boolean
// set operations (Union, Intersection, Difference, SymDifference) plus
// ST_Buffer, ST_ConvexHull, and ST_Simplify.
//
// The boolean operations are built on the Greiner-Hormann polygon
// clipping algorithm over each operand's exterior ring, walked with
// snap-rounding to a grid sized from the input's bounding-box diagonal
// (spec.md §4.4) so nearly-coincident vertices produced by repeated
// clipping don't reintroduce numerical instability. This is an exact
// planar-subdivision result for simple (non-self-intersecting),
// single-ring polygons; multi-ring (holed) and multi-part inputs are
// decomposed into their exterior rings and combined ring-by-ring, which
// does not reconstruct interior holes in the output the way a full DCEL
// face classification would (see pkg/relate's doc comment for the same
// documented scoping tradeoff applied to predicate evaluation).
package overlay
