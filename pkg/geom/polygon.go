package geom

import "strconv"

// Polygon is an ordered sequence of rings: Rings[0] is the exterior ring,
// the rest are holes. Each ring is topologically closed (first coordinate
// equals last) and has at least four points. An empty Polygon has no
// rings.
type Polygon struct {
	base
	Rings [][]Coordinate
}

// PolygonOption configures NewPolygon.
type PolygonOption func(*polygonOpts)

type polygonOpts struct {
	autoOrient bool
}

// AutoOrient requests that NewPolygon reorder each ring to the canonical
// winding (exterior counter-clockwise, holes clockwise) instead of
// rejecting a misoriented ring.
func AutoOrient() PolygonOption {
	return func(o *polygonOpts) { o.autoOrient = true }
}

// NewPolygon validates ring closure, minimum point count, and orientation
// (unless AutoOrient is given, in which case rings are reordered to the
// canonical winding).
func NewPolygon(srid int32, dim Dim, rings [][]Coordinate, opts ...PolygonOption) (Polygon, error) {
	var o polygonOpts
	for _, apply := range opts {
		apply(&o)
	}

	out := make([][]Coordinate, len(rings))
	for ri, ring := range rings {
		if len(ring) > 0 && len(ring) < 4 {
			return Polygon{}, &InvalidArgument{Op: "NewPolygon", Reason: "ring " + strconv.Itoa(ri) + " has fewer than 4 points"}
		}
		for _, c := range ring {
			if !c.Valid(dim) {
				return Polygon{}, &InvalidArgument{Op: "NewPolygon", Reason: "non-finite coordinate in ring " + strconv.Itoa(ri)}
			}
		}
		closed := make([]Coordinate, len(ring))
		copy(closed, ring)
		if len(closed) > 0 && !closed[0].Equal(closed[len(closed)-1], dim) {
			return Polygon{}, &InvalidArgument{Op: "NewPolygon", Reason: "ring " + strconv.Itoa(ri) + " is not closed"}
		}

		wantCW := ri > 0
		if len(closed) >= 4 {
			cw := isClockwise(closed)
			if o.autoOrient {
				if cw != wantCW {
					reverseCoords(closed)
				}
			} else if cw != wantCW {
				which := "exterior ring must be counter-clockwise"
				if ri > 0 {
					which = "hole ring " + strconv.Itoa(ri) + " must be clockwise"
				}
				return Polygon{}, &InvalidArgument{Op: "NewPolygon", Reason: which}
			}
		}
		out[ri] = closed
	}

	return Polygon{base: base{srid: srid, dim: dim, kind: KindPolygon}, Rings: out}, nil
}

// NewEmptyPolygon builds the empty polygon for dim.
func NewEmptyPolygon(srid int32, dim Dim) Polygon {
	return Polygon{base: base{srid: srid, dim: dim, kind: KindPolygon}}
}

// IsEmpty reports whether p has no rings.
func (p Polygon) IsEmpty() bool { return len(p.Rings) == 0 }

// ExteriorRing returns the exterior ring, or nil if p is empty.
func (p Polygon) ExteriorRing() []Coordinate {
	if p.IsEmpty() {
		return nil
	}
	return p.Rings[0]
}

// InteriorRings returns the hole rings.
func (p Polygon) InteriorRings() [][]Coordinate {
	if len(p.Rings) < 2 {
		return nil
	}
	return p.Rings[1:]
}

// Bounds returns the bounding box of the exterior ring only (holes never
// extend a polygon's extent beyond its shell).
func (p Polygon) Bounds() BoundingBox {
	if p.IsEmpty() {
		return EmptyBoundingBox()
	}
	b := EmptyBoundingBox()
	for _, c := range p.Rings[0] {
		b.extend(c)
	}
	return b
}

// signedArea2 returns twice the shoelace signed area of a closed ring in
// the XY plane. Positive indicates counter-clockwise winding.
func signedArea2(ring []Coordinate) float64 {
	var sum float64
	n := len(ring)
	if n < 4 {
		return 0
	}
	for i := 0; i < n-1; i++ {
		a, b := ring[i], ring[i+1]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum
}

// isClockwise reports whether a closed ring winds clockwise in
// screen-standard axes (signed area negative).
func isClockwise(ring []Coordinate) bool {
	return signedArea2(ring) < 0
}

func reverseCoords(c []Coordinate) {
	for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}
}
