package geom

// MultiPoint is an ordered sequence of Points sharing the parent's SRID
// and Dim.
type MultiPoint struct {
	base
	Points []Point
}

// NewMultiPoint rewrites every member's srid/dim to the collection's, so
// loosely-tagged points are accepted rather than rejected.
func NewMultiPoint(srid int32, dim Dim, points []Point) (MultiPoint, error) {
	out := make([]Point, len(points))
	for i, p := range points {
		if !p.Empty && !p.Coord.Valid(dim) {
			return MultiPoint{}, &InvalidArgument{Op: "NewMultiPoint", Reason: "non-finite coordinate"}
		}
		p.base = base{srid: srid, dim: dim, kind: KindPoint}
		out[i] = p
	}
	return MultiPoint{base: base{srid: srid, dim: dim, kind: KindMultiPoint}, Points: out}, nil
}

// IsEmpty reports whether m has no member points.
func (m MultiPoint) IsEmpty() bool { return len(m.Points) == 0 }

// Bounds unions the bounds of every member point.
func (m MultiPoint) Bounds() BoundingBox {
	b := EmptyBoundingBox()
	for _, p := range m.Points {
		b = b.Union(p.Bounds())
	}
	return b
}
