package geom

// MultiPolygon is an ordered sequence of Polygons sharing the parent's
// SRID and Dim.
type MultiPolygon struct {
	base
	Polys []Polygon
}

// NewMultiPolygon rewrites every member's srid/dim to the parent's.
func NewMultiPolygon(srid int32, dim Dim, polys []Polygon) (MultiPolygon, error) {
	out := make([]Polygon, len(polys))
	for i, p := range polys {
		for _, ring := range p.Rings {
			for _, c := range ring {
				if !c.Valid(dim) {
					return MultiPolygon{}, &InvalidArgument{Op: "NewMultiPolygon", Reason: "non-finite coordinate"}
				}
			}
		}
		p.base = base{srid: srid, dim: dim, kind: KindPolygon}
		out[i] = p
	}
	return MultiPolygon{base: base{srid: srid, dim: dim, kind: KindMultiPolygon}, Polys: out}, nil
}

// IsEmpty reports whether m has no member polygons.
func (m MultiPolygon) IsEmpty() bool { return len(m.Polys) == 0 }

// Bounds unions the bounds of every member polygon.
func (m MultiPolygon) Bounds() BoundingBox {
	b := EmptyBoundingBox()
	for _, p := range m.Polys {
		b = b.Union(p.Bounds())
	}
	return b
}
