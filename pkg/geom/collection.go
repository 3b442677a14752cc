package geom

// MaxNestingDepth bounds how deeply a GeometryCollection may nest other
// collections. It is enforced by the WKT and EWKB readers at parse time
// (internal/wkt, internal/ewkb) to prevent stack exhaustion from an
// adversarial blob; constructing a GeometryCollection directly in Go code
// is not depth-limited since the caller already holds the nested values.
const MaxNestingDepth = 32

// GeometryCollection is an ordered sequence of arbitrary geometries,
// possibly including nested collections, sharing the parent's SRID and
// Dim.
type GeometryCollection struct {
	base
	Geoms []Geometry
}

// NewGeometryCollection rewrites every member's SRID to the parent's
// (members keep their own Kind and may have mixed concrete types, but
// must already share the parent's Dim).
func NewGeometryCollection(srid int32, dim Dim, geoms []Geometry) (GeometryCollection, error) {
	out := make([]Geometry, len(geoms))
	for i, g := range geoms {
		if g.Dim() != dim {
			return GeometryCollection{}, &DimensionMismatch{Want: dim, Got: g.Dim(), Op: "NewGeometryCollection"}
		}
		out[i] = WithSRID(g, srid)
	}
	return GeometryCollection{base: base{srid: srid, dim: dim, kind: KindGeometryCollection}, Geoms: out}, nil
}

// IsEmpty reports whether c has no members (note: a collection containing
// only empty members is not itself considered empty by this definition,
// matching OGC semantics where ST_IsEmpty examines structure, not content).
func (c GeometryCollection) IsEmpty() bool { return len(c.Geoms) == 0 }

// Bounds unions the bounds of every member geometry.
func (c GeometryCollection) Bounds() BoundingBox {
	b := EmptyBoundingBox()
	for _, g := range c.Geoms {
		b = b.Union(g.Bounds())
	}
	return b
}
