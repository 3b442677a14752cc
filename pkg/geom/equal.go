package geom

// Equal reports whether a and b are the same geometry: same Kind, same
// SRID, same Dim, and bitwise-equal (per Coordinate.Equal) coordinates in
// the same order. This is the strict notion used by round-trip tests; the
// topological Equals predicate (pkg/relate) is looser (same point set,
// different vertex order or part count is still equal).
func Equal(a, b Geometry) bool {
	if a.Kind() != b.Kind() || a.SRID() != b.SRID() || a.Dim() != b.Dim() {
		return false
	}
	switch av := a.(type) {
	case Point:
		bv := b.(Point)
		if av.Empty != bv.Empty {
			return false
		}
		return av.Empty || av.Coord.Equal(bv.Coord, av.dim)
	case LineString:
		bv := b.(LineString)
		return coordsEqual(av.Coords, bv.Coords, av.dim)
	case Polygon:
		bv := b.(Polygon)
		if len(av.Rings) != len(bv.Rings) {
			return false
		}
		for i := range av.Rings {
			if !coordsEqual(av.Rings[i], bv.Rings[i], av.dim) {
				return false
			}
		}
		return true
	case MultiPoint:
		bv := b.(MultiPoint)
		if len(av.Points) != len(bv.Points) {
			return false
		}
		for i := range av.Points {
			if !Equal(av.Points[i], bv.Points[i]) {
				return false
			}
		}
		return true
	case MultiLineString:
		bv := b.(MultiLineString)
		if len(av.Lines) != len(bv.Lines) {
			return false
		}
		for i := range av.Lines {
			if !Equal(av.Lines[i], bv.Lines[i]) {
				return false
			}
		}
		return true
	case MultiPolygon:
		bv := b.(MultiPolygon)
		if len(av.Polys) != len(bv.Polys) {
			return false
		}
		for i := range av.Polys {
			if !Equal(av.Polys[i], bv.Polys[i]) {
				return false
			}
		}
		return true
	case GeometryCollection:
		bv := b.(GeometryCollection)
		if len(av.Geoms) != len(bv.Geoms) {
			return false
		}
		for i := range av.Geoms {
			if !Equal(av.Geoms[i], bv.Geoms[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func coordsEqual(a, b []Coordinate, dim Dim) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i], dim) {
			return false
		}
	}
	return true
}
