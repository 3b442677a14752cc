package geom

// Points flattens g into its constituent Point values, recursing through
// multi-geometries and collections. Used by measurement (centroid of a
// point set) and predicate (vertex enumeration) code that wants to treat
// Point/MultiPoint/mixed collections uniformly.
func Points(g Geometry) []Point {
	switch v := g.(type) {
	case Point:
		return []Point{v}
	case MultiPoint:
		return append([]Point(nil), v.Points...)
	case GeometryCollection:
		var out []Point
		for _, c := range v.Geoms {
			out = append(out, Points(c)...)
		}
		return out
	default:
		return nil
	}
}

// LineStrings flattens g into its constituent LineString values.
func LineStrings(g Geometry) []LineString {
	switch v := g.(type) {
	case LineString:
		return []LineString{v}
	case MultiLineString:
		return append([]LineString(nil), v.Lines...)
	case GeometryCollection:
		var out []LineString
		for _, c := range v.Geoms {
			out = append(out, LineStrings(c)...)
		}
		return out
	default:
		return nil
	}
}

// Polygons flattens g into its constituent Polygon values.
func Polygons(g Geometry) []Polygon {
	switch v := g.(type) {
	case Polygon:
		return []Polygon{v}
	case MultiPolygon:
		return append([]Polygon(nil), v.Polys...)
	case GeometryCollection:
		var out []Polygon
		for _, c := range v.Geoms {
			out = append(out, Polygons(c)...)
		}
		return out
	default:
		return nil
	}
}

// Vertices collects every coordinate appearing anywhere in g, in
// depth-first traversal order. Used for Hausdorff distance, convex hull,
// and minimum bounding circle, none of which care about part structure.
func Vertices(g Geometry) []Coordinate {
	var out []Coordinate
	switch v := g.(type) {
	case Point:
		if !v.Empty {
			out = append(out, v.Coord)
		}
	case LineString:
		out = append(out, v.Coords...)
	case Polygon:
		for _, ring := range v.Rings {
			out = append(out, ring...)
		}
	case MultiPoint:
		for _, p := range v.Points {
			out = append(out, Vertices(p)...)
		}
	case MultiLineString:
		for _, l := range v.Lines {
			out = append(out, Vertices(l)...)
		}
	case MultiPolygon:
		for _, p := range v.Polys {
			out = append(out, Vertices(p)...)
		}
	case GeometryCollection:
		for _, c := range v.Geoms {
			out = append(out, Vertices(c)...)
		}
	}
	return out
}

// IsEmptyDeep reports whether g and, recursively, every member of g
// carries no coordinates at all (stricter than Geometry.IsEmpty, which
// for collections only checks member count).
func IsEmptyDeep(g Geometry) bool {
	return len(Vertices(g)) == 0
}
