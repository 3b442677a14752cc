package registry

import (
	"github.com/fathomline/stgeo/pkg/geom"
	"github.com/fathomline/stgeo/pkg/measure"
)

// dimension returns ST_Dimension: 0 for points, 1 for lines, 2 for
// polygons, and the maximum dimension of any member for multi-geometries
// and collections (an empty collection has dimension -1, matching
// PostGIS).
func dimension(g geom.Geometry) int {
	switch v := g.(type) {
	case geom.Point:
		return 0
	case geom.LineString:
		return 1
	case geom.Polygon:
		return 2
	case geom.MultiPoint:
		return 0
	case geom.MultiLineString:
		return 1
	case geom.MultiPolygon:
		return 2
	case geom.GeometryCollection:
		max := -1
		for _, m := range v.Geoms {
			if d := dimension(m); d > max {
				max = d
			}
		}
		return max
	default:
		return -1
	}
}

// geometryType returns ST_GeometryType's "ST_"-prefixed kind name.
func geometryType(g geom.Geometry) string {
	return "ST_" + titleCase(g.Kind().String())
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	for i := 1; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] = b[i] - 'A' + 'a'
		}
	}
	return string(b)
}

// numGeometries is 1 for a single geometry, the part count for a
// Multi*/GeometryCollection.
func numGeometries(g geom.Geometry) int {
	switch v := g.(type) {
	case geom.MultiPoint:
		return len(v.Points)
	case geom.MultiLineString:
		return len(v.Lines)
	case geom.MultiPolygon:
		return len(v.Polys)
	case geom.GeometryCollection:
		return len(v.Geoms)
	default:
		if g.IsEmpty() {
			return 0
		}
		return 1
	}
}

// geometryN returns the n'th (1-indexed) part of g.
func geometryN(g geom.Geometry, n int) (geom.Geometry, bool) {
	switch v := g.(type) {
	case geom.MultiPoint:
		if n < 1 || n > len(v.Points) {
			return nil, false
		}
		return v.Points[n-1], true
	case geom.MultiLineString:
		if n < 1 || n > len(v.Lines) {
			return nil, false
		}
		return v.Lines[n-1], true
	case geom.MultiPolygon:
		if n < 1 || n > len(v.Polys) {
			return nil, false
		}
		return v.Polys[n-1], true
	case geom.GeometryCollection:
		if n < 1 || n > len(v.Geoms) {
			return nil, false
		}
		return v.Geoms[n-1], true
	default:
		if n == 1 && !g.IsEmpty() {
			return g, true
		}
		return nil, false
	}
}

// numPoints generalizes ST_NumPoints (PostGIS restricts it to
// LineString) to total vertex count for any geometry, via
// geom.Vertices.
func numPoints(g geom.Geometry) int {
	return len(geom.Vertices(g))
}

// numInteriorRings is len(Rings)-1 for a non-empty polygon, 0 otherwise.
func numInteriorRings(p geom.Polygon) int {
	if p.IsEmpty() {
		return 0
	}
	return len(p.Rings) - 1
}

func exteriorRing(p geom.Polygon) (geom.LineString, error) {
	if p.IsEmpty() {
		return geom.NewEmptyLineString(p.SRID(), p.Dim()), nil
	}
	return geom.NewLineString(p.SRID(), p.Dim(), p.ExteriorRing())
}

func interiorRingN(p geom.Polygon, n int) (geom.LineString, bool, error) {
	holes := p.InteriorRings()
	if n < 1 || n > len(holes) {
		return geom.LineString{}, false, nil
	}
	ls, err := geom.NewLineString(p.SRID(), p.Dim(), holes[n-1])
	return ls, true, err
}

func pointN(l geom.LineString, n int) (geom.Point, bool, error) {
	if n < 1 || n > len(l.Coords) {
		return geom.Point{}, false, nil
	}
	p, err := geom.NewPoint(l.SRID(), l.Dim(), l.Coords[n-1])
	return p, true, err
}

func startEndPoint(l geom.LineString, end bool) (geom.Point, bool, error) {
	if l.IsEmpty() {
		return geom.Point{}, false, nil
	}
	idx := 1
	if end {
		idx = len(l.Coords)
	}
	return pointN(l, idx)
}

// isRing reports whether l is both closed and simple: no two
// non-adjacent segments cross. O(n^2); acceptable since ST_IsRing is
// called on individual rings, not bulk data.
func isRing(l geom.LineString) bool {
	if !l.IsClosed() || len(l.Coords) < 4 {
		return false
	}
	coords := l.Coords
	n := len(coords) - 1 // last point duplicates the first
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if adjacent(i, j, n) {
				continue
			}
			if measure.SegmentsIntersect(coords[i], coords[i+1], coords[j], coords[j+1]) {
				return false
			}
		}
	}
	return true
}

func adjacent(i, j, n int) bool {
	return i == j || (i+1)%n == j || (j+1)%n == i
}

// isValid is a pragmatic, non-exhaustive ST_IsValid: every geometry
// constructed through pkg/geom already satisfies ring-closure and
// minimum-point-count invariants, so the only remaining check worth
// making here is exterior-ring self-intersection for polygons.
func isValid(g geom.Geometry) bool {
	for _, p := range geom.Polygons(g) {
		ring := p.ExteriorRing()
		if len(ring) < 4 {
			continue
		}
		ls, err := geom.NewLineString(p.SRID(), p.Dim(), ring)
		if err != nil {
			return false
		}
		if !isRing(ls) {
			return false
		}
	}
	return true
}
