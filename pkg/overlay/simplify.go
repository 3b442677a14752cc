package overlay

import (
	"math"

	"github.com/fathomline/stgeo/pkg/geom"
)

// Simplify reduces g's vertex count via the Douglas-Peucker algorithm,
// discarding points that deviate from the simplified line by less than
// tolerance. Applied independently to every linestring and every ring of
// g, preserving the input's geometry kind.
func Simplify(g geom.Geometry, tolerance float64) (geom.Geometry, error) {
	if tolerance < 0 {
		return nil, &geom.InvalidArgument{Op: "ST_Simplify", Reason: "tolerance must be non-negative"}
	}
	switch v := g.(type) {
	case geom.Point:
		return v, nil
	case geom.LineString:
		if v.IsEmpty() {
			return v, nil
		}
		return geom.NewLineString(v.SRID(), v.Dim(), douglasPeucker(v.Coords, tolerance))
	case geom.Polygon:
		if v.IsEmpty() {
			return v, nil
		}
		rings := make([][]geom.Coordinate, 0, len(v.Rings))
		for _, r := range v.Rings {
			simplified := douglasPeucker(r, tolerance)
			if len(simplified) < 4 {
				continue // a degenerate ring vanishes rather than producing an invalid one
			}
			rings = append(rings, simplified)
		}
		if len(rings) == 0 {
			return geom.NewEmptyPolygon(v.SRID(), v.Dim()), nil
		}
		return geom.NewPolygon(v.SRID(), v.Dim(), rings, geom.AutoOrient())
	case geom.MultiPoint:
		return v, nil
	case geom.MultiLineString:
		lines := make([]geom.LineString, len(v.Lines))
		for i, ls := range v.Lines {
			simplified, err := Simplify(ls, tolerance)
			if err != nil {
				return nil, err
			}
			lines[i] = simplified.(geom.LineString)
		}
		return geom.NewMultiLineString(v.SRID(), v.Dim(), lines)
	case geom.MultiPolygon:
		polys := make([]geom.Polygon, len(v.Polys))
		for i, p := range v.Polys {
			simplified, err := Simplify(p, tolerance)
			if err != nil {
				return nil, err
			}
			polys[i] = simplified.(geom.Polygon)
		}
		return geom.NewMultiPolygon(v.SRID(), v.Dim(), polys)
	case geom.GeometryCollection:
		members := make([]geom.Geometry, len(v.Geoms))
		for i, m := range v.Geoms {
			simplified, err := Simplify(m, tolerance)
			if err != nil {
				return nil, err
			}
			members[i] = simplified
		}
		return geom.NewGeometryCollection(v.SRID(), v.Dim(), members)
	default:
		return nil, &geom.UnsupportedGeometry{Kind: g.Kind().String(), Reason: "ST_Simplify does not support this geometry kind"}
	}
}

func douglasPeucker(coords []geom.Coordinate, tolerance float64) []geom.Coordinate {
	if len(coords) < 3 {
		return coords
	}
	keep := make([]bool, len(coords))
	keep[0] = true
	keep[len(coords)-1] = true
	dpRecurse(coords, 0, len(coords)-1, tolerance, keep)

	out := make([]geom.Coordinate, 0, len(coords))
	for i, k := range keep {
		if k {
			out = append(out, coords[i])
		}
	}
	return out
}

func dpRecurse(coords []geom.Coordinate, lo, hi int, tolerance float64, keep []bool) {
	if hi <= lo+1 {
		return
	}
	maxDist := -1.0
	maxIdx := -1
	for i := lo + 1; i < hi; i++ {
		d := perpendicularDistance(coords[i], coords[lo], coords[hi])
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}
	if maxDist <= tolerance {
		return
	}
	keep[maxIdx] = true
	dpRecurse(coords, lo, maxIdx, tolerance, keep)
	dpRecurse(coords, maxIdx, hi, tolerance, keep)
}

func perpendicularDistance(p, a, b geom.Coordinate) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	num := math.Abs(dy*p.X - dx*p.Y + b.X*a.Y - b.Y*a.X)
	return num / math.Sqrt(lenSq)
}
