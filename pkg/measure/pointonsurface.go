package measure

import (
	"sort"

	"github.com/fathomline/stgeo/pkg/geom"
)

// PointOnSurface returns a point guaranteed to lie in the interior of an
// areal geometry (or on a linear/point geometry where "interior" reduces
// to the geometry itself): it scan-lines at the horizontal median of the
// bounding box and picks the midpoint of the longest interior segment of
// that scan line, per spec.md §4.2.
func PointOnSurface(g geom.Geometry) geom.Point {
	srid, dim := g.SRID(), g.Dim()
	polys := geom.Polygons(g)
	if len(polys) == 0 {
		return fallbackPointOnSurface(g, srid, dim)
	}

	bb := g.Bounds()
	if bb.IsEmpty() {
		return geom.NewEmptyPoint(srid, dim)
	}
	y := (bb.MinY + bb.MaxY) / 2

	var spans []xspan
	for _, p := range polys {
		ext := scanLineCrossingsInPolygon(p, y)
		spans = append(spans, ext...)
	}
	if len(spans) == 0 {
		c := geom.Coordinate{X: (bb.MinX + bb.MaxX) / 2, Y: y}
		return mustPoint(srid, dim, c)
	}
	best := spans[0]
	for _, s := range spans[1:] {
		if s.hi-s.lo > best.hi-best.lo {
			best = s
		}
	}
	c := geom.Coordinate{X: (best.lo + best.hi) / 2, Y: y}
	return mustPoint(srid, dim, c)
}

type xspan struct{ lo, hi float64 }

// scanLineCrossingsInPolygon intersects polygon p with the horizontal
// line y=y, returning the interior spans (exterior ring minus holes) as
// [lo,hi] x-intervals, via the standard even-odd crossing rule applied
// ring-by-ring and merged.
func scanLineCrossingsInPolygon(p geom.Polygon, y float64) []xspan {
	var xs []float64
	for _, ring := range p.Rings {
		xs = append(xs, ringCrossings(ring, y)...)
	}
	sort.Float64s(xs)
	var spans []xspan
	for i := 0; i+1 < len(xs); i += 2 {
		spans = append(spans, xspan{lo: xs[i], hi: xs[i+1]})
	}
	return spans
}

func ringCrossings(ring []geom.Coordinate, y float64) []float64 {
	var xs []float64
	n := len(ring)
	for i := 0; i < n-1; i++ {
		a, b := ring[i], ring[i+1]
		if (a.Y <= y && b.Y > y) || (b.Y <= y && a.Y > y) {
			t := (y - a.Y) / (b.Y - a.Y)
			xs = append(xs, a.X+t*(b.X-a.X))
		}
	}
	return xs
}

func fallbackPointOnSurface(g geom.Geometry, srid int32, dim geom.Dim) geom.Point {
	lines := geom.LineStrings(g)
	if len(lines) > 0 {
		mid := lines[0].Coords[len(lines[0].Coords)/2]
		return mustPoint(srid, dim, mid)
	}
	pts := geom.Points(g)
	if len(pts) > 0 {
		return pts[0]
	}
	return geom.NewEmptyPoint(srid, dim)
}
