package overlay

import (
	"sort"

	"github.com/fathomline/stgeo/pkg/geom"
)

// ConvexHull returns the smallest convex polygon enclosing every vertex
// of g, via Andrew's monotone chain construction (O(n log n)).
func ConvexHull(g geom.Geometry) (geom.Geometry, error) {
	pts := dedupe(geom.Vertices(g))
	switch len(pts) {
	case 0:
		return geom.NewEmptyPoint(g.SRID(), geom.XY), nil
	case 1:
		return geom.NewPoint(g.SRID(), geom.XY, pts[0])
	case 2:
		return geom.NewLineString(g.SRID(), geom.XY, pts)
	}

	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	lower := monotoneChain(pts)
	upper := monotoneChain(reversed(pts))
	lower = lower[:len(lower)-1]
	upper = upper[:len(upper)-1]
	hull := append(lower, upper...)

	if len(hull) < 3 {
		return geom.NewLineString(g.SRID(), geom.XY, hull)
	}
	hull = append(hull, hull[0])
	return geom.NewPolygon(g.SRID(), geom.XY, [][]geom.Coordinate{hull}, geom.AutoOrient())
}

func monotoneChain(pts []geom.Coordinate) []geom.Coordinate {
	var chain []geom.Coordinate
	for _, p := range pts {
		for len(chain) >= 2 && cross(chain[len(chain)-2], chain[len(chain)-1], p) <= 0 {
			chain = chain[:len(chain)-1]
		}
		chain = append(chain, p)
	}
	return chain
}

func cross(o, a, b geom.Coordinate) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func dedupe(pts []geom.Coordinate) []geom.Coordinate {
	seen := make(map[geom.Coordinate]bool, len(pts))
	out := make([]geom.Coordinate, 0, len(pts))
	for _, p := range pts {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

func reversed(pts []geom.Coordinate) []geom.Coordinate {
	out := make([]geom.Coordinate, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
