package measure

import (
	"math"

	"github.com/fathomline/stgeo/pkg/geom"
)

// HausdorffDistance returns the symmetric Hausdorff distance between a
// and b's vertex sets. densifyFrac, in (0, 1], densifies each edge with
// extra vertices spaced at most densifyFrac of the edge's length apart
// before measuring, closing the gap between a line's vertex set and its
// true continuous shape; a densifyFrac of 0 (or >= 1) skips densification
// and uses the raw vertex sets, matching PostGIS's no-argument overload.
func HausdorffDistance(a, b geom.Geometry, densifyFrac float64) (float64, error) {
	if err := geom.RequireSameSRID("ST_HausdorffDistance", a, b); err != nil {
		return 0, err
	}
	av := vertexSet(a, densifyFrac)
	bv := vertexSet(b, densifyFrac)
	if len(av) == 0 || len(bv) == 0 {
		return 0, &geom.InvalidArgument{Op: "ST_HausdorffDistance", Reason: "empty geometry"}
	}
	return math.Max(directedHausdorff(av, bv), directedHausdorff(bv, av)), nil
}

func vertexSet(g geom.Geometry, densifyFrac float64) []geom.Coordinate {
	if densifyFrac <= 0 || densifyFrac >= 1 {
		return geom.Vertices(g)
	}
	var out []geom.Coordinate
	for _, ls := range geom.LineStrings(g) {
		out = append(out, densifyRing(ls.Coords, densifyFrac)...)
	}
	for _, poly := range geom.Polygons(g) {
		for _, ring := range poly.Rings {
			out = append(out, densifyRing(ring, densifyFrac)...)
		}
	}
	for _, p := range geom.Points(g) {
		out = append(out, geom.Vertices(p)...)
	}
	if len(out) == 0 {
		return geom.Vertices(g)
	}
	return out
}

func densifyRing(coords []geom.Coordinate, frac float64) []geom.Coordinate {
	if len(coords) < 2 {
		return coords
	}
	var out []geom.Coordinate
	for i := 1; i < len(coords); i++ {
		a, b := coords[i-1], coords[i]
		out = append(out, a)
		d := math.Hypot(b.X-a.X, b.Y-a.Y)
		if d == 0 {
			continue
		}
		n := int(math.Ceil(1 / frac))
		for k := 1; k < n; k++ {
			t := float64(k) / float64(n)
			out = append(out, geom.Coordinate{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)})
		}
	}
	out = append(out, coords[len(coords)-1])
	return out
}

func directedHausdorff(from, to []geom.Coordinate) float64 {
	var maxMin float64
	for _, p := range from {
		min := math.Inf(1)
		for _, q := range to {
			d := pointDistance(p, q)
			if d < min {
				min = d
			}
		}
		if min > maxMin {
			maxMin = min
		}
	}
	return maxMin
}
