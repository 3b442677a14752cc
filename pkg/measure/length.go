package measure

import (
	"math"

	"github.com/fathomline/stgeo/pkg/geom"
)

// Length sums Euclidean edge length over every linestring reachable from
// g (recursing through MultiLineString and GeometryCollection). Polygons
// and points contribute zero length; use Perimeter for polygon boundary
// length. XYZ/XYZM geometries are summed in 3-D.
func Length(g geom.Geometry) float64 {
	var total float64
	for _, ls := range geom.LineStrings(g) {
		total += ringLength(ls.Coords, ls.Dim())
	}
	return total
}

// Perimeter sums the length of every ring (exterior plus holes) of every
// polygon reachable from g. LineStrings and points contribute zero; use
// Length for linear geometry.
func Perimeter(g geom.Geometry) float64 {
	var total float64
	for _, poly := range geom.Polygons(g) {
		for _, ring := range poly.Rings {
			total += ringLength(ring, poly.Dim())
		}
	}
	return total
}

func ringLength(coords []geom.Coordinate, dim geom.Dim) float64 {
	var total float64
	for i := 1; i < len(coords); i++ {
		total += segmentLength(coords[i-1], coords[i], dim)
	}
	return total
}

func segmentLength(a, b geom.Coordinate, dim geom.Dim) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dim.HasZ() {
		dz := b.Z - a.Z
		return math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	return math.Sqrt(dx*dx + dy*dy)
}
