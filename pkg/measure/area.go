package measure

import "github.com/fathomline/stgeo/pkg/geom"

// Area returns the absolute area of every polygon reachable from g
// (exterior minus holes, summed over MultiPolygon/GeometryCollection
// members). Non-areal geometries contribute zero.
func Area(g geom.Geometry) float64 {
	var total float64
	for _, poly := range geom.Polygons(g) {
		total += polygonArea(poly)
	}
	return total
}

func polygonArea(p geom.Polygon) float64 {
	if len(p.Rings) == 0 {
		return 0
	}
	area := absArea2(p.Rings[0]) / 2
	for _, hole := range p.Rings[1:] {
		area -= absArea2(hole) / 2
	}
	if area < 0 {
		return 0
	}
	return area
}

// signedArea2 returns twice the shoelace signed area of a closed ring:
// positive for counter-clockwise, negative for clockwise.
func signedArea2(ring []geom.Coordinate) float64 {
	var sum float64
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return sum
}

func absArea2(ring []geom.Coordinate) float64 {
	a := signedArea2(ring)
	if a < 0 {
		return -a
	}
	return a
}
