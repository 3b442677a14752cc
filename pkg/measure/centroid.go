package measure

import "github.com/fathomline/stgeo/pkg/geom"

// Centroid computes the area-weighted centroid for polygonal geometries,
// the length-weighted midpoint for linear geometries, and the arithmetic
// mean of vertices for point sets. Mixed GeometryCollections prefer the
// highest-dimension member class present (area > length > point), the
// same precedence PostGIS uses. An empty or IsEmptyDeep input yields an
// empty point.
func Centroid(g geom.Geometry) geom.Point {
	srid := g.SRID()
	dim := g.Dim()

	if polys := geom.Polygons(g); len(polys) > 0 && hasArea(polys) {
		if c, ok := areaCentroid(polys); ok {
			return mustPoint(srid, dim, c)
		}
	}
	if lines := geom.LineStrings(g); len(lines) > 0 {
		if c, ok := lengthCentroid(lines, dim); ok {
			return mustPoint(srid, dim, c)
		}
	}
	verts := geom.Vertices(g)
	if len(verts) == 0 {
		return geom.NewEmptyPoint(srid, dim)
	}
	var sx, sy, sz float64
	for _, v := range verts {
		sx += v.X
		sy += v.Y
		sz += v.Z
	}
	n := float64(len(verts))
	c := geom.Coordinate{X: sx / n, Y: sy / n}
	if dim.HasZ() {
		c.Z = sz / n
	}
	return mustPoint(srid, dim, c)
}

func hasArea(polys []geom.Polygon) bool {
	for _, p := range polys {
		if polygonArea(p) > 0 {
			return true
		}
	}
	return false
}

func mustPoint(srid int32, dim geom.Dim, c geom.Coordinate) geom.Point {
	p, err := geom.NewPoint(srid, dim, c)
	if err != nil {
		return geom.NewEmptyPoint(srid, dim)
	}
	return p
}

func areaCentroid(polys []geom.Polygon) (geom.Coordinate, bool) {
	var totalArea, cx, cy float64
	for _, p := range polys {
		a, x, y := ringCentroidWeighted(p.Rings[0])
		totalArea += a
		cx += x
		cy += y
		for _, hole := range p.Rings[1:] {
			// holes wind clockwise, so their signed terms are already negative
			a, x, y := ringCentroidWeighted(hole)
			totalArea += a
			cx += x
			cy += y
		}
	}
	if totalArea == 0 {
		return geom.Coordinate{}, false
	}
	return geom.Coordinate{X: cx / (3 * totalArea), Y: cy / (3 * totalArea)}, true
}

// ringCentroidWeighted returns (signedArea*2, sum_x_weighted, sum_y_weighted)
// using the standard polygon-centroid formula; callers divide by
// 3*totalSignedArea once all rings are accumulated.
func ringCentroidWeighted(ring []geom.Coordinate) (area, cx, cy float64) {
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
		area += cross
		cx += (ring[i].X + ring[j].X) * cross
		cy += (ring[i].Y + ring[j].Y) * cross
	}
	return area, cx, cy
}

func lengthCentroid(lines []geom.LineString, dim geom.Dim) (geom.Coordinate, bool) {
	var totalLen, sx, sy, sz float64
	for _, l := range lines {
		for i := 1; i < len(l.Coords); i++ {
			a, b := l.Coords[i-1], l.Coords[i]
			d := segmentLength(a, b, dim)
			if d == 0 {
				continue
			}
			mx, my := (a.X+b.X)/2, (a.Y+b.Y)/2
			sx += mx * d
			sy += my * d
			if dim.HasZ() {
				sz += (a.Z + b.Z) / 2 * d
			}
			totalLen += d
		}
	}
	if totalLen == 0 {
		return geom.Coordinate{}, false
	}
	c := geom.Coordinate{X: sx / totalLen, Y: sy / totalLen}
	if dim.HasZ() {
		c.Z = sz / totalLen
	}
	return c, true
}
