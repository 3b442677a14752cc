package overlay

import (
	"strconv"
	"strings"

	"github.com/fathomline/stgeo/pkg/geom"
)

// Union returns the point set union of a and b. Polygonal operands are
// combined via Greiner-Hormann clipping (doc.go); non-polygonal operands
// are bagged into a GeometryCollection (or a MultiPoint/MultiLineString/
// MultiPolygon when both sides are single geometries of one kind), since "union" of points/lines is simple aggregation
// rather than a planar-subdivision problem.
func Union(a, b geom.Geometry) (geom.Geometry, error) {
	if err := geom.RequireSameSRID("ST_Union", a, b); err != nil {
		return nil, err
	}
	if isPolygonal(a) && isPolygonal(b) {
		return polygonalOp(a, b, opUnion)
	}
	return collect([]geom.Geometry{a, b})
}

// Intersection returns the point set intersection of a and b. Only
// polygon-vs-polygon is supported exactly; other combinations return
// TopologyException, per this package's documented scope (doc.go).
func Intersection(a, b geom.Geometry) (geom.Geometry, error) {
	if err := geom.RequireSameSRID("ST_Intersection", a, b); err != nil {
		return nil, err
	}
	if isPolygonal(a) && isPolygonal(b) {
		return polygonalOp(a, b, opIntersection)
	}
	return nil, &geom.TopologyException{Op: "ST_Intersection", Reason: "exact intersection of non-polygonal geometries is not implemented; use pkg/relate predicates to test for overlap first"}
}

// Difference returns the points of a not in b.
func Difference(a, b geom.Geometry) (geom.Geometry, error) {
	if err := geom.RequireSameSRID("ST_Difference", a, b); err != nil {
		return nil, err
	}
	if isPolygonal(a) && isPolygonal(b) {
		return polygonalOp(a, b, opDifference)
	}
	return nil, &geom.TopologyException{Op: "ST_Difference", Reason: "exact difference of non-polygonal geometries is not implemented; use pkg/relate predicates to test for overlap first"}
}

// SymDifference returns the points in exactly one of a or b.
func SymDifference(a, b geom.Geometry) (geom.Geometry, error) {
	ab, err := Difference(a, b)
	if err != nil {
		return nil, err
	}
	ba, err := Difference(b, a)
	if err != nil {
		return nil, err
	}
	return Union(ab, ba)
}

func isPolygonal(g geom.Geometry) bool {
	switch g.(type) {
	case geom.Polygon, geom.MultiPolygon:
		return true
	default:
		return false
	}
}

func polygonRings(g geom.Geometry) []geom.Polygon {
	return geom.Polygons(g)
}

// polygonalOp folds op pairwise across every (ringA, ringB) exterior
// ring combination from a and b's flattened polygon parts, accumulating
// contours into a single result polygon/multipolygon. Holes on either
// operand are dropped from the result (documented limitation: this
// package clips exterior rings only, see doc.go).
func polygonalOp(a, b geom.Geometry, op clipOp) (geom.Geometry, error) {
	as := polygonRings(a)
	bs := polygonRings(b)
	srid := a.SRID()

	if len(as) == 0 || len(bs) == 0 {
		return emptyOrPassthrough(op, as, bs, srid)
	}

	var contours [][]geom.Coordinate
	anyClipped := false
	for _, pa := range as {
		for _, pb := range bs {
			res, ok := clipPolygons(pa.ExteriorRing(), pb.ExteriorRing(), op)
			if ok {
				anyClipped = true
				contours = append(contours, res...)
				continue
			}
			fallback := containmentFallback(pa, pb, op)
			contours = append(contours, fallback...)
		}
	}
	if !anyClipped && len(as) == 1 && len(bs) == 1 {
		return ringsToGeometry(contours, srid)
	}
	return ringsToGeometry(dedupeRings(contours), srid)
}

// containmentFallback handles the non-crossing cases (disjoint, or one
// polygon wholly inside the other) that clipPolygons reports ok=false
// for, since Greiner-Hormann only produces contours from actual edge
// crossings.
func containmentFallback(pa, pb geom.Polygon, op clipOp) [][]geom.Coordinate {
	aInB := polygonInsidePolygon(pa, pb)
	bInA := polygonInsidePolygon(pb, pa)
	switch op {
	case opUnion:
		switch {
		case aInB:
			return [][]geom.Coordinate{pb.ExteriorRing()}
		case bInA:
			return [][]geom.Coordinate{pa.ExteriorRing()}
		default:
			return [][]geom.Coordinate{pa.ExteriorRing(), pb.ExteriorRing()}
		}
	case opIntersection:
		switch {
		case aInB:
			return [][]geom.Coordinate{pa.ExteriorRing()}
		case bInA:
			return [][]geom.Coordinate{pb.ExteriorRing()}
		default:
			return nil
		}
	default: // opDifference: pa - pb
		switch {
		case bInA:
			// pb sits entirely inside pa: the exact result has a hole
			// where pb was, which this exterior-ring-only kernel
			// cannot represent; approximated as pa unchanged.
			return [][]geom.Coordinate{pa.ExteriorRing()}
		case aInB:
			return nil
		default:
			return [][]geom.Coordinate{pa.ExteriorRing()}
		}
	}
}

func polygonInsidePolygon(inner, outer geom.Polygon) bool {
	for _, c := range inner.ExteriorRing() {
		if !ringContainsPoint(c, outer.ExteriorRing()) {
			return false
		}
	}
	return true
}

func emptyOrPassthrough(op clipOp, as, bs []geom.Polygon, srid int32) (geom.Geometry, error) {
	switch op {
	case opUnion:
		all := append(append([]geom.Polygon{}, as...), bs...)
		return ringsToGeometry(ringsOf(all), srid)
	case opIntersection:
		return geom.NewEmptyPolygon(srid, geom.XY), nil
	default: // difference
		return ringsToGeometry(ringsOf(as), srid)
	}
}

func ringsOf(polys []geom.Polygon) [][]geom.Coordinate {
	out := make([][]geom.Coordinate, 0, len(polys))
	for _, p := range polys {
		if !p.IsEmpty() {
			out = append(out, p.ExteriorRing())
		}
	}
	return out
}

func dedupeRings(rings [][]geom.Coordinate) [][]geom.Coordinate {
	seen := make(map[string]bool, len(rings))
	out := make([][]geom.Coordinate, 0, len(rings))
	for _, r := range rings {
		key := ringKey(r)
		if !seen[key] {
			seen[key] = true
			out = append(out, r)
		}
	}
	return out
}

func ringKey(r []geom.Coordinate) string {
	var b strings.Builder
	for _, c := range r {
		b.WriteString(strconv.FormatFloat(c.X, 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(c.Y, 'g', -1, 64))
		b.WriteByte(';')
	}
	return b.String()
}

func ringsToGeometry(rings [][]geom.Coordinate, srid int32) (geom.Geometry, error) {
	if len(rings) == 0 {
		return geom.NewEmptyPolygon(srid, geom.XY), nil
	}
	if len(rings) == 1 {
		return geom.NewPolygon(srid, geom.XY, [][]geom.Coordinate{rings[0]}, geom.AutoOrient())
	}
	polys := make([]geom.Polygon, 0, len(rings))
	for _, r := range rings {
		p, err := geom.NewPolygon(srid, geom.XY, [][]geom.Coordinate{r}, geom.AutoOrient())
		if err != nil {
			return nil, err
		}
		polys = append(polys, p)
	}
	return geom.NewMultiPolygon(srid, geom.XY, polys)
}

// unionAll merges a slice of polygons (e.g. per-segment buffer strips)
// into a single result by folding Union across them pairwise.
func unionAll(polys []geom.Polygon, srid int32) (geom.Geometry, error) {
	if len(polys) == 0 {
		return geom.NewEmptyPolygon(srid, geom.XY), nil
	}
	acc := geom.Geometry(polys[0])
	for _, p := range polys[1:] {
		merged, err := Union(acc, p)
		if err != nil {
			return nil, err
		}
		acc = merged
	}
	return acc, nil
}

// Collect bags geometries into a single value without merging overlaps:
// a GeometryCollection in general, or the matching Multi* type when
// every member shares one kind, per SPEC_FULL.md §8's ST_Collect.
func Collect(geoms []geom.Geometry) (geom.Geometry, error) {
	return collect(geoms)
}

func collect(geoms []geom.Geometry) (geom.Geometry, error) {
	if len(geoms) == 0 {
		return geom.NewEmptyPoint(0, geom.XY), nil
	}
	srid := geoms[0].SRID()
	for _, g := range geoms[1:] {
		if err := geom.RequireSameSRID("ST_Collect", geoms[0], g); err != nil {
			return nil, err
		}
	}
	dim := geoms[0].Dim()
	allPoints, allLines, allPolys := true, true, true
	for _, g := range geoms {
		switch g.(type) {
		case geom.Point:
			allLines, allPolys = false, false
		case geom.LineString:
			allPoints, allPolys = false, false
		case geom.Polygon:
			allPoints, allLines = false, false
		default:
			allPoints, allLines, allPolys = false, false, false
		}
	}
	switch {
	case allPoints:
		pts := make([]geom.Point, len(geoms))
		for i, g := range geoms {
			pts[i] = g.(geom.Point)
		}
		return geom.NewMultiPoint(srid, dim, pts)
	case allLines:
		lines := make([]geom.LineString, len(geoms))
		for i, g := range geoms {
			lines[i] = g.(geom.LineString)
		}
		return geom.NewMultiLineString(srid, dim, lines)
	case allPolys:
		polys := make([]geom.Polygon, len(geoms))
		for i, g := range geoms {
			polys[i] = g.(geom.Polygon)
		}
		return geom.NewMultiPolygon(srid, dim, polys)
	default:
		return geom.NewGeometryCollection(srid, dim, geoms)
	}
}

// UnionMany folds Union pairwise across geoms, the aggregate ST_Union
// form that merges overlapping polygons rather than bagging them
// (compare Collect).
func UnionMany(geoms []geom.Geometry) (geom.Geometry, error) {
	if len(geoms) == 0 {
		return geom.NewEmptyPoint(0, geom.XY), nil
	}
	acc := geoms[0]
	for _, g := range geoms[1:] {
		merged, err := Union(acc, g)
		if err != nil {
			return nil, err
		}
		acc = merged
	}
	return acc, nil
}
