package relate

import (
	"github.com/fathomline/stgeo/pkg/geom"
	"github.com/fathomline/stgeo/pkg/measure"
)

// Relate computes the DE-9IM matrix between a and b. Both operands must
// share an SRID (spec.md invariant shared with every binary predicate).
func Relate(a, b geom.Geometry) (Matrix, error) {
	if err := geom.RequireSameSRID("ST_Relate", a, b); err != nil {
		return Matrix{}, err
	}
	return relateGeometries(a, b), nil
}

// relateGeometries decomposes both operands into their Point/LineString/
// Polygon parts and unions the pairwise relate matrices across every
// (partA, partB) pair, per the union rule documented on Matrix.union.
func relateGeometries(a, b geom.Geometry) Matrix {
	apts, alines, apolys := geom.Points(a), geom.LineStrings(a), geom.Polygons(a)
	bpts, blines, bpolys := geom.Points(b), geom.LineStrings(b), geom.Polygons(b)

	if len(apts)+len(alines)+len(apolys) == 0 || len(bpts)+len(blines)+len(bpolys) == 0 {
		return emptyMatrix()
	}

	m := emptyMatrix()
	for _, p := range apts {
		for _, q := range bpts {
			m = m.union(relatePointPoint(p, q))
		}
		for _, l := range blines {
			m = m.union(relatePointLine(p, l))
		}
		for _, poly := range bpolys {
			m = m.union(relatePointPolygon(p, poly))
		}
	}
	for _, l := range alines {
		for _, q := range bpts {
			m = m.union(transpose(relatePointLine(q, l)))
		}
		for _, bl := range blines {
			m = m.union(relateLineLine(l, bl))
		}
		for _, poly := range bpolys {
			m = m.union(relateLinePolygon(l, poly))
		}
	}
	for _, poly := range apolys {
		for _, q := range bpts {
			m = m.union(transpose(relatePointPolygon(q, poly)))
		}
		for _, bl := range blines {
			m = m.union(transpose(relateLinePolygon(bl, poly)))
		}
		for _, bpoly := range bpolys {
			m = m.union(relatePolygonPolygon(poly, bpoly))
		}
	}
	return m
}

func transpose(m Matrix) Matrix {
	var out Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// --- Point / Point ---

func relatePointPoint(a, b geom.Point) Matrix {
	m := emptyMatrix()
	if a.Coord.X == b.Coord.X && a.Coord.Y == b.Coord.Y {
		m[0][0] = 0 // IA ∩ IB
	} else {
		m[0][2] = 0 // IA ∩ EB
		m[2][0] = 0 // EA ∩ IB
		m[2][2] = 2 // EA ∩ EB
	}
	return m
}

// --- Point / LineString ---

func relatePointLine(p geom.Point, l geom.LineString) Matrix {
	m := emptyMatrix()
	onLine, isEndpoint := classifyPointOnLine(p.Coord, l.Coords)
	m[2][2] = 2 // EA ∩ EB: the plane outside both the point and the line
	if !onLine {
		m[0][2] = 0 // IA ∩ EB
		m[2][0] = 1 // EA ∩ IB
		if hasBoundary(l) {
			m[2][1] = 0 // EA ∩ BB
		}
		return m
	}
	if isEndpoint && hasBoundary(l) {
		m[0][1] = 0 // IA ∩ BB
	} else {
		m[0][0] = 0 // IA ∩ IB
	}
	m[2][0] = 1 // EA ∩ IB: the rest of the line's interior
	if hasBoundary(l) {
		if isEndpoint && len(l.Coords) > 0 && !(l.Coords[0] == l.Coords[len(l.Coords)-1]) {
			// the other endpoint, distinct from p, still sits in A's exterior
			m[2][1] = 0
		} else if !isEndpoint {
			m[2][1] = 0
		}
	}
	return m
}

// hasBoundary reports whether l has a non-empty OGC boundary: an open
// linestring's two endpoints, or none for a closed ring.
func hasBoundary(l geom.LineString) bool {
	n := len(l.Coords)
	if n < 2 {
		return false
	}
	return l.Coords[0] != l.Coords[n-1]
}

func classifyPointOnLine(p geom.Coordinate, coords []geom.Coordinate) (onLine, isEndpoint bool) {
	if len(coords) == 0 {
		return false, false
	}
	if p == coords[0] || p == coords[len(coords)-1] {
		closed := coords[0] == coords[len(coords)-1]
		if !closed {
			return true, true
		}
	}
	for i := 1; i < len(coords); i++ {
		if onSegment(coords[i-1], coords[i], p) {
			return true, false
		}
	}
	return false, false
}

// --- Point / Polygon ---

func relatePointPolygon(p geom.Point, poly geom.Polygon) Matrix {
	m := emptyMatrix()
	loc := locatePointInPolygon(p.Coord, poly)
	switch loc {
	case locInterior:
		m[0][0] = 0
		m[2][1] = 1
		m[2][2] = 2
	case locBoundary:
		m[0][1] = 0
		m[2][1] = 1
		m[2][2] = 2
	case locExterior:
		m[0][2] = 0
		m[2][0] = 2
		m[2][1] = 1
		m[2][2] = 2
	}
	return m
}

type pointLocation int

const (
	locExterior pointLocation = iota
	locBoundary
	locInterior
)

func locatePointInPolygon(p geom.Coordinate, poly geom.Polygon) pointLocation {
	ext := poly.ExteriorRing()
	switch ringLocate(p, ext) {
	case locExterior:
		return locExterior
	case locBoundary:
		return locBoundary
	}
	for _, hole := range poly.InteriorRings() {
		switch ringLocate(p, hole) {
		case locInterior:
			return locExterior
		case locBoundary:
			return locBoundary
		}
	}
	return locInterior
}

// ringLocate is the standard even-odd ray casting test, extended to
// detect on-boundary membership (point lies exactly on a ring edge).
func ringLocate(p geom.Coordinate, ring []geom.Coordinate) pointLocation {
	if len(ring) < 2 {
		return locExterior
	}
	inside := false
	for i := 1; i < len(ring); i++ {
		a, b := ring[i-1], ring[i]
		if onSegment(a, b, p) {
			return locBoundary
		}
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xint := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < xint {
				inside = !inside
			}
		}
	}
	if inside {
		return locInterior
	}
	return locExterior
}

// --- LineString / LineString ---

// relateLineLine classifies two linestrings by testing every pair of
// segments for intersection and checking whether each line's vertices
// are covered by the other, a pragmatic stand-in for full planar overlay
// (see pkg/relate's doc comment) that is exact whenever the lines do not
// partially overlap along a shared collinear span.
func relateLineLine(a, b geom.LineString) Matrix {
	m := emptyMatrix()
	m[2][2] = 2 // EA ∩ EB: always 2-D outside two 1-D curves in the plane
	anyIntersection := false

	for i := 1; i < len(a.Coords); i++ {
		for j := 1; j < len(b.Coords); j++ {
			sa0, sa1 := a.Coords[i-1], a.Coords[i]
			sb0, sb1 := b.Coords[j-1], b.Coords[j]
			if !segmentsIntersect(sa0, sa1, sb0, sb1) {
				continue
			}
			anyIntersection = true
			if shared, ok := sharedEndpoint(sa0, sa1, sb0, sb1); ok {
				_, aIsBoundary := classifyPointOnLine(shared, a.Coords)
				_, bIsBoundary := classifyPointOnLine(shared, b.Coords)
				switch {
				case aIsBoundary && bIsBoundary:
					markAtLeast(&m[1][1], 0)
				case aIsBoundary && !bIsBoundary:
					markAtLeast(&m[1][0], 0)
				case !aIsBoundary && bIsBoundary:
					markAtLeast(&m[0][1], 0)
				default:
					markAtLeast(&m[0][0], 0)
				}
				continue
			}
			// a proper interior crossing (or a collinear overlap this
			// segment-pair test cannot distinguish from one): both
			// sides contribute an interior point.
			markAtLeast(&m[0][0], 0)
		}
	}
	if !anyIntersection {
		m[0][2] = 1
		m[2][0] = 1
	}
	if !coveredByLine(a.Coords, b) {
		markAtLeast(&m[0][2], 1)
	}
	if !coveredByLine(b.Coords, a) {
		markAtLeast(&m[2][0], 1)
	}
	if hasBoundary(a) {
		for _, end := range [2]geom.Coordinate{a.Coords[0], a.Coords[len(a.Coords)-1]} {
			switch {
			case endpointOnBoundary(end, b):
				markAtLeast(&m[1][1], 0)
			case endpointOnLine(end, b):
				markAtLeast(&m[1][0], 0)
			default:
				markAtLeast(&m[1][2], 0)
			}
		}
	}
	if hasBoundary(b) {
		for _, end := range [2]geom.Coordinate{b.Coords[0], b.Coords[len(b.Coords)-1]} {
			switch {
			case endpointOnBoundary(end, a):
				markAtLeast(&m[1][1], 0)
			case endpointOnLine(end, a):
				markAtLeast(&m[0][1], 0)
			default:
				markAtLeast(&m[2][1], 0)
			}
		}
	}
	return m
}

// markAtLeast sets *cell to dim if it currently holds a lower dimension
// (dimF counts as lower than any real dimension).
func markAtLeast(cell *int8, dim int8) {
	if *cell < dim {
		*cell = dim
	}
}

func sharedEndpoint(a0, a1, b0, b1 geom.Coordinate) (geom.Coordinate, bool) {
	switch {
	case a0 == b0 || a0 == b1:
		return a0, true
	case a1 == b0 || a1 == b1:
		return a1, true
	default:
		return geom.Coordinate{}, false
	}
}

func endpointOnBoundary(p geom.Coordinate, l geom.LineString) bool {
	onLine, isEndpoint := classifyPointOnLine(p, l.Coords)
	return onLine && isEndpoint
}

func endpointOnLine(p geom.Coordinate, l geom.LineString) bool {
	onLine, _ := classifyPointOnLine(p, l.Coords)
	return onLine
}

func pointSetOnLine(pts []geom.Coordinate, l geom.LineString) bool {
	for _, p := range pts {
		if onLine, _ := classifyPointOnLine(p, l.Coords); !onLine {
			return false
		}
	}
	return true
}

func coveredByLine(pts []geom.Coordinate, l geom.LineString) bool {
	return pointSetOnLine(pts, l)
}

// --- LineString / Polygon ---

func relateLinePolygon(l geom.LineString, poly geom.Polygon) Matrix {
	m := emptyMatrix()
	allInside, allOutside, anyBoundary := true, true, false
	for _, c := range l.Coords {
		switch locatePointInPolygon(c, poly) {
		case locInterior:
			allOutside = false
		case locBoundary:
			allOutside = false
			allInside = false
			anyBoundary = true
		case locExterior:
			allInside = false
		}
	}
	crossesBoundary := anyBoundary || (!allInside && !allOutside)
	switch {
	case allInside:
		m[0][0] = 1
		m[2][1] = 1
		m[2][2] = 2
	case allOutside:
		m[0][2] = 1
		m[2][0] = 2
		m[2][1] = 1
		m[2][2] = 2
	case crossesBoundary:
		m[0][0] = 1
		m[0][1] = 0
		m[0][2] = 1
		m[2][1] = 1
		m[2][2] = 2
	}
	if hasBoundary(l) {
		for _, end := range []geom.Coordinate{l.Coords[0], l.Coords[len(l.Coords)-1]} {
			switch locatePointInPolygon(end, poly) {
			case locInterior:
				m[1][0] = 0
			case locBoundary:
				m[1][1] = 0
			case locExterior:
				m[1][2] = 0
			}
		}
	}
	return m
}

// --- Polygon / Polygon ---

// relatePolygonPolygon classifies two polygons via boundary-edge
// intersection plus vertex-sampling containment, per pkg/relate's
// documented approximation for crossing, non-containing boundaries.
func relatePolygonPolygon(a, b geom.Polygon) Matrix {
	m := emptyMatrix()

	aInB := allRingPointsLocate(a.ExteriorRing(), b, locInterior) || allRingPointsLocate(a.ExteriorRing(), b, locBoundary)
	bInA := allRingPointsLocate(b.ExteriorRing(), a, locInterior) || allRingPointsLocate(b.ExteriorRing(), a, locBoundary)
	boundariesMeet := ringsIntersect(a.ExteriorRing(), b.ExteriorRing())

	switch {
	case ringEquals(a.ExteriorRing(), b.ExteriorRing()) && len(a.InteriorRings()) == 0 && len(b.InteriorRings()) == 0:
		m[0][0] = 2
		m[1][1] = 1
		m[2][2] = 2
	case containsRing(a, b.ExteriorRing()) && !boundariesMeet:
		m[0][0] = 2
		m[0][2] = 2
		m[2][0] = 2
		m[2][1] = 1
		m[2][2] = 2
	case containsRing(b, a.ExteriorRing()) && !boundariesMeet:
		m[0][0] = 2
		m[2][0] = 2
		m[0][2] = 2
		m[1][2] = 1
		m[2][2] = 2
	case boundariesMeet && (aInB || bInA || anyVertexInside(a, b) || anyVertexInside(b, a)):
		m[0][0] = 2
		m[0][1] = 1
		m[0][2] = 2
		m[1][0] = 1
		m[1][1] = 0
		m[1][2] = 1
		m[2][0] = 2
		m[2][1] = 1
		m[2][2] = 2
	default:
		m[0][2] = 2
		m[2][0] = 2
		m[2][1] = 1
		m[2][2] = 2
		if boundariesMeet {
			m[1][1] = 0
			m[1][2] = 1
			m[2][1] = 1
		}
	}
	return m
}

func allRingPointsLocate(ring []geom.Coordinate, poly geom.Polygon, want pointLocation) bool {
	for _, c := range ring {
		loc := locatePointInPolygon(c, poly)
		if loc != want && !(want == locInterior && loc == locBoundary) {
			if loc != locBoundary {
				return false
			}
		}
	}
	return true
}

func anyVertexInside(a, b geom.Polygon) bool {
	for _, c := range a.ExteriorRing() {
		if locatePointInPolygon(c, b) == locInterior {
			return true
		}
	}
	return false
}

func containsRing(poly geom.Polygon, ring []geom.Coordinate) bool {
	for _, c := range ring {
		loc := locatePointInPolygon(c, poly)
		if loc == locExterior {
			return false
		}
	}
	return true
}

func ringEquals(a, b []geom.Coordinate) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func ringsIntersect(a, b []geom.Coordinate) bool {
	for i := 1; i < len(a); i++ {
		for j := 1; j < len(b); j++ {
			if segmentsIntersect(a[i-1], a[i], b[j-1], b[j]) {
				return true
			}
		}
	}
	return false
}

// segmentsIntersect and onSegment delegate to pkg/measure's exported
// planar-geometry primitives rather than duplicating that arithmetic.
func segmentsIntersect(a, b, c, d geom.Coordinate) bool {
	return measure.SegmentsIntersect(a, b, c, d)
}

func onSegment(a, b, p geom.Coordinate) bool {
	return measure.OnSegment(a, b, p)
}
