package overlay

import (
	"math"

	"github.com/fathomline/stgeo/pkg/geom"
)

// EndCap selects ST_Buffer's line-end treatment.
type EndCap int

const (
	EndCapRound EndCap = iota
	EndCapFlat
	EndCapSquare
)

// Join selects ST_Buffer's corner treatment.
type Join int

const (
	JoinRound Join = iota
	JoinMitre
	JoinBevel
)

// Side restricts ST_Buffer to one side of a line (ignored for polygons).
type Side int

const (
	SideBoth Side = iota
	SideLeft
	SideRight
)

// BufferParams is ST_Buffer's parameter struct, mapping the PostGIS
// comma-separated string syntax (spec.md §4.4) to a typed configuration.
type BufferParams struct {
	QuadSegs   int
	EndCap     EndCap
	Join       Join
	MitreLimit float64
	Side       Side
}

// DefaultBufferParams matches spec.md §4.4's documented defaults.
func DefaultBufferParams() BufferParams {
	return BufferParams{
		QuadSegs:   8,
		EndCap:     EndCapRound,
		Join:       JoinRound,
		MitreLimit: 5.0,
		Side:       SideBoth,
	}
}

// Buffer produces the Minkowski sum of g with a disc of radius |d|; a
// negative d erodes polygons instead. Round caps/joins are approximated
// with params.QuadSegs straight segments per quadrant, per spec.md §4.4.
// A zero distance returns g unchanged; an empty g yields an empty
// polygon.
func Buffer(g geom.Geometry, d float64, params BufferParams) (geom.Geometry, error) {
	if params.QuadSegs <= 0 {
		return nil, &geom.InvalidArgument{Op: "ST_Buffer", Reason: "quad_segs must be positive"}
	}
	if params.MitreLimit <= 0 {
		return nil, &geom.InvalidArgument{Op: "ST_Buffer", Reason: "mitre_limit must be positive"}
	}
	if g.IsEmpty() {
		return geom.NewEmptyPolygon(g.SRID(), geom.XY), nil
	}
	if d == 0 {
		return g, nil
	}
	r := math.Abs(d)

	switch v := g.(type) {
	case geom.Point:
		return bufferDisc(v.Coord, r, g.SRID(), params.QuadSegs)
	case geom.MultiPoint:
		discs := make([]geom.Polygon, 0, len(v.Points))
		for _, p := range v.Points {
			disc, err := bufferDisc(p.Coord, r, g.SRID(), params.QuadSegs)
			if err != nil {
				return nil, err
			}
			discs = append(discs, disc)
		}
		return unionAll(discs, g.SRID())
	case geom.LineString:
		return bufferLine(v, r, g.SRID(), params)
	case geom.Polygon:
		if d < 0 {
			return erodePolygon(v, r, g.SRID(), params)
		}
		return dilatePolygon(v, r, g.SRID(), params)
	default:
		return nil, &geom.UnsupportedGeometry{Kind: g.Kind().String(), Reason: "ST_Buffer does not support this geometry kind directly; decompose via pkg/geom.Polygons/LineStrings/Points first"}
	}
}

func bufferDisc(center geom.Coordinate, r float64, srid int32, quadSegs int) (geom.Polygon, error) {
	n := quadSegs * 4
	ring := make([]geom.Coordinate, 0, n+1)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		ring = append(ring, geom.Coordinate{X: center.X + r*math.Cos(theta), Y: center.Y + r*math.Sin(theta)})
	}
	ring = append(ring, ring[0])
	return geom.NewPolygon(srid, geom.XY, [][]geom.Coordinate{ring}, geom.AutoOrient())
}

// bufferLine unions a rectangular strip around every edge with a
// quadSegs-sided disc around every interior vertex (round joins, when
// params.Join is JoinRound) and around both endpoints (round caps, when
// params.EndCap is EndCapRound), approximating a rounded Minkowski sum.
// Mitre and bevel joins add nothing at interior vertices, and square
// caps are treated as flat.
func bufferLine(l geom.LineString, r float64, srid int32, params BufferParams) (geom.Geometry, error) {
	if len(l.Coords) < 2 {
		return geom.NewEmptyPolygon(srid, geom.XY), nil
	}
	var parts []geom.Polygon
	for i := 1; i < len(l.Coords); i++ {
		strip, err := bufferSegment(l.Coords[i-1], l.Coords[i], r, srid, params.Side)
		if err != nil {
			return nil, err
		}
		parts = append(parts, strip)
	}
	if params.EndCap == EndCapRound {
		for _, c := range []geom.Coordinate{l.Coords[0], l.Coords[len(l.Coords)-1]} {
			disc, err := bufferDisc(c, r, srid, params.QuadSegs)
			if err != nil {
				return nil, err
			}
			parts = append(parts, disc)
		}
	}
	if params.Join == JoinRound {
		for _, c := range l.Coords[1 : len(l.Coords)-1] {
			disc, err := bufferDisc(c, r, srid, params.QuadSegs)
			if err != nil {
				return nil, err
			}
			parts = append(parts, disc)
		}
	}
	return unionAll(parts, srid)
}

func bufferSegment(a, b geom.Coordinate, r float64, srid int32, side Side) (geom.Polygon, error) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return bufferDisc(a, r, srid, 8)
	}
	nx, ny := -dy/length*r, dx/length*r
	var left, right bool
	switch side {
	case SideLeft:
		left, right = true, false
	case SideRight:
		left, right = false, true
	default:
		left, right = true, true
	}
	ring := make([]geom.Coordinate, 0, 5)
	if left {
		ring = append(ring, geom.Coordinate{X: a.X + nx, Y: a.Y + ny}, geom.Coordinate{X: b.X + nx, Y: b.Y + ny})
	} else {
		ring = append(ring, a, b)
	}
	if right {
		ring = append(ring, geom.Coordinate{X: b.X - nx, Y: b.Y - ny}, geom.Coordinate{X: a.X - nx, Y: a.Y - ny})
	} else {
		ring = append(ring, b, a)
	}
	ring = append(ring, ring[0])
	return geom.NewPolygon(srid, geom.XY, [][]geom.Coordinate{ring}, geom.AutoOrient())
}

// dilatePolygon buffers outward: the exterior ring grows by a disc
// buffer around every edge/vertex, unioned with the original polygon.
func dilatePolygon(p geom.Polygon, r float64, srid int32, params BufferParams) (geom.Geometry, error) {
	asLine, err := geom.NewLineString(srid, geom.XY, p.ExteriorRing())
	if err != nil {
		return nil, err
	}
	strips, err := bufferLine(asLine, r, srid, params)
	if err != nil {
		return nil, err
	}
	return Union(p, strips)
}

// erodePolygon buffers inward by moving each exterior-ring vertex a
// distance r straight toward the mean of the ring's vertices (a vertex
// closer than r to it collapses onto it); self-intersection from an
// erosion distance exceeding the polygon's local width is not
// separately detected and may produce a degenerate ring.
func erodePolygon(p geom.Polygon, r float64, srid int32, params BufferParams) (geom.Geometry, error) {
	ring := p.ExteriorRing()
	if len(ring) < 4 {
		return geom.NewEmptyPolygon(srid, geom.XY), nil
	}
	center := ringCentroid(ring)
	eroded := make([]geom.Coordinate, len(ring))
	for i, c := range ring {
		dx, dy := center.X-c.X, center.Y-c.Y
		d := math.Hypot(dx, dy)
		if d <= r {
			eroded[i] = center
			continue
		}
		t := r / d
		eroded[i] = geom.Coordinate{X: c.X + dx*t, Y: c.Y + dy*t}
	}
	return geom.NewPolygon(srid, geom.XY, [][]geom.Coordinate{eroded}, geom.AutoOrient())
}

func ringCentroid(ring []geom.Coordinate) geom.Coordinate {
	var sx, sy float64
	n := len(ring)
	if ring[0] == ring[n-1] {
		n--
	}
	for i := 0; i < n; i++ {
		sx += ring[i].X
		sy += ring[i].Y
	}
	return geom.Coordinate{X: sx / float64(n), Y: sy / float64(n)}
}
