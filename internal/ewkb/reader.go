package ewkb

import (
	"encoding/binary"
	"math"

	"github.com/fathomline/stgeo/pkg/geom"
)

// Read decodes an EWKB blob. Byte order (big- or little-endian) is read
// per geometry header, so mixed-endian children (legal per spec.md
// §4.1.2) are accepted even though Write never produces them.
func Read(data []byte) (geom.Geometry, error) {
	r := &reader{data: data}
	g, err := r.readGeometry(0, 0)
	if err != nil {
		return nil, err
	}
	if r.pos != len(r.data) {
		return nil, parseErr(r.pos, "trailing bytes after geometry")
	}
	return g, nil
}

type reader struct {
	data []byte
	pos  int
}

func parseErr(offset int, msg string) error {
	return &geom.ParseError{Codec: "ewkb", Offset: offset, Message: msg}
}

func (r *reader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, parseErr(r.pos, "unexpected end of input")
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readUint32(order binary.ByteOrder) (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, parseErr(r.pos, "unexpected end of input reading uint32")
	}
	v := order.Uint32(r.data[r.pos : r.pos+4])
	r.pos += 4
	return v, nil
}

func (r *reader) readFloat64(order binary.ByteOrder) (float64, error) {
	if r.pos+8 > len(r.data) {
		return 0, parseErr(r.pos, "unexpected end of input reading float64")
	}
	bits := order.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return math.Float64frombits(bits), nil
}

// checkCount rejects a declared element count before it is used to size a
// make() call. Every count field in the format is a uint32 read straight
// off the wire, so an adversarial or corrupted blob can claim billions of
// elements in a handful of bytes; minElemSize is the fewest bytes the
// format could possibly spend per element (a bare coordinate pair, an
// empty ring's point count, or a child geometry's 5-byte header), so a
// count that could not possibly fit in the remaining input is rejected
// before allocating anything sized by it.
func (r *reader) checkCount(n uint32, minElemSize int) error {
	remaining := uint64(len(r.data) - r.pos)
	if uint64(n)*uint64(minElemSize) > remaining {
		return parseErr(r.pos, "declared element count exceeds remaining input")
	}
	return nil
}

// readGeometry decodes one geometry header plus body. parentSRID is
// inherited when the header omits an explicit SRID; depth is the current
// GeometryCollection nesting level, checked against geom.MaxNestingDepth.
func (r *reader) readGeometry(parentSRID int32, depth int) (geom.Geometry, error) {
	if depth > geom.MaxNestingDepth {
		return nil, parseErr(r.pos, "geometry collection nesting exceeds maximum depth")
	}

	orderByte, err := r.readByte()
	if err != nil {
		return nil, err
	}
	var order binary.ByteOrder
	switch orderByte {
	case 0:
		order = binary.BigEndian
	case 1:
		order = binary.LittleEndian
	default:
		return nil, parseErr(r.pos-1, "invalid byte order marker")
	}

	typeCode, err := r.readUint32(order)
	if err != nil {
		return nil, err
	}

	hasZ := typeCode&flagZ != 0
	hasM := typeCode&flagM != 0
	hasSRID := typeCode&flagSRID != 0
	baseCode := typeCode &^ (flagZ | flagM | flagSRID)
	dim := geom.DimFromFlags(hasZ, hasM)

	srid := parentSRID
	if hasSRID {
		s, err := r.readUint32(order)
		if err != nil {
			return nil, err
		}
		srid = int32(s)
	}

	kind, ok := geom.KindFromWKBCode(baseCode)
	if !ok {
		return nil, &geom.UnsupportedGeometry{Kind: "wkb-code", Reason: "unknown type code"}
	}

	switch kind {
	case geom.KindPoint:
		return r.readPoint(order, srid, dim)
	case geom.KindLineString:
		return r.readLineString(order, srid, dim)
	case geom.KindPolygon:
		return r.readPolygon(order, srid, dim)
	case geom.KindMultiPoint:
		return r.readMultiPoint(order, srid, dim, depth)
	case geom.KindMultiLineString:
		return r.readMultiLineString(order, srid, dim, depth)
	case geom.KindMultiPolygon:
		return r.readMultiPolygon(order, srid, dim, depth)
	case geom.KindGeometryCollection:
		return r.readCollection(order, srid, dim, depth)
	default:
		return nil, &geom.UnsupportedGeometry{Kind: kind.String()}
	}
}

func (r *reader) readCoordinate(order binary.ByteOrder, dim geom.Dim) (geom.Coordinate, error) {
	x, err := r.readFloat64(order)
	if err != nil {
		return geom.Coordinate{}, err
	}
	y, err := r.readFloat64(order)
	if err != nil {
		return geom.Coordinate{}, err
	}
	c := geom.Coordinate{X: x, Y: y}
	if dim.HasZ() {
		z, err := r.readFloat64(order)
		if err != nil {
			return geom.Coordinate{}, err
		}
		c.Z = z
	}
	if dim.HasM() {
		m, err := r.readFloat64(order)
		if err != nil {
			return geom.Coordinate{}, err
		}
		c.M = m
	}
	return c, nil
}

func (r *reader) readPoint(order binary.ByteOrder, srid int32, dim geom.Dim) (geom.Point, error) {
	c, err := r.readCoordinate(order, dim)
	if err != nil {
		return geom.Point{}, err
	}
	if isAllNaN(c, dim) {
		return geom.NewEmptyPoint(srid, dim), nil
	}
	p, err := geom.NewPoint(srid, dim, c)
	if err != nil {
		return geom.Point{}, wrapConstructErr(r.pos, err)
	}
	return p, nil
}

func isAllNaN(c geom.Coordinate, dim geom.Dim) bool {
	if !math.IsNaN(c.X) || !math.IsNaN(c.Y) {
		return false
	}
	if dim.HasZ() && !math.IsNaN(c.Z) {
		return false
	}
	if dim.HasM() && !math.IsNaN(c.M) {
		return false
	}
	return true
}

func (r *reader) readLineString(order binary.ByteOrder, srid int32, dim geom.Dim) (geom.LineString, error) {
	n, err := r.readUint32(order)
	if err != nil {
		return geom.LineString{}, err
	}
	if err := r.checkCount(n, 16); err != nil {
		return geom.LineString{}, err
	}
	coords := make([]geom.Coordinate, n)
	for i := range coords {
		c, err := r.readCoordinate(order, dim)
		if err != nil {
			return geom.LineString{}, err
		}
		coords[i] = c
	}
	ls, err := geom.NewLineString(srid, dim, coords)
	if err != nil {
		return geom.LineString{}, wrapConstructErr(r.pos, err)
	}
	return ls, nil
}

func (r *reader) readPolygon(order binary.ByteOrder, srid int32, dim geom.Dim) (geom.Polygon, error) {
	nRings, err := r.readUint32(order)
	if err != nil {
		return geom.Polygon{}, err
	}
	if err := r.checkCount(nRings, 4); err != nil {
		return geom.Polygon{}, err
	}
	rings := make([][]geom.Coordinate, nRings)
	for i := range rings {
		nPts, err := r.readUint32(order)
		if err != nil {
			return geom.Polygon{}, err
		}
		if err := r.checkCount(nPts, 16); err != nil {
			return geom.Polygon{}, err
		}
		ring := make([]geom.Coordinate, nPts)
		for j := range ring {
			c, err := r.readCoordinate(order, dim)
			if err != nil {
				return geom.Polygon{}, err
			}
			ring[j] = c
		}
		rings[i] = ring
	}
	p, err := geom.NewPolygon(srid, dim, rings, geom.AutoOrient())
	if err != nil {
		return geom.Polygon{}, wrapConstructErr(r.pos, err)
	}
	return p, nil
}

func (r *reader) readMultiPoint(order binary.ByteOrder, srid int32, dim geom.Dim, depth int) (geom.MultiPoint, error) {
	n, err := r.readUint32(order)
	if err != nil {
		return geom.MultiPoint{}, err
	}
	if err := r.checkCount(n, 5); err != nil {
		return geom.MultiPoint{}, err
	}
	points := make([]geom.Point, n)
	for i := range points {
		g, err := r.readGeometry(srid, depth+1)
		if err != nil {
			return geom.MultiPoint{}, err
		}
		p, ok := g.(geom.Point)
		if !ok {
			return geom.MultiPoint{}, &geom.UnsupportedGeometry{Kind: g.Kind().String(), Reason: "expected Point inside MultiPoint"}
		}
		points[i] = p
	}
	mp, err := geom.NewMultiPoint(srid, dim, points)
	if err != nil {
		return geom.MultiPoint{}, wrapConstructErr(r.pos, err)
	}
	return mp, nil
}

func (r *reader) readMultiLineString(order binary.ByteOrder, srid int32, dim geom.Dim, depth int) (geom.MultiLineString, error) {
	n, err := r.readUint32(order)
	if err != nil {
		return geom.MultiLineString{}, err
	}
	if err := r.checkCount(n, 5); err != nil {
		return geom.MultiLineString{}, err
	}
	lines := make([]geom.LineString, n)
	for i := range lines {
		g, err := r.readGeometry(srid, depth+1)
		if err != nil {
			return geom.MultiLineString{}, err
		}
		l, ok := g.(geom.LineString)
		if !ok {
			return geom.MultiLineString{}, &geom.UnsupportedGeometry{Kind: g.Kind().String(), Reason: "expected LineString inside MultiLineString"}
		}
		lines[i] = l
	}
	ml, err := geom.NewMultiLineString(srid, dim, lines)
	if err != nil {
		return geom.MultiLineString{}, wrapConstructErr(r.pos, err)
	}
	return ml, nil
}

func (r *reader) readMultiPolygon(order binary.ByteOrder, srid int32, dim geom.Dim, depth int) (geom.MultiPolygon, error) {
	n, err := r.readUint32(order)
	if err != nil {
		return geom.MultiPolygon{}, err
	}
	if err := r.checkCount(n, 5); err != nil {
		return geom.MultiPolygon{}, err
	}
	polys := make([]geom.Polygon, n)
	for i := range polys {
		g, err := r.readGeometry(srid, depth+1)
		if err != nil {
			return geom.MultiPolygon{}, err
		}
		p, ok := g.(geom.Polygon)
		if !ok {
			return geom.MultiPolygon{}, &geom.UnsupportedGeometry{Kind: g.Kind().String(), Reason: "expected Polygon inside MultiPolygon"}
		}
		polys[i] = p
	}
	mp, err := geom.NewMultiPolygon(srid, dim, polys)
	if err != nil {
		return geom.MultiPolygon{}, wrapConstructErr(r.pos, err)
	}
	return mp, nil
}

func (r *reader) readCollection(order binary.ByteOrder, srid int32, dim geom.Dim, depth int) (geom.GeometryCollection, error) {
	n, err := r.readUint32(order)
	if err != nil {
		return geom.GeometryCollection{}, err
	}
	if err := r.checkCount(n, 5); err != nil {
		return geom.GeometryCollection{}, err
	}
	geoms := make([]geom.Geometry, n)
	for i := range geoms {
		g, err := r.readGeometry(srid, depth+1)
		if err != nil {
			return geom.GeometryCollection{}, err
		}
		geoms[i] = g
	}
	gc, err := geom.NewGeometryCollection(srid, dim, geoms)
	if err != nil {
		return geom.GeometryCollection{}, wrapConstructErr(r.pos, err)
	}
	return gc, nil
}

func wrapConstructErr(offset int, err error) error {
	return &geom.ParseError{Codec: "ewkb", Offset: offset, Message: err.Error()}
}
