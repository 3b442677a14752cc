// Package ewkb implements the binary codec described in spec.md §4.1.2 and
// §6.1: PostGIS's Extended WKB, byte-identical to PostGIS output for the
// same geometry when flags and SRID match. Little-endian is the canonical
// byte order emitted by Write; Read accepts either.
package ewkb

import (
	"encoding/binary"
	"math"

	"github.com/fathomline/stgeo/pkg/geom"
)

const (
	flagZ    uint32 = 0x80000000
	flagM    uint32 = 0x40000000
	flagSRID uint32 = 0x20000000
)

// Write encodes g as little-endian EWKB. The SRID flag and SRID field are
// emitted at the top level iff g.SRID() != 0; nested sub-geometries never
// redeclare byte order flags or SRID independently of the parent, matching
// the conventional PostGIS encoder (the reader still accepts
// self-describing children per spec.md §4.1.2, since that is legal input).
func Write(g geom.Geometry) ([]byte, error) {
	buf := make([]byte, 0, 64)
	var err error
	buf, err = appendGeometry(buf, g, true)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func appendGeometry(buf []byte, g geom.Geometry, topLevel bool) ([]byte, error) {
	dim := g.Dim()
	typeCode := g.Kind().WKBCode()
	if dim.HasZ() {
		typeCode |= flagZ
	}
	if dim.HasM() {
		typeCode |= flagM
	}
	writeSRID := topLevel && g.SRID() != 0

	buf = append(buf, 1) // little-endian
	if writeSRID {
		typeCode |= flagSRID
	}
	buf = appendUint32(buf, typeCode)
	if writeSRID {
		buf = appendUint32(buf, uint32(g.SRID()))
	}

	switch v := g.(type) {
	case geom.Point:
		return appendPointBody(buf, v, dim)
	case geom.LineString:
		return appendLineStringBody(buf, v, dim)
	case geom.Polygon:
		return appendPolygonBody(buf, v, dim)
	case geom.MultiPoint:
		buf = appendUint32(buf, uint32(len(v.Points)))
		for _, p := range v.Points {
			var err error
			buf, err = appendGeometry(buf, p, false)
			if err != nil {
				return nil, err
			}
		}
		return buf, nil
	case geom.MultiLineString:
		buf = appendUint32(buf, uint32(len(v.Lines)))
		for _, l := range v.Lines {
			var err error
			buf, err = appendGeometry(buf, l, false)
			if err != nil {
				return nil, err
			}
		}
		return buf, nil
	case geom.MultiPolygon:
		buf = appendUint32(buf, uint32(len(v.Polys)))
		for _, p := range v.Polys {
			var err error
			buf, err = appendGeometry(buf, p, false)
			if err != nil {
				return nil, err
			}
		}
		return buf, nil
	case geom.GeometryCollection:
		buf = appendUint32(buf, uint32(len(v.Geoms)))
		for _, c := range v.Geoms {
			var err error
			buf, err = appendGeometry(buf, c, false)
			if err != nil {
				return nil, err
			}
		}
		return buf, nil
	default:
		return nil, &geom.UnsupportedGeometry{Kind: "unknown"}
	}
}

func appendPointBody(buf []byte, p geom.Point, dim geom.Dim) ([]byte, error) {
	if p.Empty {
		nan := math.NaN()
		for i := 0; i < dim.Stride(); i++ {
			buf = appendFloat64(buf, nan)
		}
		return buf, nil
	}
	buf = appendFloat64(buf, p.Coord.X)
	buf = appendFloat64(buf, p.Coord.Y)
	if dim.HasZ() {
		buf = appendFloat64(buf, p.Coord.Z)
	}
	if dim.HasM() {
		buf = appendFloat64(buf, p.Coord.M)
	}
	return buf, nil
}

func appendLineStringBody(buf []byte, l geom.LineString, dim geom.Dim) ([]byte, error) {
	buf = appendUint32(buf, uint32(len(l.Coords)))
	for _, c := range l.Coords {
		buf = appendCoordinate(buf, c, dim)
	}
	return buf, nil
}

func appendPolygonBody(buf []byte, p geom.Polygon, dim geom.Dim) ([]byte, error) {
	buf = appendUint32(buf, uint32(len(p.Rings)))
	for _, ring := range p.Rings {
		buf = appendUint32(buf, uint32(len(ring)))
		for _, c := range ring {
			buf = appendCoordinate(buf, c, dim)
		}
	}
	return buf, nil
}

func appendCoordinate(buf []byte, c geom.Coordinate, dim geom.Dim) []byte {
	buf = appendFloat64(buf, c.X)
	buf = appendFloat64(buf, c.Y)
	if dim.HasZ() {
		buf = appendFloat64(buf, c.Z)
	}
	if dim.HasM() {
		buf = appendFloat64(buf, c.M)
	}
	return buf
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendFloat64(buf []byte, v float64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(v))
	return append(buf, tmp[:]...)
}
