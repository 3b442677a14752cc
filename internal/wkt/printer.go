package wkt

import (
	"strconv"
	"strings"

	"github.com/fathomline/stgeo/pkg/geom"
)

// Write renders g as WKT. When g.SRID() != 0 the output is EWKT, prefixed
// with "SRID=<srid>;", matching ST_AsEWKT's convention.
func Write(g geom.Geometry) (string, error) {
	var b strings.Builder
	if g.SRID() != 0 {
		b.WriteString("SRID=")
		b.WriteString(strconv.FormatInt(int64(g.SRID()), 10))
		b.WriteByte(';')
	}
	if err := writeGeometryText(&b, g); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeGeometryText(b *strings.Builder, g geom.Geometry) error {
	dim := g.Dim()
	switch v := g.(type) {
	case geom.Point:
		b.WriteString("POINT")
		if s := dim.WKTSuffix(); s != "" {
			b.WriteString(" ")
			b.WriteString(s)
		}
		if v.IsEmpty() {
			b.WriteString(" EMPTY")
			return nil
		}
		b.WriteByte('(')
		writeCoordinate(b, v.Coord, dim)
		b.WriteByte(')')
		return nil
	case geom.LineString:
		b.WriteString("LINESTRING")
		if s := dim.WKTSuffix(); s != "" {
			b.WriteString(" ")
			b.WriteString(s)
		}
		if v.IsEmpty() {
			b.WriteString(" EMPTY")
			return nil
		}
		b.WriteByte('(')
		writeCoordList(b, v.Coords, dim)
		b.WriteByte(')')
		return nil
	case geom.Polygon:
		b.WriteString("POLYGON")
		if s := dim.WKTSuffix(); s != "" {
			b.WriteString(" ")
			b.WriteString(s)
		}
		if v.IsEmpty() {
			b.WriteString(" EMPTY")
			return nil
		}
		b.WriteByte('(')
		for i, ring := range v.Rings {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('(')
			writeCoordList(b, ring, dim)
			b.WriteByte(')')
		}
		b.WriteByte(')')
		return nil
	case geom.MultiPoint:
		b.WriteString("MULTIPOINT")
		if s := dim.WKTSuffix(); s != "" {
			b.WriteString(" ")
			b.WriteString(s)
		}
		if v.IsEmpty() {
			b.WriteString(" EMPTY")
			return nil
		}
		b.WriteByte('(')
		for i, pt := range v.Points {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('(')
			writeCoordinate(b, pt.Coord, dim)
			b.WriteByte(')')
		}
		b.WriteByte(')')
		return nil
	case geom.MultiLineString:
		b.WriteString("MULTILINESTRING")
		if s := dim.WKTSuffix(); s != "" {
			b.WriteString(" ")
			b.WriteString(s)
		}
		if v.IsEmpty() {
			b.WriteString(" EMPTY")
			return nil
		}
		b.WriteByte('(')
		for i, l := range v.Lines {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('(')
			writeCoordList(b, l.Coords, dim)
			b.WriteByte(')')
		}
		b.WriteByte(')')
		return nil
	case geom.MultiPolygon:
		b.WriteString("MULTIPOLYGON")
		if s := dim.WKTSuffix(); s != "" {
			b.WriteString(" ")
			b.WriteString(s)
		}
		if v.IsEmpty() {
			b.WriteString(" EMPTY")
			return nil
		}
		b.WriteByte('(')
		for i, poly := range v.Polys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('(')
			for j, ring := range poly.Rings {
				if j > 0 {
					b.WriteByte(',')
				}
				b.WriteByte('(')
				writeCoordList(b, ring, dim)
				b.WriteByte(')')
			}
			b.WriteByte(')')
		}
		b.WriteByte(')')
		return nil
	case geom.GeometryCollection:
		b.WriteString("GEOMETRYCOLLECTION")
		if s := dim.WKTSuffix(); s != "" {
			b.WriteString(" ")
			b.WriteString(s)
		}
		if v.IsEmpty() {
			b.WriteString(" EMPTY")
			return nil
		}
		b.WriteByte('(')
		for i, c := range v.Geoms {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeGeometryText(b, c); err != nil {
				return err
			}
		}
		b.WriteByte(')')
		return nil
	default:
		return &geom.UnsupportedGeometry{Kind: "unknown"}
	}
}

func writeCoordList(b *strings.Builder, coords []geom.Coordinate, dim geom.Dim) {
	for i, c := range coords {
		if i > 0 {
			b.WriteByte(',')
		}
		writeCoordinate(b, c, dim)
	}
}

func writeCoordinate(b *strings.Builder, c geom.Coordinate, dim geom.Dim) {
	b.WriteString(formatFloat(c.X))
	b.WriteByte(' ')
	b.WriteString(formatFloat(c.Y))
	if dim.HasZ() {
		b.WriteByte(' ')
		b.WriteString(formatFloat(c.Z))
	}
	if dim.HasM() {
		b.WriteByte(' ')
		b.WriteString(formatFloat(c.M))
	}
}

// formatFloat uses the shortest decimal representation that round-trips
// exactly back to the same float64 (strconv's -1 precision), matching
// PostGIS's default ST_AsText output rather than a fixed precision.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
