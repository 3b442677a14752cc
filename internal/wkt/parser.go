package wkt

import (
	"fmt"
	"strconv"

	"github.com/fathomline/stgeo/pkg/geom"
)

// Parse decodes a WKT or EWKT string into a Geometry. An EWKT string is a
// plain WKT string prefixed with "SRID=<int>;" (spec.md §4.1.1); the SRID
// of the returned geometry (and all its descendants) is then that value.
func Parse(s string) (geom.Geometry, error) {
	p := &parser{lex: newLexer(s)}
	p.advance()

	srid := int32(0)
	if p.tok.kind == tokIdent && upper(p.tok.text) == "SRID" {
		p.advance()
		if p.tok.kind != tokEquals {
			return nil, p.errorf("expected '=' after SRID")
		}
		p.advance()
		if p.tok.kind != tokNumber {
			return nil, p.errorf("expected integer after SRID=")
		}
		n, err := strconv.ParseInt(p.tok.text, 10, 32)
		if err != nil {
			return nil, p.errorf("invalid SRID %q", p.tok.text)
		}
		srid = int32(n)
		p.advance()
		if p.tok.kind != tokSemicolon {
			return nil, p.errorf("expected ';' after SRID=<int>")
		}
		p.advance()
	}

	g, err := p.parseGeometryText(srid, 0)
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected trailing input %q", p.tok.text)
	}
	return g, nil
}

type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() { p.tok = p.lex.next() }

func (p *parser) errorf(format string, args ...any) error {
	return &geom.ParseError{Codec: "wkt", Offset: p.tok.pos, Message: fmt.Sprintf(format, args...)}
}

// parseGeometryText parses one <geometry tag name> <dim suffix>? (EMPTY |
// '(' body ')') production, with srid inherited from the EWKT prefix (or
// zero) and reassigned to every descendant by the geom constructors.
func (p *parser) parseGeometryText(srid int32, depth int) (geom.Geometry, error) {
	if depth > geom.MaxNestingDepth {
		return nil, p.errorf("geometry collection nesting exceeds maximum depth")
	}
	if p.tok.kind != tokIdent {
		return nil, p.errorf("expected geometry tag, got %q", p.tok.text)
	}
	tag := upper(p.tok.text)
	p.advance()

	hasZ, hasM, err := p.parseDimSuffix()
	if err != nil {
		return nil, err
	}
	dim := geom.DimFromFlags(hasZ, hasM)

	isEmpty := false
	if p.tok.kind == tokIdent && upper(p.tok.text) == "EMPTY" {
		isEmpty = true
		p.advance()
	}

	switch tag {
	case "POINT":
		return p.parsePoint(srid, dim, isEmpty)
	case "LINESTRING":
		return p.parseLineString(srid, dim, isEmpty)
	case "POLYGON":
		return p.parsePolygon(srid, dim, isEmpty)
	case "MULTIPOINT":
		return p.parseMultiPoint(srid, dim, isEmpty)
	case "MULTILINESTRING":
		return p.parseMultiLineString(srid, dim, isEmpty)
	case "MULTIPOLYGON":
		return p.parseMultiPolygon(srid, dim, isEmpty)
	case "GEOMETRYCOLLECTION":
		return p.parseCollection(srid, dim, isEmpty, depth)
	default:
		return nil, p.errorf("unknown geometry tag %q", tag)
	}
}

// parseDimSuffix consumes an optional "Z", "M", or "ZM" identifier
// immediately following the geometry tag.
func (p *parser) parseDimSuffix() (hasZ, hasM bool, err error) {
	if p.tok.kind != tokIdent {
		return false, false, nil
	}
	switch upper(p.tok.text) {
	case "Z":
		p.advance()
		return true, false, nil
	case "M":
		p.advance()
		return false, true, nil
	case "ZM":
		p.advance()
		return true, true, nil
	default:
		return false, false, nil
	}
}

func (p *parser) expect(k tokenKind, what string) error {
	if p.tok.kind != k {
		return p.errorf("expected %s, got %q", what, p.tok.text)
	}
	return nil
}

func (p *parser) parseNumber() (float64, error) {
	if p.tok.kind != tokNumber {
		return 0, p.errorf("expected number, got %q", p.tok.text)
	}
	v, err := strconv.ParseFloat(p.tok.text, 64)
	if err != nil {
		return 0, p.errorf("invalid number %q", p.tok.text)
	}
	p.advance()
	return v, nil
}

func (p *parser) parseCoordinate(dim geom.Dim) (geom.Coordinate, error) {
	x, err := p.parseNumber()
	if err != nil {
		return geom.Coordinate{}, err
	}
	y, err := p.parseNumber()
	if err != nil {
		return geom.Coordinate{}, err
	}
	c := geom.Coordinate{X: x, Y: y}
	if dim.HasZ() {
		z, err := p.parseNumber()
		if err != nil {
			return geom.Coordinate{}, err
		}
		c.Z = z
	}
	if dim.HasM() {
		m, err := p.parseNumber()
		if err != nil {
			return geom.Coordinate{}, err
		}
		c.M = m
	}
	return c, nil
}

// parseCoordList parses a comma-separated list of bare coordinate tuples,
// e.g. the body of "LINESTRING(1 2, 3 4)".
func (p *parser) parseCoordList(dim geom.Dim) ([]geom.Coordinate, error) {
	if err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}
	p.advance()
	var coords []geom.Coordinate
	for {
		c, err := p.parseCoordinate(dim)
		if err != nil {
			return nil, err
		}
		coords = append(coords, c)
		if p.tok.kind == tokComma {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	p.advance()
	return coords, nil
}

func (p *parser) parsePoint(srid int32, dim geom.Dim, isEmpty bool) (geom.Point, error) {
	if isEmpty {
		return geom.NewEmptyPoint(srid, dim), nil
	}
	if err := p.expect(tokLParen, "'('"); err != nil {
		return geom.Point{}, err
	}
	p.advance()
	c, err := p.parseCoordinate(dim)
	if err != nil {
		return geom.Point{}, err
	}
	if err := p.expect(tokRParen, "')'"); err != nil {
		return geom.Point{}, err
	}
	p.advance()
	pt, err := geom.NewPoint(srid, dim, c)
	if err != nil {
		return geom.Point{}, wrapErr(p.tok.pos, err)
	}
	return pt, nil
}

func (p *parser) parseLineString(srid int32, dim geom.Dim, isEmpty bool) (geom.LineString, error) {
	if isEmpty {
		return geom.NewEmptyLineString(srid, dim), nil
	}
	coords, err := p.parseCoordList(dim)
	if err != nil {
		return geom.LineString{}, err
	}
	ls, err := geom.NewLineString(srid, dim, coords)
	if err != nil {
		return geom.LineString{}, wrapErr(p.tok.pos, err)
	}
	return ls, nil
}

func (p *parser) parseRing(dim geom.Dim) ([]geom.Coordinate, error) {
	return p.parseCoordList(dim)
}

func (p *parser) parsePolygon(srid int32, dim geom.Dim, isEmpty bool) (geom.Polygon, error) {
	if isEmpty {
		return geom.NewEmptyPolygon(srid, dim), nil
	}
	if err := p.expect(tokLParen, "'('"); err != nil {
		return geom.Polygon{}, err
	}
	p.advance()
	var rings [][]geom.Coordinate
	for {
		ring, err := p.parseRing(dim)
		if err != nil {
			return geom.Polygon{}, err
		}
		rings = append(rings, ring)
		if p.tok.kind == tokComma {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect(tokRParen, "')'"); err != nil {
		return geom.Polygon{}, err
	}
	p.advance()
	poly, err := geom.NewPolygon(srid, dim, rings, geom.AutoOrient())
	if err != nil {
		return geom.Polygon{}, wrapErr(p.tok.pos, err)
	}
	return poly, nil
}

// parseMultiPoint tolerates both "MULTIPOINT(1 2, 3 4)" and the stricter
// "MULTIPOINT((1 2), (3 4))" forms; both appear in the wild.
func (p *parser) parseMultiPoint(srid int32, dim geom.Dim, isEmpty bool) (geom.MultiPoint, error) {
	if isEmpty {
		mp, err := geom.NewMultiPoint(srid, dim, nil)
		if err != nil {
			return geom.MultiPoint{}, wrapErr(p.tok.pos, err)
		}
		return mp, nil
	}
	if err := p.expect(tokLParen, "'('"); err != nil {
		return geom.MultiPoint{}, err
	}
	p.advance()
	var points []geom.Point
	for {
		var c geom.Coordinate
		var err error
		if p.tok.kind == tokLParen {
			p.advance()
			c, err = p.parseCoordinate(dim)
			if err != nil {
				return geom.MultiPoint{}, err
			}
			if err := p.expect(tokRParen, "')'"); err != nil {
				return geom.MultiPoint{}, err
			}
			p.advance()
		} else {
			c, err = p.parseCoordinate(dim)
			if err != nil {
				return geom.MultiPoint{}, err
			}
		}
		pt, err := geom.NewPoint(srid, dim, c)
		if err != nil {
			return geom.MultiPoint{}, wrapErr(p.tok.pos, err)
		}
		points = append(points, pt)
		if p.tok.kind == tokComma {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect(tokRParen, "')'"); err != nil {
		return geom.MultiPoint{}, err
	}
	p.advance()
	mp, err := geom.NewMultiPoint(srid, dim, points)
	if err != nil {
		return geom.MultiPoint{}, wrapErr(p.tok.pos, err)
	}
	return mp, nil
}

func (p *parser) parseMultiLineString(srid int32, dim geom.Dim, isEmpty bool) (geom.MultiLineString, error) {
	if isEmpty {
		mls, err := geom.NewMultiLineString(srid, dim, nil)
		if err != nil {
			return geom.MultiLineString{}, wrapErr(p.tok.pos, err)
		}
		return mls, nil
	}
	if err := p.expect(tokLParen, "'('"); err != nil {
		return geom.MultiLineString{}, err
	}
	p.advance()
	var lines []geom.LineString
	for {
		coords, err := p.parseCoordList(dim)
		if err != nil {
			return geom.MultiLineString{}, err
		}
		ls, err := geom.NewLineString(srid, dim, coords)
		if err != nil {
			return geom.MultiLineString{}, wrapErr(p.tok.pos, err)
		}
		lines = append(lines, ls)
		if p.tok.kind == tokComma {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect(tokRParen, "')'"); err != nil {
		return geom.MultiLineString{}, err
	}
	p.advance()
	mls, err := geom.NewMultiLineString(srid, dim, lines)
	if err != nil {
		return geom.MultiLineString{}, wrapErr(p.tok.pos, err)
	}
	return mls, nil
}

func (p *parser) parseMultiPolygon(srid int32, dim geom.Dim, isEmpty bool) (geom.MultiPolygon, error) {
	if isEmpty {
		mp, err := geom.NewMultiPolygon(srid, dim, nil)
		if err != nil {
			return geom.MultiPolygon{}, wrapErr(p.tok.pos, err)
		}
		return mp, nil
	}
	if err := p.expect(tokLParen, "'('"); err != nil {
		return geom.MultiPolygon{}, err
	}
	p.advance()
	var polys []geom.Polygon
	for {
		if err := p.expect(tokLParen, "'('"); err != nil {
			return geom.MultiPolygon{}, err
		}
		p.advance()
		var rings [][]geom.Coordinate
		for {
			ring, err := p.parseRing(dim)
			if err != nil {
				return geom.MultiPolygon{}, err
			}
			rings = append(rings, ring)
			if p.tok.kind == tokComma {
				p.advance()
				continue
			}
			break
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return geom.MultiPolygon{}, err
		}
		p.advance()
		poly, err := geom.NewPolygon(srid, dim, rings, geom.AutoOrient())
		if err != nil {
			return geom.MultiPolygon{}, wrapErr(p.tok.pos, err)
		}
		polys = append(polys, poly)
		if p.tok.kind == tokComma {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect(tokRParen, "')'"); err != nil {
		return geom.MultiPolygon{}, err
	}
	p.advance()
	mp, err := geom.NewMultiPolygon(srid, dim, polys)
	if err != nil {
		return geom.MultiPolygon{}, wrapErr(p.tok.pos, err)
	}
	return mp, nil
}

func (p *parser) parseCollection(srid int32, dim geom.Dim, isEmpty bool, depth int) (geom.GeometryCollection, error) {
	if isEmpty {
		gc, err := geom.NewGeometryCollection(srid, dim, nil)
		if err != nil {
			return geom.GeometryCollection{}, wrapErr(p.tok.pos, err)
		}
		return gc, nil
	}
	if err := p.expect(tokLParen, "'('"); err != nil {
		return geom.GeometryCollection{}, err
	}
	p.advance()
	var geoms []geom.Geometry
	for {
		g, err := p.parseGeometryText(srid, depth+1)
		if err != nil {
			return geom.GeometryCollection{}, err
		}
		geoms = append(geoms, g)
		if p.tok.kind == tokComma {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect(tokRParen, "')'"); err != nil {
		return geom.GeometryCollection{}, err
	}
	p.advance()
	gc, err := geom.NewGeometryCollection(srid, dim, geoms)
	if err != nil {
		return geom.GeometryCollection{}, wrapErr(p.tok.pos, err)
	}
	return gc, nil
}

func wrapErr(offset int, err error) error {
	return &geom.ParseError{Codec: "wkt", Offset: offset, Message: err.Error()}
}
