package geojson

import (
	"encoding/json"

	"github.com/fathomline/stgeo/pkg/geom"
)

const defaultSRID = 4326

type envelope struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates,omitempty"`
	Geometries  json.RawMessage `json:"geometries,omitempty"`
	Crs         json.RawMessage `json:"crs,omitempty"`
}

// Marshal encodes g as a RFC 7946 Geometry object. g's SRID is not
// serialized; GeoJSON always implies WGS84 (SRID 4326).
func Marshal(g geom.Geometry) ([]byte, error) {
	if g.Dim().HasM() {
		return nil, &geom.UnsupportedGeometry{Kind: g.Kind().String(), Reason: "GeoJSON does not support M coordinates"}
	}
	switch v := g.(type) {
	case geom.Point:
		return json.Marshal(envelope{Type: "Point", Coordinates: mustRaw(pointCoords(v))})
	case geom.LineString:
		return json.Marshal(envelope{Type: "LineString", Coordinates: mustRaw(lineCoords(v))})
	case geom.Polygon:
		return json.Marshal(envelope{Type: "Polygon", Coordinates: mustRaw(polygonCoords(v))})
	case geom.MultiPoint:
		coords := make([][]float64, len(v.Points))
		for i, p := range v.Points {
			coords[i] = flatCoord(p.Coord, v.Dim())
		}
		return json.Marshal(envelope{Type: "MultiPoint", Coordinates: mustRaw(coords)})
	case geom.MultiLineString:
		coords := make([][][]float64, len(v.Lines))
		for i, l := range v.Lines {
			coords[i] = lineCoords(l)
		}
		return json.Marshal(envelope{Type: "MultiLineString", Coordinates: mustRaw(coords)})
	case geom.MultiPolygon:
		coords := make([][][][]float64, len(v.Polys))
		for i, p := range v.Polys {
			coords[i] = polygonCoords(p)
		}
		return json.Marshal(envelope{Type: "MultiPolygon", Coordinates: mustRaw(coords)})
	case geom.GeometryCollection:
		parts := make([]json.RawMessage, len(v.Geoms))
		for i, c := range v.Geoms {
			data, err := Marshal(c)
			if err != nil {
				return nil, err
			}
			parts[i] = data
		}
		return json.Marshal(envelope{Type: "GeometryCollection", Geometries: mustRaw(parts)})
	default:
		return nil, &geom.UnsupportedGeometry{Kind: "unknown"}
	}
}

func mustRaw(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func flatCoord(c geom.Coordinate, dim geom.Dim) []float64 {
	if dim.HasZ() {
		return []float64{c.X, c.Y, c.Z}
	}
	return []float64{c.X, c.Y}
}

func pointCoords(p geom.Point) []float64 {
	if p.IsEmpty() {
		return []float64{}
	}
	return flatCoord(p.Coord, p.Dim())
}

func lineCoords(l geom.LineString) [][]float64 {
	out := make([][]float64, len(l.Coords))
	for i, c := range l.Coords {
		out[i] = flatCoord(c, l.Dim())
	}
	return out
}

func polygonCoords(p geom.Polygon) [][][]float64 {
	out := make([][][]float64, len(p.Rings))
	for i, ring := range p.Rings {
		r := make([][]float64, len(ring))
		for j, c := range ring {
			r[j] = flatCoord(c, p.Dim())
		}
		out[i] = r
	}
	return out
}

// Unmarshal decodes a RFC 7946 Geometry object. Every returned geometry
// carries SRID 4326, regardless of any legacy "crs" member present.
func Unmarshal(data []byte) (geom.Geometry, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, parseErr(err.Error())
	}
	switch env.Type {
	case "Point":
		coords, err := decodeFlat(env.Coordinates)
		if err != nil {
			return nil, err
		}
		return decodePoint(coords)
	case "LineString":
		coords, err := decodeFlatList(env.Coordinates)
		if err != nil {
			return nil, err
		}
		return decodeLineString(coords)
	case "Polygon":
		coords, err := decodeRingList(env.Coordinates)
		if err != nil {
			return nil, err
		}
		return decodePolygon(coords)
	case "MultiPoint":
		coords, err := decodeFlatList(env.Coordinates)
		if err != nil {
			return nil, err
		}
		return decodeMultiPoint(coords)
	case "MultiLineString":
		coords, err := decodeRingList(env.Coordinates)
		if err != nil {
			return nil, err
		}
		return decodeMultiLineString(coords)
	case "MultiPolygon":
		var coords [][][][]float64
		if len(env.Coordinates) > 0 {
			if err := json.Unmarshal(env.Coordinates, &coords); err != nil {
				return nil, parseErr(err.Error())
			}
		}
		return decodeMultiPolygon(coords)
	case "GeometryCollection":
		var parts []json.RawMessage
		if len(env.Geometries) > 0 {
			if err := json.Unmarshal(env.Geometries, &parts); err != nil {
				return nil, parseErr(err.Error())
			}
		}
		geoms := make([]geom.Geometry, len(parts))
		for i, part := range parts {
			g, err := Unmarshal(part)
			if err != nil {
				return nil, err
			}
			geoms[i] = g
		}
		dim := geom.XY
		if len(geoms) > 0 {
			dim = geoms[0].Dim()
		}
		gc, err := geom.NewGeometryCollection(defaultSRID, dim, geoms)
		if err != nil {
			return nil, wrapErr(err)
		}
		return gc, nil
	case "":
		return nil, parseErr("missing \"type\" member")
	default:
		return nil, &geom.UnsupportedGeometry{Kind: env.Type, Reason: "not a recognized GeoJSON geometry type"}
	}
}

func parseErr(msg string) error {
	return &geom.ParseError{Codec: "geojson", Offset: -1, Message: msg}
}

func wrapErr(err error) error {
	return &geom.ParseError{Codec: "geojson", Offset: -1, Message: err.Error()}
}

func dimOf(stride int) (geom.Dim, error) {
	switch stride {
	case 2:
		return geom.XY, nil
	case 3:
		return geom.XYZ, nil
	default:
		return 0, parseErr("coordinate tuple must have 2 or 3 numbers")
	}
}

func decodeFlat(raw json.RawMessage) ([]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var c []float64
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, parseErr(err.Error())
	}
	return c, nil
}

func decodeFlatList(raw json.RawMessage) ([][]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var c [][]float64
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, parseErr(err.Error())
	}
	return c, nil
}

func decodeRingList(raw json.RawMessage) ([][][]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var c [][][]float64
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, parseErr(err.Error())
	}
	return c, nil
}

func toCoordinate(tuple []float64) (geom.Coordinate, geom.Dim, error) {
	dim, err := dimOf(len(tuple))
	if err != nil {
		return geom.Coordinate{}, 0, err
	}
	c := geom.Coordinate{X: tuple[0], Y: tuple[1]}
	if dim.HasZ() {
		c.Z = tuple[2]
	}
	return c, dim, nil
}

func decodePoint(tuple []float64) (geom.Point, error) {
	if len(tuple) == 0 {
		return geom.NewEmptyPoint(defaultSRID, geom.XY), nil
	}
	c, dim, err := toCoordinate(tuple)
	if err != nil {
		return geom.Point{}, err
	}
	p, err := geom.NewPoint(defaultSRID, dim, c)
	if err != nil {
		return geom.Point{}, wrapErr(err)
	}
	return p, nil
}

func decodeLineString(tuples [][]float64) (geom.LineString, error) {
	if len(tuples) == 0 {
		return geom.NewEmptyLineString(defaultSRID, geom.XY), nil
	}
	dim, err := dimOf(len(tuples[0]))
	if err != nil {
		return geom.LineString{}, err
	}
	coords := make([]geom.Coordinate, len(tuples))
	for i, t := range tuples {
		c, _, err := toCoordinate(t)
		if err != nil {
			return geom.LineString{}, err
		}
		coords[i] = c
	}
	ls, err := geom.NewLineString(defaultSRID, dim, coords)
	if err != nil {
		return geom.LineString{}, wrapErr(err)
	}
	return ls, nil
}

func decodeRing(tuples [][]float64, dim geom.Dim) ([]geom.Coordinate, error) {
	ring := make([]geom.Coordinate, len(tuples))
	for i, t := range tuples {
		c, _, err := toCoordinate(t)
		if err != nil {
			return nil, err
		}
		ring[i] = c
	}
	return ring, nil
}

func decodePolygon(rings [][][]float64) (geom.Polygon, error) {
	if len(rings) == 0 {
		return geom.NewEmptyPolygon(defaultSRID, geom.XY), nil
	}
	if len(rings[0]) == 0 {
		return geom.Polygon{}, parseErr("polygon ring must have at least one coordinate")
	}
	dim, err := dimOf(len(rings[0][0]))
	if err != nil {
		return geom.Polygon{}, err
	}
	out := make([][]geom.Coordinate, len(rings))
	for i, r := range rings {
		ring, err := decodeRing(r, dim)
		if err != nil {
			return geom.Polygon{}, err
		}
		out[i] = ring
	}
	poly, err := geom.NewPolygon(defaultSRID, dim, out, geom.AutoOrient())
	if err != nil {
		return geom.Polygon{}, wrapErr(err)
	}
	return poly, nil
}

func decodeMultiPoint(tuples [][]float64) (geom.MultiPoint, error) {
	points := make([]geom.Point, len(tuples))
	for i, t := range tuples {
		c, dim, err := toCoordinate(t)
		if err != nil {
			return geom.MultiPoint{}, err
		}
		p, err := geom.NewPoint(defaultSRID, dim, c)
		if err != nil {
			return geom.MultiPoint{}, wrapErr(err)
		}
		points[i] = p
	}
	dim := geom.XY
	if len(points) > 0 {
		dim = points[0].Dim()
	}
	mp, err := geom.NewMultiPoint(defaultSRID, dim, points)
	if err != nil {
		return geom.MultiPoint{}, wrapErr(err)
	}
	return mp, nil
}

func decodeMultiLineString(lists [][][]float64) (geom.MultiLineString, error) {
	lines := make([]geom.LineString, len(lists))
	for i, tuples := range lists {
		ls, err := decodeLineString(tuples)
		if err != nil {
			return geom.MultiLineString{}, err
		}
		lines[i] = ls
	}
	dim := geom.XY
	if len(lines) > 0 {
		dim = lines[0].Dim()
	}
	mls, err := geom.NewMultiLineString(defaultSRID, dim, lines)
	if err != nil {
		return geom.MultiLineString{}, wrapErr(err)
	}
	return mls, nil
}

func decodeMultiPolygon(polys [][][][]float64) (geom.MultiPolygon, error) {
	out := make([]geom.Polygon, len(polys))
	for i, rings := range polys {
		p, err := decodePolygon(rings)
		if err != nil {
			return geom.MultiPolygon{}, err
		}
		out[i] = p
	}
	dim := geom.XY
	if len(out) > 0 {
		dim = out[0].Dim()
	}
	mp, err := geom.NewMultiPolygon(defaultSRID, dim, out)
	if err != nil {
		return geom.MultiPolygon{}, wrapErr(err)
	}
	return mp, nil
}
