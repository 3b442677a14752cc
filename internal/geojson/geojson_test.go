package geojson

import (
	"encoding/json"
	"testing"

	"github.com/fathomline/stgeo/pkg/geom"
)

func TestMarshalPoint(t *testing.T) {
	p, _ := geom.NewPoint(4326, geom.XY, geom.Coordinate{X: 1, Y: 2})
	data, err := Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if got["type"] != "Point" {
		t.Fatalf("got type %v", got["type"])
	}
	coords, ok := got["coordinates"].([]any)
	if !ok || len(coords) != 2 {
		t.Fatalf("got coordinates %v", got["coordinates"])
	}
}

func TestUnmarshalPoint(t *testing.T) {
	g, err := Unmarshal([]byte(`{"type":"Point","coordinates":[1,2]}`))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	p, ok := g.(geom.Point)
	if !ok {
		t.Fatalf("got %T", g)
	}
	if p.SRID() != 4326 {
		t.Fatalf("want SRID 4326, got %d", p.SRID())
	}
	if p.Coord.X != 1 || p.Coord.Y != 2 {
		t.Fatalf("got coord %v", p.Coord)
	}
}

func TestUnmarshalIgnoresLegacyCRS(t *testing.T) {
	g, err := Unmarshal([]byte(`{"type":"Point","coordinates":[1,2],"crs":{"type":"name","properties":{"name":"EPSG:3857"}}}`))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if g.SRID() != 4326 {
		t.Fatalf("want SRID forced to 4326 regardless of crs member, got %d", g.SRID())
	}
}

func TestUnmarshalEmptyPoint(t *testing.T) {
	g, err := Unmarshal([]byte(`{"type":"Point","coordinates":[]}`))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !g.IsEmpty() {
		t.Fatal("expected empty point")
	}
}

func TestRoundTripAllVariants(t *testing.T) {
	p, _ := geom.NewPoint(4326, geom.XY, geom.Coordinate{X: 1, Y: 2})
	ls, _ := geom.NewLineString(4326, geom.XY, []geom.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 1}})
	poly, _ := geom.NewPolygon(4326, geom.XY, [][]geom.Coordinate{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}},
	})
	mp, _ := geom.NewMultiPoint(4326, geom.XY, []geom.Point{p})
	mls, _ := geom.NewMultiLineString(4326, geom.XY, []geom.LineString{ls})
	mpoly, _ := geom.NewMultiPolygon(4326, geom.XY, []geom.Polygon{poly})
	gc, _ := geom.NewGeometryCollection(4326, geom.XY, []geom.Geometry{p, ls})
	xyz, _ := geom.NewPoint(4326, geom.XYZ, geom.Coordinate{X: 1, Y: 2, Z: 3})

	cases := []geom.Geometry{p, ls, poly, mp, mls, mpoly, gc, xyz}
	for i, g := range cases {
		data, err := Marshal(g)
		if err != nil {
			t.Fatalf("case %d: Marshal: %v", i, err)
		}
		back, err := Unmarshal(data)
		if err != nil {
			t.Fatalf("case %d: Unmarshal: %v", i, err)
		}
		if !geom.Equal(g, back) {
			t.Fatalf("case %d: round trip mismatch: %#v vs %#v", i, g, back)
		}
	}
}

func TestMarshalRejectsM(t *testing.T) {
	p, _ := geom.NewPoint(4326, geom.XYM, geom.Coordinate{X: 1, Y: 2, M: 3})
	if _, err := Marshal(p); err == nil {
		t.Fatal("expected error marshaling XYM geometry")
	}
}

func TestUnmarshalRejectsUnknownType(t *testing.T) {
	if _, err := Unmarshal([]byte(`{"type":"Triangle","coordinates":[]}`)); err == nil {
		t.Fatal("expected error for unknown geometry type")
	}
}

func TestUnmarshalRejectsEmptyCoordinateTuple(t *testing.T) {
	// A LineString whose second vertex is an empty array used to index
	// past the end of that tuple instead of reporting a parse error.
	if _, err := Unmarshal([]byte(`{"type":"LineString","coordinates":[[],[1,2]]}`)); err == nil {
		t.Fatal("expected error for an empty coordinate tuple")
	}
	if _, err := Unmarshal([]byte(`{"type":"LineString","coordinates":[[1,2],[]]}`)); err == nil {
		t.Fatal("expected error for an empty coordinate tuple")
	}
	if _, err := Unmarshal([]byte(`{"type":"MultiPoint","coordinates":[[1,2],[]]}`)); err == nil {
		t.Fatal("expected error for an empty coordinate tuple")
	}
}

func TestUnmarshalRejectsEmptyPolygonRing(t *testing.T) {
	if _, err := Unmarshal([]byte(`{"type":"Polygon","coordinates":[[]]}`)); err == nil {
		t.Fatal("expected error for a polygon ring with no points")
	}
}

func TestUnmarshalGeometryCollection(t *testing.T) {
	data := []byte(`{"type":"GeometryCollection","geometries":[{"type":"Point","coordinates":[1,2]},{"type":"LineString","coordinates":[[0,0],[1,1]]}]}`)
	g, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	gc, ok := g.(geom.GeometryCollection)
	if !ok || len(gc.Geoms) != 2 {
		t.Fatalf("got %#v", g)
	}
}
