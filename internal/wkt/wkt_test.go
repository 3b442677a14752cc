package wkt

import (
	"testing"

	"github.com/fathomline/stgeo/pkg/geom"
)

func TestParsePoint(t *testing.T) {
	g, err := Parse("POINT(1 2)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p, ok := g.(geom.Point)
	if !ok {
		t.Fatalf("got %T, want geom.Point", g)
	}
	if p.Coord.X != 1 || p.Coord.Y != 2 {
		t.Fatalf("got coord %v", p.Coord)
	}
	if p.SRID() != 0 {
		t.Fatalf("want SRID 0, got %d", p.SRID())
	}
}

func TestParseEWKTSRIDPrefix(t *testing.T) {
	g, err := Parse("SRID=4326;POINT(1 2)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g.SRID() != 4326 {
		t.Fatalf("want SRID 4326, got %d", g.SRID())
	}
}

func TestParsePointZ(t *testing.T) {
	g, err := Parse("POINT Z (1 2 3)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p := g.(geom.Point)
	if p.Dim() != geom.XYZ || p.Coord.Z != 3 {
		t.Fatalf("got %#v", p)
	}
}

func TestParseEmptyVariants(t *testing.T) {
	cases := []string{
		"POINT EMPTY",
		"LINESTRING EMPTY",
		"POLYGON EMPTY",
		"MULTIPOINT EMPTY",
		"MULTILINESTRING EMPTY",
		"MULTIPOLYGON EMPTY",
		"GEOMETRYCOLLECTION EMPTY",
	}
	for _, c := range cases {
		g, err := Parse(c)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c, err)
		}
		if !g.IsEmpty() {
			t.Fatalf("Parse(%q): expected empty", c)
		}
	}
}

func TestParseLineStringRejectsSinglePoint(t *testing.T) {
	if _, err := Parse("LINESTRING(1 2)"); err == nil {
		t.Fatal("expected error for single-point linestring")
	}
}

func TestParsePolygonAutoOrients(t *testing.T) {
	g, err := Parse("POLYGON((0 0, 0 10, 10 10, 10 0, 0 0))")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	poly := g.(geom.Polygon)
	if len(poly.Rings) != 1 {
		t.Fatalf("want 1 ring, got %d", len(poly.Rings))
	}
}

func TestParseMultiPointBothForms(t *testing.T) {
	a, err := Parse("MULTIPOINT(1 2, 3 4)")
	if err != nil {
		t.Fatalf("Parse bare form: %v", err)
	}
	b, err := Parse("MULTIPOINT((1 2), (3 4))")
	if err != nil {
		t.Fatalf("Parse parenthesized form: %v", err)
	}
	if !geom.Equal(a, b) {
		t.Fatalf("expected both MULTIPOINT forms to parse equal, got %#v vs %#v", a, b)
	}
}

func TestParseGeometryCollection(t *testing.T) {
	g, err := Parse("GEOMETRYCOLLECTION(POINT(1 2), LINESTRING(0 0, 1 1))")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	gc := g.(geom.GeometryCollection)
	if len(gc.Geoms) != 2 {
		t.Fatalf("want 2 members, got %d", len(gc.Geoms))
	}
}

func TestParseRejectsDeepNesting(t *testing.T) {
	s := "POINT(0 0)"
	for i := 0; i < geom.MaxNestingDepth+2; i++ {
		s = "GEOMETRYCOLLECTION(" + s + ")"
	}
	if _, err := Parse(s); err == nil {
		t.Fatal("expected depth-limit error")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	cases := []string{
		"POINT(1.5 -2.25)",
		"LINESTRING(0 0,1 1,2 0)",
		"POLYGON((0 0,10 0,10 10,0 10,0 0))",
		"MULTIPOINT((1 1),(2 2))",
		"GEOMETRYCOLLECTION(POINT(1 2),LINESTRING(0 0,1 1))",
		"POINT EMPTY",
	}
	for _, wkt := range cases {
		g, err := Parse(wkt)
		if err != nil {
			t.Fatalf("Parse(%q): %v", wkt, err)
		}
		out, err := Write(g)
		if err != nil {
			t.Fatalf("Write(%q): %v", wkt, err)
		}
		back, err := Parse(out)
		if err != nil {
			t.Fatalf("re-Parse(%q): %v", out, err)
		}
		if !geom.Equal(g, back) {
			t.Fatalf("round trip mismatch for %q: wrote %q", wkt, out)
		}
	}
}

func TestWriteEWKTIncludesSRID(t *testing.T) {
	p, _ := geom.NewPoint(4326, geom.XY, geom.Coordinate{X: 1, Y: 2})
	out, err := Write(p)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "SRID=4326;POINT(1 2)"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestParseRejectsUnknownTag(t *testing.T) {
	if _, err := Parse("TRIANGLE(0 0,1 1,2 2)"); err == nil {
		t.Fatal("expected error for unknown geometry tag")
	}
}
