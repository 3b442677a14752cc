package geom

import (
	"math"
	"testing"
)

func TestDimFlags(t *testing.T) {
	tests := []struct {
		dim        Dim
		hasZ, hasM bool
		stride     int
		suffix     string
	}{
		{XY, false, false, 2, ""},
		{XYZ, true, false, 3, "Z"},
		{XYM, false, true, 3, "M"},
		{XYZM, true, true, 4, "ZM"},
	}
	for _, tt := range tests {
		t.Run(tt.dim.String(), func(t *testing.T) {
			if got := tt.dim.HasZ(); got != tt.hasZ {
				t.Errorf("HasZ() = %v, want %v", got, tt.hasZ)
			}
			if got := tt.dim.HasM(); got != tt.hasM {
				t.Errorf("HasM() = %v, want %v", got, tt.hasM)
			}
			if got := tt.dim.Stride(); got != tt.stride {
				t.Errorf("Stride() = %d, want %d", got, tt.stride)
			}
			if got := tt.dim.WKTSuffix(); got != tt.suffix {
				t.Errorf("WKTSuffix() = %q, want %q", got, tt.suffix)
			}
		})
	}
}

func TestCoordinateValid(t *testing.T) {
	if !(Coordinate{X: 1, Y: 2}).Valid(XY) {
		t.Error("finite XY should be valid")
	}
	if (Coordinate{X: math.NaN(), Y: 2}).Valid(XY) {
		t.Error("NaN X should be invalid")
	}
	if (Coordinate{X: 1, Y: math.Inf(1)}).Valid(XY) {
		t.Error("+Inf Y should be invalid")
	}
	if !(Coordinate{X: 0, Y: -0.0}).Equal(Coordinate{X: -0.0, Y: 0}, XY) {
		t.Error("-0.0 should equal +0.0")
	}
}

func TestNewPointEmpty(t *testing.T) {
	p := NewEmptyPoint(0, XY)
	if !p.IsEmpty() {
		t.Fatal("expected empty point")
	}
	if !p.Bounds().IsEmpty() {
		t.Fatal("empty point should have empty bounds")
	}
}

func TestNewPointRejectsNaN(t *testing.T) {
	_, err := NewPoint(0, XY, Coordinate{X: math.NaN(), Y: 0})
	if err == nil {
		t.Fatal("expected error for NaN coordinate")
	}
	if _, ok := err.(*InvalidArgument); !ok {
		t.Fatalf("expected *InvalidArgument, got %T", err)
	}
}

func TestLineStringInvariants(t *testing.T) {
	if _, err := NewLineString(0, XY, []Coordinate{{X: 0, Y: 0}}); err == nil {
		t.Fatal("single-point linestring should be rejected")
	}
	ls, err := NewLineString(0, XY, []Coordinate{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ls.IsClosed() {
		t.Fatal("open linestring reported closed")
	}
	closed, err := NewLineString(0, XY, []Coordinate{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !closed.IsClosed() {
		t.Fatal("closed linestring reported open")
	}
}

func TestPolygonOrientation(t *testing.T) {
	ccw := []Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}}
	cw := []Coordinate{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 0}}

	if _, err := NewPolygon(0, XY, [][]Coordinate{cw}); err == nil {
		t.Fatal("clockwise exterior ring should be rejected without AutoOrient")
	}
	p, err := NewPolygon(0, XY, [][]Coordinate{cw}, AutoOrient())
	if err != nil {
		t.Fatalf("unexpected error with AutoOrient: %v", err)
	}
	if isClockwise(p.ExteriorRing()) {
		t.Fatal("AutoOrient should have fixed exterior winding")
	}

	if _, err := NewPolygon(0, XY, [][]Coordinate{ccw}); err != nil {
		t.Fatalf("unexpected error for valid ccw exterior: %v", err)
	}
}

func TestPolygonClosureRequired(t *testing.T) {
	open := []Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if _, err := NewPolygon(0, XY, [][]Coordinate{open}); err == nil {
		t.Fatal("unclosed ring should be rejected")
	}
}

func TestGeometryEqual(t *testing.T) {
	a, _ := NewPoint(4326, XY, Coordinate{X: 1, Y: 2})
	b, _ := NewPoint(4326, XY, Coordinate{X: 1, Y: 2})
	c, _ := NewPoint(0, XY, Coordinate{X: 1, Y: 2})

	if !Equal(a, b) {
		t.Fatal("identical points should be Equal")
	}
	if Equal(a, c) {
		t.Fatal("points with different SRID should not be Equal")
	}
}

func TestBoundsUnion(t *testing.T) {
	ls, _ := NewLineString(0, XY, []Coordinate{{X: -1, Y: -2}, {X: 3, Y: 4}})
	b := ls.Bounds()
	if b.MinX != -1 || b.MinY != -2 || b.MaxX != 3 || b.MaxY != 4 {
		t.Fatalf("unexpected bounds: %+v", b)
	}

	empty := EmptyBoundingBox()
	u := empty.Union(b)
	if u.IsEmpty() || u.MinX != -1 {
		t.Fatalf("union with empty box should yield the other box, got %+v", u)
	}
}

func TestWithSRID(t *testing.T) {
	p, _ := NewPoint(0, XY, Coordinate{X: 1, Y: 1})
	p2 := WithSRID(p, 4326)
	if p2.SRID() != 4326 {
		t.Fatalf("expected SRID 4326, got %d", p2.SRID())
	}
	if p.SRID() != 0 {
		t.Fatal("WithSRID should not mutate the original")
	}
}

func TestVerticesFlatten(t *testing.T) {
	a, _ := NewPoint(0, XY, Coordinate{X: 1, Y: 1})
	b, _ := NewPoint(0, XY, Coordinate{X: 2, Y: 2})
	mp, err := NewMultiPoint(0, XY, []Point{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vs := Vertices(mp)
	if len(vs) != 2 {
		t.Fatalf("expected 2 vertices, got %d", len(vs))
	}
}
