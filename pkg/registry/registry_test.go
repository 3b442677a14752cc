package registry

import (
	"testing"

	"github.com/fathomline/stgeo/pkg/geom"
)

func mustPt(t *testing.T, x, y float64) geom.Point {
	t.Helper()
	p, err := geom.NewPoint(0, geom.XY, geom.NewXY(x, y))
	if err != nil {
		t.Fatalf("NewPoint: %v", err)
	}
	return p
}

func TestDefaultRegistryHasCoreFunctions(t *testing.T) {
	r := Default()
	for _, name := range []string{"ST_Area", "ST_Distance", "ST_Intersects", "ST_Union", "ST_AsText", "ST_GeomFromText"} {
		if _, ok := r.Lookup(name); !ok {
			t.Errorf("expected %s to be registered", name)
		}
	}
}

func TestCallDistance(t *testing.T) {
	r := Default()
	a := mustPt(t, 0, 0)
	b := mustPt(t, 3, 4)
	result, err := r.Call("ST_Distance", []Value{{Geom: a}, {Geom: b}})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result.Float != 5.0 {
		t.Fatalf("expected 5.0, got %f", result.Float)
	}
}

func TestCallNullStrictShortCircuits(t *testing.T) {
	r := Default()
	a := mustPt(t, 0, 0)
	result, err := r.Call("ST_Distance", []Value{{Geom: a}, nullValue()})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !result.IsNull {
		t.Fatal("expected null result for a null argument under NullStrict")
	}
}

func TestCallUnknownFunction(t *testing.T) {
	r := Default()
	if _, err := r.Call("ST_DoesNotExist", nil); err == nil {
		t.Fatal("expected error for unknown function name")
	}
}

func TestCallWrongArity(t *testing.T) {
	r := Default()
	a := mustPt(t, 0, 0)
	if _, err := r.Call("ST_Distance", []Value{{Geom: a}}); err == nil {
		t.Fatal("expected error for wrong argument count")
	}
}

func TestRoundTripWKT(t *testing.T) {
	r := Default()
	parsed, err := r.Call("ST_GeomFromText", []Value{{String: "POINT(1 2)"}})
	if err != nil {
		t.Fatalf("ST_GeomFromText: %v", err)
	}
	text, err := r.Call("ST_AsText", []Value{parsed})
	if err != nil {
		t.Fatalf("ST_AsText: %v", err)
	}
	if text.String != "POINT(1 2)" {
		t.Fatalf("round trip mismatch: got %q", text.String)
	}
}

func TestRelateWorkedExample(t *testing.T) {
	r := Default()
	p, err := r.Call("ST_GeomFromText", []Value{{String: "POINT(0 0)"}})
	if err != nil {
		t.Fatalf("ST_GeomFromText: %v", err)
	}
	l, err := r.Call("ST_GeomFromText", []Value{{String: "LINESTRING(0 0, 1 0)"}})
	if err != nil {
		t.Fatalf("ST_GeomFromText: %v", err)
	}
	result, err := r.Call("ST_Relate", []Value{p, l})
	if err != nil {
		t.Fatalf("ST_Relate: %v", err)
	}
	if result.String != "F0FFFF102" {
		t.Fatalf("expected F0FFFF102, got %s", result.String)
	}
}

func TestGeometryTypeAndDimension(t *testing.T) {
	r := Default()
	poly, err := r.Call("ST_GeomFromText", []Value{{String: "POLYGON((0 0,1 0,1 1,0 1,0 0))"}})
	if err != nil {
		t.Fatalf("ST_GeomFromText: %v", err)
	}
	kind, err := r.Call("ST_GeometryType", []Value{poly})
	if err != nil {
		t.Fatalf("ST_GeometryType: %v", err)
	}
	if kind.String != "ST_Polygon" {
		t.Fatalf("expected ST_Polygon, got %s", kind.String)
	}
	dim, err := r.Call("ST_Dimension", []Value{poly})
	if err != nil {
		t.Fatalf("ST_Dimension: %v", err)
	}
	if dim.Int != 2 {
		t.Fatalf("expected dimension 2, got %d", dim.Int)
	}
}

func TestCallUnionVariadicFoldsAcrossAllOperands(t *testing.T) {
	r := Default()
	a, err := r.Call("ST_GeomFromText", []Value{{String: "POLYGON((0 0,2 0,2 2,0 2,0 0))"}})
	if err != nil {
		t.Fatalf("ST_GeomFromText: %v", err)
	}
	b, err := r.Call("ST_GeomFromText", []Value{{String: "POLYGON((1 1,3 1,3 3,1 3,1 1))"}})
	if err != nil {
		t.Fatalf("ST_GeomFromText: %v", err)
	}
	c, err := r.Call("ST_GeomFromText", []Value{{String: "POLYGON((2 2,4 2,4 4,2 4,2 2))"}})
	if err != nil {
		t.Fatalf("ST_GeomFromText: %v", err)
	}
	result, err := r.Call("ST_Union", []Value{a, b, c})
	if err != nil {
		t.Fatalf("ST_Union: %v", err)
	}
	area, err := r.Call("ST_Area", []Value{result})
	if err != nil {
		t.Fatalf("ST_Area: %v", err)
	}
	if area.Float <= 0 {
		t.Fatalf("expected a positive merged area, got %f", area.Float)
	}
}

func TestCallUnionVariadicNullOperandIsAbsorbed(t *testing.T) {
	r := Default()
	a, err := r.Call("ST_GeomFromText", []Value{{String: "POLYGON((0 0,2 0,2 2,0 2,0 0))"}})
	if err != nil {
		t.Fatalf("ST_GeomFromText: %v", err)
	}
	result, err := r.Call("ST_Union", []Value{a, nullValue(), nullValue()})
	if err != nil {
		t.Fatalf("ST_Union: %v", err)
	}
	if _, ok := result.Geom.(geom.Polygon); !ok {
		t.Fatalf("expected the polygon unchanged, got %T", result.Geom)
	}
}

func TestCallCollectBagsWithoutMerging(t *testing.T) {
	r := Default()
	a, err := r.Call("ST_GeomFromText", []Value{{String: "POINT(0 0)"}})
	if err != nil {
		t.Fatalf("ST_GeomFromText: %v", err)
	}
	b, err := r.Call("ST_GeomFromText", []Value{{String: "POINT(1 1)"}})
	if err != nil {
		t.Fatalf("ST_GeomFromText: %v", err)
	}
	result, err := r.Call("ST_Collect", []Value{a, nullValue(), b})
	if err != nil {
		t.Fatalf("ST_Collect: %v", err)
	}
	mp, ok := result.Geom.(geom.MultiPoint)
	if !ok {
		t.Fatalf("expected a MultiPoint, got %T", result.Geom)
	}
	if len(mp.Points) != 2 {
		t.Fatalf("expected the null operand dropped, leaving 2 points, got %d", len(mp.Points))
	}
}

func TestDefaultWithOptionsExcludes(t *testing.T) {
	r, err := DefaultWithOptions(Options{ExcludeNames: []string{"ST_DistanceSpheroid"}})
	if err != nil {
		t.Fatalf("DefaultWithOptions: %v", err)
	}
	if _, ok := r.Lookup("ST_DistanceSpheroid"); ok {
		t.Fatal("expected ST_DistanceSpheroid to be excluded")
	}
	if _, ok := r.Lookup("ST_Area"); !ok {
		t.Fatal("expected ST_Area to remain registered")
	}
}
