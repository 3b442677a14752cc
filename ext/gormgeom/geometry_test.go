package gormgeom

import (
	"testing"

	"github.com/fathomline/stgeo/internal/ewkb"
	"github.com/fathomline/stgeo/pkg/geom"
)

func mustPoint(t *testing.T, srid int32, x, y float64) geom.Point {
	t.Helper()
	p, err := geom.NewPoint(srid, geom.XY, geom.NewXY(x, y))
	if err != nil {
		t.Fatalf("NewPoint: %v", err)
	}
	return p
}

func TestScanNilIsInvalid(t *testing.T) {
	var g Geometry
	if err := g.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if g.Valid {
		t.Fatal("expected Valid to be false after scanning nil")
	}
}

func TestValueThenScanRoundTripsEWKB(t *testing.T) {
	p := mustPoint(t, 4326, 1, 2)
	g := NewGeometry(p)

	val, err := g.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var out Geometry
	if err := out.Scan(val); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !out.Valid {
		t.Fatal("expected Valid after scanning a non-nil EWKB blob")
	}
	if out.Geom.SRID() != 4326 {
		t.Fatalf("expected SRID 4326, got %d", out.Geom.SRID())
	}
}

func TestScanFallsBackToWKT(t *testing.T) {
	var g Geometry
	if err := g.Scan("POINT(3 4)"); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !g.Valid {
		t.Fatal("expected Valid after scanning WKT text")
	}
	pt, ok := g.Geom.(geom.Point)
	if !ok {
		t.Fatalf("expected a Point, got %T", g.Geom)
	}
	if pt.Coord.X != 3 || pt.Coord.Y != 4 {
		t.Fatalf("unexpected coordinate: %+v", pt.Coord)
	}
}

func TestScanRejectsUnsupportedType(t *testing.T) {
	var g Geometry
	if err := g.Scan(42); err == nil {
		t.Fatal("expected an error scanning an int")
	}
}

func TestValueOfInvalidGeometryIsNil(t *testing.T) {
	var g Geometry
	val, err := g.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if val != nil {
		t.Fatalf("expected nil driver.Value, got %v", val)
	}
}

func TestStringRoundTripsWKT(t *testing.T) {
	g := NewGeometry(mustPoint(t, 0, 1, 2))
	if got, want := g.String(), "POINT(1 2)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestScanRoundTripAgainstRawEWKBBytes(t *testing.T) {
	p := mustPoint(t, 0, 5, 6)
	blob, err := ewkb.Write(p)
	if err != nil {
		t.Fatalf("ewkb.Write: %v", err)
	}
	var g Geometry
	if err := g.Scan(blob); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !g.Valid {
		t.Fatal("expected Valid")
	}
}
