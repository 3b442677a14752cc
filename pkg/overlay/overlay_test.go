package overlay

import (
	"math"
	"testing"

	"github.com/fathomline/stgeo/pkg/geom"
	"github.com/fathomline/stgeo/pkg/measure"
)

func square(t *testing.T, x0, y0, x1, y1 float64) geom.Polygon {
	t.Helper()
	ring := []geom.Coordinate{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0},
	}
	p, err := geom.NewPolygon(0, geom.XY, [][]geom.Coordinate{ring}, geom.AutoOrient())
	if err != nil {
		t.Fatalf("square: %v", err)
	}
	return p
}

func TestConvexHullSquareIsItself(t *testing.T) {
	sq := square(t, 0, 0, 2, 2)
	hull, err := ConvexHull(sq)
	if err != nil {
		t.Fatalf("ConvexHull: %v", err)
	}
	p, ok := hull.(geom.Polygon)
	if !ok {
		t.Fatalf("expected Polygon, got %T", hull)
	}
	if len(p.ExteriorRing()) != 5 {
		t.Fatalf("expected a 4-vertex ring (closed to 5 coords), got %d", len(p.ExteriorRing()))
	}
}

func TestConvexHullDropsInteriorPoint(t *testing.T) {
	mp, err := geom.NewMultiPoint(0, geom.XY, []geom.Point{
		mustPoint(t, 0, 0), mustPoint(t, 4, 0), mustPoint(t, 4, 4), mustPoint(t, 0, 4),
		mustPoint(t, 2, 2), // interior, should not appear on the hull
	})
	if err != nil {
		t.Fatalf("NewMultiPoint: %v", err)
	}
	hull, err := ConvexHull(mp)
	if err != nil {
		t.Fatalf("ConvexHull: %v", err)
	}
	p := hull.(geom.Polygon)
	for _, c := range p.ExteriorRing() {
		if c.X == 2 && c.Y == 2 {
			t.Fatal("interior point leaked onto convex hull")
		}
	}
}

func mustPoint(t *testing.T, x, y float64) geom.Point {
	t.Helper()
	p, err := geom.NewPoint(0, geom.XY, geom.Coordinate{X: x, Y: y})
	if err != nil {
		t.Fatalf("NewPoint: %v", err)
	}
	return p
}

func TestSimplifyDouglasPeuckerDropsColinearPoint(t *testing.T) {
	l, err := geom.NewLineString(0, geom.XY, []geom.Coordinate{
		{X: 0, Y: 0}, {X: 1, Y: 0.01}, {X: 2, Y: 0},
	})
	if err != nil {
		t.Fatalf("NewLineString: %v", err)
	}
	simplified, err := Simplify(l, 1.0)
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	ls := simplified.(geom.LineString)
	if len(ls.Coords) != 2 {
		t.Fatalf("expected midpoint dropped at tolerance 1.0, got %d coords", len(ls.Coords))
	}
}

func TestSimplifyKeepsPointBeyondTolerance(t *testing.T) {
	l, err := geom.NewLineString(0, geom.XY, []geom.Coordinate{
		{X: 0, Y: 0}, {X: 1, Y: 5}, {X: 2, Y: 0},
	})
	if err != nil {
		t.Fatalf("NewLineString: %v", err)
	}
	simplified, err := Simplify(l, 1.0)
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	ls := simplified.(geom.LineString)
	if len(ls.Coords) != 3 {
		t.Fatalf("expected peak retained at tolerance 1.0, got %d coords", len(ls.Coords))
	}
}

func TestBufferPointQuadSegsAreaApproximatesPi(t *testing.T) {
	p, err := geom.NewPoint(0, geom.XY, geom.Coordinate{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("NewPoint: %v", err)
	}
	params := DefaultBufferParams()
	result, err := Buffer(p, 1.0, params)
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	poly := result.(geom.Polygon)
	if got := len(poly.ExteriorRing()); got != params.QuadSegs*4+1 {
		t.Fatalf("expected %d vertices (quad_segs*4 + closing), got %d", params.QuadSegs*4+1, got)
	}
	area := measure.Area(poly)
	if math.Abs(area-math.Pi) > 1e-1 {
		t.Fatalf("expected area near pi, got %f", area)
	}
}

func TestBufferZeroDistanceReturnsInput(t *testing.T) {
	sq := square(t, 0, 0, 1, 1)
	result, err := Buffer(sq, 0, DefaultBufferParams())
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	if result.(geom.Polygon).ExteriorRing()[0] != sq.ExteriorRing()[0] {
		t.Fatal("zero-distance buffer should return the input unchanged")
	}
}

func TestBufferRejectsNonPositiveQuadSegs(t *testing.T) {
	p, _ := geom.NewPoint(0, geom.XY, geom.Coordinate{X: 0, Y: 0})
	params := DefaultBufferParams()
	params.QuadSegs = 0
	if _, err := Buffer(p, 1.0, params); err == nil {
		t.Fatal("expected error for zero quad_segs")
	}
}

func TestUnionOverlappingSquares(t *testing.T) {
	a := square(t, 0, 0, 2, 2)
	b := square(t, 1, 1, 3, 3)
	result, err := Union(a, b)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	area := measure.Area(result)
	// two overlapping 2x2 squares with a 1x1 overlap: 4+4-1 = 7
	if math.Abs(area-7) > 1e-6 {
		t.Fatalf("expected union area 7, got %f", area)
	}
}

func TestIntersectionOverlappingSquares(t *testing.T) {
	a := square(t, 0, 0, 2, 2)
	b := square(t, 1, 1, 3, 3)
	result, err := Intersection(a, b)
	if err != nil {
		t.Fatalf("Intersection: %v", err)
	}
	area := measure.Area(result)
	if math.Abs(area-1) > 1e-6 {
		t.Fatalf("expected intersection area 1, got %f", area)
	}
}

func TestDifferenceDisjointReturnsOriginal(t *testing.T) {
	a := square(t, 0, 0, 1, 1)
	b := square(t, 10, 10, 11, 11)
	result, err := Difference(a, b)
	if err != nil {
		t.Fatalf("Difference: %v", err)
	}
	area := measure.Area(result)
	if math.Abs(area-1) > 1e-6 {
		t.Fatalf("expected difference of disjoint polygons to return original area 1, got %f", area)
	}
}

func TestIntersectionDisjointIsEmpty(t *testing.T) {
	a := square(t, 0, 0, 1, 1)
	b := square(t, 10, 10, 11, 11)
	result, err := Intersection(a, b)
	if err != nil {
		t.Fatalf("Intersection: %v", err)
	}
	if !result.IsEmpty() {
		t.Fatal("expected intersection of disjoint polygons to be empty")
	}
}

func TestUnionOfPointsCollectsIntoMultiPoint(t *testing.T) {
	a := mustPoint(t, 0, 0)
	b := mustPoint(t, 1, 1)
	result, err := Union(a, b)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	mp, ok := result.(geom.MultiPoint)
	if !ok {
		t.Fatalf("expected MultiPoint, got %T", result)
	}
	if len(mp.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(mp.Points))
	}
}

func TestSymDifferenceOverlappingSquares(t *testing.T) {
	a := square(t, 0, 0, 2, 2)
	b := square(t, 1, 1, 3, 3)
	result, err := SymDifference(a, b)
	if err != nil {
		t.Fatalf("SymDifference: %v", err)
	}
	area := measure.Area(result)
	// symmetric difference of two 2x2 squares overlapping in a 1x1 square: (4-1)+(4-1) = 6
	if math.Abs(area-6) > 1e-6 {
		t.Fatalf("expected symmetric difference area 6, got %f", area)
	}
}
