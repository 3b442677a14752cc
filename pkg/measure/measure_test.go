package measure

import (
	"math"
	"testing"

	"github.com/fathomline/stgeo/pkg/geom"
)

func pt(t *testing.T, x, y float64) geom.Point {
	t.Helper()
	p, err := geom.NewPoint(0, geom.XY, geom.Coordinate{X: x, Y: y})
	if err != nil {
		t.Fatalf("NewPoint: %v", err)
	}
	return p
}

func TestDistancePointPoint(t *testing.T) {
	d := Distance(pt(t, 0, 0), pt(t, 3, 4))
	if d != 5.0 {
		t.Fatalf("want 5.0, got %v", d)
	}
}

func TestAreaUnitSquareTimesTen(t *testing.T) {
	poly, err := geom.NewPolygon(0, geom.XY, [][]geom.Coordinate{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}},
	})
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	if a := Area(poly); a != 100.0 {
		t.Fatalf("want 100.0, got %v", a)
	}
}

func TestAreaSubtractsHoles(t *testing.T) {
	poly, err := geom.NewPolygon(0, geom.XY, [][]geom.Coordinate{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}},
		{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 1}, {X: 1, Y: 1}},
	})
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	got := Area(poly)
	want := 100.0 - 1.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestLengthLineString(t *testing.T) {
	ls, _ := geom.NewLineString(0, geom.XY, []geom.Coordinate{{X: 0, Y: 0}, {X: 3, Y: 4}})
	if l := Length(ls); l != 5.0 {
		t.Fatalf("want 5.0, got %v", l)
	}
}

func TestLengthIgnoresPolygons(t *testing.T) {
	poly, _ := geom.NewPolygon(0, geom.XY, [][]geom.Coordinate{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}},
	})
	if l := Length(poly); l != 0 {
		t.Fatalf("want 0, got %v", l)
	}
}

func TestPerimeterSquare(t *testing.T) {
	poly, _ := geom.NewPolygon(0, geom.XY, [][]geom.Coordinate{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}},
	})
	if p := Perimeter(poly); p != 40.0 {
		t.Fatalf("want 40.0, got %v", p)
	}
}

func TestCentroidSquare(t *testing.T) {
	poly, _ := geom.NewPolygon(0, geom.XY, [][]geom.Coordinate{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}},
	})
	c := Centroid(poly)
	if math.Abs(c.Coord.X-5) > 1e-9 || math.Abs(c.Coord.Y-5) > 1e-9 {
		t.Fatalf("got %v", c.Coord)
	}
}

func TestCentroidPointMean(t *testing.T) {
	mp, _ := geom.NewMultiPoint(0, geom.XY, []geom.Point{pt(t, 0, 0), pt(t, 10, 0)})
	c := Centroid(mp)
	if c.Coord.X != 5 || c.Coord.Y != 0 {
		t.Fatalf("got %v", c.Coord)
	}
}

func TestCentroidEmpty(t *testing.T) {
	c := Centroid(geom.NewEmptyPoint(0, geom.XY))
	if !c.IsEmpty() {
		t.Fatal("expected empty centroid")
	}
}

func TestPointOnSurfaceInsidePolygon(t *testing.T) {
	poly, _ := geom.NewPolygon(0, geom.XY, [][]geom.Coordinate{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}},
	})
	p := PointOnSurface(poly)
	if p.Coord.X < 0 || p.Coord.X > 10 || p.Coord.Y < 0 || p.Coord.Y > 10 {
		t.Fatalf("point not within bounds: %v", p.Coord)
	}
}

func TestHausdorffDistanceIdentical(t *testing.T) {
	ls, _ := geom.NewLineString(0, geom.XY, []geom.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 1}})
	d, err := HausdorffDistance(ls, ls, 0)
	if err != nil {
		t.Fatalf("HausdorffDistance: %v", err)
	}
	if d != 0 {
		t.Fatalf("want 0, got %v", d)
	}
}

func TestHausdorffDistanceOffset(t *testing.T) {
	a, _ := geom.NewLineString(0, geom.XY, []geom.Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}})
	b, _ := geom.NewLineString(0, geom.XY, []geom.Coordinate{{X: 0, Y: 1}, {X: 10, Y: 1}})
	d, err := HausdorffDistance(a, b, 0)
	if err != nil {
		t.Fatalf("HausdorffDistance: %v", err)
	}
	if math.Abs(d-1) > 1e-9 {
		t.Fatalf("want 1, got %v", d)
	}
}

func TestAzimuthNorth(t *testing.T) {
	az, err := Azimuth(pt(t, 0, 0), pt(t, 0, 1))
	if err != nil {
		t.Fatalf("Azimuth: %v", err)
	}
	if math.Abs(az) > 1e-9 {
		t.Fatalf("want 0, got %v", az)
	}
}

func TestAzimuthEast(t *testing.T) {
	az, err := Azimuth(pt(t, 0, 0), pt(t, 1, 0))
	if err != nil {
		t.Fatalf("Azimuth: %v", err)
	}
	if math.Abs(az-math.Pi/2) > 1e-9 {
		t.Fatalf("want pi/2, got %v", az)
	}
}

func TestAzimuthRejectsCoincidentPoints(t *testing.T) {
	if _, err := Azimuth(pt(t, 1, 1), pt(t, 1, 1)); err == nil {
		t.Fatal("expected error for coincident points")
	}
}

func TestDistanceSphereEquatorQuarter(t *testing.T) {
	a := pt(t, 0, 0)
	b := pt(t, 90, 0)
	d, err := DistanceSphere(a, b)
	if err != nil {
		t.Fatalf("DistanceSphere: %v", err)
	}
	want := math.Pi * earthMeanRadiusForSphere / 2
	if math.Abs(d-want) > 1 {
		t.Fatalf("want ~%v, got %v", want, d)
	}
}

func TestDistanceSpheroidMatchesSphereRoughly(t *testing.T) {
	a := pt(t, -74.0, 40.7)
	b := pt(t, -0.1, 51.5)
	d, err := DistanceSpheroid(a, b)
	if err != nil {
		t.Fatalf("DistanceSpheroid: %v", err)
	}
	if d < 5_000_000 || d > 6_000_000 {
		t.Fatalf("expected roughly 5500km NYC-London, got %v meters", d)
	}
}

func TestMinimumBoundingCircleSquare(t *testing.T) {
	poly, _ := geom.NewPolygon(0, geom.XY, [][]geom.Coordinate{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}},
	})
	c, err := MinimumBoundingCircle(poly)
	if err != nil {
		t.Fatalf("MinimumBoundingCircle: %v", err)
	}
	if math.Abs(c.Center.X-5) > 1e-6 || math.Abs(c.Center.Y-5) > 1e-6 {
		t.Fatalf("got center %v", c.Center)
	}
	wantR := math.Sqrt(50)
	if math.Abs(c.Radius-wantR) > 1e-6 {
		t.Fatalf("want radius %v, got %v", wantR, c.Radius)
	}
}

func TestSegmentsIntersect(t *testing.T) {
	a, _ := geom.NewLineString(0, geom.XY, []geom.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 1}})
	b, _ := geom.NewLineString(0, geom.XY, []geom.Coordinate{{X: 0, Y: 1}, {X: 1, Y: 0}})
	if d := Distance(a, b); d != 0 {
		t.Fatalf("crossing segments should have distance 0, got %v", d)
	}
}
