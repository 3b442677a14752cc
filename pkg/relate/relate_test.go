package relate

import (
	"testing"

	"github.com/fathomline/stgeo/pkg/geom"
)

func line(t *testing.T, coords ...float64) geom.LineString {
	t.Helper()
	cs := make([]geom.Coordinate, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		cs = append(cs, geom.Coordinate{X: coords[i], Y: coords[i+1]})
	}
	ls, err := geom.NewLineString(0, geom.XY, cs)
	if err != nil {
		t.Fatalf("NewLineString: %v", err)
	}
	return ls
}

func point(t *testing.T, x, y float64) geom.Point {
	t.Helper()
	p, err := geom.NewPoint(0, geom.XY, geom.Coordinate{X: x, Y: y})
	if err != nil {
		t.Fatalf("NewPoint: %v", err)
	}
	return p
}

func square(t *testing.T) geom.Polygon {
	t.Helper()
	poly, err := geom.NewPolygon(0, geom.XY, [][]geom.Coordinate{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}},
	})
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	return poly
}

func TestIntersectsCrossingLines(t *testing.T) {
	a := line(t, 0, 0, 1, 1)
	b := line(t, 0, 1, 1, 0)
	ok, err := Intersects(a, b)
	if err != nil {
		t.Fatalf("Intersects: %v", err)
	}
	if !ok {
		t.Fatal("expected crossing diagonals to intersect")
	}
}

func TestRelatePointOnLineEndpoint(t *testing.T) {
	p := point(t, 0, 0)
	l := line(t, 0, 0, 1, 0)
	m, err := Relate(p, l)
	if err != nil {
		t.Fatalf("Relate: %v", err)
	}
	got := m.String()
	want := "F0FFFF102"
	if got != want {
		t.Fatalf("want %s, got %s", want, got)
	}
}

func TestIntersectsDisjointConsistency(t *testing.T) {
	a := point(t, 0, 0)
	b := point(t, 5, 5)
	intersects, err := Intersects(a, b)
	if err != nil {
		t.Fatalf("Intersects: %v", err)
	}
	disjoint, err := Disjoint(a, b)
	if err != nil {
		t.Fatalf("Disjoint: %v", err)
	}
	if intersects == disjoint {
		t.Fatalf("Intersects and Disjoint must be opposite, got intersects=%v disjoint=%v", intersects, disjoint)
	}
}

func TestContainsWithinSymmetry(t *testing.T) {
	poly := square(t)
	p := point(t, 5, 5)
	contains, err := Contains(poly, p)
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	within, err := Within(p, poly)
	if err != nil {
		t.Fatalf("Within: %v", err)
	}
	if contains != within {
		t.Fatalf("Contains(a,b) must equal Within(b,a): contains=%v within=%v", contains, within)
	}
	if !contains {
		t.Fatal("expected square to contain its interior point")
	}
}

func TestEqualsImpliesMutualContains(t *testing.T) {
	a := square(t)
	b := square(t)
	eq, err := Equals(a, b)
	if err != nil {
		t.Fatalf("Equals: %v", err)
	}
	if !eq {
		t.Fatal("expected identical squares to be equal")
	}
	ab, err := Contains(a, b)
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	ba, err := Contains(b, a)
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if !ab || !ba {
		t.Fatalf("Equals must imply mutual Contains: a⊇b=%v b⊇a=%v", ab, ba)
	}
}

func TestTouchesSharedEndpoint(t *testing.T) {
	a := line(t, 0, 0, 1, 0)
	b := line(t, 1, 0, 1, 1)
	touches, err := Touches(a, b)
	if err != nil {
		t.Fatalf("Touches: %v", err)
	}
	if !touches {
		t.Fatal("expected lines sharing only an endpoint to touch")
	}
}

func TestDisjointLines(t *testing.T) {
	a := line(t, 0, 0, 1, 0)
	b := line(t, 5, 5, 6, 6)
	disjoint, err := Disjoint(a, b)
	if err != nil {
		t.Fatalf("Disjoint: %v", err)
	}
	if !disjoint {
		t.Fatal("expected far-apart lines to be disjoint")
	}
}

func TestDWithin(t *testing.T) {
	a := point(t, 0, 0)
	b := point(t, 3, 4)
	ok, err := DWithin(a, b, 5)
	if err != nil {
		t.Fatalf("DWithin: %v", err)
	}
	if !ok {
		t.Fatal("expected points 5 apart to be within distance 5")
	}
	ok, err = DWithin(a, b, 4.9)
	if err != nil {
		t.Fatalf("DWithin: %v", err)
	}
	if ok {
		t.Fatal("expected points 5 apart not to be within distance 4.9")
	}
}

func TestMatchesPatternWildcard(t *testing.T) {
	p := point(t, 0, 0)
	l := line(t, 0, 0, 1, 0)
	m, err := Relate(p, l)
	if err != nil {
		t.Fatalf("Relate: %v", err)
	}
	ok, err := m.Matches("F0FFFF102")
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if !ok {
		t.Fatal("expected exact pattern match")
	}
	ok, err = m.Matches("*0*******")
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if !ok {
		t.Fatal("expected wildcard pattern to match")
	}
}

func TestRelateRejectsSRIDMismatch(t *testing.T) {
	a, _ := geom.NewPoint(4326, geom.XY, geom.Coordinate{X: 0, Y: 0})
	b, _ := geom.NewPoint(3857, geom.XY, geom.Coordinate{X: 0, Y: 0})
	if _, err := Relate(a, b); err == nil {
		t.Fatal("expected SRID mismatch error")
	}
}
