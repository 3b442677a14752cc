package measure

import (
	"context"
	"testing"

	"github.com/fathomline/stgeo/pkg/geom"
)

func mustSquare(t *testing.T, side float64) geom.Polygon {
	t.Helper()
	ring := []geom.Coordinate{{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side}, {X: 0, Y: 0}}
	p, err := geom.NewPolygon(0, geom.XY, [][]geom.Coordinate{ring})
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	return p
}

func TestAreaBatchMatchesSequentialArea(t *testing.T) {
	geoms := []geom.Geometry{mustSquare(t, 1), mustSquare(t, 2), mustSquare(t, 3)}
	got := AreaBatch(context.Background(), geoms, 0)
	want := []float64{1, 4, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestAreaBatchEmptyInput(t *testing.T) {
	got := AreaBatch(context.Background(), nil, 4)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestAreaBatchSingleWorker(t *testing.T) {
	geoms := []geom.Geometry{mustSquare(t, 5)}
	got := AreaBatch(context.Background(), geoms, 1)
	if got[0] != 25 {
		t.Fatalf("expected 25, got %f", got[0])
	}
}
