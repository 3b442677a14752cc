package overlay

import (
	"math"

	"github.com/fathomline/stgeo/pkg/geom"
)

// snapGridResolution picks the fixed grid resolution spec.md §4.4 calls
// for: roughly 2^-40 of the bounding-box diagonal, floored to avoid a
// zero-size grid for degenerate (point-like) inputs.
func snapGridResolution(bb geom.BoundingBox) float64 {
	if bb.IsEmpty() {
		return 1e-9
	}
	res := bb.Diagonal() * math.Pow(2, -40)
	if res <= 0 {
		return 1e-9
	}
	return res
}

func snapCoordinate(c geom.Coordinate, res float64) geom.Coordinate {
	if res <= 0 {
		return c
	}
	return geom.Coordinate{
		X: math.Round(c.X/res) * res,
		Y: math.Round(c.Y/res) * res,
		Z: c.Z,
		M: c.M,
	}
}

func snapRing(ring []geom.Coordinate, res float64) []geom.Coordinate {
	out := make([]geom.Coordinate, len(ring))
	for i, c := range ring {
		out[i] = snapCoordinate(c, res)
	}
	return out
}

// snapRingPair snaps both operand rings of a clip to a common grid sized
// from their combined bounding box, so repeated clipping doesn't drift
// vertices that should be coincident apart by floating-point error.
func snapRingPair(a, b []geom.Coordinate) ([]geom.Coordinate, []geom.Coordinate) {
	bb := ringBounds(a)
	bb = bb.Union(ringBounds(b))
	res := snapGridResolution(bb)
	return snapRing(a, res), snapRing(b, res)
}

func ringBounds(ring []geom.Coordinate) geom.BoundingBox {
	bb := geom.EmptyBoundingBox()
	for _, c := range ring {
		bb = bb.Union(boxAt(c))
	}
	return bb
}

func boxAt(c geom.Coordinate) geom.BoundingBox {
	single := geom.EmptyBoundingBox()
	pt, err := geom.NewPoint(0, geom.XY, c)
	if err != nil {
		return single
	}
	return pt.Bounds()
}
