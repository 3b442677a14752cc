package measure

import (
	"math"

	"github.com/fathomline/stgeo/pkg/geom"
)

// Azimuth returns the clockwise angle in radians from north (0, increasing
// east) of the segment from a to b, PostGIS's ST_Azimuth convention. It
// errors if a and b coincide, since the azimuth of a zero-length segment
// is undefined.
func Azimuth(a, b geom.Point) (float64, error) {
	if err := geom.RequireSameSRID("ST_Azimuth", a, b); err != nil {
		return 0, err
	}
	if a.IsEmpty() || b.IsEmpty() {
		return 0, &geom.InvalidArgument{Op: "ST_Azimuth", Reason: "empty point"}
	}
	dx := b.Coord.X - a.Coord.X
	dy := b.Coord.Y - a.Coord.Y
	if dx == 0 && dy == 0 {
		return 0, &geom.InvalidArgument{Op: "ST_Azimuth", Reason: "coincident points"}
	}
	az := math.Atan2(dx, dy)
	if az < 0 {
		az += 2 * math.Pi
	}
	return az, nil
}
