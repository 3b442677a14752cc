package geom

// Point is a single coordinate, or the empty point.
type Point struct {
	base
	Coord Coordinate
	Empty bool
}

// NewPoint builds a Point from a coordinate, validating it against dim.
func NewPoint(srid int32, dim Dim, c Coordinate) (Point, error) {
	if !c.Valid(dim) {
		return Point{}, &InvalidArgument{Op: "NewPoint", Reason: "non-finite coordinate"}
	}
	return Point{base: base{srid: srid, dim: dim, kind: KindPoint}, Coord: c}, nil
}

// NewEmptyPoint builds the empty point for the given dimension.
func NewEmptyPoint(srid int32, dim Dim) Point {
	return Point{base: base{srid: srid, dim: dim, kind: KindPoint}, Empty: true}
}

// IsEmpty reports whether p carries no coordinate.
func (p Point) IsEmpty() bool { return p.Empty }

// Bounds returns the degenerate bounding box at Coord, or the empty
// sentinel if p is empty.
func (p Point) Bounds() BoundingBox {
	if p.Empty {
		return EmptyBoundingBox()
	}
	return boxFromCoordinate(p.Coord, p.dim)
}
