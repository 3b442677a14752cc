package geom

import "strconv"

// LineString is an ordered sequence of coordinates. An empty LineString
// has no coordinates; a non-empty one has at least two.
type LineString struct {
	base
	Coords []Coordinate
}

// NewLineString validates coords against dim and the 0-or-≥2 invariant.
func NewLineString(srid int32, dim Dim, coords []Coordinate) (LineString, error) {
	if len(coords) == 1 {
		return LineString{}, &InvalidArgument{Op: "NewLineString", Reason: "linestring must have 0 or at least 2 points"}
	}
	for i, c := range coords {
		if !c.Valid(dim) {
			return LineString{}, &InvalidArgument{Op: "NewLineString", Reason: "non-finite coordinate at index " + strconv.Itoa(i)}
		}
	}
	cp := make([]Coordinate, len(coords))
	copy(cp, coords)
	return LineString{base: base{srid: srid, dim: dim, kind: KindLineString}, Coords: cp}, nil
}

// NewEmptyLineString builds the empty linestring for dim.
func NewEmptyLineString(srid int32, dim Dim) LineString {
	return LineString{base: base{srid: srid, dim: dim, kind: KindLineString}}
}

// IsEmpty reports whether l has no coordinates.
func (l LineString) IsEmpty() bool { return len(l.Coords) == 0 }

// IsClosed reports whether the first and last coordinates coincide. Empty
// linestrings are not closed.
func (l LineString) IsClosed() bool {
	if len(l.Coords) < 2 {
		return false
	}
	return l.Coords[0].Equal(l.Coords[len(l.Coords)-1], l.dim)
}

// Bounds scans all coordinates and returns their bounding box.
func (l LineString) Bounds() BoundingBox {
	if l.IsEmpty() {
		return EmptyBoundingBox()
	}
	b := EmptyBoundingBox()
	for _, c := range l.Coords {
		b.extend(c)
	}
	return b
}
