package geom

import "math"

// BoundingBox is an axis-aligned rectangle, optionally extended with Z and
// M ranges. Empty geometries have an undefined bounding box: callers must
// check IsEmpty before trusting the numeric fields.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float64
	MinZ, MaxZ             float64
	MinM, MaxM             float64
	empty                  bool
	hasZ, hasM             bool
}

// EmptyBoundingBox is the sentinel bounding box for empty geometries.
func EmptyBoundingBox() BoundingBox {
	return BoundingBox{empty: true}
}

// IsEmpty reports whether this is the undefined/sentinel bounding box.
func (b BoundingBox) IsEmpty() bool {
	return b.empty
}

// HasZ reports whether MinZ/MaxZ are meaningful.
func (b BoundingBox) HasZ() bool { return b.hasZ }

// HasM reports whether MinM/MaxM are meaningful.
func (b BoundingBox) HasM() bool { return b.hasM }

// boxFromCoordinate returns the degenerate bounding box of a single
// coordinate, tracking which of Z/M are present.
func boxFromCoordinate(c Coordinate, dim Dim) BoundingBox {
	b := BoundingBox{
		MinX: c.X, MaxX: c.X,
		MinY: c.Y, MaxY: c.Y,
		hasZ: dim.HasZ(),
		hasM: dim.HasM(),
	}
	if b.hasZ {
		b.MinZ, b.MaxZ = c.Z, c.Z
	}
	if b.hasM {
		b.MinM, b.MaxM = c.M, c.M
	}
	return b
}

// Union returns the smallest bounding box containing both b and o. An
// empty operand is ignored; Union of two empty boxes is empty.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	out := BoundingBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
		hasZ: b.hasZ && o.hasZ,
		hasM: b.hasM && o.hasM,
	}
	if out.hasZ {
		out.MinZ = math.Min(b.MinZ, o.MinZ)
		out.MaxZ = math.Max(b.MaxZ, o.MaxZ)
	}
	if out.hasM {
		out.MinM = math.Min(b.MinM, o.MinM)
		out.MaxM = math.Max(b.MaxM, o.MaxM)
	}
	return out
}

// extend grows the box in place to include c; used while scanning a
// geometry's coordinates.
func (b *BoundingBox) extend(c Coordinate) {
	if b.empty {
		*b = boxFromCoordinate(c, DimFromFlags(false, false))
		b.empty = false
	}
	b.MinX = math.Min(b.MinX, c.X)
	b.MaxX = math.Max(b.MaxX, c.X)
	b.MinY = math.Min(b.MinY, c.Y)
	b.MaxY = math.Max(b.MaxY, c.Y)
}

// Intersects reports whether two bounding boxes overlap (touching at an
// edge counts as intersecting). Two empty boxes, or one empty box, never
// intersect.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return b.MinX <= o.MaxX && b.MaxX >= o.MinX &&
		b.MinY <= o.MaxY && b.MaxY >= o.MinY
}

// Contains reports whether o lies entirely within b.
func (b BoundingBox) Contains(o BoundingBox) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return o.MinX >= b.MinX && o.MaxX <= b.MaxX &&
		o.MinY >= b.MinY && o.MaxY <= b.MaxY
}

// ContainsPoint reports whether (x, y) lies within b, inclusive of edges.
func (b BoundingBox) ContainsPoint(x, y float64) bool {
	if b.IsEmpty() {
		return false
	}
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Expand returns a copy of b grown by margin in every planar direction.
func (b BoundingBox) Expand(margin float64) BoundingBox {
	if b.IsEmpty() {
		return b
	}
	out := b
	out.MinX -= margin
	out.MinY -= margin
	out.MaxX += margin
	out.MaxY += margin
	return out
}

// Diagonal returns the planar diagonal length of the box, or 0 if empty.
func (b BoundingBox) Diagonal() float64 {
	if b.IsEmpty() {
		return 0
	}
	dx := b.MaxX - b.MinX
	dy := b.MaxY - b.MinY
	return math.Hypot(dx, dy)
}

// DistanceOutside returns the planar distance between the two boxes when
// they are disjoint, or 0 if they intersect. Used by DWithin's
// bounding-box short-circuit.
func (b BoundingBox) DistanceOutside(o BoundingBox) float64 {
	if b.Intersects(o) {
		return 0
	}
	dx := math.Max(0, math.Max(o.MinX-b.MaxX, b.MinX-o.MaxX))
	dy := math.Max(0, math.Max(o.MinY-b.MaxY, b.MinY-o.MaxY))
	return math.Hypot(dx, dy)
}
