package relate

import (
	"github.com/fathomline/stgeo/pkg/geom"
	"github.com/fathomline/stgeo/pkg/measure"
)

// Intersects reports whether a and b share at least one point: pattern
// "FF*FF****" negated, i.e. any of the interior/boundary-vs-interior/
// boundary cells (II, IB, BI, BB) is non-empty. The exterior-facing
// cells (IE, EI, EE) are non-F for almost any pair of non-identical
// geometries and carry no information about whether they intersect.
func Intersects(a, b geom.Geometry) (bool, error) {
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return m[0][0] != dimF || m[0][1] != dimF || m[1][0] != dimF || m[1][1] != dimF, nil
}

// Disjoint is the negation of Intersects: ST_Relate pattern "FF*FF****".
func Disjoint(a, b geom.Geometry) (bool, error) {
	v, err := Intersects(a, b)
	return !v, err
}

// RelateMatch is PostGIS's three-argument ST_Relate overload: it computes
// the DE-9IM matrix for a and b and reports whether it matches pattern,
// as distinct from the two-argument form (Relate) that returns the
// matrix itself.
func RelateMatch(a, b geom.Geometry, pattern string) (bool, error) {
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return m.Matches(pattern)
}

// Contains reports whether every point of b lies in a, and at least one
// interior point of b lies in the interior of a: pattern "T*****FF*".
func Contains(a, b geom.Geometry) (bool, error) {
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return m[0][0] != dimF && m[2][0] == dimF && m[2][1] == dimF, nil
}

// Within is Contains with operands reversed: pattern "T*F**F***".
func Within(a, b geom.Geometry) (bool, error) {
	return Contains(b, a)
}

// Covers is like Contains but also permits b's boundary to land on a's
// boundary rather than strictly inside a's interior: any of the four
// patterns "T*****FF*", "*T****FF*", "***T**FF*", "****T*FF*".
func Covers(a, b geom.Geometry) (bool, error) {
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	anyInteriorOrBoundary := m[0][0] != dimF || m[0][1] != dimF || m[1][0] != dimF || m[1][1] != dimF
	return anyInteriorOrBoundary && m[2][0] == dimF && m[2][1] == dimF, nil
}

// CoveredBy is Covers with operands reversed.
func CoveredBy(a, b geom.Geometry) (bool, error) {
	return Covers(b, a)
}

// Equals reports whether a and b occupy the same point set: pattern
// "T*F**FFF*".
func Equals(a, b geom.Geometry) (bool, error) {
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return m[0][0] != dimF && m[0][2] == dimF && m[1][2] == dimF &&
		m[2][0] == dimF && m[2][1] == dimF, nil
}

// Touches reports whether a and b have at least one point in common but
// their interiors do not intersect: pattern "FT*******" (or "F**T*****"
// or "F***T****").
func Touches(a, b geom.Geometry) (bool, error) {
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	if m[0][0] != dimF {
		return false, nil
	}
	return m[0][1] != dimF || m[1][0] != dimF || m[1][1] != dimF, nil
}

// Crosses reports whether a and b intersect in a set of lower dimension
// than the maximum of their own dimensions, with interiors intersecting
// but neither containing the other: approximated here via interior
// intersection of dimension 0 or 1, strictly less than the larger of
// the two operands' own dimensions, per spec.md §4.3.
func Crosses(a, b geom.Geometry) (bool, error) {
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	if m[0][0] == dimF {
		return false, nil
	}
	aDim, bDim := operandDim(a), operandDim(b)
	if aDim == bDim && aDim == 2 {
		return false, nil
	}
	return m[0][0] < maxDim(int8(aDim), int8(bDim)) && m[2][0] != dimF && m[0][2] != dimF, nil
}

// Overlaps reports whether a and b intersect in a region of the same
// dimension as both operands, with neither containing the other.
func Overlaps(a, b geom.Geometry) (bool, error) {
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	aDim, bDim := operandDim(a), operandDim(b)
	if aDim != bDim {
		return false, nil
	}
	return m[0][0] == int8(aDim) && m[0][2] != dimF && m[2][0] != dimF, nil
}

func operandDim(g geom.Geometry) int {
	switch {
	case len(geom.Polygons(g)) > 0:
		return 2
	case len(geom.LineStrings(g)) > 0:
		return 1
	default:
		return 0
	}
}

// DWithin reports whether a and b are within distance d of each other,
// short-circuiting on a bounding-box separation check before falling
// back to the exact planar distance in pkg/measure (spec.md §4.3).
func DWithin(a, b geom.Geometry, d float64) (bool, error) {
	if d < 0 {
		return false, &geom.InvalidArgument{Op: "ST_DWithin", Reason: "distance must be non-negative"}
	}
	if err := geom.RequireSameSRID("ST_DWithin", a, b); err != nil {
		return false, err
	}
	boundsA, boundsB := a.Bounds(), b.Bounds()
	if !boundsA.IsEmpty() && !boundsB.IsEmpty() && boundsA.DistanceOutside(boundsB) > d {
		return false, nil
	}
	dist := measure.Distance(a, b)
	return dist <= d, nil
}
