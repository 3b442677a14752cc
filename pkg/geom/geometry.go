package geom

// Geometry is the sealed sum type of the seven OGC simple-features
// geometry variants. It is implemented only by the concrete types in this
// package (Point, LineString, Polygon, MultiPoint, MultiLineString,
// MultiPolygon, GeometryCollection); the unexported sealed method prevents
// other packages from adding an eighth case, matching the spec's design
// note that the variant set is fixed and never extended at runtime.
type Geometry interface {
	// Kind reports which of the seven variants this value is.
	Kind() Kind
	// SRID returns the spatial reference system identifier tag. 0 means
	// unknown.
	SRID() int32
	// Dim returns the coordinate dimension (XY, XYZ, XYM, or XYZM).
	Dim() Dim
	// IsEmpty reports whether the geometry has no coordinates.
	IsEmpty() bool
	// Bounds computes the bounding box of the geometry. It is always
	// recomputed, never cached, per the no-caching memory policy.
	Bounds() BoundingBox

	sealed()
}

// base holds the fields common to every geometry variant: the SRID tag
// and the coordinate dimension. Concrete types embed base and get Kind,
// SRID, and Dim "for free", implementing the relevant parts of Geometry
// by composition rather than inheritance.
type base struct {
	srid int32
	dim  Dim
	kind Kind
}

func (b base) Kind() Kind  { return b.kind }
func (b base) SRID() int32 { return b.srid }
func (b base) Dim() Dim    { return b.dim }
func (base) sealed()       {}

// WithSRID returns a copy of g tagged with the given SRID. It does not
// reproject coordinates; it only overwrites the tag (ST_SetSRID
// semantics).
func WithSRID(g Geometry, srid int32) Geometry {
	switch v := g.(type) {
	case Point:
		v.base.srid = srid
		return v
	case LineString:
		v.base.srid = srid
		return v
	case Polygon:
		v.base.srid = srid
		return v
	case MultiPoint:
		v.base.srid = srid
		return v
	case MultiLineString:
		v.base.srid = srid
		return v
	case MultiPolygon:
		v.base.srid = srid
		return v
	case GeometryCollection:
		v.base.srid = srid
		reSRIDChildren(v.Geoms, srid)
		return v
	default:
		return g
	}
}

func reSRIDChildren(geoms []Geometry, srid int32) {
	for i, c := range geoms {
		geoms[i] = WithSRID(c, srid)
	}
}

// RequireSameSRID returns an *SRIDMismatch error unless a and b carry the
// same SRID. Every binary operation in pkg/relate and pkg/overlay, and
// every error-returning one in pkg/measure, calls this before touching
// coordinates. measure.Distance returns a bare float64 and does not
// check SRIDs.
func RequireSameSRID(op string, a, b Geometry) error {
	if a.SRID() != b.SRID() {
		return &SRIDMismatch{A: a.SRID(), B: b.SRID(), Op: op}
	}
	return nil
}

// RequireSameDim returns a *DimensionMismatch error unless a and b share a
// dimension. Few operations need this (most work in the XY subspace
// regardless of Z/M), but codecs and exact-equality comparisons do.
func RequireSameDim(op string, a, b Geometry) error {
	if a.Dim() != b.Dim() {
		return &DimensionMismatch{Want: a.Dim(), Got: b.Dim(), Op: op}
	}
	return nil
}
