package geom

// MultiLineString is an ordered sequence of LineStrings sharing the
// parent's SRID and Dim.
type MultiLineString struct {
	base
	Lines []LineString
}

// NewMultiLineString rewrites every member's srid/dim to the parent's.
func NewMultiLineString(srid int32, dim Dim, lines []LineString) (MultiLineString, error) {
	out := make([]LineString, len(lines))
	for i, l := range lines {
		for _, c := range l.Coords {
			if !c.Valid(dim) {
				return MultiLineString{}, &InvalidArgument{Op: "NewMultiLineString", Reason: "non-finite coordinate"}
			}
		}
		l.base = base{srid: srid, dim: dim, kind: KindLineString}
		out[i] = l
	}
	return MultiLineString{base: base{srid: srid, dim: dim, kind: KindMultiLineString}, Lines: out}, nil
}

// IsEmpty reports whether m has no member linestrings.
func (m MultiLineString) IsEmpty() bool { return len(m.Lines) == 0 }

// Bounds unions the bounds of every member linestring.
func (m MultiLineString) Bounds() BoundingBox {
	b := EmptyBoundingBox()
	for _, l := range m.Lines {
		b = b.Union(l.Bounds())
	}
	return b
}
