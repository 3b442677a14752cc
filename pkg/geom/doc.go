// Package geom provides the in-memory geometry algebra for stgeo: the
// coordinate model, the seven OGC simple-features geometry variants, and
// the bounding-box and SRID bookkeeping that every other package in this
// module builds on.
//
// # Geometry values
//
// A Geometry is a sealed interface implemented by exactly seven concrete
// types: Point, LineString, Polygon, MultiPoint, MultiLineString,
// MultiPolygon, and GeometryCollection. The set is fixed by the OGC
// simple-features standard and is never extended at runtime, so callers
// switch on Kind() rather than relying on virtual dispatch:
//
//	switch g := g.(type) {
//	case geom.Point:
//	case geom.LineString:
//	case geom.Polygon:
//	}
//
// Every geometry carries an SRID and a Dim (XY, XYZ, XYM, or XYZM). All
// members of a multi-geometry or collection share their parent's SRID and
// Dim.
//
// # Immutability
//
// Geometries returned by constructors, codecs, or any operation in this
// module are immutable and independently freeable. There is no shared
// mutable state and no cache: every call that produces a Geometry
// allocates a new one.
package geom
