// Package gormgeom binds pkg/geom's Geometry types to database/sql and
// GORM, so a struct field can hold any stgeo geometry kind and survive a
// round trip through a database column.
//
// Unlike restayway-gogis (which defines one Go struct per PostGIS type —
// Point, LineString, Polygon — each with its own Scan/Value pair),
// Geometry here wraps the single geom.Geometry interface and stores one
// EWKB blob: stgeo's geometry algebra is kind-polymorphic (spec.md §2),
// so a single column type that can hold a point today and a polygon
// tomorrow fits the domain better than one struct per kind.
package gormgeom
