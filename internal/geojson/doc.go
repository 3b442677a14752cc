// Package geojson implements ST_GeomFromGeoJSON/ST_AsGeoJSON per RFC 7946.
// Only the Geometry, Point, LineString, Polygon, MultiPoint,
// MultiLineString, MultiPolygon, and GeometryCollection objects are
// supported; Feature and FeatureCollection are out of scope, matching
// spec.md's geometry-only surface. A legacy "crs" member is accepted and
// ignored on decode (RFC 7946 §7 deprecates it); every decoded geometry
// is assigned SRID 4326, the implicit GeoJSON reference system. XYM and
// XYZM geometries cannot round-trip through GeoJSON and are rejected.
package geojson
