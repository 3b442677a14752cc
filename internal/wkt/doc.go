// Package wkt implements ST_GeomFromText/ST_AsText and their EWKT
// variants: a recursive-descent parser and a canonical printer over the
// OGC Simple Features text representation. SRID on the wire is carried
// only by the optional "SRID=<int>;" EWKT prefix, never inside the
// geometry tag itself.
package wkt
