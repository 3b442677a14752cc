// Package sqliteext is the thin external adapter (spec.md §1's "out of
// scope: the SQLite extension entry point") that loads pkg/registry's
// function catalog into a database/sql driver built on
// github.com/mattn/go-sqlite3, so every ST_* entry becomes a SQLite
// scalar function callable from plain SQL.
//
// Geometry-typed SQL values arrive as either a BLOB (EWKB) or TEXT (WKT);
// the adapter tries EWKB first and falls back to WKT on a blob/type
// mismatch, per spec.md §4.6. Geometry-typed results are returned as
// EWKB blobs at the host boundary, also per spec.md §4.6.
package sqliteext
