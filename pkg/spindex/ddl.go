package spindex

import (
	"fmt"
	"strings"
)

// AlreadyExists is returned (as a warning, not a fatal error) by
// CreateSpatialIndexDDL when asked to regenerate DDL for an index that
// would already exist; NotFound plays the same role for
// DropSpatialIndexDDL. Callers may choose to ignore these.
type AlreadyExists struct{ Table, Column string }

func (e *AlreadyExists) Error() string {
	return fmt.Sprintf("spatial index on %s.%s already exists", e.Table, e.Column)
}

type NotFound struct{ Table, Column string }

func (e *NotFound) Error() string {
	return fmt.Sprintf("spatial index on %s.%s not found", e.Table, e.Column)
}

// ShadowIndexName returns the conventional shadow-table name for a
// spatial index on table.column, mirroring SpatiaLite/PostGIS's
// "<table>_<column>_idx" naming.
func ShadowIndexName(table, column string) string {
	return fmt.Sprintf("%s_%s_idx", table, column)
}

// CreateSpatialIndexDDL generates the statements that back
// ST_CreateSpatialIndex: an R-tree shadow table storing each row's
// bounding box keyed by rowid, plus AFTER INSERT/UPDATE/DELETE triggers
// on table that keep it in sync. Geometry columns are assumed to hold
// EWKB blobs; bboxExpr is a SQL expression (typically a scalar function
// registered by ext/sqliteext) that extracts [minx,miny,maxx,maxy] from
// the stored blob.
//
// Calling this twice for the same table/column is idempotent at the SQL
// level ("IF NOT EXISTS" on the table, "DROP TRIGGER IF EXISTS" before
// each CREATE TRIGGER); alreadyExists is used only to let a caller that tracks
// index existence itself report AlreadyExists as a warning.
func CreateSpatialIndexDDL(table, column, bboxExpr string, alreadyExists bool) ([]string, error) {
	idx := ShadowIndexName(table, column)
	var warn error
	if alreadyExists {
		warn = &AlreadyExists{Table: table, Column: column}
	}

	stmts := []string{
		fmt.Sprintf(`CREATE VIRTUAL TABLE IF NOT EXISTS %s USING rtree(id, minx, maxx, miny, maxy)`, idx),
		fmt.Sprintf(`DROP TRIGGER IF EXISTS %s_ai`, idx),
		fmt.Sprintf(`DROP TRIGGER IF EXISTS %s_au`, idx),
		fmt.Sprintf(`DROP TRIGGER IF EXISTS %s_ad`, idx),
		triggerInsert(table, column, idx, bboxExpr),
		triggerUpdate(table, column, idx, bboxExpr),
		triggerDelete(table, idx),
	}
	return stmts, warn
}

func triggerInsert(table, column, idx, bboxExpr string) string {
	expr := strings.ReplaceAll(bboxExpr, "?", fmt.Sprintf("NEW.%s", column))
	return fmt.Sprintf(`
CREATE TRIGGER %s_ai AFTER INSERT ON %s WHEN NEW.%s IS NOT NULL
BEGIN
  INSERT INTO %s(id, minx, maxx, miny, maxy)
  SELECT NEW.rowid, minx, maxx, miny, maxy FROM (%s);
END`, idx, table, column, idx, expr)
}

func triggerUpdate(table, column, idx, bboxExpr string) string {
	expr := strings.ReplaceAll(bboxExpr, "?", fmt.Sprintf("NEW.%s", column))
	return fmt.Sprintf(`
CREATE TRIGGER %s_au AFTER UPDATE OF %s ON %s
BEGIN
  DELETE FROM %s WHERE id = OLD.rowid;
  INSERT INTO %s(id, minx, maxx, miny, maxy)
  SELECT NEW.rowid, minx, maxx, miny, maxy FROM (%s)
  WHERE NEW.%s IS NOT NULL;
END`, idx, column, table, idx, idx, expr, column)
}

func triggerDelete(table, idx string) string {
	return fmt.Sprintf(`
CREATE TRIGGER %s_ad AFTER DELETE ON %s
BEGIN
  DELETE FROM %s WHERE id = OLD.rowid;
END`, idx, table, idx)
}

// DropSpatialIndexDDL generates the statements that back
// ST_DropSpatialIndex. found lets a caller report NotFound as a warning
// without treating it as fatal, matching CreateSpatialIndexDDL's
// AlreadyExists convention.
func DropSpatialIndexDDL(table, column string, found bool) ([]string, error) {
	idx := ShadowIndexName(table, column)
	var warn error
	if !found {
		warn = &NotFound{Table: table, Column: column}
	}
	stmts := []string{
		fmt.Sprintf(`DROP TRIGGER IF EXISTS %s_ai`, idx),
		fmt.Sprintf(`DROP TRIGGER IF EXISTS %s_au`, idx),
		fmt.Sprintf(`DROP TRIGGER IF EXISTS %s_ad`, idx),
		fmt.Sprintf(`DROP TABLE IF EXISTS %s`, idx),
	}
	return stmts, warn
}
