package gormgeom

import (
	"database/sql/driver"
	"fmt"

	"github.com/fathomline/stgeo/internal/ewkb"
	"github.com/fathomline/stgeo/internal/wkt"
	"github.com/fathomline/stgeo/pkg/geom"
)

// Geometry adapts a geom.Geometry value for storage in a database/sql or
// GORM column. The zero value holds no geometry (Valid is false) and
// Scans a SQL NULL the same way.
//
// Mirroring restayway-gogis's Point.Scan/Value pair, Scan accepts either
// a BLOB (tried as EWKB first) or a TEXT value (WKT fallback), and Value
// always writes EWKB, matching ext/sqliteext's argument/result contract
// so the same column round-trips through both the SQL driver and GORM.
type Geometry struct {
	Geom  geom.Geometry
	Valid bool
}

// NewGeometry wraps g as a valid Geometry column value.
func NewGeometry(g geom.Geometry) Geometry {
	return Geometry{Geom: g, Valid: g != nil}
}

// Scan implements sql.Scanner.
func (g *Geometry) Scan(val any) error {
	if val == nil {
		*g = Geometry{}
		return nil
	}

	var blob []byte
	switch v := val.(type) {
	case []byte:
		blob = v
	case string:
		blob = []byte(v)
	default:
		return fmt.Errorf("gormgeom: cannot scan %T into Geometry", val)
	}

	if parsed, err := ewkb.Read(blob); err == nil {
		g.Geom = parsed
		g.Valid = true
		return nil
	}

	parsed, err := wkt.Parse(string(blob))
	if err != nil {
		return fmt.Errorf("gormgeom: scan as EWKB and WKT both failed: %w", err)
	}
	g.Geom = parsed
	g.Valid = true
	return nil
}

// Value implements driver.Valuer, always writing EWKB.
func (g Geometry) Value() (driver.Value, error) {
	if !g.Valid || g.Geom == nil {
		return nil, nil
	}
	b, err := ewkb.Write(g.Geom)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GormDataType tells GORM's migrator what SQL column type backs
// Geometry. SQLite has no native geometry type, so a BLOB column holds
// the EWKB bytes directly (ext/sqliteext's ST_* functions operate on
// this column's raw value without a geometry(Type,SRID) declaration).
func (Geometry) GormDataType() string {
	return "blob"
}

// String returns the WKT form, or "" for an invalid (null) Geometry.
func (g Geometry) String() string {
	if !g.Valid || g.Geom == nil {
		return ""
	}
	s, err := wkt.Write(g.Geom)
	if err != nil {
		return ""
	}
	return s
}
