package main

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fathomline/stgeo/ext/gormgeom"
	"github.com/fathomline/stgeo/ext/sqliteext"
	"github.com/fathomline/stgeo/internal/wkt"
)

// Location mirrors restayway-gogis's basic_usage example (a named point
// of interest), with gogis.Point's hand-rolled Scan/Value replaced by
// gormgeom.Geometry's kind-polymorphic one.
type Location struct {
	ID   uint `gorm:"primaryKey"`
	Name string
	Geom gormgeom.Geometry `gorm:"type:blob"`
}

func main() {
	cfg := sqliteext.DefaultConfig()
	cfg.DriverName = "sqlite3_stgeo_orm_example"
	if err := sqliteext.Register(cfg); err != nil {
		log.Fatal(err)
	}

	// gorm.io/driver/sqlite's Dialector.DriverName lets us point GORM at
	// the driver sqliteext.Register just installed, so ST_* functions
	// are available from raw SQL run through the same *gorm.DB.
	db, err := gorm.Open(sqlite.Dialector{DriverName: cfg.DriverName, DSN: ":memory:"}, &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(&Location{}); err != nil {
		log.Fatal(err)
	}

	seed := []struct {
		name string
		wkt  string
	}{
		{"Faneuil Hall", "POINT(-71.0552 42.3601)"},
		{"Long Wharf", "POINT(-71.0497 42.3601)"},
		{"Castle Island", "POINT(-71.0225 42.3384)"},
	}

	for _, s := range seed {
		g, err := wkt.Parse(s.wkt)
		if err != nil {
			log.Fatal(err)
		}
		loc := Location{Name: s.name, Geom: gormgeom.NewGeometry(g)}
		if err := db.Create(&loc).Error; err != nil {
			log.Fatal(err)
		}
	}

	var all []Location
	db.Find(&all)
	fmt.Printf("Stored %d locations\n", len(all))
	for _, loc := range all {
		fmt.Printf("  %s: %s\n", loc.Name, loc.Geom.String())
	}

	// Run an ST_* scalar function through raw SQL: the same blob column
	// gormgeom.Geometry.Value wrote is readable by the registered
	// function because both sides speak EWKB.
	var distances []struct {
		Name     string
		Distance float64
	}
	err = db.Raw(`
		SELECT name, ST_Distance(geom, ST_GeomFromText(?)) AS distance
		FROM locations
		ORDER BY distance
	`, "POINT(-71.05 42.36)").Scan(&distances).Error
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("\nDistances from (-71.05, 42.36):")
	for _, d := range distances {
		fmt.Printf("  %s: %.6f\n", d.Name, d.Distance)
	}
}
