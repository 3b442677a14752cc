package main

import (
	"fmt"
	"log"

	"github.com/fathomline/stgeo/internal/wkt"
	"github.com/fathomline/stgeo/pkg/geom"
	"github.com/fathomline/stgeo/pkg/registry"
)

// describe prints the introspection attributes the function registry
// exposes for g, the way a caller driving the catalog through
// ext/sqliteext would see them as SELECT results.
func describe(reg *registry.Registry, g geom.Geometry) error {
	v := registry.Value{Geom: g}

	kind, err := reg.Call("ST_GeometryType", []registry.Value{v})
	if err != nil {
		return err
	}
	srid, err := reg.Call("ST_SRID", []registry.Value{v})
	if err != nil {
		return err
	}
	dim, err := reg.Call("ST_Dimension", []registry.Value{v})
	if err != nil {
		return err
	}
	numPoints, err := reg.Call("ST_NumPoints", []registry.Value{v})
	if err != nil {
		return err
	}

	fmt.Printf("Feature: %s\n", kind.String)
	fmt.Printf("  SRID: %d\n", srid.Int)
	fmt.Printf("  Dimension: %d\n", dim.Int)
	fmt.Printf("  Points: %d\n", numPoints.Int)
	return nil
}

func main() {
	reg := registry.Default()

	raw := []string{
		"SRID=4326;POINT(-71.05 42.35)",
		"LINESTRING(0 0, 1 1, 2 0, 3 1)",
		"POLYGON((0 0, 4 0, 4 3, 0 3, 0 0))",
	}

	for _, s := range raw {
		g, err := wkt.Parse(s)
		if err != nil {
			log.Fatal(err)
		}
		if err := describe(reg, g); err != nil {
			log.Fatal(err)
		}
	}
}
