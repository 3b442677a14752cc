package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/fathomline/stgeo/internal/wkt"
	"github.com/fathomline/stgeo/pkg/geom"
	"github.com/fathomline/stgeo/pkg/measure"
)

func main() {
	text := flag.String("wkt", "", "WKT or EWKT geometry text")
	flag.Parse()

	if *text == "" {
		log.Fatal("Please provide -wkt \"POLYGON(...)\"")
	}

	g, err := wkt.Parse(*text)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== Geometry Information ===\n")
	fmt.Printf("Kind: %s\n", g.Kind())
	fmt.Printf("SRID: %d\n", g.SRID())
	fmt.Printf("Dimension: %s\n", g.Dim())
	fmt.Printf("Empty: %v\n\n", g.IsEmpty())

	bounds := g.Bounds()
	fmt.Printf("=== Geographic Bounds ===\n")
	if bounds.IsEmpty() {
		fmt.Println("(empty geometry has no bounds)")
	} else {
		fmt.Printf("X: %.6f to %.6f\n", bounds.MinX, bounds.MaxX)
		fmt.Printf("Y: %.6f to %.6f\n\n", bounds.MinY, bounds.MaxY)
	}

	fmt.Printf("=== Measurements ===\n")
	fmt.Printf("Area: %.6f\n", measure.Area(g))
	fmt.Printf("Length: %.6f\n", measure.Length(g))
	fmt.Printf("Perimeter: %.6f\n", measure.Perimeter(g))

	if !g.IsEmpty() {
		c := measure.Centroid(g)
		fmt.Printf("Centroid: %.6f, %.6f\n", c.Coord.X, c.Coord.Y)
	}

	fmt.Printf("\n=== Points by part ===\n")
	for i, ls := range geom.LineStrings(g) {
		fmt.Printf("LineString %d: %d points\n", i, len(ls.Coords))
	}
	for i, p := range geom.Polygons(g) {
		fmt.Printf("Polygon %d: %d rings\n", i, len(p.Rings))
	}
}
