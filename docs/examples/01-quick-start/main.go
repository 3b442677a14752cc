package main

import (
	"fmt"
	"log"

	"github.com/fathomline/stgeo/internal/wkt"
	"github.com/fathomline/stgeo/pkg/measure"
)

func main() {
	// Parse a polygon from WKT, the same entry point ST_GeomFromText uses.
	g, err := wkt.Parse("POLYGON((0 0, 4 0, 4 3, 0 3, 0 0))")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Kind: %s\n", g.Kind())
	fmt.Printf("SRID: %d\n", g.SRID())
	fmt.Printf("Area: %.4f\n", measure.Area(g))
	fmt.Printf("Perimeter: %.4f\n", measure.Perimeter(g))

	c := measure.Centroid(g)
	fmt.Printf("Centroid: %.4f, %.4f\n", c.Coord.X, c.Coord.Y)

	bounds := g.Bounds()
	fmt.Printf("Bounds: [%.4f,%.4f] to [%.4f,%.4f]\n",
		bounds.MinX, bounds.MinY, bounds.MaxX, bounds.MaxY)
}
