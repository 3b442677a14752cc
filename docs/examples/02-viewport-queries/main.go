package main

import (
	"fmt"
	"log"

	"github.com/fathomline/stgeo/internal/wkt"
	"github.com/fathomline/stgeo/pkg/geom"
	"github.com/fathomline/stgeo/pkg/spindex"
)

// harborFeature stands in for a row in an imported features table: a
// stable key plus the WKT this demo loads it from.
type harborFeature struct {
	key string
	wkt string
}

func main() {
	features := []harborFeature{
		{"buoy-12", "POINT(-71.05 42.35)"},
		{"beacon-9", "POINT(-71.02 42.31)"},
		{"pier-3", "POLYGON((-71.08 42.32, -71.07 42.32, -71.07 42.33, -71.08 42.33, -71.08 42.32))"},
		{"wreck-1", "POINT(-70.50 42.90)"}, // outside the viewport below
	}

	idx := spindex.New()
	for _, f := range features {
		g, err := wkt.Parse(f.wkt)
		if err != nil {
			log.Fatal(err)
		}
		idx.Insert(f.key, g)
	}

	// Boston Harbor viewport.
	viewport := geom.BoundingBox{MinX: -71.1, MinY: 42.3, MaxX: -71.0, MaxY: 42.4}

	hits := idx.Query(viewport)
	fmt.Printf("Visible features: %d\n", len(hits))
	for _, e := range hits {
		fmt.Printf("  %v: %s\n", e.Key, e.Geom.Kind())
	}
}
