package main

import (
	"context"
	"fmt"
	"log"

	"github.com/fathomline/stgeo/internal/wkt"
	"github.com/fathomline/stgeo/pkg/geom"
	"github.com/fathomline/stgeo/pkg/measure"
	"github.com/fathomline/stgeo/pkg/spindex"
)

// loadPolygons parses n origin-anchored square polygons whose sides cycle
// through 1 to 10, standing in for a bulk import of a features table's
// geometry column.
func loadPolygons(n int) ([]geom.Geometry, error) {
	geoms := make([]geom.Geometry, n)
	for i := 0; i < n; i++ {
		side := float64(i%10 + 1)
		s := fmt.Sprintf("POLYGON((0 0, %f 0, %f %f, 0 %f, 0 0))", side, side, side, side)
		g, err := wkt.Parse(s)
		if err != nil {
			return nil, err
		}
		geoms[i] = g
	}
	return geoms, nil
}

func main() {
	geoms, err := loadPolygons(2000)
	if err != nil {
		log.Fatal(err)
	}

	// Area over every geometry using a bounded worker pool instead of a
	// single-threaded loop.
	areas := measure.AreaBatch(context.Background(), geoms, 0)
	fmt.Printf("Computed %d areas, first: %.2f, last: %.2f\n", len(areas), areas[0], areas[len(areas)-1])

	// Build a spatial index in parallel: each entry's bounding box is
	// computed concurrently, the R-tree itself is populated serially.
	entries := make([]spindex.Entry, len(geoms))
	for i, g := range geoms {
		entries[i] = spindex.Entry{Key: i, Geom: g}
	}
	opts := spindex.DefaultBuildOptions()
	idx, errs := spindex.BuildBatch(context.Background(), entries, opts)
	if len(errs) > 0 {
		log.Printf("BuildBatch reported %d errors (first: %v)", len(errs), errs[0])
	}
	fmt.Printf("Indexed %d entries\n", idx.Len())

	hits := idx.Query(geom.BoundingBox{MinX: 0, MinY: 0, MaxX: 3, MaxY: 3})
	fmt.Printf("Entries whose bounding box intersects [0,0]-[3,3]: %d\n", len(hits))
}
