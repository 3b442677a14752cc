package main

import (
	"fmt"
	"log"

	"github.com/fathomline/stgeo/internal/wkt"
	"github.com/fathomline/stgeo/pkg/geom"
	"github.com/fathomline/stgeo/pkg/measure"
	"github.com/fathomline/stgeo/pkg/overlay"
)

func processGeometry(g geom.Geometry) error {
	fmt.Printf("%s:\n", g.Kind())

	switch g.Kind() {
	case geom.KindPoint:
		p := g.(geom.Point)
		fmt.Printf("  Point: %.6f, %.6f\n", p.Coord.X, p.Coord.Y)

	case geom.KindLineString:
		l := g.(geom.LineString)
		fmt.Printf("  LineString with %d points, length %.6f\n", len(l.Coords), measure.Length(l))
		simplified, err := overlay.Simplify(l, 0.5)
		if err != nil {
			return err
		}
		s, err := wkt.Write(simplified)
		if err != nil {
			return err
		}
		fmt.Printf("  Simplified: %s\n", s)

	case geom.KindPolygon:
		p := g.(geom.Polygon)
		fmt.Printf("  Polygon with %d vertices, area %.6f\n", len(p.Rings[0])-1, measure.Area(p))
		hull, err := overlay.ConvexHull(p)
		if err != nil {
			return err
		}
		s, err := wkt.Write(hull)
		if err != nil {
			return err
		}
		fmt.Printf("  ConvexHull: %s\n", s)
	}
	return nil
}

func main() {
	raw := []string{
		"POINT(-71.05 42.35)",
		"LINESTRING(0 0, 1 0.2, 2 -0.1, 3 0.3, 4 0)",
		"POLYGON((0 0, 4 0, 4 3, 2 1.5, 0 3, 0 0))",
	}

	for _, s := range raw {
		g, err := wkt.Parse(s)
		if err != nil {
			log.Fatal(err)
		}
		if err := processGeometry(g); err != nil {
			log.Fatal(err)
		}
	}
}
