package main

import (
	"fmt"
	"log"

	"github.com/fathomline/stgeo/internal/wkt"
	"github.com/fathomline/stgeo/pkg/geom"
	"github.com/fathomline/stgeo/pkg/measure"
)

// FeatureInfo is one catalog entry: a named geometry plus the summary
// measurements a caller would otherwise have to recompute on every
// lookup. Adapted from the teacher's per-chart ChartInfo (name, bounds,
// feature count) to a per-geometry summary, since this module catalogs
// individual geometries rather than whole chart files.
type FeatureInfo struct {
	Name   string
	Geom   geom.Geometry
	Bounds geom.BoundingBox
	Area   float64
}

func buildCatalog(named map[string]string) ([]FeatureInfo, error) {
	catalog := make([]FeatureInfo, 0, len(named))
	for name, s := range named {
		g, err := wkt.Parse(s)
		if err != nil {
			log.Printf("failed to parse %s: %v", name, err)
			continue
		}
		catalog = append(catalog, FeatureInfo{
			Name:   name,
			Geom:   g,
			Bounds: g.Bounds(),
			Area:   measure.Area(g),
		})
	}
	return catalog, nil
}

// findCovering returns every catalog entry whose bounds contain (x, y).
func findCovering(catalog []FeatureInfo, x, y float64) []FeatureInfo {
	var matches []FeatureInfo
	for _, info := range catalog {
		b := info.Bounds
		if b.IsEmpty() {
			continue
		}
		if x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY {
			matches = append(matches, info)
		}
	}
	return matches
}

func main() {
	named := map[string]string{
		"pier-3":      "POLYGON((-71.08 42.32, -71.07 42.32, -71.07 42.33, -71.08 42.33, -71.08 42.32))",
		"harbor-area": "POLYGON((-71.10 42.30, -71.00 42.30, -71.00 42.40, -71.10 42.40, -71.10 42.30))",
		"channel":     "LINESTRING(-71.09 42.31, -71.06 42.34, -71.02 42.36)",
	}

	catalog, err := buildCatalog(named)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Catalog contains %d features\n\n", len(catalog))
	for _, info := range catalog {
		fmt.Printf("Feature: %s\n", info.Name)
		fmt.Printf("  Kind: %s\n", info.Geom.Kind())
		fmt.Printf("  Area: %.6f\n", info.Area)
		fmt.Printf("  Bounds: [%.4f,%.4f] to [%.4f,%.4f]\n",
			info.Bounds.MinX, info.Bounds.MinY, info.Bounds.MaxX, info.Bounds.MaxY)
	}

	lon, lat := -71.05, 42.35
	matches := findCovering(catalog, lon, lat)
	fmt.Printf("\nFeatures covering %.4f, %.4f: %d\n", lon, lat, len(matches))
	for _, m := range matches {
		fmt.Printf("  %s\n", m.Name)
	}
}
