package main

import (
	"fmt"
	"log"

	"github.com/fathomline/stgeo/internal/wkt"
	"github.com/fathomline/stgeo/pkg/geom"
	"github.com/fathomline/stgeo/pkg/relate"
)

// withinChannel filters geoms down to those fully within channel.
func withinChannel(geoms []geom.Geometry, channel geom.Geometry) ([]geom.Geometry, error) {
	var out []geom.Geometry
	for _, g := range geoms {
		ok, err := relate.Within(g, channel)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, g)
		}
	}
	return out, nil
}

// touchingChannel filters geoms down to those that share a boundary
// point with channel without overlapping its interior.
func touchingChannel(geoms []geom.Geometry, channel geom.Geometry) ([]geom.Geometry, error) {
	var out []geom.Geometry
	for _, g := range geoms {
		ok, err := relate.Touches(g, channel)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func main() {
	channel, err := wkt.Parse("POLYGON((0 0, 10 0, 10 4, 0 4, 0 0))")
	if err != nil {
		log.Fatal(err)
	}

	raw := []string{
		"POINT(5 2)",          // inside the channel
		"POINT(10 2)",         // on the channel boundary
		"POINT(20 20)",        // well outside
		"LINESTRING(0 4, 3 4)", // runs along the channel's edge
	}

	var geoms []geom.Geometry
	for _, s := range raw {
		g, err := wkt.Parse(s)
		if err != nil {
			log.Fatal(err)
		}
		geoms = append(geoms, g)
	}

	inside, err := withinChannel(geoms, channel)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Within channel: %d\n", len(inside))

	touching, err := touchingChannel(geoms, channel)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Touching channel boundary: %d\n", len(touching))
}
