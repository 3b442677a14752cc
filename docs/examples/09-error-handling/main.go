package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/fathomline/stgeo/internal/wkt"
	"github.com/fathomline/stgeo/pkg/geom"
	"github.com/fathomline/stgeo/pkg/overlay"
)

// safeParse parses s, translating the library's typed *geom.ParseError
// into a message identifying the offending byte offset.
func safeParse(s string) (geom.Geometry, error) {
	g, err := wkt.Parse(s)
	if err != nil {
		var perr *geom.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("malformed %s WKT at offset %d: %s", perr.Codec, perr.Offset, perr.Message)
		}
		return nil, err
	}
	return g, nil
}

func main() {
	// A well-formed geometry parses cleanly.
	boston, err := safeParse("SRID=4326;POINT(-71.05 42.35)")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Parsed %s at SRID %d\n", boston.Kind(), boston.SRID())

	// Malformed WKT: missing closing paren.
	if _, err := safeParse("POINT(-71.05 42.35"); err != nil {
		fmt.Printf("Expected parse error: %v\n", err)
	}

	// SRID mismatch: Union refuses to silently coerce operands tagged
	// with different spatial reference systems.
	a, _ := wkt.Parse("SRID=4326;POLYGON((0 0, 1 0, 1 1, 0 1, 0 0))")
	b, _ := wkt.Parse("SRID=3857;POLYGON((0 0, 1 0, 1 1, 0 1, 0 0))")
	if _, err := overlay.Union(a, b); err != nil {
		var mismatch *geom.SRIDMismatch
		if errors.As(err, &mismatch) {
			fmt.Printf("Expected SRID mismatch: %d vs %d\n", mismatch.A, mismatch.B)
		}
	}

	// Invalid argument: ST_Buffer rejects a non-positive quad segment count.
	square, _ := wkt.Parse("POLYGON((0 0, 1 0, 1 1, 0 1, 0 0))")
	params := overlay.DefaultBufferParams()
	params.QuadSegs = 0
	if _, err := overlay.Buffer(square, 1.0, params); err != nil {
		var invalid *geom.InvalidArgument
		if errors.As(err, &invalid) {
			fmt.Printf("Expected invalid argument: %s: %s\n", invalid.Op, invalid.Reason)
		}
	}
}
