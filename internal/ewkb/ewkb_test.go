package ewkb

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/fathomline/stgeo/pkg/geom"
)

func mustPoint(t *testing.T, srid int32, x, y float64) geom.Point {
	t.Helper()
	p, err := geom.NewPoint(srid, geom.XY, geom.Coordinate{X: x, Y: y})
	if err != nil {
		t.Fatalf("NewPoint: %v", err)
	}
	return p
}

func TestWriteSetSRIDPoint(t *testing.T) {
	p := mustPoint(t, 4326, 1, 2)
	got, err := Write(p)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	wantHex := "0101000020E6100000000000000000F03F0000000000000040"
	wantBytes, err := hex.DecodeString(wantHex)
	if err != nil {
		t.Fatalf("bad test hex: %v", err)
	}
	if !bytes.Equal(got, wantBytes) {
		t.Fatalf("got  %X\nwant %X", got, wantBytes)
	}
}

func TestWritePlainPointNoSRID(t *testing.T) {
	p := mustPoint(t, 0, 1, 2)
	got, err := Write(p)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	wantHex := "0101000000000000000000F03F0000000000000040"
	wantBytes, _ := hex.DecodeString(wantHex)
	if !bytes.Equal(got, wantBytes) {
		t.Fatalf("got  %X\nwant %X", got, wantBytes)
	}
}

func TestWriteLineString(t *testing.T) {
	ls, err := geom.NewLineString(0, geom.XY, []geom.Coordinate{{X: 1, Y: 2}, {X: 3, Y: 4}})
	if err != nil {
		t.Fatalf("NewLineString: %v", err)
	}
	got, err := Write(ls)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	wantHex := "010200000002000000000000000000F03F000000000000004000000000000008400000000000001040"
	wantBytes, _ := hex.DecodeString(wantHex)
	if !bytes.Equal(got, wantBytes) {
		t.Fatalf("got  %X\nwant %X", got, wantBytes)
	}
}

func TestRoundTripAllVariants(t *testing.T) {
	p := mustPoint(t, 4326, 1.5, -2.25)
	ls, _ := geom.NewLineString(4326, geom.XY, []geom.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}})
	poly, _ := geom.NewPolygon(4326, geom.XY, [][]geom.Coordinate{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}},
	})
	mp, _ := geom.NewMultiPoint(4326, geom.XY, []geom.Point{mustPoint(t, 4326, 1, 1), mustPoint(t, 4326, 2, 2)})
	mls, _ := geom.NewMultiLineString(4326, geom.XY, []geom.LineString{ls})
	mpoly, _ := geom.NewMultiPolygon(4326, geom.XY, []geom.Polygon{poly})
	gc, _ := geom.NewGeometryCollection(4326, geom.XY, []geom.Geometry{p, ls})
	empty := geom.NewEmptyPoint(0, geom.XY)
	xyz, _ := geom.NewPoint(0, geom.XYZ, geom.Coordinate{X: 1, Y: 2, Z: 3})

	cases := []geom.Geometry{p, ls, poly, mp, mls, mpoly, gc, empty, xyz}
	for i, g := range cases {
		data, err := Write(g)
		if err != nil {
			t.Fatalf("case %d: Write: %v", i, err)
		}
		back, err := Read(data)
		if err != nil {
			t.Fatalf("case %d: Read: %v", i, err)
		}
		if !geom.Equal(g, back) {
			t.Fatalf("case %d: round trip mismatch: %#v vs %#v", i, g, back)
		}
	}
}

func TestReadRejectsBadByteOrder(t *testing.T) {
	if _, err := Read([]byte{2, 0, 0, 0, 0}); err == nil {
		t.Fatal("expected error for invalid byte order marker")
	}
}

func TestReadRejectsImplausibleCount(t *testing.T) {
	// byte order (little-endian) + LineString type code (2) + a point
	// count of 0xFFFFFFFF, with no coordinate bytes following. Without a
	// remaining-input check this would attempt to allocate slices sized
	// for ~4.29 billion coordinates before ever reading one.
	data := []byte{1, 2, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF}
	if _, err := Read(data); err == nil {
		t.Fatal("expected error for a point count exceeding the remaining input")
	}
}

func TestReadRejectsImplausibleRingCount(t *testing.T) {
	// byte order + Polygon type code (3) + a ring count of 0xFFFFFFFF.
	data := []byte{1, 3, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF}
	if _, err := Read(data); err == nil {
		t.Fatal("expected error for a ring count exceeding the remaining input")
	}
}

func TestReadRejectsDeepNesting(t *testing.T) {
	srid := int32(0)
	var g geom.Geometry = mustPoint(t, srid, 0, 0)
	for i := 0; i < geom.MaxNestingDepth+2; i++ {
		gc, err := geom.NewGeometryCollection(srid, geom.XY, []geom.Geometry{g})
		if err != nil {
			t.Fatalf("NewGeometryCollection: %v", err)
		}
		g = gc
	}
	data, err := Write(g)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := Read(data); err == nil {
		t.Fatal("expected depth-limit error")
	}
}
