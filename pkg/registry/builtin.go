package registry

import (
	"github.com/fathomline/stgeo/internal/ewkb"
	"github.com/fathomline/stgeo/internal/geojson"
	"github.com/fathomline/stgeo/internal/wkt"
	"github.com/fathomline/stgeo/pkg/geom"
	"github.com/fathomline/stgeo/pkg/measure"
	"github.com/fathomline/stgeo/pkg/overlay"
	"github.com/fathomline/stgeo/pkg/relate"
)

// Default builds the full stgeo ST_* catalog: codecs, construction,
// measurement, predicates, overlay, and introspection. It is the
// registry ext/sqliteext loads at connection time.
func Default() *Registry {
	r, err := New(builtinFuncs())
	if err != nil {
		// builtinFuncs is a fixed literal table; a duplicate name here is
		// a programming error, not a runtime condition callers handle.
		panic(err)
	}
	return r
}

func geomArg(v Value) geom.Geometry { return v.Geom }

// geomSlice extracts the Geom field of every argument, for variadic
// entries whose NullPolicy has already resolved nulls (NullTolerant
// substitutes before Entry runs, so none remain here).
func geomSlice(args []Value) []geom.Geometry {
	out := make([]geom.Geometry, len(args))
	for i, a := range args {
		out[i] = a.Geom
	}
	return out
}

// nonNullGeoms extracts the Geom field of every non-null argument,
// dropping nulls rather than substituting them.
func nonNullGeoms(args []Value) []geom.Geometry {
	out := make([]geom.Geometry, 0, len(args))
	for _, a := range args {
		if !a.IsNull {
			out = append(out, a.Geom)
		}
	}
	return out
}

func geomResult(g geom.Geometry, err error) (Value, error) {
	if err != nil {
		return Value{}, err
	}
	return Value{Geom: g}, nil
}

func floatResult(f float64, err error) (Value, error) {
	if err != nil {
		return Value{}, err
	}
	return Value{Float: f}, nil
}

func boolResult(b bool, err error) (Value, error) {
	if err != nil {
		return Value{}, err
	}
	return Value{Bool: b}, nil
}

func builtinFuncs() []Func {
	var fns []Func
	fns = append(fns, codecFuncs()...)
	fns = append(fns, measureFuncs()...)
	fns = append(fns, predicateFuncs()...)
	fns = append(fns, overlayFuncs()...)
	fns = append(fns, introspectFuncs()...)
	return fns
}

func codecFuncs() []Func {
	return []Func{
		{Name: "ST_GeomFromText", ArgKinds: []ArgKind{ArgString}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) { return geomResult(wkt.Parse(a[0].String)) }},
		{Name: "ST_AsText", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgString,
			Entry: func(a []Value) (Value, error) {
				s, err := wkt.Write(geomArg(a[0]))
				if err != nil {
					return Value{}, err
				}
				return Value{String: s}, nil
			}},
		{Name: "ST_GeomFromEWKB", ArgKinds: []ArgKind{ArgString}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) { return geomResult(ewkb.Read([]byte(a[0].String))) }},
		{Name: "ST_AsEWKB", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgString,
			Entry: func(a []Value) (Value, error) {
				b, err := ewkb.Write(geomArg(a[0]))
				if err != nil {
					return Value{}, err
				}
				return Value{String: string(b)}, nil
			}},
		{Name: "ST_GeomFromGeoJSON", ArgKinds: []ArgKind{ArgString}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) { return geomResult(geojson.Unmarshal([]byte(a[0].String))) }},
		{Name: "ST_AsGeoJSON", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgString,
			Entry: func(a []Value) (Value, error) {
				b, err := geojson.Marshal(geomArg(a[0]))
				if err != nil {
					return Value{}, err
				}
				return Value{String: string(b)}, nil
			}},
		{Name: "ST_Point", ArgKinds: []ArgKind{ArgFloat, ArgFloat}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) {
				return geomResult(geom.NewPoint(0, geom.XY, geom.NewXY(a[0].Float, a[1].Float)))
			}},
		{Name: "ST_SRID", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgInt,
			Entry: func(a []Value) (Value, error) { return Value{Int: int64(geomArg(a[0]).SRID())}, nil }},
		{Name: "ST_SetSRID", ArgKinds: []ArgKind{ArgGeometry, ArgInt}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) {
				return Value{Geom: geom.WithSRID(geomArg(a[0]), int32(a[1].Int))}, nil
			}},
	}
}

func measureFuncs() []Func {
	return []Func{
		{Name: "ST_Area", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgFloat,
			Entry: func(a []Value) (Value, error) { return Value{Float: measure.Area(geomArg(a[0]))}, nil }},
		{Name: "ST_Length", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgFloat,
			Entry: func(a []Value) (Value, error) { return Value{Float: measure.Length(geomArg(a[0]))}, nil }},
		{Name: "ST_Perimeter", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgFloat,
			Entry: func(a []Value) (Value, error) { return Value{Float: measure.Perimeter(geomArg(a[0]))}, nil }},
		{Name: "ST_Centroid", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) { return Value{Geom: measure.Centroid(geomArg(a[0]))}, nil }},
		{Name: "ST_PointOnSurface", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) { return Value{Geom: measure.PointOnSurface(geomArg(a[0]))}, nil }},
		{Name: "ST_Distance", ArgKinds: []ArgKind{ArgGeometry, ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgFloat,
			Entry: func(a []Value) (Value, error) {
				return Value{Float: measure.Distance(geomArg(a[0]), geomArg(a[1]))}, nil
			}},
		{Name: "ST_DistanceSphere", ArgKinds: []ArgKind{ArgGeometry, ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgFloat,
			Entry: func(a []Value) (Value, error) {
				pa, ok1 := geomArg(a[0]).(geom.Point)
				pb, ok2 := geomArg(a[1]).(geom.Point)
				if !ok1 || !ok2 {
					return Value{}, &geom.UnsupportedGeometry{Kind: geomArg(a[0]).Kind().String(), Reason: "ST_DistanceSphere requires two points"}
				}
				return floatResult(measure.DistanceSphere(pa, pb))
			}},
		{Name: "ST_DistanceSpheroid", ArgKinds: []ArgKind{ArgGeometry, ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgFloat,
			Entry: func(a []Value) (Value, error) {
				pa, ok1 := geomArg(a[0]).(geom.Point)
				pb, ok2 := geomArg(a[1]).(geom.Point)
				if !ok1 || !ok2 {
					return Value{}, &geom.UnsupportedGeometry{Kind: geomArg(a[0]).Kind().String(), Reason: "ST_DistanceSpheroid requires two points"}
				}
				return floatResult(measure.DistanceSpheroid(pa, pb))
			}},
		{Name: "ST_HausdorffDistance", ArgKinds: []ArgKind{ArgGeometry, ArgGeometry, ArgFloat}, NullPolicy: NullStrict, ResultKind: ArgFloat,
			Entry: func(a []Value) (Value, error) {
				return floatResult(measure.HausdorffDistance(geomArg(a[0]), geomArg(a[1]), a[2].Float))
			}},
		{Name: "ST_Azimuth", ArgKinds: []ArgKind{ArgGeometry, ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgFloat,
			Entry: func(a []Value) (Value, error) {
				pa, ok1 := geomArg(a[0]).(geom.Point)
				pb, ok2 := geomArg(a[1]).(geom.Point)
				if !ok1 || !ok2 {
					return Value{}, &geom.UnsupportedGeometry{Kind: geomArg(a[0]).Kind().String(), Reason: "ST_Azimuth requires two points"}
				}
				return floatResult(measure.Azimuth(pa, pb))
			}},
		{Name: "ST_MinimumBoundingCircle", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) {
				c, err := measure.MinimumBoundingCircle(geomArg(a[0]))
				if err != nil {
					return Value{}, err
				}
				center, err := geom.NewPoint(geomArg(a[0]).SRID(), geom.XY, c.Center)
				if err != nil {
					return Value{}, err
				}
				return geomResult(overlay.Buffer(center, c.Radius, overlay.DefaultBufferParams()))
			}},
	}
}

func predicateFuncs() []Func {
	twoGeom := []ArgKind{ArgGeometry, ArgGeometry}
	binaryPredicate := func(f func(a, b geom.Geometry) (bool, error)) func([]Value) (Value, error) {
		return func(a []Value) (Value, error) { return boolResult(f(geomArg(a[0]), geomArg(a[1]))) }
	}
	return []Func{
		{Name: "ST_Intersects", ArgKinds: twoGeom, NullPolicy: NullStrict, ResultKind: ArgBool, Entry: binaryPredicate(relate.Intersects)},
		{Name: "ST_Disjoint", ArgKinds: twoGeom, NullPolicy: NullStrict, ResultKind: ArgBool, Entry: binaryPredicate(relate.Disjoint)},
		{Name: "ST_Contains", ArgKinds: twoGeom, NullPolicy: NullStrict, ResultKind: ArgBool, Entry: binaryPredicate(relate.Contains)},
		{Name: "ST_Within", ArgKinds: twoGeom, NullPolicy: NullStrict, ResultKind: ArgBool, Entry: binaryPredicate(relate.Within)},
		{Name: "ST_Covers", ArgKinds: twoGeom, NullPolicy: NullStrict, ResultKind: ArgBool, Entry: binaryPredicate(relate.Covers)},
		{Name: "ST_CoveredBy", ArgKinds: twoGeom, NullPolicy: NullStrict, ResultKind: ArgBool, Entry: binaryPredicate(relate.CoveredBy)},
		{Name: "ST_Equals", ArgKinds: twoGeom, NullPolicy: NullStrict, ResultKind: ArgBool, Entry: binaryPredicate(relate.Equals)},
		{Name: "ST_Touches", ArgKinds: twoGeom, NullPolicy: NullStrict, ResultKind: ArgBool, Entry: binaryPredicate(relate.Touches)},
		{Name: "ST_Crosses", ArgKinds: twoGeom, NullPolicy: NullStrict, ResultKind: ArgBool, Entry: binaryPredicate(relate.Crosses)},
		{Name: "ST_Overlaps", ArgKinds: twoGeom, NullPolicy: NullStrict, ResultKind: ArgBool, Entry: binaryPredicate(relate.Overlaps)},
		{Name: "ST_DWithin", ArgKinds: []ArgKind{ArgGeometry, ArgGeometry, ArgFloat}, NullPolicy: NullStrict, ResultKind: ArgBool,
			Entry: func(a []Value) (Value, error) {
				return boolResult(relate.DWithin(geomArg(a[0]), geomArg(a[1]), a[2].Float))
			}},
		{Name: "ST_Relate", ArgKinds: twoGeom, NullPolicy: NullStrict, ResultKind: ArgString,
			Entry: func(a []Value) (Value, error) {
				m, err := relate.Relate(geomArg(a[0]), geomArg(a[1]))
				if err != nil {
					return Value{}, err
				}
				return Value{String: m.String()}, nil
			}},
		{Name: "ST_RelateMatch", ArgKinds: []ArgKind{ArgGeometry, ArgGeometry, ArgString}, NullPolicy: NullStrict, ResultKind: ArgBool,
			Entry: func(a []Value) (Value, error) {
				return boolResult(relate.RelateMatch(geomArg(a[0]), geomArg(a[1]), a[2].String))
			}},
	}
}

func overlayFuncs() []Func {
	return []Func{
		// ST_Union is variadic: the common 2-arg call folds straight to
		// overlay.Union via UnionMany's pairwise loop, and any further
		// arguments extend it to the n-ary aggregate form (SPEC_FULL.md
		// §8's "ST_Collect/ST_Union aggregate forms"). NullTolerant substitutes
		// every null operand with the empty geometry of the other
		// operands' kind before Entry runs, so a null anywhere in the
		// list is absorbed rather than breaking the fold.
		{Name: "ST_Union", ArgKinds: []ArgKind{ArgGeometry, ArgGeometry}, Variadic: true, NullPolicy: NullTolerant, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) { return geomResult(overlay.UnionMany(geomSlice(a))) }},
		// ST_Collect bags geometries into the smallest Multi*/GeometryCollection
		// that holds them without merging overlaps (compare ST_Union). Null
		// operands are dropped rather than substituted, matching a SQL
		// aggregate's usual "ignore NULL rows" behavior.
		{Name: "ST_Collect", ArgKinds: []ArgKind{ArgGeometry}, Variadic: true, NullPolicy: NullCustom, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) { return geomResult(overlay.Collect(nonNullGeoms(a))) }},
		{Name: "ST_Intersection", ArgKinds: []ArgKind{ArgGeometry, ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) {
				return geomResult(overlay.Intersection(geomArg(a[0]), geomArg(a[1])))
			}},
		{Name: "ST_Difference", ArgKinds: []ArgKind{ArgGeometry, ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) {
				return geomResult(overlay.Difference(geomArg(a[0]), geomArg(a[1])))
			}},
		{Name: "ST_SymDifference", ArgKinds: []ArgKind{ArgGeometry, ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) {
				return geomResult(overlay.SymDifference(geomArg(a[0]), geomArg(a[1])))
			}},
		{Name: "ST_Buffer", ArgKinds: []ArgKind{ArgGeometry, ArgFloat}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) {
				return geomResult(overlay.Buffer(geomArg(a[0]), a[1].Float, overlay.DefaultBufferParams()))
			}},
		{Name: "ST_ConvexHull", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) { return geomResult(overlay.ConvexHull(geomArg(a[0]))) }},
		{Name: "ST_Simplify", ArgKinds: []ArgKind{ArgGeometry, ArgFloat}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) { return geomResult(overlay.Simplify(geomArg(a[0]), a[1].Float)) }},
	}
}

func introspectFuncs() []Func {
	return []Func{
		{Name: "ST_Dimension", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgInt,
			Entry: func(a []Value) (Value, error) { return Value{Int: int64(dimension(geomArg(a[0])))}, nil }},
		{Name: "ST_GeometryType", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgString,
			Entry: func(a []Value) (Value, error) { return Value{String: geometryType(geomArg(a[0]))}, nil }},
		{Name: "ST_NumGeometries", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgInt,
			Entry: func(a []Value) (Value, error) { return Value{Int: int64(numGeometries(geomArg(a[0])))}, nil }},
		{Name: "ST_GeometryN", ArgKinds: []ArgKind{ArgGeometry, ArgInt}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) {
				g, ok := geometryN(geomArg(a[0]), int(a[1].Int))
				if !ok {
					return nullValue(), nil
				}
				return Value{Geom: g}, nil
			}},
		{Name: "ST_NumPoints", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgInt,
			Entry: func(a []Value) (Value, error) { return Value{Int: int64(numPoints(geomArg(a[0])))}, nil }},
		{Name: "ST_NumInteriorRings", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgInt,
			Entry: func(a []Value) (Value, error) {
				p, ok := geomArg(a[0]).(geom.Polygon)
				if !ok {
					return Value{}, &geom.UnsupportedGeometry{Kind: geomArg(a[0]).Kind().String(), Reason: "ST_NumInteriorRings requires a polygon"}
				}
				return Value{Int: int64(numInteriorRings(p))}, nil
			}},
		{Name: "ST_ExteriorRing", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) {
				p, ok := geomArg(a[0]).(geom.Polygon)
				if !ok {
					return Value{}, &geom.UnsupportedGeometry{Kind: geomArg(a[0]).Kind().String(), Reason: "ST_ExteriorRing requires a polygon"}
				}
				return geomResult(exteriorRing(p))
			}},
		{Name: "ST_InteriorRingN", ArgKinds: []ArgKind{ArgGeometry, ArgInt}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) {
				p, ok := geomArg(a[0]).(geom.Polygon)
				if !ok {
					return Value{}, &geom.UnsupportedGeometry{Kind: geomArg(a[0]).Kind().String(), Reason: "ST_InteriorRingN requires a polygon"}
				}
				ls, found, err := interiorRingN(p, int(a[1].Int))
				if err != nil {
					return Value{}, err
				}
				if !found {
					return nullValue(), nil
				}
				return Value{Geom: ls}, nil
			}},
		{Name: "ST_PointN", ArgKinds: []ArgKind{ArgGeometry, ArgInt}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) {
				l, ok := geomArg(a[0]).(geom.LineString)
				if !ok {
					return Value{}, &geom.UnsupportedGeometry{Kind: geomArg(a[0]).Kind().String(), Reason: "ST_PointN requires a linestring"}
				}
				p, found, err := pointN(l, int(a[1].Int))
				if err != nil {
					return Value{}, err
				}
				if !found {
					return nullValue(), nil
				}
				return Value{Geom: p}, nil
			}},
		{Name: "ST_StartPoint", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) { return startOrEndPoint(a[0], false) }},
		{Name: "ST_EndPoint", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgGeometry,
			Entry: func(a []Value) (Value, error) { return startOrEndPoint(a[0], true) }},
		{Name: "ST_IsClosed", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgBool,
			Entry: func(a []Value) (Value, error) {
				l, ok := geomArg(a[0]).(geom.LineString)
				if !ok {
					return Value{Bool: true}, nil
				}
				return Value{Bool: l.IsClosed()}, nil
			}},
		{Name: "ST_IsRing", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgBool,
			Entry: func(a []Value) (Value, error) {
				l, ok := geomArg(a[0]).(geom.LineString)
				if !ok {
					return Value{}, &geom.UnsupportedGeometry{Kind: geomArg(a[0]).Kind().String(), Reason: "ST_IsRing requires a linestring"}
				}
				return Value{Bool: isRing(l)}, nil
			}},
		{Name: "ST_IsEmpty", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgBool,
			Entry: func(a []Value) (Value, error) { return Value{Bool: geomArg(a[0]).IsEmpty()}, nil }},
		{Name: "ST_IsValid", ArgKinds: []ArgKind{ArgGeometry}, NullPolicy: NullStrict, ResultKind: ArgBool,
			Entry: func(a []Value) (Value, error) { return Value{Bool: isValid(geomArg(a[0]))}, nil }},
	}
}

func startOrEndPoint(v Value, end bool) (Value, error) {
	l, ok := geomArg(v).(geom.LineString)
	if !ok {
		return Value{}, &geom.UnsupportedGeometry{Kind: geomArg(v).Kind().String(), Reason: "requires a linestring"}
	}
	p, found, err := startEndPoint(l, end)
	if err != nil {
		return Value{}, err
	}
	if !found {
		return nullValue(), nil
	}
	return Value{Geom: p}, nil
}
