package sqliteext

import (
	"fmt"

	"github.com/fathomline/stgeo/internal/ewkb"
	"github.com/fathomline/stgeo/internal/wkt"
	"github.com/fathomline/stgeo/pkg/geom"
	"github.com/fathomline/stgeo/pkg/registry"
)

// decodeArg converts one SQLite scalar-function argument into a
// registry.Value per the declared kind. Geometry arguments accept either
// a []byte (tried as EWKB first) or a string (tried as EWKB-as-bytes,
// then WKT), matching spec.md §4.6's "adapter attempts EWKB first, falls
// back to WKT on blob type mismatch".
func decodeArg(kind registry.ArgKind, raw any) (registry.Value, error) {
	if raw == nil {
		return registry.Value{IsNull: true}, nil
	}
	switch kind {
	case registry.ArgGeometry:
		return decodeGeometryArg(raw)
	case registry.ArgFloat:
		f, err := asFloat(raw)
		return registry.Value{Float: f}, err
	case registry.ArgInt:
		i, err := asInt(raw)
		return registry.Value{Int: i}, err
	case registry.ArgString:
		s, err := asString(raw)
		return registry.Value{String: s}, err
	case registry.ArgBool:
		b, err := asBool(raw)
		return registry.Value{Bool: b}, err
	default:
		return registry.Value{}, &geom.InvalidArgument{Op: "sqliteext", Reason: "unknown argument kind"}
	}
}

func decodeGeometryArg(raw any) (registry.Value, error) {
	var blob []byte
	switch v := raw.(type) {
	case []byte:
		blob = v
	case string:
		blob = []byte(v)
	default:
		return registry.Value{}, &geom.InvalidArgument{Op: "sqliteext", Reason: fmt.Sprintf("geometry argument must be BLOB or TEXT, got %T", raw)}
	}
	if g, err := ewkb.Read(blob); err == nil {
		return registry.Value{Geom: g}, nil
	}
	g, err := wkt.Parse(string(blob))
	if err != nil {
		return registry.Value{}, err
	}
	return registry.Value{Geom: g}, nil
}

func asFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	default:
		return 0, &geom.InvalidArgument{Op: "sqliteext", Reason: fmt.Sprintf("expected a number, got %T", raw)}
	}
}

func asInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	default:
		return 0, &geom.InvalidArgument{Op: "sqliteext", Reason: fmt.Sprintf("expected an integer, got %T", raw)}
	}
}

func asString(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", &geom.InvalidArgument{Op: "sqliteext", Reason: fmt.Sprintf("expected text, got %T", raw)}
	}
}

func asBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case int64:
		return v != 0, nil
	default:
		return false, &geom.InvalidArgument{Op: "sqliteext", Reason: fmt.Sprintf("expected a boolean, got %T", raw)}
	}
}

// encodeResult converts a registry.Value back into a driver-representable
// value using f.ResultKind to pick the right field, so a zero-valued
// result (0.0, "", false) round-trips correctly instead of being
// mistaken for a different kind. Geometry results are serialized to
// EWKB blobs per spec.md §4.6.
func encodeResult(f registry.Func, v registry.Value) (any, error) {
	if v.IsNull {
		return nil, nil
	}
	switch f.ResultKind {
	case registry.ArgGeometry:
		return ewkb.Write(v.Geom)
	case registry.ArgString:
		return v.String, nil
	case registry.ArgInt:
		return v.Int, nil
	case registry.ArgFloat:
		return v.Float, nil
	case registry.ArgBool:
		return v.Bool, nil
	default:
		return nil, &geom.InvalidArgument{Op: "sqliteext", Reason: "unknown result kind for " + f.Name}
	}
}
