package registry

import "github.com/fathomline/stgeo/pkg/geom"

// Registry is the immutable name -> Func table. The zero value is not
// usable; construct one via Default or New.
type Registry struct {
	funcs map[string]Func
}

// New builds a Registry from an explicit function list, rejecting
// duplicate names. Used by tests and by callers assembling a custom
// subset of the catalog; most callers want Default.
func New(fns []Func) (*Registry, error) {
	m := make(map[string]Func, len(fns))
	for _, f := range fns {
		if _, exists := m[f.Name]; exists {
			return nil, &geom.InvalidArgument{Op: "registry.New", Reason: "duplicate function name " + f.Name}
		}
		m[f.Name] = f
	}
	return &Registry{funcs: m}, nil
}

// Lookup returns the catalog entry for name (case-sensitive; adapters
// that need case-insensitive lookup should upper/lower-case name before
// calling, per spec.md §4.6's "case-insensitive" adapter requirement).
func (r *Registry) Lookup(name string) (Func, bool) {
	f, ok := r.funcs[name]
	return f, ok
}

// Names returns every registered function name, for adapter introspection
// (e.g. listing available SQLite scalar functions at connect time).
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		out = append(out, name)
	}
	return out
}

// Call looks up name, validates arity, applies the null policy, and
// invokes the entry point. It is the single path every host adapter
// should go through rather than calling Lookup and Entry directly, so
// null-propagation is enforced in one place.
func (r *Registry) Call(name string, args []Value) (Value, error) {
	f, ok := r.funcs[name]
	if !ok {
		return Value{}, &geom.InvalidArgument{Op: name, Reason: "unknown function"}
	}
	if !f.arityOK(len(args)) {
		return Value{}, &geom.InvalidArgument{Op: name, Reason: "wrong number of arguments"}
	}

	switch f.NullPolicy {
	case NullStrict:
		for _, a := range args {
			if a.IsNull {
				return nullValue(), nil
			}
		}
	case NullTolerant:
		template := firstGeometry(args)
		for i, a := range args {
			if a.IsNull && f.ArgKindAt(i) == ArgGeometry {
				args[i] = Value{Geom: emptyLike(template)}
			}
		}
	case NullCustom:
		// Entry receives args unmodified and decides.
	}

	return f.Entry(args)
}

// firstGeometry returns the first non-null geometry argument, or nil if
// every geometry argument is null.
func firstGeometry(args []Value) geom.Geometry {
	for _, a := range args {
		if !a.IsNull && a.Geom != nil {
			return a.Geom
		}
	}
	return nil
}

// emptyLike returns the empty geometry of template's kind, SRID, and
// dimension, so substituting a null operand (e.g. ST_Union(polygon,
// NULL)) produces the empty operand's identity value for that operation
// rather than a point that forces a mixed-kind GeometryCollection
// result. template == nil (every operand was null) falls back to the
// empty point, matching the "no information at all" case.
func emptyLike(template geom.Geometry) geom.Geometry {
	if template == nil {
		return geom.NewEmptyPoint(0, geom.XY)
	}
	srid, dim := template.SRID(), template.Dim()
	switch template.Kind() {
	case geom.KindLineString:
		return geom.NewEmptyLineString(srid, dim)
	case geom.KindPolygon:
		return geom.NewEmptyPolygon(srid, dim)
	case geom.KindMultiPoint:
		mp, _ := geom.NewMultiPoint(srid, dim, nil)
		return mp
	case geom.KindMultiLineString:
		mls, _ := geom.NewMultiLineString(srid, dim, nil)
		return mls
	case geom.KindMultiPolygon:
		mp, _ := geom.NewMultiPolygon(srid, dim, nil)
		return mp
	case geom.KindGeometryCollection:
		gc, _ := geom.NewGeometryCollection(srid, dim, nil)
		return gc
	default:
		return geom.NewEmptyPoint(srid, dim)
	}
}
