// Package registry is spec.md §4.6's function catalog: the table mapping
// each PostGIS-style ST_* name to its arity, argument kinds, entry point,
// and null-propagation rule. It is the sole artifact a host adapter
// (ext/sqliteext) consumes; adding a function is one table entry.
//
// The registry is built once, by Default, and is read-only thereafter —
// there is no global mutable state (spec.md §5).
package registry

import "github.com/fathomline/stgeo/pkg/geom"

// ArgKind classifies one positional argument of a registered function.
type ArgKind int

const (
	ArgGeometry ArgKind = iota
	ArgFloat
	ArgInt
	ArgString
	ArgBool
)

// NullPolicy controls how a registered function treats a nil argument.
type NullPolicy int

const (
	// NullStrict: any nil argument short-circuits to a nil result without
	// calling Entry. The default for nearly every ST_* function.
	NullStrict NullPolicy = iota
	// NullTolerant: a nil geometry argument is substituted with the empty
	// geometry of the same kind before calling Entry (e.g. ST_Union of a
	// null and a real geometry returns the real geometry).
	NullTolerant
	// NullCustom: Entry receives the raw (possibly nil) arguments and
	// decides for itself. Used by functions where null carries meaning
	// distinct from "propagate null" or "treat as empty".
	NullCustom
)

// Value is the dynamically-typed argument/result Entry points exchange
// with the registry. Exactly one field is meaningful per ArgKind.
type Value struct {
	Geom   geom.Geometry
	Float  float64
	Int    int64
	String string
	Bool   bool
	IsNull bool
}

func nullValue() Value { return Value{IsNull: true} }

// Func is one catalog entry: name, declared signature, null policy, and
// the entry point itself.
type Func struct {
	Name       string
	ArgKinds   []ArgKind
	Variadic   bool
	NullPolicy NullPolicy
	// ResultKind declares which Value field Entry's result populates, so a
	// host adapter can encode a zero-valued result (0.0, "", false)
	// without mistaking it for a different kind.
	ResultKind ArgKind
	Entry      func(args []Value) (Value, error)
}

func (f Func) arityOK(n int) bool {
	if f.Variadic {
		return n >= len(f.ArgKinds)
	}
	return n == len(f.ArgKinds)
}

// ArgKindAt returns the declared kind of the i'th argument. For a
// variadic Func, indices at or past the last declared ArgKind repeat
// that last kind, since the trailing "..." parameter is homogeneous
// (e.g. ST_Union(geometry, geometry...) takes any number of geometries
// beyond the second). Host adapters (ext/sqliteext) use this to decode
// each SQL argument without special-casing variadic calls.
func (f Func) ArgKindAt(i int) ArgKind {
	if i < len(f.ArgKinds) {
		return f.ArgKinds[i]
	}
	if f.Variadic && len(f.ArgKinds) > 0 {
		return f.ArgKinds[len(f.ArgKinds)-1]
	}
	return ArgGeometry
}
