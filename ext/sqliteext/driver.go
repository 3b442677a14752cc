package sqliteext

import (
	"database/sql"
	"fmt"
	"reflect"

	"github.com/mattn/go-sqlite3"

	"github.com/fathomline/stgeo/pkg/registry"
)

var (
	typeInterface = reflect.TypeOf((*interface{})(nil)).Elem()
	typeError     = reflect.TypeOf((*error)(nil)).Elem()
	typeFloat64   = reflect.TypeOf(float64(0))
	typeInt64     = reflect.TypeOf(int64(0))
	typeString    = reflect.TypeOf("")
	typeBool      = reflect.TypeOf(false)
)

// Register installs a database/sql driver under cfg.DriverName that
// exposes every function in cfg.Registry as a SQLite scalar function,
// following the teacher's "register once, fail loud on collision"
// convention. Callers then sql.Open(cfg.DriverName, dsn) as usual.
func Register(cfg Config) error {
	reg := cfg.registryOrDefault()
	log := cfg.logger()

	driver := &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			for _, name := range reg.Names() {
				f, ok := reg.Lookup(name)
				if !ok {
					continue
				}
				impl, err := makeScalarFunc(reg, f)
				if err != nil {
					return fmt.Errorf("sqliteext: building %s: %w", name, err)
				}
				if err := conn.RegisterFunc(name, impl, isPure(f)); err != nil {
					return fmt.Errorf("sqliteext: registering %s: %w", name, err)
				}
				log.Debug("registered scalar function", "name", name)
			}
			log.Info("sqlite connection ready", "driver", cfg.DriverName, "functions", len(reg.Names()))
			return nil
		},
	}

	sql.Register(cfg.DriverName, driver)
	log.Info("driver registered", "driver", cfg.DriverName)
	return nil
}

// isPure reports whether f's result depends only on its arguments, which
// lets SQLite cache and reorder calls. Every ST_* function in the
// registry is pure; none reads ambient state.
func isPure(f registry.Func) bool { return true }

// makeScalarFunc builds a concrete Go function value matching f's
// declared signature, suitable for sqlite3.SQLiteConn.RegisterFunc.
// Geometry arguments are typed interface{} so RegisterFunc accepts
// either a BLOB or TEXT column value; everything else uses its native
// Go scalar type. A Variadic Func (e.g. the aggregate ST_Union/
// ST_Collect forms) declares its trailing "..." parameter as a slice of
// the last ArgKind's Go type, matching go-sqlite3's own reflection-based
// call convention for variadic scalar functions.
func makeScalarFunc(reg *registry.Registry, f registry.Func) (interface{}, error) {
	argTypes := make([]reflect.Type, len(f.ArgKinds))
	for i, k := range f.ArgKinds {
		argTypes[i] = goArgType(k)
	}
	if f.Variadic && len(argTypes) > 0 {
		last := len(argTypes) - 1
		argTypes[last] = reflect.SliceOf(argTypes[last])
	}
	fnType := reflect.FuncOf(argTypes, []reflect.Type{typeInterface, typeError}, f.Variadic)

	fn := reflect.MakeFunc(fnType, func(in []reflect.Value) []reflect.Value {
		var raw []interface{}
		for i, rv := range in {
			if f.Variadic && i == len(in)-1 {
				for j := 0; j < rv.Len(); j++ {
					raw = append(raw, rv.Index(j).Interface())
				}
				continue
			}
			raw = append(raw, rv.Interface())
		}
		values := make([]registry.Value, len(raw))
		for i, r := range raw {
			v, err := decodeArg(f.ArgKindAt(i), r)
			if err != nil {
				return callResult(nil, err)
			}
			values[i] = v
		}
		result, err := reg.Call(f.Name, values)
		if err != nil {
			return callResult(nil, err)
		}
		out, err := encodeResult(f, result)
		return callResult(out, err)
	})
	return fn.Interface(), nil
}

func callResult(v interface{}, err error) []reflect.Value {
	var errVal reflect.Value
	if err == nil {
		errVal = reflect.Zero(typeError)
	} else {
		errVal = reflect.ValueOf(err)
	}
	var outVal reflect.Value
	if v == nil {
		outVal = reflect.Zero(typeInterface)
	} else {
		outVal = reflect.ValueOf(&v).Elem()
	}
	return []reflect.Value{outVal, errVal}
}

func goArgType(k registry.ArgKind) reflect.Type {
	switch k {
	case registry.ArgFloat:
		return typeFloat64
	case registry.ArgInt:
		return typeInt64
	case registry.ArgString:
		return typeString
	case registry.ArgBool:
		return typeBool
	default:
		return typeInterface
	}
}
