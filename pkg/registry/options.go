package registry

// Options configures catalog construction: ExcludeNames selects a subset
// of the default set, following the teacher's options-struct + DefaultXxx()
// convention (see pkg/s57.ParseOptions/DefaultParseOptions), so a reduced
// catalog (e.g. one without the spheroid distance functions) is built
// through DefaultWithOptions without changing Default's signature.
type Options struct {
	// ExcludeNames skips registering these function names, e.g. to build
	// a reduced catalog for an embedded target.
	ExcludeNames []string
}

// DefaultOptions returns Options with nothing excluded.
func DefaultOptions() Options {
	return Options{}
}

// DefaultWithOptions builds the catalog per opts.
func DefaultWithOptions(opts Options) (*Registry, error) {
	excluded := make(map[string]bool, len(opts.ExcludeNames))
	for _, n := range opts.ExcludeNames {
		excluded[n] = true
	}
	all := builtinFuncs()
	fns := make([]Func, 0, len(all))
	for _, f := range all {
		if !excluded[f.Name] {
			fns = append(fns, f)
		}
	}
	return New(fns)
}
