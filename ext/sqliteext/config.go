package sqliteext

import (
	"log/slog"

	"github.com/fathomline/stgeo/pkg/registry"
)

// Config carries the driver name, function catalog and logger for the
// registered driver, following the teacher's options-struct +
// DefaultXxx() convention (pkg/s57.ParseOptions/DefaultParseOptions).
type Config struct {
	// DriverName is the name passed to sql.Register and later to
	// sql.Open. Must be unique per process; Register passes it to
	// sql.Register, which panics if the name is already registered.
	DriverName string

	// Registry is the function catalog to expose as scalar functions.
	// Nil means registry.Default().
	Registry *registry.Registry

	// Logger receives connection-lifecycle and function-registration
	// events. Nil means log/slog's default logger. Grounded on
	// SAP-go-hdb's driver package, which logs connection lifecycle
	// through an injected *slog.Logger the same way.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with driver name "sqlite3_stgeo", the
// full default registry, and slog.Default() as the logger.
func DefaultConfig() Config {
	return Config{
		DriverName: "sqlite3_stgeo",
		Registry:   registry.Default(),
		Logger:     slog.Default(),
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c Config) registryOrDefault() *registry.Registry {
	if c.Registry != nil {
		return c.Registry
	}
	return registry.Default()
}
