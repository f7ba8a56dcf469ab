package repository

import (
	"context"
	"fmt"
)

// Open returns the store for driver: memory, sqlite or postgres. An empty
// dsn selects the driver default. Stores backed by a database also
// implement io.Closer.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (Store, error) {
	switch driver {
	case "", BackendMemory:
		return NewMemoryStore(opts...), nil
	case BackendSQLite:
		s, err := OpenSQLite(ctx, dsn, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendPostgres:
		s, err := OpenPostgres(ctx, dsn, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, driver)
	}
}
