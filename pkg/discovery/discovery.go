// Package discovery folds a backend's flat catalog query into the
// Schema → Table → Column tree consumed by the query planner.
//
// The fold is a streaming group-by over the catalog cursor: rows are read
// one at a time and a completed table or schema is flushed when its key
// changes. This relies on the catalog query returning rows ordered by
// (schema, table) — see Connector.CatalogSQL. Out-of-order rows corrupt the
// tree silently unless strict ordering validation is enabled.
package discovery

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"

	"github.com/gitter-badger/quark/pkg/catalog"
	"github.com/gitter-badger/quark/pkg/connector"
	"github.com/gitter-badger/quark/pkg/dbcapabilities"
	"github.com/gitter-badger/quark/pkg/logger"
)

// Discoverer runs catalog discovery against backend connectors.
// The zero value is not usable; call New.
type Discoverer struct {
	log    *logger.Logger
	strict bool
}

// Option configures a Discoverer.
type Option func(*Discoverer)

// WithLogger replaces the default logger.
func WithLogger(l *logger.Logger) Option {
	return func(d *Discoverer) {
		d.log = l
	}
}

// WithStrictOrdering makes discovery fail with ErrOrderingViolation when a
// (schema) or (schema, table) group recurs after it was flushed, instead of
// silently producing a corrupted tree. Off by default: ordering is the
// catalog query's contract, and checking it costs one map insert per group.
func WithStrictOrdering() Option {
	return func(d *Discoverer) {
		d.strict = true
	}
}

// New creates a Discoverer.
func New(opts ...Option) *Discoverer {
	d := &Discoverer{
		log: logger.New("discovery"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Discover connects to the backend, executes its catalog query and returns
// the folded catalog. The connection and cursor are released on every exit
// path; release failures are logged and never mask the primary outcome.
// An empty catalog query result yields an empty catalog, not an error.
func (d *Discoverer) Discover(ctx context.Context, conn connector.Connector) (catalog.Catalog, error) {
	backend := conn.Type()

	db, err := conn.Connect(ctx)
	if err != nil {
		return catalog.Catalog{}, connector.WrapError(backend, "discover", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			d.log.Errorf("error closing connection to %s: %v", conn.Endpoint().URL, cerr)
		}
	}()

	c, err := db.Conn(ctx)
	if err != nil {
		return catalog.Catalog{}, connector.WrapError(backend, "discover",
			fmt.Errorf("%w: %w", connector.ErrConnectionFailed, err))
	}
	defer func() {
		if cerr := c.Close(); cerr != nil {
			d.log.Errorf("error releasing connection to %s: %v", conn.Endpoint().URL, cerr)
		}
	}()

	fold := newFolder(backend, conn.TypeMap(), conn.IsCaseSensitive(), d.strict)

	err = c.Raw(func(dc interface{}) error {
		return d.streamCatalog(ctx, dc, conn.CatalogSQL(), backend, fold)
	})
	if err != nil {
		return catalog.Catalog{}, connector.WrapError(backend, "discover", err)
	}

	return fold.finish(), nil
}

// streamCatalog runs the catalog query on the raw driver connection and
// feeds every row into the fold. The cursor is driven at the driver level
// because database/sql reports a driver cursor-close error through
// Rows.Err once the stream ends cleanly, where it is indistinguishable
// from a stream error; owning the cursor keeps the close error on the
// release path, where it is logged and dropped.
func (d *Discoverer) streamCatalog(ctx context.Context, dc interface{}, query string, backend dbcapabilities.DatabaseID, fold *folder) error {
	rows, err := rawQuery(ctx, dc, query)
	if err != nil {
		return fmt.Errorf("%w: %w", connector.ErrCatalogQueryFailed, err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			d.log.Errorf("error closing catalog cursor for %s: %v", backend, cerr)
		}
	}()

	if n := len(rows.Columns()); n != 4 {
		return fmt.Errorf("%w: catalog query returned %d columns, want (schema, table, column, type)",
			connector.ErrCatalogQueryFailed, n)
	}

	values := make([]driver.Value, 4)
	fields := make([]string, 4)
	for {
		err := rows.Next(values)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", connector.ErrCatalogQueryFailed, err)
		}

		for i, v := range values {
			s, err := stringValue(v)
			if err != nil {
				return fmt.Errorf("%w: catalog column %d: %w", connector.ErrCatalogQueryFailed, i+1, err)
			}
			fields[i] = s
		}
		if err := fold.add(fields[0], fields[1], fields[2], fields[3]); err != nil {
			return err
		}
		d.log.Debugf("adding column: %s : %s : %s : %s", fields[0], fields[1], fields[2], fields[3])
	}
}

// rawQuery executes an argument-free query on a raw driver connection.
func rawQuery(ctx context.Context, dc interface{}, query string) (driver.Rows, error) {
	if q, ok := dc.(driver.QueryerContext); ok {
		rows, err := q.QueryContext(ctx, query, nil)
		if err != driver.ErrSkip {
			return rows, err
		}
	}
	if q, ok := dc.(driver.Queryer); ok {
		rows, err := q.Query(query, nil)
		if err != driver.ErrSkip {
			return rows, err
		}
	}
	return nil, errors.New("driver cannot execute an unprepared query")
}

// stringValue decodes one catalog row value. Drivers return text columns as
// string or []byte; NULL decodes to the empty string.
func stringValue(v driver.Value) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("value of type %T is not text", v)
	}
}
