// Package engine executes SQL against a backend and exposes the result as a
// lazy, single-pass row sequence.
//
// The row engine never receives a live connection directly: it consumes a
// ConnectionSource, the data-source-shaped capability it expects. A bridge
// adapts whatever it owns (an open connection, or a connector that can open
// one) into that shape.
package engine

import (
	"context"
	"database/sql"
)

// ConnectionSource is the subset of a data source the row engine actually
// exercises: hand out a connection. The wider data-source surface (login
// timeouts, log writers, wrapper introspection) is deliberately absent
// because nothing on this path ever calls it.
type ConnectionSource interface {
	// Connection returns a connection to run a query on.
	Connection(ctx context.Context) (*sql.Conn, error)
}

// SingleConnSource adapts one already-open connection into a
// ConnectionSource: every Connection call hands back the same connection.
// The connection stays owned by whoever opened it; closing it is not the
// source's job.
type SingleConnSource struct {
	conn *sql.Conn
}

// NewSingleConnSource wraps an open connection.
func NewSingleConnSource(conn *sql.Conn) *SingleConnSource {
	return &SingleConnSource{conn: conn}
}

// Connection returns the wrapped connection, on every call.
func (s *SingleConnSource) Connection(context.Context) (*sql.Conn, error) {
	return s.conn, nil
}
