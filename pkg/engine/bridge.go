package engine

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/gitter-badger/quark/pkg/connector"
	"github.com/gitter-badger/quark/pkg/logger"
)

// Execute runs sql through the generic row engine: the engine obtains its
// connection from the source and streams the result. The returned sequence
// performs no backend interaction until its first Next call.
func Execute(ctx context.Context, src ConnectionSource, query string) *RowSequence {
	return &RowSequence{
		ctx:   ctx,
		src:   src,
		query: query,
	}
}

// Bridge executes planner-issued SQL against one backend connector.
type Bridge struct {
	conn connector.Connector
	log  *logger.Logger
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithLogger replaces the default logger.
func WithLogger(l *logger.Logger) BridgeOption {
	return func(b *Bridge) {
		b.log = l
	}
}

// NewBridge creates an execution bridge for the given connector.
func NewBridge(conn connector.Connector, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		conn: conn,
		log:  logger.New("engine"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Execute runs sql on an already-open connection. The connection is handed
// to the row engine through a SingleConnSource adapter, so the engine never
// sees the live connection directly; the caller keeps ownership of it and
// closes it after the sequence is done.
func (b *Bridge) Execute(ctx context.Context, conn *sql.Conn, query string) *RowSequence {
	b.log.WithFields(map[string]string{
		"backend":  string(b.conn.Type()),
		"query_id": uuid.NewString(),
	}).Debug("executing on existing connection")

	return Execute(ctx, NewSingleConnSource(conn), query)
}

// ExecuteQuery runs the connector's pre-execution cleanup, opens a fresh
// connection and runs sql on it. The returned sequence owns the connection
// and releases it when closed or exhausted.
func (b *Bridge) ExecuteQuery(ctx context.Context, query string) (*RowSequence, error) {
	backend := b.conn.Type()

	if err := b.conn.Cleanup(); err != nil {
		return nil, connector.WrapError(backend, "cleanup", err)
	}

	db, err := b.conn.Connect(ctx)
	if err != nil {
		return nil, connector.WrapError(backend, "execute", err)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			b.log.Errorf("error closing connection to %s: %v", b.conn.Endpoint().URL, cerr)
		}
		return nil, connector.WrapError(backend, "execute", err)
	}

	b.log.WithFields(map[string]string{
		"backend":  string(backend),
		"query_id": uuid.NewString(),
	}).Debug("executing on fresh connection")

	seq := Execute(ctx, NewSingleConnSource(conn), query)
	seq.release = func() error {
		return errors.Join(conn.Close(), db.Close())
	}
	return seq, nil
}
