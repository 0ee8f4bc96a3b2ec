package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrSequenceClosed is returned when a closed sequence is consumed further.
var ErrSequenceClosed = errors.New("row sequence is closed")

// sequence lifecycle states
type seqState int

const (
	seqIdle      seqState = iota // no backend interaction yet
	seqStreaming                 // cursor open, rows being consumed
	seqClosed                    // cursor released; reachable from any state
)

// RowSequence is a lazy, forward-only, single-pass stream of query result
// rows. No backend interaction happens until the first Next call. The
// sequence is exhausted after the last row; re-iterating is not supported —
// run the query again for a fresh sequence. Not safe for concurrent use by
// more than one reader.
//
// Exhausting the sequence releases the underlying cursor; abandoning it
// early requires Close. Cancellation beyond that is not supported here: a
// caller wanting a timeout must enforce it on the context or at the
// connection layer.
type RowSequence struct {
	ctx   context.Context
	src   ConnectionSource
	query string

	state   seqState
	rows    *sql.Rows
	columns []string
	values  []interface{}
	err     error

	// release frees resources the sequence owns (a connection opened for
	// this query); nil when the caller owns the connection.
	release func() error
}

// open runs the query through the connection source. First suspension point
// of the sequence.
func (r *RowSequence) open() error {
	conn, err := r.src.Connection(r.ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}

	rows, err := conn.QueryContext(r.ctx, r.query)
	if err != nil {
		return fmt.Errorf("executing query: %w", err)
	}

	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		return fmt.Errorf("reading result columns: %w", err)
	}

	r.rows = rows
	r.columns = columns
	r.state = seqStreaming
	return nil
}

// Next advances to the next row, returning false when the sequence is
// exhausted or failed; check Err afterwards. The first call opens the
// cursor.
func (r *RowSequence) Next() bool {
	switch r.state {
	case seqClosed:
		return false
	case seqIdle:
		if err := r.open(); err != nil {
			r.err = err
			r.close()
			return false
		}
	}

	if !r.rows.Next() {
		r.err = r.rows.Err()
		r.close()
		return false
	}

	scan := make([]interface{}, len(r.columns))
	ptrs := make([]interface{}, len(r.columns))
	for i := range scan {
		ptrs[i] = &scan[i]
	}
	if err := r.rows.Scan(ptrs...); err != nil {
		r.err = fmt.Errorf("scanning row: %w", err)
		r.close()
		return false
	}

	r.values = scan
	return true
}

// Values returns the current row, valid until the next Next call.
func (r *RowSequence) Values() []interface{} {
	return r.values
}

// Columns returns the result column names. Calling it before the first Next
// opens the cursor.
func (r *RowSequence) Columns() ([]string, error) {
	switch r.state {
	case seqClosed:
		if r.columns == nil {
			if r.err != nil {
				return nil, r.err
			}
			return nil, ErrSequenceClosed
		}
	case seqIdle:
		if err := r.open(); err != nil {
			r.err = err
			r.close()
			return nil, err
		}
	}
	return r.columns, nil
}

// Err returns the first error encountered while streaming, if any.
func (r *RowSequence) Err() error {
	return r.err
}

// Close releases the cursor and any connection the sequence owns. Safe to
// call more than once; after Close, Next returns false.
func (r *RowSequence) Close() error {
	return r.close()
}

func (r *RowSequence) close() error {
	if r.state == seqClosed {
		return nil
	}
	r.state = seqClosed

	var errs []error
	if r.rows != nil {
		if err := r.rows.Close(); err != nil {
			errs = append(errs, err)
		}
		r.rows = nil
	}
	if r.release != nil {
		if err := r.release(); err != nil {
			errs = append(errs, err)
		}
		r.release = nil
	}
	return errors.Join(errs...)
}
