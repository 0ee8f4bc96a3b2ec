package engine

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitter-badger/quark/pkg/catalog"
	"github.com/gitter-badger/quark/pkg/connector"
	"github.com/gitter-badger/quark/pkg/dbcapabilities"
)

const testQuery = "SELECT id, name FROM users"

func newMockConn(t *testing.T) (*sql.Conn, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	conn, err := db.Conn(context.Background())
	require.NoError(t, err)
	return conn, mock, func() {
		conn.Close()
		db.Close()
	}
}

func expectUsersQuery(mock sqlmock.Sqlmock) *sqlmock.ExpectedQuery {
	return mock.ExpectQuery(regexp.QuoteMeta(testQuery))
}

func usersRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name"}).
		AddRow(int64(1), "ada").
		AddRow(int64(2), "grace")
}

func TestRowSequenceStreamsInCursorOrder(t *testing.T) {
	conn, mock, cleanup := newMockConn(t)
	defer cleanup()
	expectUsersQuery(mock).WillReturnRows(usersRows())

	seq := Execute(context.Background(), NewSingleConnSource(conn), testQuery)

	var got [][]interface{}
	for seq.Next() {
		row := make([]interface{}, len(seq.Values()))
		copy(row, seq.Values())
		got = append(got, row)
	}
	require.NoError(t, seq.Err())

	assert.Equal(t, [][]interface{}{
		{int64(1), "ada"},
		{int64(2), "grace"},
	}, got)

	// Exhausted: the sequence does not restart.
	assert.False(t, seq.Next())
	assert.NoError(t, seq.Err())
}

func TestRowSequenceIsLazy(t *testing.T) {
	conn, mock, cleanup := newMockConn(t)
	defer cleanup()
	expectUsersQuery(mock).WillReturnRows(usersRows())

	seq := Execute(context.Background(), NewSingleConnSource(conn), testQuery)

	// Nothing has touched the backend yet.
	assert.Error(t, mock.ExpectationsWereMet())

	require.True(t, seq.Next())
	require.NoError(t, seq.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRowSequenceColumns(t *testing.T) {
	conn, mock, cleanup := newMockConn(t)
	defer cleanup()
	expectUsersQuery(mock).WillReturnRows(usersRows())

	seq := Execute(context.Background(), NewSingleConnSource(conn), testQuery)
	cols, err := seq.Columns()
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, cols)

	// Columns opened the cursor; rows still stream from the start.
	require.True(t, seq.Next())
	assert.Equal(t, int64(1), seq.Values()[0])
	require.NoError(t, seq.Close())
}

func TestRowSequenceQueryError(t *testing.T) {
	conn, mock, cleanup := newMockConn(t)
	defer cleanup()
	boom := errors.New("table not found")
	expectUsersQuery(mock).WillReturnError(boom)

	seq := Execute(context.Background(), NewSingleConnSource(conn), testQuery)
	assert.False(t, seq.Next())
	require.Error(t, seq.Err())
	assert.ErrorIs(t, seq.Err(), boom)

	// Failed sequences are closed; consuming further stays a no-op.
	assert.False(t, seq.Next())
	_, err := seq.Columns()
	assert.ErrorIs(t, err, boom)
}

func TestRowSequenceCloseIsIdempotent(t *testing.T) {
	conn, mock, cleanup := newMockConn(t)
	defer cleanup()
	expectUsersQuery(mock).WillReturnRows(usersRows())

	seq := Execute(context.Background(), NewSingleConnSource(conn), testQuery)
	require.True(t, seq.Next())

	assert.NoError(t, seq.Close())
	assert.NoError(t, seq.Close())
	assert.False(t, seq.Next())
}

func TestRowSequenceEarlyCloseReleasesCursor(t *testing.T) {
	conn, mock, cleanup := newMockConn(t)
	defer cleanup()
	expectUsersQuery(mock).WillReturnRows(usersRows())

	seq := Execute(context.Background(), NewSingleConnSource(conn), testQuery)
	require.True(t, seq.Next())
	require.NoError(t, seq.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSingleConnSourceHandsBackSameConnection(t *testing.T) {
	conn, _, cleanup := newMockConn(t)
	defer cleanup()

	src := NewSingleConnSource(conn)
	for i := 0; i < 3; i++ {
		got, err := src.Connection(context.Background())
		require.NoError(t, err)
		assert.Same(t, conn, got)
	}
}

// bridgeConnector serves a sqlmock-backed database to the Bridge.
type bridgeConnector struct {
	connector.Base
	db         *sql.DB
	connectErr error
	cleanupErr error
	cleanups   int
}

func (f *bridgeConnector) Type() dbcapabilities.DatabaseID { return dbcapabilities.PostgreSQL }
func (f *bridgeConnector) Capabilities() dbcapabilities.Capability {
	return dbcapabilities.MustGet(dbcapabilities.PostgreSQL)
}
func (f *bridgeConnector) CatalogSQL() string       { return "" }
func (f *bridgeConnector) TypeMap() catalog.TypeMap { return catalog.TypeMap{} }
func (f *bridgeConnector) Cleanup() error {
	f.cleanups++
	return f.cleanupErr
}
func (f *bridgeConnector) Connect(context.Context) (*sql.DB, error) {
	if f.connectErr != nil {
		return nil, f.connectErr
	}
	return f.db, nil
}

func TestBridgeExecuteQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	fake := &bridgeConnector{db: db}

	expectUsersQuery(mock).WillReturnRows(usersRows())
	mock.ExpectClose()

	bridge := NewBridge(fake)
	seq, err := bridge.ExecuteQuery(context.Background(), testQuery)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.cleanups)

	var count int
	for seq.Next() {
		count++
	}
	require.NoError(t, seq.Err())
	assert.Equal(t, 2, count)

	// Exhaustion released the connection the sequence owned.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBridgeExecuteQueryCleanupFailure(t *testing.T) {
	fake := &bridgeConnector{cleanupErr: errors.New("stale cursor")}

	bridge := NewBridge(fake)
	_, err := bridge.ExecuteQuery(context.Background(), testQuery)
	require.Error(t, err)

	var dbErr *connector.DatabaseError
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, "cleanup", dbErr.Operation)
}

func TestBridgeExecuteQueryConnectFailure(t *testing.T) {
	fake := &bridgeConnector{
		connectErr: connector.NewConnectionError(dbcapabilities.PostgreSQL, "db:5432", errors.New("refused")),
	}

	bridge := NewBridge(fake)
	_, err := bridge.ExecuteQuery(context.Background(), testQuery)
	require.Error(t, err)
	assert.True(t, connector.IsConnectionError(err))
	assert.Equal(t, 1, fake.cleanups)
}

func TestBridgeExecuteOnExistingConnection(t *testing.T) {
	conn, mock, cleanup := newMockConn(t)
	defer cleanup()
	expectUsersQuery(mock).WillReturnRows(usersRows())

	fake := &bridgeConnector{}
	bridge := NewBridge(fake)

	seq := bridge.Execute(context.Background(), conn, testQuery)
	require.True(t, seq.Next())
	assert.Equal(t, "ada", seq.Values()[1])
	require.NoError(t, seq.Close())

	// The caller still owns the connection.
	assert.NoError(t, conn.PingContext(context.Background()))
}
