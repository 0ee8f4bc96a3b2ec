// Package postgres provides the PostgreSQL backend connector.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver

	"github.com/gitter-badger/quark/pkg/catalog"
	"github.com/gitter-badger/quark/pkg/connector"
	"github.com/gitter-badger/quark/pkg/dbcapabilities"
)

const catalogSQL = `SELECT table_schema, table_name, column_name, data_type
FROM information_schema.columns
WHERE table_schema NOT IN ('pg_catalog', 'information_schema')
ORDER BY table_schema, table_name, ordinal_position`

var typeMap = catalog.MustTypeMap([][2]string{
	{"character varying.*|character.*|varchar.*|char.*|text|name|citext|uuid", catalog.TypeString},
	{"smallint|int2", catalog.TypeSmallint},
	{"integer|int|int4|serial", catalog.TypeInteger},
	{"bigint|int8|bigserial", catalog.TypeBigint},
	{"numeric.*|decimal.*|money", catalog.TypeDecimal},
	{"double precision|float8", catalog.TypeDouble},
	{"real|float4", catalog.TypeFloat},
	{"boolean|bool", catalog.TypeBoolean},
	{"date", catalog.TypeDate},
	{"time.*without time zone|time", catalog.TypeTime},
	{"timestamp.*", catalog.TypeTimestamp},
	{"bytea", catalog.TypeBinary},
})

// Connector implements connector.Connector for PostgreSQL.
type Connector struct {
	connector.Base
}

// New creates a PostgreSQL connector for the endpoint. The endpoint URL is
// the address part of a postgres URL, e.g. "db.example.com:5432/sales" or
// "db.example.com:5432/sales?sslmode=require".
func New(endpoint connector.Endpoint) (connector.Connector, error) {
	if err := endpoint.Validate(dbcapabilities.PostgreSQL); err != nil {
		return nil, err
	}
	return &Connector{Base: connector.NewBase(endpoint)}, nil
}

// Type returns the backend type identifier.
func (c *Connector) Type() dbcapabilities.DatabaseID {
	return dbcapabilities.PostgreSQL
}

// Capabilities returns the capability metadata for PostgreSQL.
func (c *Connector) Capabilities() dbcapabilities.Capability {
	return dbcapabilities.MustGet(dbcapabilities.PostgreSQL)
}

// CatalogSQL returns the PostgreSQL catalog query.
func (c *Connector) CatalogSQL() string {
	return catalogSQL
}

// TypeMap returns the PostgreSQL native-type mappings.
func (c *Connector) TypeMap() catalog.TypeMap {
	return typeMap
}

// Connect opens a connection to the PostgreSQL database and verifies it.
func (c *Connector) Connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn(c.Endpoint()))
	if err != nil {
		return nil, connector.NewConnectionError(
			dbcapabilities.PostgreSQL,
			c.Endpoint().URL,
			fmt.Errorf("error opening database: %w", err),
		)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, connector.NewConnectionError(
			dbcapabilities.PostgreSQL,
			c.Endpoint().URL,
			fmt.Errorf("error pinging database: %w", err),
		)
	}

	return db, nil
}

func dsn(e connector.Endpoint) string {
	return fmt.Sprintf("postgres://%s@%s", url.UserPassword(e.Username, e.Password), e.URL)
}
