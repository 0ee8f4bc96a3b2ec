// Package redshift provides the Amazon Redshift backend connector.
package redshift

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/lib/pq" // PostgreSQL driver (Redshift compatible)

	"github.com/gitter-badger/quark/pkg/catalog"
	"github.com/gitter-badger/quark/pkg/connector"
	"github.com/gitter-badger/quark/pkg/dbcapabilities"
)

// catalogSQL uses SVV_COLUMNS, which covers late-binding views and external
// tables that information_schema misses on Redshift.
const catalogSQL = `SELECT table_schema, table_name, column_name, data_type
FROM svv_columns
WHERE table_schema NOT IN ('pg_catalog', 'information_schema')
ORDER BY table_schema, table_name, ordinal_position`

var typeMap = catalog.MustTypeMap([][2]string{
	{"character varying.*|varchar.*|character.*|char.*|bpchar|text", catalog.TypeString},
	{"smallint|int2", catalog.TypeSmallint},
	{"integer|int|int4", catalog.TypeInteger},
	{"bigint|int8", catalog.TypeBigint},
	{"numeric.*|decimal.*", catalog.TypeDecimal},
	{"double precision|float8|float", catalog.TypeDouble},
	{"real|float4", catalog.TypeFloat},
	{"boolean|bool", catalog.TypeBoolean},
	{"date", catalog.TypeDate},
	{"time.*without time zone|time", catalog.TypeTime},
	{"timestamp.*", catalog.TypeTimestamp},
})

// Connector implements connector.Connector for Amazon Redshift.
type Connector struct {
	connector.Base
}

// New creates a Redshift connector for the endpoint. The endpoint URL is
// the address part of a postgres URL, e.g.
// "cluster.abc123.us-east-1.redshift.amazonaws.com:5439/analytics".
func New(endpoint connector.Endpoint) (connector.Connector, error) {
	if err := endpoint.Validate(dbcapabilities.Redshift); err != nil {
		return nil, err
	}
	return &Connector{Base: connector.NewBase(endpoint)}, nil
}

// Type returns the backend type identifier.
func (c *Connector) Type() dbcapabilities.DatabaseID {
	return dbcapabilities.Redshift
}

// Capabilities returns the capability metadata for Redshift.
func (c *Connector) Capabilities() dbcapabilities.Capability {
	return dbcapabilities.MustGet(dbcapabilities.Redshift)
}

// CatalogSQL returns the Redshift catalog query.
func (c *Connector) CatalogSQL() string {
	return catalogSQL
}

// TypeMap returns the Redshift native-type mappings.
func (c *Connector) TypeMap() catalog.TypeMap {
	return typeMap
}

// Connect opens a connection to the Redshift cluster and verifies it.
func (c *Connector) Connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn(c.Endpoint()))
	if err != nil {
		return nil, connector.NewConnectionError(
			dbcapabilities.Redshift,
			c.Endpoint().URL,
			fmt.Errorf("error opening database: %w", err),
		)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, connector.NewConnectionError(
			dbcapabilities.Redshift,
			c.Endpoint().URL,
			fmt.Errorf("error pinging database: %w", err),
		)
	}

	return db, nil
}

func dsn(e connector.Endpoint) string {
	return fmt.Sprintf("postgres://%s@%s", url.UserPassword(e.Username, e.Password), e.URL)
}
