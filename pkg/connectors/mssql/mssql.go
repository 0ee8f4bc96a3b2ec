// Package mssql provides the Microsoft SQL Server backend connector.
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/microsoft/go-mssqldb" // SQL Server driver

	"github.com/gitter-badger/quark/pkg/catalog"
	"github.com/gitter-badger/quark/pkg/connector"
	"github.com/gitter-badger/quark/pkg/dbcapabilities"
)

const catalogSQL = `SELECT table_schema, table_name, column_name, data_type
FROM information_schema.columns
WHERE table_schema NOT IN ('sys', 'INFORMATION_SCHEMA')
ORDER BY table_schema, table_name, ordinal_position`

var typeMap = catalog.MustTypeMap([][2]string{
	{"n?varchar.*|n?char.*|n?text|sysname|uniqueidentifier|xml", catalog.TypeString},
	{"tinyint", catalog.TypeTinyint},
	{"smallint", catalog.TypeSmallint},
	{"int", catalog.TypeInteger},
	{"bigint", catalog.TypeBigint},
	{"decimal.*|numeric.*|money|smallmoney", catalog.TypeDecimal},
	{"float.*", catalog.TypeDouble},
	{"real", catalog.TypeFloat},
	{"bit", catalog.TypeBoolean},
	{"datetime.*|smalldatetime", catalog.TypeTimestamp},
	// SQL Server "timestamp" is a row version, not a point in time; it must
	// be matched before the time patterns below.
	{"timestamp|rowversion|binary.*|varbinary.*|image", catalog.TypeBinary},
	{"date", catalog.TypeDate},
	{"time.*", catalog.TypeTime},
})

// Connector implements connector.Connector for Microsoft SQL Server.
type Connector struct {
	connector.Base
}

// New creates a SQL Server connector for the endpoint. The endpoint URL is
// "host:port" with driver options, e.g. "db.example.com:1433?database=sales".
func New(endpoint connector.Endpoint) (connector.Connector, error) {
	if err := endpoint.Validate(dbcapabilities.SQLServer); err != nil {
		return nil, err
	}
	return &Connector{Base: connector.NewBase(endpoint)}, nil
}

// Type returns the backend type identifier.
func (c *Connector) Type() dbcapabilities.DatabaseID {
	return dbcapabilities.SQLServer
}

// Capabilities returns the capability metadata for SQL Server.
func (c *Connector) Capabilities() dbcapabilities.Capability {
	return dbcapabilities.MustGet(dbcapabilities.SQLServer)
}

// CatalogSQL returns the SQL Server catalog query.
func (c *Connector) CatalogSQL() string {
	return catalogSQL
}

// TypeMap returns the SQL Server native-type mappings.
func (c *Connector) TypeMap() catalog.TypeMap {
	return typeMap
}

// Connect opens a connection to the SQL Server database and verifies it.
func (c *Connector) Connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlserver", dsn(c.Endpoint()))
	if err != nil {
		return nil, connector.NewConnectionError(
			dbcapabilities.SQLServer,
			c.Endpoint().URL,
			fmt.Errorf("error opening database: %w", err),
		)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, connector.NewConnectionError(
			dbcapabilities.SQLServer,
			c.Endpoint().URL,
			fmt.Errorf("error pinging database: %w", err),
		)
	}

	return db, nil
}

func dsn(e connector.Endpoint) string {
	return fmt.Sprintf("sqlserver://%s@%s", url.UserPassword(e.Username, e.Password), e.URL)
}
