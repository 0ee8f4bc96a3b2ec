// Package mysql provides the MySQL backend connector.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // MySQL driver

	"github.com/gitter-badger/quark/pkg/catalog"
	"github.com/gitter-badger/quark/pkg/connector"
	"github.com/gitter-badger/quark/pkg/dbcapabilities"
)

// catalogSQL enumerates every user column, ordered by (schema, table) as
// discovery requires. column_type carries the full native type, e.g.
// "varchar(255)".
const catalogSQL = `SELECT table_schema, table_name, column_name, column_type
FROM information_schema.columns
WHERE table_schema NOT IN ('information_schema', 'performance_schema', 'mysql', 'sys')
ORDER BY table_schema, table_name, ordinal_position`

var typeMap = catalog.MustTypeMap([][2]string{
	{"varchar.*|char.*|tinytext|text|mediumtext|longtext|enum.*|set.*", catalog.TypeString},
	{"tinyint\\(1\\)", catalog.TypeBoolean},
	{"tinyint.*", catalog.TypeTinyint},
	{"smallint.*", catalog.TypeSmallint},
	{"mediumint.*|int.*", catalog.TypeInteger},
	{"bigint.*", catalog.TypeBigint},
	{"decimal.*|numeric.*", catalog.TypeDecimal},
	{"double.*", catalog.TypeDouble},
	{"float.*", catalog.TypeFloat},
	{"bit.*", catalog.TypeBoolean},
	{"date", catalog.TypeDate},
	{"time", catalog.TypeTime},
	{"datetime.*|timestamp.*|year.*", catalog.TypeTimestamp},
	{"binary.*|varbinary.*|tinyblob|blob|mediumblob|longblob", catalog.TypeBinary},
})

// Connector implements connector.Connector for MySQL.
type Connector struct {
	connector.Base
}

// New creates a MySQL connector for the endpoint. The endpoint URL uses the
// driver's address form, e.g. "tcp(db.example.com:3306)/sales".
func New(endpoint connector.Endpoint) (connector.Connector, error) {
	if err := endpoint.Validate(dbcapabilities.MySQL); err != nil {
		return nil, err
	}
	return &Connector{Base: connector.NewBase(endpoint)}, nil
}

// Type returns the backend type identifier.
func (c *Connector) Type() dbcapabilities.DatabaseID {
	return dbcapabilities.MySQL
}

// Capabilities returns the capability metadata for MySQL.
func (c *Connector) Capabilities() dbcapabilities.Capability {
	return dbcapabilities.MustGet(dbcapabilities.MySQL)
}

// CatalogSQL returns the MySQL catalog query.
func (c *Connector) CatalogSQL() string {
	return catalogSQL
}

// TypeMap returns the MySQL native-type mappings.
func (c *Connector) TypeMap() catalog.TypeMap {
	return typeMap
}

// IsCaseSensitive reports true: MySQL table names are case-significant on
// most deployments, so identifiers are stored as the backend returned them.
func (c *Connector) IsCaseSensitive() bool {
	return true
}

// Connect opens a connection to the MySQL database and verifies it.
func (c *Connector) Connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn(c.Endpoint()))
	if err != nil {
		return nil, connector.NewConnectionError(
			dbcapabilities.MySQL,
			c.Endpoint().URL,
			fmt.Errorf("error opening database: %w", err),
		)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, connector.NewConnectionError(
			dbcapabilities.MySQL,
			c.Endpoint().URL,
			fmt.Errorf("error pinging database: %w", err),
		)
	}

	return db, nil
}

func dsn(e connector.Endpoint) string {
	return fmt.Sprintf("%s:%s@%s", e.Username, e.Password, e.URL)
}
