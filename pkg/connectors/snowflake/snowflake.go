// Package snowflake provides the Snowflake backend connector.
package snowflake

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/snowflakedb/gosnowflake" // Snowflake driver

	"github.com/gitter-badger/quark/pkg/catalog"
	"github.com/gitter-badger/quark/pkg/connector"
	"github.com/gitter-badger/quark/pkg/dbcapabilities"
)

const catalogSQL = `SELECT table_schema, table_name, column_name, data_type
FROM information_schema.columns
WHERE table_schema <> 'INFORMATION_SCHEMA'
ORDER BY table_schema, table_name, ordinal_position`

// Snowflake reports native types in upper case.
var typeMap = catalog.MustTypeMap([][2]string{
	{`TEXT|VARCHAR.*|CHAR.*|STRING`, catalog.TypeString},
	{`NUMBER\(38,0\)|INT|INTEGER|BIGINT|SMALLINT|TINYINT|BYTEINT`, catalog.TypeBigint},
	{`NUMBER.*|DECIMAL.*|NUMERIC.*`, catalog.TypeDecimal},
	{`FLOAT.*|DOUBLE.*|REAL`, catalog.TypeDouble},
	{`BOOLEAN`, catalog.TypeBoolean},
	{`DATE`, catalog.TypeDate},
	// TIMESTAMP variants must be matched before the bare TIME pattern.
	{`TIMESTAMP_NTZ.*|TIMESTAMP_LTZ.*|TIMESTAMP_TZ.*|DATETIME`, catalog.TypeTimestamp},
	{`TIME.*`, catalog.TypeTime},
	{`BINARY.*|VARBINARY.*`, catalog.TypeBinary},
})

// Connector implements connector.Connector for Snowflake.
type Connector struct {
	connector.Base
}

// New creates a Snowflake connector for the endpoint. The endpoint URL is
// "account/database" with optional driver options, e.g.
// "xy12345.eu-west-1/SALES?warehouse=ANALYTICS_WH".
func New(endpoint connector.Endpoint) (connector.Connector, error) {
	if err := endpoint.Validate(dbcapabilities.Snowflake); err != nil {
		return nil, err
	}
	return &Connector{Base: connector.NewBase(endpoint)}, nil
}

// Type returns the backend type identifier.
func (c *Connector) Type() dbcapabilities.DatabaseID {
	return dbcapabilities.Snowflake
}

// Capabilities returns the capability metadata for Snowflake.
func (c *Connector) Capabilities() dbcapabilities.Capability {
	return dbcapabilities.MustGet(dbcapabilities.Snowflake)
}

// CatalogSQL returns the Snowflake catalog query.
func (c *Connector) CatalogSQL() string {
	return catalogSQL
}

// TypeMap returns the Snowflake native-type mappings.
func (c *Connector) TypeMap() catalog.TypeMap {
	return typeMap
}

// Connect opens a connection to the Snowflake database and verifies it.
func (c *Connector) Connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("snowflake", dsn(c.Endpoint()))
	if err != nil {
		return nil, connector.NewConnectionError(
			dbcapabilities.Snowflake,
			c.Endpoint().URL,
			fmt.Errorf("error opening database: %w", err),
		)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, connector.NewConnectionError(
			dbcapabilities.Snowflake,
			c.Endpoint().URL,
			fmt.Errorf("error pinging database: %w", err),
		)
	}

	return db, nil
}

func dsn(e connector.Endpoint) string {
	return fmt.Sprintf("%s:%s@%s", e.Username, e.Password, e.URL)
}
