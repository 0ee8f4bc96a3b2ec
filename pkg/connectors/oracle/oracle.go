// Package oracle provides the Oracle Database backend connector.
package oracle

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/godror/godror" // Oracle driver

	"github.com/gitter-badger/quark/pkg/catalog"
	"github.com/gitter-badger/quark/pkg/connector"
	"github.com/gitter-badger/quark/pkg/dbcapabilities"
)

const catalogSQL = `SELECT owner, table_name, column_name, data_type
FROM all_tab_columns
WHERE owner NOT IN ('SYS', 'SYSTEM', 'SYSAUX', 'CTXSYS', 'MDSYS', 'XDB', 'OUTLN', 'DBSNMP')
ORDER BY owner, table_name, column_id`

// Oracle reports native types in upper case.
var typeMap = catalog.MustTypeMap([][2]string{
	{`N?VARCHAR2?\(.*\)|N?CHAR\(.*\)|CHAR|CLOB|NCLOB|LONG|ROWID|UROWID.*`, catalog.TypeString},
	{`NUMBER\(3,0\)`, catalog.TypeTinyint},
	{`NUMBER\(5,0\)`, catalog.TypeSmallint},
	{`NUMBER\(10,0\)`, catalog.TypeInteger},
	{`NUMBER\(19,0\)`, catalog.TypeBigint},
	{`NUMBER.*|FLOAT.*`, catalog.TypeDecimal},
	{`BINARY_DOUBLE`, catalog.TypeDouble},
	{`BINARY_FLOAT`, catalog.TypeFloat},
	{`DATE`, catalog.TypeDate},
	{`TIMESTAMP.*`, catalog.TypeTimestamp},
	{`BLOB|RAW.*|LONG RAW|BFILE`, catalog.TypeBinary},
})

// Connector implements connector.Connector for Oracle Database.
type Connector struct {
	connector.Base
}

// New creates an Oracle connector for the endpoint. The endpoint URL is a
// connect string, e.g. "db.example.com:1521/ORCLPDB1".
func New(endpoint connector.Endpoint) (connector.Connector, error) {
	if err := endpoint.Validate(dbcapabilities.Oracle); err != nil {
		return nil, err
	}
	return &Connector{Base: connector.NewBase(endpoint)}, nil
}

// Type returns the backend type identifier.
func (c *Connector) Type() dbcapabilities.DatabaseID {
	return dbcapabilities.Oracle
}

// Capabilities returns the capability metadata for Oracle.
func (c *Connector) Capabilities() dbcapabilities.Capability {
	return dbcapabilities.MustGet(dbcapabilities.Oracle)
}

// CatalogSQL returns the Oracle catalog query.
func (c *Connector) CatalogSQL() string {
	return catalogSQL
}

// TypeMap returns the Oracle native-type mappings.
func (c *Connector) TypeMap() catalog.TypeMap {
	return typeMap
}

// Connect opens a connection to the Oracle database and verifies it.
func (c *Connector) Connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("godror", dsn(c.Endpoint()))
	if err != nil {
		return nil, connector.NewConnectionError(
			dbcapabilities.Oracle,
			c.Endpoint().URL,
			fmt.Errorf("error opening database: %w", err),
		)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, connector.NewConnectionError(
			dbcapabilities.Oracle,
			c.Endpoint().URL,
			fmt.Errorf("error pinging database: %w", err),
		)
	}

	return db, nil
}

func dsn(e connector.Endpoint) string {
	return fmt.Sprintf(`user=%q password=%q connectString=%q`, e.Username, e.Password, e.URL)
}
