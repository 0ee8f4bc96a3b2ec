// Package catalog defines the schema model produced by backend discovery.
//
// Discovery folds the flat (schema, table, column, type) rows of a backend's
// catalog query into a Schema → Table → Column tree. The tree is built once
// and handed to the caller; nothing here mutates it afterward.
package catalog

import "github.com/gitter-badger/quark/pkg/dbcapabilities"

// Canonical type names shared across all backends. Every backend's native
// type names are mapped into this vocabulary during discovery; native types
// without a mapping are carried through verbatim.
const (
	TypeString    = "STRING"
	TypeInteger   = "INTEGER"
	TypeBigint    = "BIGINT"
	TypeSmallint  = "SMALLINT"
	TypeTinyint   = "TINYINT"
	TypeDouble    = "DOUBLE"
	TypeFloat     = "FLOAT"
	TypeDecimal   = "DECIMAL"
	TypeBoolean   = "BOOLEAN"
	TypeDate      = "DATE"
	TypeTime      = "TIME"
	TypeTimestamp = "TIMESTAMP"
	TypeBinary    = "BINARY"
)

// Column is a single table column with its canonical type.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Table is an ordered list of columns. Column order follows the backend's
// catalog query order.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Schema maps table names to tables within one backend schema.
type Schema struct {
	Name   string           `json:"name"`
	Tables map[string]Table `json:"tables"`
}

// Catalog is the full schema tree of one backend, keyed by schema name.
// This is the sole artifact returned by discovery; ownership transfers to
// the caller.
type Catalog struct {
	Backend dbcapabilities.DatabaseID `json:"backend"`
	Schemas map[string]Schema         `json:"schemas"`
}

// NewCatalog returns an empty catalog for the given backend.
func NewCatalog(backend dbcapabilities.DatabaseID) Catalog {
	return Catalog{
		Backend: backend,
		Schemas: make(map[string]Schema),
	}
}

// Schema returns the named schema and whether it exists.
func (c Catalog) Schema(name string) (Schema, bool) {
	s, ok := c.Schemas[name]
	return s, ok
}

// Table returns the named table within the named schema.
func (c Catalog) Table(schema, table string) (Table, bool) {
	s, ok := c.Schemas[schema]
	if !ok {
		return Table{}, false
	}
	t, ok := s.Tables[table]
	return t, ok
}

// TableCount returns the total number of tables across all schemas.
func (c Catalog) TableCount() int {
	n := 0
	for _, s := range c.Schemas {
		n += len(s.Tables)
	}
	return n
}
