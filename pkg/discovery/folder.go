package discovery

import (
	"fmt"
	"strings"

	"github.com/gitter-badger/quark/pkg/catalog"
	"github.com/gitter-badger/quark/pkg/connector"
	"github.com/gitter-badger/quark/pkg/dbcapabilities"
)

// folder is the state machine behind the streaming group-by. It groups on
// the raw (schema, table) key exactly as the backend returned it; case
// normalization applies only when a name is stored in the tree.
//
// States: empty (no row seen yet) → open (a schema and table group are
// accumulating) → done (finish called). Group boundaries are detected by
// comparing each row's raw key to the current one.
type folder struct {
	backend       dbcapabilities.DatabaseID
	typeMap       catalog.TypeMap
	caseSensitive bool
	strict        bool

	cat catalog.Catalog

	open      bool
	schemaKey string // raw schema key of the accumulating group
	tableKey  string // raw table key of the accumulating group
	tables    map[string]catalog.Table
	columns   []catalog.Column

	// flushed group keys, populated only in strict mode
	seenSchemas map[string]struct{}
	seenTables  map[string]struct{}
}

func newFolder(backend dbcapabilities.DatabaseID, tm catalog.TypeMap, caseSensitive, strict bool) *folder {
	f := &folder{
		backend:       backend,
		typeMap:       tm,
		caseSensitive: caseSensitive,
		strict:        strict,
		cat:           catalog.NewCatalog(backend),
	}
	if strict {
		f.seenSchemas = make(map[string]struct{})
		f.seenTables = make(map[string]struct{})
	}
	return f
}

// normalize applies the backend's identifier-case policy. Type names are
// never normalized.
func (f *folder) normalize(identifier string) string {
	if f.caseSensitive {
		return identifier
	}
	return strings.ToUpper(identifier)
}

// add feeds one catalog row into the fold.
func (f *folder) add(schema, table, column, nativeType string) error {
	switch {
	case !f.open:
		f.openSchema(schema)
		f.openTable(table)
	case schema != f.schemaKey:
		f.flushTable()
		f.flushSchema()
		if err := f.checkUnseen(schema, ""); err != nil {
			return err
		}
		f.openSchema(schema)
		f.openTable(table)
	case table != f.tableKey:
		f.flushTable()
		if err := f.checkUnseen(schema, table); err != nil {
			return err
		}
		f.openTable(table)
	}
	f.open = true

	f.columns = append(f.columns, catalog.Column{
		Name: f.normalize(column),
		Type: f.typeMap.Resolve(nativeType),
	})
	return nil
}

// finish flushes the trailing group and returns the completed catalog.
func (f *folder) finish() catalog.Catalog {
	if f.open {
		f.flushTable()
		f.flushSchema()
		f.open = false
	}
	return f.cat
}

func (f *folder) openSchema(schema string) {
	f.schemaKey = schema
	f.tables = make(map[string]catalog.Table)
}

func (f *folder) openTable(table string) {
	f.tableKey = table
	f.columns = nil
}

func (f *folder) flushTable() {
	name := f.normalize(f.tableKey)
	f.tables[name] = catalog.Table{Name: name, Columns: f.columns}
	if f.strict {
		f.seenTables[f.schemaKey+"\x00"+f.tableKey] = struct{}{}
	}
}

func (f *folder) flushSchema() {
	name := f.normalize(f.schemaKey)
	f.cat.Schemas[name] = catalog.Schema{Name: name, Tables: f.tables}
	if f.strict {
		f.seenSchemas[f.schemaKey] = struct{}{}
	}
}

// checkUnseen rejects a group key that recurs after its group was flushed.
// Only active in strict mode; table is empty when checking a schema key.
func (f *folder) checkUnseen(schema, table string) error {
	if !f.strict {
		return nil
	}
	if table == "" {
		if _, seen := f.seenSchemas[schema]; seen {
			return fmt.Errorf("%w: schema %q recurs after its group ended",
				connector.ErrOrderingViolation, schema)
		}
		return nil
	}
	if _, seen := f.seenTables[schema+"\x00"+table]; seen {
		return fmt.Errorf("%w: table %q.%q recurs after its group ended",
			connector.ErrOrderingViolation, schema, table)
	}
	return nil
}
