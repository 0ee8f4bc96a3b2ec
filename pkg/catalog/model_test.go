package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitter-badger/quark/pkg/dbcapabilities"
)

func TestCatalogLookups(t *testing.T) {
	cat := NewCatalog(dbcapabilities.PostgreSQL)
	cat.Schemas["SALES"] = Schema{
		Name: "SALES",
		Tables: map[string]Table{
			"ORDERS": {
				Name: "ORDERS",
				Columns: []Column{
					{Name: "ID", Type: TypeBigint},
					{Name: "PLACED_AT", Type: TypeTimestamp},
				},
			},
			"CUSTOMERS": {
				Name:    "CUSTOMERS",
				Columns: []Column{{Name: "ID", Type: TypeBigint}},
			},
		},
	}

	schema, ok := cat.Schema("SALES")
	require.True(t, ok)
	assert.Equal(t, "SALES", schema.Name)

	_, ok = cat.Schema("HR")
	assert.False(t, ok)

	table, ok := cat.Table("SALES", "ORDERS")
	require.True(t, ok)
	require.Len(t, table.Columns, 2)
	assert.Equal(t, TypeBigint, table.Columns[0].Type)

	_, ok = cat.Table("SALES", "INVOICES")
	assert.False(t, ok)
	_, ok = cat.Table("HR", "ORDERS")
	assert.False(t, ok)

	assert.Equal(t, 2, cat.TableCount())
	assert.Equal(t, dbcapabilities.PostgreSQL, cat.Backend)
}
