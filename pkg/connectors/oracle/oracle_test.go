package oracle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitter-badger/quark/pkg/catalog"
	"github.com/gitter-badger/quark/pkg/connector"
	"github.com/gitter-badger/quark/pkg/dbcapabilities"
)

func testEndpoint() connector.Endpoint {
	return connector.Endpoint{
		URL:      "db.example.com:1521/ORCLPDB1",
		Username: "reader",
		Password: "secret",
	}
}

func TestNew(t *testing.T) {
	c, err := New(testEndpoint())
	require.NoError(t, err)
	assert.Equal(t, dbcapabilities.Oracle, c.Type())
	assert.False(t, c.IsCaseSensitive())

	_, err = New(connector.Endpoint{Username: "u", Password: "p"})
	require.Error(t, err)
	assert.True(t, connector.IsConfigurationError(err))
}

func TestCatalogSQLShape(t *testing.T) {
	c, err := New(testEndpoint())
	require.NoError(t, err)

	sql := strings.ToLower(c.CatalogSQL())
	assert.Contains(t, sql, "all_tab_columns")
	assert.Contains(t, sql, "order by owner, table_name, column_id")
}

func TestTypeMap(t *testing.T) {
	tests := []struct {
		native string
		want   string
	}{
		{"VARCHAR2(100)", catalog.TypeString},
		{"NVARCHAR2(50)", catalog.TypeString},
		{"CHAR(1)", catalog.TypeString},
		{"CLOB", catalog.TypeString},
		{"NUMBER(3,0)", catalog.TypeTinyint},
		{"NUMBER(5,0)", catalog.TypeSmallint},
		{"NUMBER(10,0)", catalog.TypeInteger},
		{"NUMBER(19,0)", catalog.TypeBigint},
		{"NUMBER(18,2)", catalog.TypeDecimal},
		{"NUMBER", catalog.TypeDecimal},
		{"FLOAT(126)", catalog.TypeDecimal},
		{"BINARY_DOUBLE", catalog.TypeDouble},
		{"BINARY_FLOAT", catalog.TypeFloat},
		{"DATE", catalog.TypeDate},
		{"TIMESTAMP(6)", catalog.TypeTimestamp},
		{"TIMESTAMP(6) WITH TIME ZONE", catalog.TypeTimestamp},
		{"BLOB", catalog.TypeBinary},
		{"RAW(16)", catalog.TypeBinary},
		{"SDO_GEOMETRY", "SDO_GEOMETRY"}, // unmatched passes through
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, typeMap.Resolve(tt.native), "Resolve(%q)", tt.native)
	}
}

func TestDSN(t *testing.T) {
	assert.Equal(t,
		`user="reader" password="secret" connectString="db.example.com:1521/ORCLPDB1"`,
		dsn(testEndpoint()))
}
