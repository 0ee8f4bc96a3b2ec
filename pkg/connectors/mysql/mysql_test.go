package mysql

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
		URL:      "tcp(db.example.com:3306)/sales",
		Username: "reader",
		Password: "secret",
	}
}

func TestNew(t *testing.T) {
	c, err := New(testEndpoint())
	require.NoError(t, err)
	assert.Equal(t, dbcapabilities.MySQL, c.Type())
	assert.True(t, c.IsCaseSensitive())

	_, err = New(connector.Endpoint{URL: "tcp(h:3306)/db"})
	require.Error(t, err)
	assert.True(t, connector.IsConfigurationError(err))
}

func TestCatalogSQLShape(t *testing.T) {
	c, err := New(testEndpoint())
	require.NoError(t, err)

	sql := strings.ToLower(c.CatalogSQL())
	assert.Contains(t, sql, "information_schema.columns")
	assert.Contains(t, sql, "order by table_schema, table_name, ordinal_position")
}

func TestTypeMap(t *testing.T) {
	tests := []struct {
		native string
		want   string
	}{
		{"varchar(255)", catalog.TypeString},
		{"text", catalog.TypeString},
		{"enum('a','b')", catalog.TypeString},
		{"tinyint(1)", catalog.TypeBoolean},
		{"tinyint(4)", catalog.TypeTinyint},
		{"smallint(6)", catalog.TypeSmallint},
		{"int(11)", catalog.TypeInteger},
		{"int unsigned", catalog.TypeInteger},
		{"bigint(20)", catalog.TypeBigint},
		{"decimal(10,2)", catalog.TypeDecimal},
		{"double", catalog.TypeDouble},
		{"float", catalog.TypeFloat},
		{"date", catalog.TypeDate},
		{"time", catalog.TypeTime},
		{"datetime", catalog.TypeTimestamp},
		{"timestamp", catalog.TypeTimestamp},
		{"blob", catalog.TypeBinary},
		{"geometry", "geometry"}, // unmatched passes through
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, typeMap.Resolve(tt.native), "Resolve(%q)", tt.native)
	}
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "reader:secret@tcp(db.example.com:3306)/sales", dsn(testEndpoint()))
}
