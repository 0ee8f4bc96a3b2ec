package snowflake

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
		URL:      "xy12345.eu-west-1/SALES",
		Username: "reader",
		Password: "secret",
	}
}

func TestNew(t *testing.T) {
	c, err := New(testEndpoint())
	require.NoError(t, err)
	assert.Equal(t, dbcapabilities.Snowflake, c.Type())
	assert.False(t, c.IsCaseSensitive())

	_, err = New(connector.Endpoint{URL: "xy12345/SALES", Username: "u"})
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
		{"TEXT", catalog.TypeString},
		{"VARCHAR(16777216)", catalog.TypeString},
		{"NUMBER(38,0)", catalog.TypeBigint},
		{"NUMBER(18,2)", catalog.TypeDecimal},
		{"FLOAT", catalog.TypeDouble},
		{"BOOLEAN", catalog.TypeBoolean},
		{"DATE", catalog.TypeDate},
		{"TIME(9)", catalog.TypeTime},
		{"TIMESTAMP_NTZ(9)", catalog.TypeTimestamp},
		{"TIMESTAMP_TZ(9)", catalog.TypeTimestamp},
		{"BINARY(8388608)", catalog.TypeBinary},
		{"VARIANT", "VARIANT"}, // unmatched passes through
		{"GEOGRAPHY", "GEOGRAPHY"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, typeMap.Resolve(tt.native), "Resolve(%q)", tt.native)
	}
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "reader:secret@xy12345.eu-west-1/SALES", dsn(testEndpoint()))
}
