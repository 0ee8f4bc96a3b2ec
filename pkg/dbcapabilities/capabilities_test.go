package dbcapabilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want DatabaseID
		ok   bool
	}{
		{"mysql", MySQL, true},
		{"PostgreSQL", PostgreSQL, true},
		{"pgsql", PostgreSQL, true},
		{"  hdb  ", HANA, true},
		{"SAP HANA", HANA, true},
		{"sqlserver", SQLServer, true},
		{"redshift", Redshift, true},
		{"", "", false},
		{"sybase", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseID(tt.in)
		assert.Equal(t, tt.ok, ok, "ParseID(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseID(%q)", tt.in)
	}
}

func TestMustGet(t *testing.T) {
	cap := MustGet(Oracle)
	assert.Equal(t, "Oracle Database", cap.Name)
	assert.Equal(t, 1521, cap.DefaultPort)

	assert.Panics(t, func() { MustGet(DatabaseID("db2")) })
}

func TestRegistryConsistency(t *testing.T) {
	for id, cap := range All {
		require.Equal(t, id, cap.ID, "capability %s has mismatched ID", id)
		require.NotEmpty(t, cap.Name)
		require.NotZero(t, cap.DefaultPort)
	}
	assert.Len(t, IDs(), len(All))
}

func TestPreservesCase(t *testing.T) {
	assert.True(t, PreservesCase(MySQL))
	assert.False(t, PreservesCase(HANA))
	assert.False(t, PreservesCase(DatabaseID("unknown")))
}
