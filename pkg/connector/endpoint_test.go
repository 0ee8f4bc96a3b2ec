package connector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitter-badger/quark/pkg/dbcapabilities"
)

func TestNewEndpoint(t *testing.T) {
	e, err := NewEndpoint(dbcapabilities.MySQL, map[string]interface{}{
		"url":      "tcp(db.example.com:3306)/sales",
		"username": "reader",
		"password": "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "tcp(db.example.com:3306)/sales", e.URL)
	assert.Equal(t, "reader", e.Username)
	assert.Equal(t, "secret", e.Password)
}

func TestNewEndpointMissingProperty(t *testing.T) {
	tests := []struct {
		name       string
		properties map[string]interface{}
		wantField  string
	}{
		{
			name:       "missing url",
			properties: map[string]interface{}{"username": "u", "password": "p"},
			wantField:  "url",
		},
		{
			name:       "missing username",
			properties: map[string]interface{}{"url": "x", "password": "p"},
			wantField:  "username",
		},
		{
			name:       "missing password",
			properties: map[string]interface{}{"url": "x", "username": "u"},
			wantField:  "password",
		},
		{
			name:       "empty value",
			properties: map[string]interface{}{"url": "", "username": "u", "password": "p"},
			wantField:  "url",
		},
		{
			name:       "non-string value",
			properties: map[string]interface{}{"url": 42, "username": "u", "password": "p"},
			wantField:  "url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEndpoint(dbcapabilities.PostgreSQL, tt.properties)
			require.Error(t, err)
			assert.True(t, IsConfigurationError(err))

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestEndpointValidate(t *testing.T) {
	e := Endpoint{URL: "u", Username: "n", Password: "p"}
	assert.NoError(t, e.Validate(dbcapabilities.HANA))

	e.Password = ""
	err := e.Validate(dbcapabilities.HANA)
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
}
