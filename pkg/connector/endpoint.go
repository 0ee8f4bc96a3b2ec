package connector

import "github.com/gitter-badger/quark/pkg/dbcapabilities"

// Property keys required of every backend endpoint definition.
const (
	PropertyURL      = "url"
	PropertyUsername = "username"
	PropertyPassword = "password"
)

// Endpoint identifies one backend instance: where it is and who to connect
// as. It is immutable once built; construction fails if a required property
// is missing, before any connection is attempted.
type Endpoint struct {
	URL      string
	Username string
	Password string
}

// NewEndpoint builds an Endpoint from a property map, validating that the
// required keys are present and are non-empty strings.
func NewEndpoint(backend dbcapabilities.DatabaseID, properties map[string]interface{}) (Endpoint, error) {
	e := Endpoint{}
	for _, key := range []string{PropertyURL, PropertyUsername, PropertyPassword} {
		raw, ok := properties[key]
		if !ok {
			return Endpoint{}, NewConfigurationError(backend, key, "required property is missing")
		}
		value, ok := raw.(string)
		if !ok || value == "" {
			return Endpoint{}, NewConfigurationError(backend, key, "required property must be a non-empty string")
		}
		switch key {
		case PropertyURL:
			e.URL = value
		case PropertyUsername:
			e.Username = value
		case PropertyPassword:
			e.Password = value
		}
	}
	return e, nil
}

// Validate checks that all required endpoint fields are set.
func (e Endpoint) Validate(backend dbcapabilities.DatabaseID) error {
	if e.URL == "" {
		return NewConfigurationError(backend, PropertyURL, "required property is missing")
	}
	if e.Username == "" {
		return NewConfigurationError(backend, PropertyUsername, "required property is missing")
	}
	if e.Password == "" {
		return NewConfigurationError(backend, PropertyPassword, "required property is missing")
	}
	return nil
}
