// Package dbcapabilities describes the relational backends the federation
// layer knows how to talk to, keyed by a canonical identifier.
package dbcapabilities

import "strings"

// DatabaseID is the canonical identifier for a backend technology.
// Use these constants to look up capability information.
type DatabaseID string

const (
	MySQL      DatabaseID = "mysql"
	PostgreSQL DatabaseID = "postgres"
	Redshift   DatabaseID = "redshift"
	HANA       DatabaseID = "hana"
	SQLServer  DatabaseID = "mssql"
	Oracle     DatabaseID = "oracle"
	Snowflake  DatabaseID = "snowflake"
)

// Capability holds static metadata about a backend technology.
type Capability struct {
	// Human-friendly vendor or product name, e.g., "PostgreSQL".
	Name string `json:"name"`

	// Canonical ID used across the codebase (see DatabaseID constants).
	ID DatabaseID `json:"id"`

	// Default port the backend listens on.
	DefaultPort int `json:"defaultPort"`

	// PreservesIdentifierCase reports whether the backend treats schema,
	// table and column identifiers as case-significant. Backends that fold
	// identifiers (to upper or lower case) are reported as false, and the
	// federation layer normalizes their identifiers to upper case.
	PreservesIdentifierCase bool `json:"preservesIdentifierCase"`

	// System schemas that carry no user tables and are excluded from
	// catalog discovery.
	SystemSchemas []string `json:"systemSchemas,omitempty"`

	// Common aliases (driver names, env labels) that map to this backend.
	Aliases []string `json:"aliases,omitempty"`
}

// All is a registry of capabilities keyed by the canonical database ID.
var All = map[DatabaseID]Capability{
	MySQL: {
		Name:                    "MySQL",
		ID:                      MySQL,
		DefaultPort:             3306,
		PreservesIdentifierCase: true,
		SystemSchemas:           []string{"information_schema", "performance_schema", "mysql", "sys"},
		Aliases:                 []string{"mariadb", "aurora-mysql"},
	},
	PostgreSQL: {
		Name:                    "PostgreSQL",
		ID:                      PostgreSQL,
		DefaultPort:             5432,
		PreservesIdentifierCase: false,
		SystemSchemas:           []string{"information_schema", "pg_catalog"},
		Aliases:                 []string{"postgresql", "pgsql"},
	},
	Redshift: {
		Name:                    "Amazon Redshift",
		ID:                      Redshift,
		DefaultPort:             5439,
		PreservesIdentifierCase: false,
		SystemSchemas:           []string{"information_schema", "pg_catalog"},
	},
	HANA: {
		Name:                    "SAP HANA",
		ID:                      HANA,
		DefaultPort:             39015,
		PreservesIdentifierCase: false,
		SystemSchemas:           []string{"SYS", "SYSTEM"},
		Aliases:                 []string{"saphana", "hdb"},
	},
	SQLServer: {
		Name:                    "Microsoft SQL Server",
		ID:                      SQLServer,
		DefaultPort:             1433,
		PreservesIdentifierCase: false,
		SystemSchemas:           []string{"INFORMATION_SCHEMA", "sys"},
		Aliases:                 []string{"sqlserver", "azure-sql"},
	},
	Oracle: {
		Name:                    "Oracle Database",
		ID:                      Oracle,
		DefaultPort:             1521,
		PreservesIdentifierCase: false,
		SystemSchemas:           []string{"SYS", "SYSTEM", "XDB"},
		Aliases:                 []string{"oracledb"},
	},
	Snowflake: {
		Name:                    "Snowflake",
		ID:                      Snowflake,
		DefaultPort:             443,
		PreservesIdentifierCase: false,
		SystemSchemas:           []string{"INFORMATION_SCHEMA"},
	},
}

// nameToID maps lower-cased canonical ids, aliases and product names to IDs.
var nameToID = map[string]DatabaseID{}

func init() {
	for id, cap := range All {
		nameToID[strings.ToLower(string(id))] = id
		nameToID[strings.ToLower(cap.Name)] = id
		for _, a := range cap.Aliases {
			if a == "" {
				continue
			}
			nameToID[strings.ToLower(a)] = id
		}
	}
}

// ParseID attempts to resolve an arbitrary database name (canonical id, alias,
// or product name) to a canonical DatabaseID. Returns false if unknown.
func ParseID(name string) (DatabaseID, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return "", false
	}
	id, ok := nameToID[n]
	return id, ok
}

// IDs returns the list of all known database IDs.
func IDs() []DatabaseID {
	out := make([]DatabaseID, 0, len(All))
	for id := range All {
		out = append(out, id)
	}
	return out
}

// Get returns capabilities for the given ID and a boolean indicating existence.
func Get(id DatabaseID) (Capability, bool) {
	c, ok := All[id]
	return c, ok
}

// MustGet returns capabilities for the given ID and panics if not found.
func MustGet(id DatabaseID) Capability {
	c, ok := Get(id)
	if !ok {
		panic("dbcapabilities: unknown database id: " + string(id))
	}
	return c
}

// PreservesCase reports whether the backend keeps identifier case as written.
func PreservesCase(id DatabaseID) bool {
	c, ok := Get(id)
	return ok && c.PreservesIdentifierCase
}
