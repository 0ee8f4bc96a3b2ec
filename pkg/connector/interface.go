// Package connector defines the contract between the federation layer and
// backend-specific database connectors.
//
// A Connector supplies everything discovery and execution need to know about
// one backend: how to open a connection, the catalog query that enumerates
// its schemas, the mapping from its native type names into the canonical
// vocabulary, and its identifier-case policy. The discovery and engine
// packages depend only on this interface, never on a concrete backend.
package connector

import (
	"context"
	"database/sql"

	"github.com/gitter-badger/quark/pkg/catalog"
	"github.com/gitter-badger/quark/pkg/dbcapabilities"
)

// Connector is implemented once per backend technology.
type Connector interface {
	// Type returns the canonical backend identifier.
	Type() dbcapabilities.DatabaseID

	// Capabilities returns the capability metadata for this backend type.
	Capabilities() dbcapabilities.Capability

	// Endpoint returns the endpoint this connector was built for.
	Endpoint() Endpoint

	// CatalogSQL returns the backend's catalog query. The query must return
	// exactly four columns (schema, table, column, native type) ordered by
	// schema name then table name. Discovery folds rows by contiguity, so
	// this ordering is a hard precondition: a catalog query violating it
	// silently corrupts the discovered tree.
	CatalogSQL() string

	// TypeMap returns the ordered native-type → canonical-type mappings
	// for this backend.
	TypeMap() catalog.TypeMap

	// Connect opens a connection to the backend and verifies it with a ping.
	// The caller owns the returned handle and must close it.
	Connect(ctx context.Context) (*sql.DB, error)

	// IsCaseSensitive reports the backend's identifier-case policy. When
	// false, discovery upper-cases every schema, table and column name.
	IsCaseSensitive() bool

	// Cleanup releases any backend state held from a previous execution.
	// Called before ExecuteQuery opens a fresh connection; most backends
	// have nothing to do here.
	Cleanup() error
}

// Base carries the endpoint shared by all SQL connectors and supplies the
// default connector policies. Concrete connectors embed it and override
// what differs.
type Base struct {
	endpoint Endpoint
}

// NewBase creates the shared connector base for a validated endpoint.
func NewBase(endpoint Endpoint) Base {
	return Base{endpoint: endpoint}
}

// Endpoint returns the endpoint this connector was built for.
func (b Base) Endpoint() Endpoint {
	return b.endpoint
}

// IsCaseSensitive defaults to false: identifiers are normalized to upper
// case unless a connector declares otherwise.
func (b Base) IsCaseSensitive() bool {
	return false
}

// Cleanup defaults to a no-op.
func (b Base) Cleanup() error {
	return nil
}
