package connector

import (
	"fmt"
	"sync"

	"github.com/gitter-badger/quark/pkg/dbcapabilities"
)

// Factory builds a connector for a validated endpoint.
type Factory func(endpoint Endpoint) (Connector, error)

// Registry manages the registration and retrieval of connector factories.
type Registry struct {
	factories map[dbcapabilities.DatabaseID]Factory
	mu        sync.RWMutex
}

// NewRegistry creates a new connector registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[dbcapabilities.DatabaseID]Factory),
	}
}

// Register registers a connector factory for a backend type.
// If a factory for the same backend type is already registered, it is replaced.
func (r *Registry) Register(backend dbcapabilities.DatabaseID, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[backend] = factory
}

// Get retrieves a registered factory by backend type.
// Returns ErrConnectorNotFound if no factory is registered.
func (r *Registry) Get(backend dbcapabilities.DatabaseID) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[backend]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrConnectorNotFound, backend)
	}

	return factory, nil
}

// IsRegistered checks if a factory is registered for the given backend type.
func (r *Registry) IsRegistered(backend dbcapabilities.DatabaseID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[backend]
	return exists
}

// ListRegistered returns a list of all registered backend types.
func (r *Registry) ListRegistered() []dbcapabilities.DatabaseID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]dbcapabilities.DatabaseID, 0, len(r.factories))
	for backend := range r.factories {
		types = append(types, backend)
	}

	return types
}

// Open builds a connector for the named backend. The name may be a canonical
// id, an alias, or a product name; the endpoint is validated before the
// factory runs.
func (r *Registry) Open(name string, endpoint Endpoint) (Connector, error) {
	backend, ok := dbcapabilities.ParseID(name)
	if !ok {
		return nil, NewConfigurationError(
			dbcapabilities.DatabaseID(name),
			"type",
			fmt.Sprintf("unknown backend type: %s", name),
		)
	}

	if err := endpoint.Validate(backend); err != nil {
		return nil, err
	}

	factory, err := r.Get(backend)
	if err != nil {
		return nil, err
	}

	conn, err := factory(endpoint)
	if err != nil {
		return nil, WrapError(backend, "open", err)
	}

	return conn, nil
}

// defaultRegistry is the process-wide registry used by the convenience
// functions below.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide connector registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register registers a connector factory with the default registry.
func Register(backend dbcapabilities.DatabaseID, factory Factory) {
	defaultRegistry.Register(backend, factory)
}

// Open builds a connector for the named backend using the default registry.
func Open(name string, endpoint Endpoint) (Connector, error) {
	return defaultRegistry.Open(name, endpoint)
}
