package component

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/Aswin-programmer/Flecs-TRY2/storage"
	"github.com/Aswin-programmer/Flecs-TRY2/types"
)

// Manager is the component registry: the single indirection that lets script
// code refer to native component types by string name. It is constructed once
// at startup, mutated only by registration calls, and never shrinks.
type Manager struct {
	registeredAdapters map[string]Adapter
	nextTypeID         TypeID
	schemaStorage      storage.SchemaStorage
}

// NewManager creates a new component registry backed by the given schema
// storage.
func NewManager(schemaStorage storage.SchemaStorage) *Manager {
	return &Manager{
		registeredAdapters: make(map[string]Adapter),
		nextTypeID:         1,
		schemaStorage:      schemaStorage,
	}
}

// Register registers an adapter with the registry. There can only be one
// adapter per component name; registering a name twice returns
// ErrDuplicateRegistration and leaves the registry untouched.
func (m *Manager) Register(adapter Adapter) error {
	if err := m.isComponentNameUnique(adapter); err != nil {
		return err
	}

	// Try getting the schema from storage. The schema simply not existing yet
	// means this is the component's first registration; any other error
	// terminates the registration.
	storedSchema, err := m.schemaStorage.GetSchema(adapter.Name())
	if err != nil && !eris.Is(err, storage.ErrNoSchemaFound) {
		return err
	}

	if storedSchema != nil {
		if err := adapter.ValidateAgainstSchema(storedSchema); err != nil {
			if eris.Is(err, types.ErrComponentSchemaMismatch) {
				return eris.Wrap(err,
					fmt.Sprintf("component %q does not match the schema stored in storage", adapter.Name()),
				)
			}
			return eris.Wrap(err, "error when validating component schema against stored schema in storage")
		}
	} else {
		if err := m.schemaStorage.SetSchema(adapter.Name(), adapter.GetSchema()); err != nil {
			return err
		}
	}

	// Assign the ID and install the adapter only after schema validation and
	// storage succeed.
	if err := adapter.SetID(m.nextTypeID); err != nil {
		return err
	}
	m.registeredAdapters[adapter.Name()] = adapter
	m.nextTypeID++

	return nil
}

// GetAdapters returns a list of all registered adapters.
// Note: The order of the adapters in the list is not deterministic.
func (m *Manager) GetAdapters() []Adapter {
	registeredAdapters := make([]Adapter, 0, len(m.registeredAdapters))
	for _, adapter := range m.registeredAdapters {
		registeredAdapters = append(registeredAdapters, adapter)
	}
	return registeredAdapters
}

// GetByName returns the adapter registered under the given component name.
func (m *Manager) GetByName(name string) (Adapter, error) {
	adapter, ok := m.registeredAdapters[name]
	if !ok {
		return nil, eris.Wrap(ErrComponentNotRegistered, fmt.Sprintf("component %q is not registered", name))
	}
	return adapter, nil
}

// isComponentNameUnique checks if the component name already exists in the
// adapter map.
func (m *Manager) isComponentNameUnique(adapter Adapter) error {
	_, ok := m.registeredAdapters[adapter.Name()]
	if ok {
		return eris.Wrapf(ErrDuplicateRegistration, "component %q is already registered", adapter.Name())
	}
	return nil
}
