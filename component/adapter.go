// Package component implements the bridge between the typed entity store and
// the Lua scripting environment: a name-keyed registry of per-type adapters,
// the generic adapter over user-defined component structs, and the schema-less
// dynamic component.
package component

import (
	lua "github.com/Shopify/go-lua"
	"github.com/rotisserie/eris"

	"github.com/Aswin-programmer/Flecs-TRY2/ecs"
	"github.com/Aswin-programmer/Flecs-TRY2/types"
)

type TypeID int

// Adapter is the type-erased record that lets a string name drive operations
// on one native component type. Adapters are stateless with respect to
// component data: every call reads and mutates through the entity store passed
// in, and nothing is cached across calls.
type Adapter interface {
	// SetID sets the ID of this adapter. It must only be set once.
	SetID(TypeID) error
	// ID returns the ID of the adapter.
	ID() TypeID
	// GetSchema returns the JSON schema bytes reflected from the component
	// struct.
	GetSchema() []byte
	// ValidateAgainstSchema errors with types.ErrComponentSchemaMismatch when
	// the adapter's schema differs from the target schema.
	ValidateAgainstSchema(targetSchema []byte) error

	// Bind installs the component's Lua surface (metatable and constructor)
	// into the state. It is called once per state, at registration.
	Bind(l *lua.State) error

	// Add converts the Lua value at index into a native component value and
	// stores it on the entity, replacing any previous value. The previous
	// value is released at the moment it is replaced. Adding a constructed
	// component value consumes it: storage becomes its sole owner, and adding
	// the same value again is an error that leaves entity state untouched.
	// Plain-table values (the dynamic component) carry value semantics and
	// are copied instead.
	Add(w *ecs.World, id types.EntityID, l *lua.State, index int) error
	// Get pushes a handle to the entity's stored component value, or nil when
	// the entity has no such component. The handle aliases the exact storage
	// slot; it is never a copy.
	Get(w *ecs.World, id types.EntityID, l *lua.State) error
	// Remove removes the component from the entity, releasing it
	// synchronously. Removing an absent component is a no-op.
	Remove(w *ecs.World, id types.EntityID) error

	types.Component
}

// meta carries the bookkeeping shared by every adapter kind.
type meta struct {
	name    string
	id      TypeID
	isIDSet bool
	schema  []byte
}

func (m *meta) Name() string {
	return m.name
}

func (m *meta) ID() TypeID {
	return m.id
}

// SetID sets the adapter's ID. Components are registered once on startup, but
// tests reuse the same adapter across multiple worlds, so re-setting the same
// id is allowed.
func (m *meta) SetID(id TypeID) error {
	if m.isIDSet {
		if id == m.id {
			return nil
		}
		return eris.Errorf("id for component %q is already set to %v, cannot change to %v", m.name, m.id, id)
	}
	m.id = id
	m.isIDSet = true
	return nil
}

func (m *meta) GetSchema() []byte {
	return m.schema
}

func (m *meta) ValidateAgainstSchema(targetSchema []byte) error {
	ok, err := types.IsSchemaValid(m.schema, targetSchema)
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrComponentSchemaMismatch
	}
	return nil
}
