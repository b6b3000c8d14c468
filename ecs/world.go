// Package ecs is the entity store: it owns entities and the component values
// attached to them. Storage keeps live pointers, so a value handed out by
// Component observes and is observed by later mutations until the component is
// explicitly removed. The store is the sole owner of component values; removal
// (or overwrite, or entity destruction) is the only event that releases a
// value implementing types.Releaser, and it does so synchronously.
//
// The store is single-threaded by design. Script execution and native calls
// run on one thread, so no locking is required here.
package ecs

import (
	"sort"

	"github.com/Aswin-programmer/Flecs-TRY2/codec"
	"github.com/Aswin-programmer/Flecs-TRY2/log"
	"github.com/Aswin-programmer/Flecs-TRY2/types"
)

type World struct {
	Logger log.Logger

	nextID   types.EntityID
	entities map[types.EntityID]map[string]any
}

type Option func(*World)

// WithLogger sets the logger used for entity mutation events.
func WithLogger(logger log.Logger) Option {
	return func(w *World) {
		w.Logger = logger
	}
}

func NewWorld(opts ...Option) *World {
	w := &World{
		Logger:   log.NewNop(),
		entities: map[types.EntityID]map[string]any{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// CreateEntity creates a new empty entity and returns its id. Ids start at 1;
// 0 is never a valid entity.
func (w *World) CreateEntity() types.EntityID {
	w.nextID++
	id := w.nextID
	w.entities[id] = map[string]any{}
	w.Logger.Debug().Uint64("entity_id", uint64(id)).Msg("entity created")
	return id
}

// DestroyEntity removes the entity and releases every resource-owning
// component attached to it.
func (w *World) DestroyEntity(id types.EntityID) error {
	components, ok := w.entities[id]
	if !ok {
		return ErrEntityDoesNotExist
	}
	for name, value := range components {
		releaseValue(value)
		delete(components, name)
	}
	delete(w.entities, id)
	w.Logger.Debug().Uint64("entity_id", uint64(id)).Msg("entity destroyed")
	return nil
}

// Exists reports whether the entity is alive in this world.
func (w *World) Exists(id types.EntityID) bool {
	_, ok := w.entities[id]
	return ok
}

// HasComponent reports whether the entity currently has a component stored
// under name.
func (w *World) HasComponent(id types.EntityID, name string) bool {
	components, ok := w.entities[id]
	if !ok {
		return false
	}
	_, ok = components[name]
	return ok
}

// Component returns the stored component value for the entity. The returned
// value is the exact pointer held by storage, never a copy: mutations through
// it are visible to every later Component call until the slot is removed or
// overwritten.
func (w *World) Component(id types.EntityID, name string) (any, bool) {
	components, ok := w.entities[id]
	if !ok {
		return nil, false
	}
	value, ok := components[name]
	return value, ok
}

// SetComponent installs value as the entity's component under name. The caller
// passes a freshly copied pointer; storage takes sole ownership of it. A value
// previously stored under the same name is released at the moment it is
// replaced.
func (w *World) SetComponent(id types.EntityID, name string, value any) error {
	if value == nil {
		return ErrNilComponentValue
	}
	components, ok := w.entities[id]
	if !ok {
		return ErrEntityDoesNotExist
	}
	if old, ok := components[name]; ok {
		releaseValue(old)
	}
	components[name] = value
	if e := w.Logger.Debug(); e.Enabled() {
		if bz, err := codec.Encode(value); err == nil {
			e.RawJSON("component_value", bz)
		}
		e.Uint64("entity_id", uint64(id)).
			Str("component_name", name).
			Msg("entity updated")
	}
	return nil
}

// RemoveComponent removes the entity's component under name and releases it.
// Removing a component the entity does not have is a no-op, not an error.
func (w *World) RemoveComponent(id types.EntityID, name string) error {
	components, ok := w.entities[id]
	if !ok {
		return ErrEntityDoesNotExist
	}
	value, ok := components[name]
	if !ok {
		return nil
	}
	releaseValue(value)
	delete(components, name)
	w.Logger.Debug().
		Uint64("entity_id", uint64(id)).
		Str("component_name", name).
		Msg("entity component removed")
	return nil
}

// ComponentNames returns the sorted names of the components attached to the
// entity.
func (w *World) ComponentNames(id types.EntityID) []string {
	components, ok := w.entities[id]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func releaseValue(value any) {
	if releaser, ok := value.(types.Releaser); ok {
		releaser.Release()
	}
}
