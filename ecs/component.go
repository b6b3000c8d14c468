package ecs

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/Aswin-programmer/Flecs-TRY2/types"
)

// GetComponent returns the entity's component of type T. The returned pointer
// aliases storage.
func GetComponent[T types.Component](w *World, id types.EntityID) (*T, error) {
	var t T
	if !w.Exists(id) {
		return nil, ErrEntityDoesNotExist
	}
	value, ok := w.Component(id, t.Name())
	if !ok {
		return nil, eris.Wrap(ErrComponentNotOnEntity, t.Name())
	}
	comp, ok := value.(*T)
	if !ok {
		return nil, eris.New(fmt.Sprintf("type assertion for component failed: %T to %T", value, comp))
	}
	return comp, nil
}

// SetComponent sets component data to the entity. The value is copied in;
// storage owns the copy.
func SetComponent[T types.Component](w *World, id types.EntityID, component *T) error {
	var t T
	if component == nil {
		return ErrNilComponentValue
	}
	stored := *component
	return w.SetComponent(id, t.Name(), &stored)
}

// RemoveComponent removes the component of type T from the entity. Removing an
// absent component is a no-op.
func RemoveComponent[T types.Component](w *World, id types.EntityID) error {
	var t T
	return w.RemoveComponent(id, t.Name())
}

// HasComponent reports whether the entity has a component of type T.
func HasComponent[T types.Component](w *World, id types.EntityID) bool {
	var t T
	return w.HasComponent(id, t.Name())
}

// UpdateComponent applies fn to the entity's component of type T. When fn
// returns the pointer it was given, the mutation has already happened through
// the aliased storage slot and nothing further is stored; returning a
// different pointer replaces the stored value, releasing the old one.
func UpdateComponent[T types.Component](w *World, id types.EntityID, fn func(*T) *T) error {
	val, err := GetComponent[T](w, id)
	if err != nil {
		return err
	}
	updatedVal := fn(val)
	if updatedVal == val {
		return nil
	}
	return SetComponent[T](w, id, updatedVal)
}
