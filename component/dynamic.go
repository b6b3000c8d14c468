package component

import (
	lua "github.com/Shopify/go-lua"
	"github.com/rotisserie/eris"

	"github.com/Aswin-programmer/Flecs-TRY2/ecs"
	"github.com/Aswin-programmer/Flecs-TRY2/types"
)

// DynamicComponentName is the name script code uses to address the schema-less
// component kind.
const DynamicComponentName = "DynamicComponent"

// Dynamic is the schema-less component: a bag of named scalar fields defined
// entirely at runtime by script code. A dynamic component is either present
// with its field set or absent; there are no substates.
type Dynamic struct {
	Fields map[string]any `json:"fields"`
}

func (Dynamic) Name() string {
	return DynamicComponentName
}

// dynamicAdapter specializes the adapter protocol over Dynamic. Unlike typed
// adapters its field values carry value semantics (scalars only), so get is a
// copy-out table view: there is no owned-resource aliasing hazard, and a
// script that wants its edits stored writes the table back via addComponent.
type dynamicAdapter struct {
	meta
}

// NewDynamicAdapter creates the adapter for the dynamic component kind.
func NewDynamicAdapter() (Adapter, error) {
	schema, err := types.SerializeComponentSchema(Dynamic{})
	if err != nil {
		return nil, err
	}
	return &dynamicAdapter{
		meta: meta{name: DynamicComponentName, schema: schema},
	}, nil
}

// Bind is a no-op: the dynamic component's Lua surface is plain tables.
func (a *dynamicAdapter) Bind(_ *lua.State) error {
	return nil
}

// Add copies the table at index field-by-field into a fresh Dynamic and stores
// it, replacing any prior dynamic component wholesale. Partial merge is
// deliberately not performed.
func (a *dynamicAdapter) Add(w *ecs.World, id types.EntityID, l *lua.State, index int) error {
	fields, err := tableToFields(l, index)
	if err != nil {
		return eris.Wrap(err, a.name)
	}
	return w.SetComponent(id, a.name, &Dynamic{Fields: fields})
}

// Get pushes a table view over the component's fields, or nil when absent.
func (a *dynamicAdapter) Get(w *ecs.World, id types.EntityID, l *lua.State) error {
	value, ok := w.Component(id, a.name)
	if !ok {
		l.PushNil()
		return nil
	}
	dyn, ok := value.(*Dynamic)
	if !ok {
		return eris.Errorf("stored value for %s has unexpected type %T", a.name, value)
	}
	l.NewTable()
	for key, field := range dyn.Fields {
		if err := pushGoValue(l, field); err != nil {
			l.Pop(1)
			return eris.Wrap(err, key)
		}
		l.SetField(-2, key)
	}
	return nil
}

// Remove deletes the dynamic component wholesale.
func (a *dynamicAdapter) Remove(w *ecs.World, id types.EntityID) error {
	return w.RemoveComponent(id, a.name)
}
