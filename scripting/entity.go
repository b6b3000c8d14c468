package scripting

import (
	lua "github.com/Shopify/go-lua"

	"github.com/Aswin-programmer/Flecs-TRY2/types"
)

const entityTypeName = "entity"

// registerEntityType installs the entity metatable. Entities expose
// addComponent, getComponent, removeComponent and id; every component call
// resolves the name through the registry and dispatches to the adapter with
// the world passed in explicitly.
func (r *Runtime) registerEntityType() {
	l := r.state
	lua.NewMetaTable(l, entityTypeName)
	l.NewTable()
	lua.SetFunctions(l, []lua.RegistryFunction{
		{Name: "addComponent", Function: r.entityAddComponent},
		{Name: "getComponent", Function: r.entityGetComponent},
		{Name: "removeComponent", Function: r.entityRemoveComponent},
		{Name: "id", Function: r.entityID},
	}, 0)
	l.SetField(-2, "__index")
	l.Pop(1)
}

func (r *Runtime) pushEntity(id types.EntityID) {
	r.state.PushUserData(id)
	lua.SetMetaTableNamed(r.state, entityTypeName)
}

func (r *Runtime) checkEntity(l *lua.State) types.EntityID {
	ud := lua.CheckUserData(l, 1, entityTypeName)
	if id, ok := ud.(types.EntityID); ok {
		return id
	}
	lua.ArgumentError(l, 1, "entity expected")
	return 0
}

// entityAddComponent backs entity:addComponent(name, value). An unknown
// component name is a script error, not a silent no-op, and a value that
// cannot be converted aborts the call before any entity state changes.
func (r *Runtime) entityAddComponent(l *lua.State) int {
	id := r.checkEntity(l)
	name := lua.CheckString(l, 2)
	adapter, err := r.manager.GetByName(name)
	if err != nil {
		lua.Errorf(l, "addComponent: unknown component \"%s\"", name)
		return 0
	}
	if err := adapter.Add(r.world, id, l, 3); err != nil {
		lua.Errorf(l, "addComponent(\"%s\"): %s", name, err.Error())
		return 0
	}
	return 0
}

// entityGetComponent backs entity:getComponent(name). Absence, of the name in
// the registry or of the component on the entity, is the one genuinely
// non-error empty result: script code receives nil and branches on presence.
func (r *Runtime) entityGetComponent(l *lua.State) int {
	id := r.checkEntity(l)
	name := lua.CheckString(l, 2)
	adapter, err := r.manager.GetByName(name)
	if err != nil {
		l.PushNil()
		return 1
	}
	if err := adapter.Get(r.world, id, l); err != nil {
		lua.Errorf(l, "getComponent(\"%s\"): %s", name, err.Error())
		return 0
	}
	return 1
}

// entityRemoveComponent backs entity:removeComponent(name). Removal is
// synchronous: a resource owned by the removed component is released before
// this call returns. Removing an absent component is a no-op; an unknown name
// is a script error.
func (r *Runtime) entityRemoveComponent(l *lua.State) int {
	id := r.checkEntity(l)
	name := lua.CheckString(l, 2)
	adapter, err := r.manager.GetByName(name)
	if err != nil {
		lua.Errorf(l, "removeComponent: unknown component \"%s\"", name)
		return 0
	}
	if err := adapter.Remove(r.world, id); err != nil {
		lua.Errorf(l, "removeComponent(\"%s\"): %s", name, err.Error())
		return 0
	}
	return 0
}

func (r *Runtime) entityID(l *lua.State) int {
	id := r.checkEntity(l)
	l.PushInteger(int(id))
	return 1
}
