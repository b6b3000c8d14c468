package component

import (
	"reflect"
	"strings"

	lua "github.com/Shopify/go-lua"
	"github.com/rotisserie/eris"

	"github.com/Aswin-programmer/Flecs-TRY2/ecs"
	"github.com/Aswin-programmer/Flecs-TRY2/types"
)

// typedAdapter bridges one user-defined component struct T. Its Lua surface is
// a constructor global named after the component and a metatable whose
// __index/__newindex reach the fields of the stored value, so a handle
// returned by getComponent writes through to storage.
type typedAdapter[T types.Component] struct {
	meta
	fields      []fieldInfo
	construct   func(l *lua.State) (*T, error)
	fieldByName map[string]int
}

// box is the payload behind every component userdata. A value built by the
// constructor owns its payload until addComponent consumes it; handles pushed
// by getComponent alias storage and are never addable. The distinction keeps
// storage the single owner of each stored value: without it, adding one
// constructed value twice would leave two stored copies sharing one resource,
// and the first removal would release it out from under the second.
type box[T types.Component] struct {
	ptr   *T
	owned bool
}

// fieldInfo describes one script-visible struct field.
type fieldInfo struct {
	name  string
	index int
	kind  reflect.Kind
}

// Option augments the creation of a typed adapter.
type Option[T types.Component] func(*typedAdapter[T])

// WithConstructor replaces the default positional-argument constructor exposed
// to Lua. Component types whose fields cannot be built from primitive
// arguments (for example, types owning a shared resource) must provide one.
func WithConstructor[T types.Component](construct func(l *lua.State) (*T, error)) Option[T] {
	return func(a *typedAdapter[T]) {
		a.construct = construct
	}
}

// NewAdapter creates the adapter for component type T. The script-visible
// field names follow the struct's json tags, falling back to the Go field
// name. Fields of unsupported kinds stay invisible to script code.
func NewAdapter[T types.Component](opts ...Option[T]) (Adapter, error) {
	var t T
	schema, err := types.SerializeComponentSchema(t)
	if err != nil {
		return nil, err
	}
	fields, err := structFields(reflect.TypeOf(t))
	if err != nil {
		return nil, err
	}
	a := &typedAdapter[T]{
		meta:        meta{name: t.Name(), schema: schema},
		fields:      fields,
		fieldByName: map[string]int{},
	}
	for i, f := range fields {
		a.fieldByName[f.name] = i
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func structFields(t reflect.Type) ([]fieldInfo, error) {
	if t.Kind() != reflect.Struct {
		return nil, eris.Errorf("component type %s is not a struct", t)
	}
	var fields []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		switch f.Type.Kind() {
		case reflect.Bool,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64,
			reflect.String:
		default:
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		fields = append(fields, fieldInfo{name: name, index: i, kind: f.Type.Kind()})
	}
	return fields, nil
}

// Bind installs the component's metatable and constructor global.
func (a *typedAdapter[T]) Bind(l *lua.State) error {
	lua.NewMetaTable(l, a.name)
	l.PushGoFunction(a.luaIndex)
	l.SetField(-2, "__index")
	l.PushGoFunction(a.luaNewIndex)
	l.SetField(-2, "__newindex")
	l.Pop(1)

	l.PushGoFunction(a.luaNew)
	l.SetGlobal(a.name)
	return nil
}

// Add moves the component value held by the userdata at index into the
// entity's storage slot. The add consumes the value: storage becomes the sole
// owner, and passing the same userdata to a second add fails without touching
// entity state. Handles returned by getComponent are not addable either; they
// alias storage instead of owning a value.
func (a *typedAdapter[T]) Add(w *ecs.World, id types.EntityID, l *lua.State, index int) error {
	if l.TypeOf(index) != lua.TypeUserData {
		return eris.Wrapf(ErrTypeMismatch, "%s expects a value built by %s(...), got %s",
			a.name, a.name, lua.TypeNameOf(l, index))
	}
	b, ok := l.ToUserData(index).(*box[T])
	if !ok {
		return eris.Wrapf(ErrTypeMismatch, "userdata is not a %s", a.name)
	}
	if !b.owned {
		return eris.Wrapf(ErrValueConsumed, "construct a fresh value with %s(...)", a.name)
	}
	stored := *b.ptr
	if err := w.SetComponent(id, a.name, &stored); err != nil {
		return err
	}
	b.owned = false
	return nil
}

// Get pushes a userdata wrapping the exact pointer held by storage, or nil
// when the entity has no such component. Every Get of a live component yields
// a handle over the same pointer, so script mutations are visible to storage
// and to every other handle.
func (a *typedAdapter[T]) Get(w *ecs.World, id types.EntityID, l *lua.State) error {
	value, ok := w.Component(id, a.name)
	if !ok {
		l.PushNil()
		return nil
	}
	ptr, ok := value.(*T)
	if !ok {
		return eris.Errorf("stored value for %s has unexpected type %T", a.name, value)
	}
	l.PushUserData(&box[T]{ptr: ptr})
	lua.SetMetaTableNamed(l, a.name)
	return nil
}

func (a *typedAdapter[T]) Remove(w *ecs.World, id types.EntityID) error {
	return w.RemoveComponent(id, a.name)
}

// luaNew backs the component's constructor global. The default form fills
// script-visible fields positionally, in declaration order; missing arguments
// leave the zero value.
func (a *typedAdapter[T]) luaNew(l *lua.State) int {
	if a.construct != nil {
		ptr, err := a.construct(l)
		if err != nil {
			lua.Errorf(l, "%s: %s", a.name, err.Error())
			return 0
		}
		l.PushUserData(&box[T]{ptr: ptr, owned: true})
		lua.SetMetaTableNamed(l, a.name)
		return 1
	}

	ptr := new(T)
	v := reflect.ValueOf(ptr).Elem()
	argCount := l.Top()
	for i, f := range a.fields {
		arg := i + 1
		if arg > argCount {
			break
		}
		if err := setFieldFromLua(l, arg, v.Field(f.index), f.kind); err != nil {
			lua.ArgumentError(l, arg, err.Error())
			return 0
		}
	}
	l.PushUserData(&box[T]{ptr: ptr, owned: true})
	lua.SetMetaTableNamed(l, a.name)
	return 1
}

func (a *typedAdapter[T]) luaIndex(l *lua.State) int {
	b, ok := lua.CheckUserData(l, 1, a.name).(*box[T])
	if !ok {
		lua.ArgumentError(l, 1, a.name+" expected")
		return 0
	}
	key := lua.CheckString(l, 2)
	i, ok := a.fieldByName[key]
	if !ok {
		l.PushNil()
		return 1
	}
	f := a.fields[i]
	pushField(l, reflect.ValueOf(b.ptr).Elem().Field(f.index))
	return 1
}

func (a *typedAdapter[T]) luaNewIndex(l *lua.State) int {
	b, ok := lua.CheckUserData(l, 1, a.name).(*box[T])
	if !ok {
		lua.ArgumentError(l, 1, a.name+" expected")
		return 0
	}
	key := lua.CheckString(l, 2)
	i, ok := a.fieldByName[key]
	if !ok {
		lua.Errorf(l, "%s has no field \"%s\"", a.name, key)
		return 0
	}
	f := a.fields[i]
	if err := setFieldFromLua(l, 3, reflect.ValueOf(b.ptr).Elem().Field(f.index), f.kind); err != nil {
		lua.Errorf(l, "%s.%s: %s", a.name, key, err.Error())
		return 0
	}
	return 0
}

func pushField(l *lua.State, v reflect.Value) {
	switch v.Kind() {
	case reflect.Bool:
		l.PushBoolean(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		l.PushInteger(int(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		l.PushInteger(int(v.Uint()))
	case reflect.Float32, reflect.Float64:
		l.PushNumber(v.Float())
	case reflect.String:
		l.PushString(v.String())
	default:
		l.PushNil()
	}
}

func setFieldFromLua(l *lua.State, index int, v reflect.Value, kind reflect.Kind) error {
	switch kind {
	case reflect.Bool:
		if l.TypeOf(index) != lua.TypeBoolean {
			return eris.Wrapf(ErrTypeMismatch, "expected boolean, got %s", lua.TypeNameOf(l, index))
		}
		v.SetBool(l.ToBoolean(index))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := l.ToNumber(index)
		if !ok {
			return eris.Wrapf(ErrTypeMismatch, "expected number, got %s", lua.TypeNameOf(l, index))
		}
		v.SetInt(int64(n))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := l.ToNumber(index)
		if !ok {
			return eris.Wrapf(ErrTypeMismatch, "expected number, got %s", lua.TypeNameOf(l, index))
		}
		v.SetUint(uint64(n))
	case reflect.Float32, reflect.Float64:
		n, ok := l.ToNumber(index)
		if !ok {
			return eris.Wrapf(ErrTypeMismatch, "expected number, got %s", lua.TypeNameOf(l, index))
		}
		v.SetFloat(n)
	case reflect.String:
		if l.TypeOf(index) != lua.TypeString {
			return eris.Wrapf(ErrTypeMismatch, "expected string, got %s", lua.TypeNameOf(l, index))
		}
		s, _ := l.ToString(index)
		v.SetString(s)
	default:
		return eris.Wrapf(ErrTypeMismatch, "unsupported field kind %s", kind)
	}
	return nil
}
