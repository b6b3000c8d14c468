package component

import (
	"math"

	lua "github.com/Shopify/go-lua"
	"github.com/rotisserie/eris"
)

// toGoValue converts the Lua scalar at index into its Go form. The closed
// variant set is {nil, bool, int64, float64, string}; everything else is a
// type mismatch.
func toGoValue(l *lua.State, index int) (any, error) {
	switch l.TypeOf(index) {
	case lua.TypeNil:
		return nil, nil
	case lua.TypeBoolean:
		return l.ToBoolean(index), nil
	case lua.TypeNumber:
		value, _ := l.ToNumber(index)
		return normalizeNumber(value), nil
	case lua.TypeString:
		value, _ := l.ToString(index)
		return value, nil
	default:
		return nil, eris.Wrapf(ErrTypeMismatch, "unsupported field value of type %s", lua.TypeNameOf(l, index))
	}
}

// pushGoValue pushes a Go scalar from the closed variant set onto the Lua
// stack.
func pushGoValue(l *lua.State, value any) error {
	switch v := value.(type) {
	case nil:
		l.PushNil()
	case bool:
		l.PushBoolean(v)
	case int64:
		l.PushInteger(int(v))
	case float64:
		l.PushNumber(v)
	case string:
		l.PushString(v)
	default:
		return eris.Wrapf(ErrTypeMismatch, "unsupported field value of type %T", value)
	}
	return nil
}

// tableToFields copies the string-keyed entries of the Lua table at index into
// a fresh map. Field values must come from the closed scalar variant set.
func tableToFields(l *lua.State, index int) (map[string]any, error) {
	if l.TypeOf(index) != lua.TypeTable {
		return nil, eris.Wrapf(ErrTypeMismatch, "expected a table, got %s", lua.TypeNameOf(l, index))
	}

	fields := map[string]any{}
	index = l.AbsIndex(index)
	l.PushNil()
	for l.Next(index) {
		if l.TypeOf(-2) != lua.TypeString {
			l.Pop(2)
			return nil, eris.Wrap(ErrTypeMismatch, "field names must be strings")
		}
		key, _ := l.ToString(-2)
		value, err := toGoValue(l, -1)
		if err != nil {
			l.Pop(2)
			return nil, eris.Wrap(err, key)
		}
		fields[key] = value
		l.Pop(1)
	}
	return fields, nil
}

// normalizeNumber keeps whole Lua numbers as integers so a round trip through
// the bridge preserves the distinction between 100 and 5.75.
func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int64(value)
	}
	return value
}
