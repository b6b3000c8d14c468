package component

import "github.com/rotisserie/eris"

var (
	// ErrComponentNotRegistered is returned when a name resolves to no
	// adapter. Script-facing getComponent maps this to nil; addComponent and
	// removeComponent surface it as a script error.
	ErrComponentNotRegistered = eris.New("component not registered")

	// ErrDuplicateRegistration is returned when a component name is registered
	// twice. Registration never silently overwrites an existing adapter.
	ErrDuplicateRegistration = eris.New("component already registered")

	// ErrTypeMismatch is returned when a Lua value cannot be projected onto
	// the adapter's native component type.
	ErrTypeMismatch = eris.New("value cannot be converted to component type")

	// ErrValueConsumed is returned when addComponent receives a value that a
	// previous add already moved into storage, or a getComponent handle.
	// Storage is the single owner of every stored value, so each constructed
	// value can be added exactly once.
	ErrValueConsumed = eris.New("component value already consumed")
)
