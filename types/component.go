package types

import (
	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
	"github.com/wI2L/jsondiff"

	"github.com/Aswin-programmer/Flecs-TRY2/codec"
)

// EntityID is the identifier around which an open set of typed components is
// attached. IDs are assigned by the entity store and are never reused within a
// single world.
type EntityID uint64

// Component is the interface that the user needs to implement to create a new
// component type. The name doubles as the key script code uses to refer to the
// type, so it must be stable and unique.
type Component interface {
	// Name returns the name of the component.
	Name() string
}

// ErrComponentSchemaMismatch is returned when a component's reflected schema
// does not match the schema previously persisted under the same name.
var ErrComponentSchemaMismatch = eris.New("component schema does not match target schema")

// SerializeComponentSchema produces the JSON schema bytes for a component
// struct. Components must be json serializable for this to succeed.
func SerializeComponentSchema(component Component) ([]byte, error) {
	componentSchema := jsonschema.Reflect(component)
	schema, err := codec.Encode(componentSchema)
	if err != nil {
		return nil, eris.Wrap(err, "component must be json serializable")
	}
	return schema, nil
}

// IsSchemaValid reports whether two schema byte slices describe the same
// component layout.
func IsSchemaValid(jsonSchemaBytes1 []byte, jsonSchemaBytes2 []byte) (bool, error) {
	patch, err := jsondiff.CompareJSON(jsonSchemaBytes1, jsonSchemaBytes2)
	if err != nil {
		return false, eris.Wrap(err, "")
	}
	return patch.String() == "", nil
}
