// Package storage holds the schema persistence boundary used by the component
// registry. Registering a component stores its reflected JSON schema so a
// later process can detect component layout drift before touching any entity
// state.
package storage

import (
	"errors"

	"github.com/rotisserie/eris"
)

// ErrNoSchemaFound is returned by GetSchema when no schema has been stored
// under the given component name. Callers treat it as "first registration".
var ErrNoSchemaFound = errors.New("no schema found")

type SchemaStorage interface {
	GetSchema(componentName string) ([]byte, error)
	SetSchema(componentName string, schemaData []byte) error
}

// MapSchemaStorage is an in-memory SchemaStorage. It is the default for demos
// and tests that do not need schemas to survive the process.
type MapSchemaStorage struct {
	schemas map[string][]byte
}

func NewMapSchemaStorage() *MapSchemaStorage {
	return &MapSchemaStorage{schemas: map[string][]byte{}}
}

func (m *MapSchemaStorage) GetSchema(componentName string) ([]byte, error) {
	schemaData, ok := m.schemas[componentName]
	if !ok {
		return nil, eris.Wrap(ErrNoSchemaFound, componentName)
	}
	return schemaData, nil
}

func (m *MapSchemaStorage) SetSchema(componentName string, schemaData []byte) error {
	m.schemas[componentName] = schemaData
	return nil
}
