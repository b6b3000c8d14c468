package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"

	"github.com/Aswin-programmer/Flecs-TRY2/storage"
)

// SchemaStorage persists component schemas in a redis hash keyed by component
// name.
type SchemaStorage struct {
	Client *redis.Client
}

type Options = redis.Options

func NewSchemaStorage(options Options) SchemaStorage {
	return SchemaStorage{
		Client: redis.NewClient(&options),
	}
}

func (r *SchemaStorage) GetSchema(componentName string) ([]byte, error) {
	ctx := context.Background()
	schemaBytes, err := r.Client.HGet(ctx, r.schemaStorageKey(), componentName).Bytes()
	if eris.Is(err, redis.Nil) {
		return nil, eris.Wrap(storage.ErrNoSchemaFound, componentName)
	} else if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return schemaBytes, nil
}

func (r *SchemaStorage) SetSchema(componentName string, schemaData []byte) error {
	ctx := context.Background()
	return eris.Wrap(r.Client.HSet(ctx, r.schemaStorageKey(), componentName, schemaData).Err(), "")
}

func (r *SchemaStorage) Close() error {
	if err := r.Client.Close(); err != nil {
		return eris.Wrap(err, "")
	}
	return nil
}

func (r *SchemaStorage) schemaStorageKey() string {
	return "COMPONENT_NAME_TO_SCHEMA_DATA"
}
