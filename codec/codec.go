// Package codec is the single JSON serialization point for component values
// and component schemas. Nothing in the bridge deserializes component data:
// components enter storage from native construction or Lua conversion, never
// from bytes.
package codec

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// Encode serializes a component value or schema. Script-invisible fields
// (unexported, or tagged `json:"-"`) are omitted, matching the field set the
// scripting surface exposes.
func Encode(value any) ([]byte, error) {
	bz, err := json.Marshal(value)
	if err != nil {
		return nil, eris.Wrap(err, "value is not json serializable")
	}
	return bz, nil
}
