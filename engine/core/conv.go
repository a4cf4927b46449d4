package core

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// AsMapDefault converts a typed configuration struct into a ConfigTree via a
// JSON round trip, so the tree carries only JSON-representable values.
func AsMapDefault(config any) (ConfigTree, error) {
	bytes, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	var configMap ConfigTree
	if err := json.Unmarshal(bytes, &configMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config to map: %w", err)
	}
	return configMap, nil
}

// FromMapDefault decodes tree data into a typed struct with weak typing, so
// form-sourced strings coerce into numeric and boolean fields.
func FromMapDefault[T any](data any) (T, error) {
	var config T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return config, err
	}
	return config, decoder.Decode(data)
}
