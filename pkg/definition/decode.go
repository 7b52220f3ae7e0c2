package definition

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

var endpointType = reflect.TypeOf(Endpoint{})

// Decode reads a definition from a generic map, such as one produced by a
// JSON decoder or an application config loader
func Decode(input map[string]any) (*Definition, error) {
	var def Definition
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  endpointHook,
		ErrorUnused: true,
		Result:      &def,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(input); err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}
	return &def, nil
}

func endpointHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != endpointType {
		return data, nil
	}

	switch v := data.(type) {
	case Endpoint:
		return v, nil
	case string:
		return Scalar(v), nil
	case []string:
		return List(v...), nil
	case []any:
		values := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("state #%d: expected a string, got %T", i, item)
			}
			values[i] = s
		}
		return List(values...), nil
	default:
		return nil, fmt.Errorf("expected a state or a list of states, got %T", data)
	}
}
