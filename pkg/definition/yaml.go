package definition

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse reads a definition from a YAML (or JSON) document. Unknown keys are
// rejected.
func Parse(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("definition is empty")
		}
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	return &def, nil
}

// Load reads a definition from a file
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	return Parse(data)
}

// UnmarshalYAML implements yaml.Unmarshaler
func (e *Endpoint) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*e = Endpoint{}
			return nil
		}
		*e = Scalar(node.Value)
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return err
		}
		*e = List(values...)
		return nil
	default:
		return fmt.Errorf("line %d: expected a state or a list of states", node.Line)
	}
}

// MarshalYAML implements yaml.Marshaler
func (e Endpoint) MarshalYAML() (any, error) {
	switch {
	case !e.set:
		return nil, nil
	case e.list:
		return e.values, nil
	default:
		return e.values[0], nil
	}
}
