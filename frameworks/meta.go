package frameworks

import (
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Meta is free-form metadata attached to a result.
type Meta map[string]interface{}

// Lookup resolves a dotted path such as "coverage.lines.0" through nested
// maps and slices. It reports false as soon as a segment is missing.
func (m Meta) Lookup(key string) (interface{}, bool) {
	if m == nil || key == "" {
		return nil, false
	}

	var current interface{} = map[string]interface{}(m)
	for _, segment := range strings.Split(key, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = value
		case Meta:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = value
		case []interface{}:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			current = node[i]
		default:
			return nil, false
		}
	}
	return current, true
}

// Get returns the value at key, or fallback when it is absent.
func (m Meta) Get(key string, fallback interface{}) interface{} {
	if value, ok := m.Lookup(key); ok {
		return value
	}
	return fallback
}

// Decode weakly decodes the value at key into out, so a JSON number lands
// in an int field and a nested object lands in a struct.
func (m Meta) Decode(key string, out interface{}) (bool, error) {
	value, ok := m.Lookup(key)
	if !ok {
		return false, nil
	}
	if err := mapstructure.WeakDecode(value, out); err != nil {
		return true, err
	}
	return true, nil
}

func (m Meta) clone() Meta {
	if m == nil {
		return nil
	}
	clone := make(Meta, len(m))
	for k, v := range m {
		clone[k] = v
	}
	return clone
}
