// Package hujsonutil edits JSON-with-comments documents in place.
package hujsonutil

import (
	"encoding/json"
	"fmt"

	"github.com/tailscale/hujson"
)

// Value wraps hujson.Value to provide convenience helpers.
type Value struct {
	*hujson.Value
}

// NewValue wraps a hujson.Value.
func NewValue(v *hujson.Value) *Value {
	return &Value{Value: v}
}

// Parse parses JSONC data.
func Parse(data []byte) (*Value, error) {
	ast, err := hujson.Parse(data)
	if err != nil {
		return nil, err
	}
	return NewValue(&ast), nil
}

// Decode unmarshals a standardized copy of v into out. Comments and
// trailing commas in v are left untouched.
func (v *Value) Decode(out any) error {
	if v.Value == nil {
		return fmt.Errorf("nil Value")
	}
	std := v.Clone()
	std.Standardize()
	return json.Unmarshal(std.Pack(), out)
}

// InsertToArray inserts value at the end of the array located at path.
// The path uses JSON Pointer syntax. If the array does not exist, it is created.
// Returns an error if the path points to a non-array value.
func (v *Value) InsertToArray(path string, val any) error {
	if v.Value == nil {
		return fmt.Errorf("nil Value")
	}

	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	elem, err := hujson.Parse(b)
	if err != nil {
		return err
	}

	existing := v.Find(path)
	if existing != nil {
		if _, ok := existing.Value.(*hujson.Array); !ok {
			return fmt.Errorf("path %s is not an array", path)
		}
		patch := fmt.Sprintf(`[{"op":"add","path":"%s/-","value":%s}]`, path, elem.Pack())
		return v.Patch([]byte(patch))
	}

	patch := fmt.Sprintf(`[`+
		`{"op":"add","path":"%s","value":[]},`+
		`{"op":"add","path":"%s/-","value":%s}`+
		`]`, path, path, elem.Pack())
	return v.Patch([]byte(patch))
}

// AppendUnique appends each item to the array at path unless the array
// already holds an object whose field equals the item's field. Items
// without the field are skipped. It returns the number of items added.
func (v *Value) AppendUnique(path, field string, items []any) (int, error) {
	seen := map[string]bool{}
	if existing := v.Find(path); existing != nil {
		var objs []map[string]any
		if err := NewValue(existing).Decode(&objs); err != nil {
			return 0, fmt.Errorf("path %s: %w", path, err)
		}
		for _, o := range objs {
			if s, ok := o[field].(string); ok {
				seen[s] = true
			}
		}
	}

	added := 0
	for _, item := range items {
		key, err := fieldOf(item, field)
		if err != nil {
			return added, err
		}
		if key == "" || seen[key] {
			continue
		}
		if err := v.InsertToArray(path, item); err != nil {
			return added, err
		}
		seen[key] = true
		added++
	}
	return added, nil
}

func fieldOf(item any, field string) (string, error) {
	b, err := json.Marshal(item)
	if err != nil {
		return "", err
	}
	var obj map[string]any
	if err := json.Unmarshal(b, &obj); err != nil {
		return "", nil
	}
	s, _ := obj[field].(string)
	return s, nil
}
