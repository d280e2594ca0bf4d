package schema

import (
	"encoding/json"
	"fmt"

	"strata/internal/merge"
	"strata/internal/model"
)

// Scaffold produces a config template from the descriptor's defaults: the
// defaults-populated instance rendered as a plain mapping, ready to be
// written out as YAML or JSON and edited by hand.
func Scaffold(desc *model.Descriptor) (merge.Map, error) {
	raw, err := json.Marshal(desc.New())
	if err != nil {
		return nil, fmt.Errorf("encode defaults for model %q: %w", desc.Name, err)
	}
	var out merge.Map
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode defaults for model %q: %w", desc.Name, err)
	}
	if out == nil {
		out = merge.Map{}
	}
	return out, nil
}

// ScaffoldFromSchema produces a config template from a JSON Schema document:
// each property contributes its "default" when present, nil otherwise, with
// object properties recursed.
func ScaffoldFromSchema(schemaDoc map[string]any) merge.Map {
	out := merge.Map{}
	properties, ok := schemaDoc["properties"].(map[string]any)
	if !ok {
		return out
	}
	for name, raw := range properties {
		prop, ok := raw.(map[string]any)
		if !ok {
			out[name] = nil
			continue
		}
		if def, ok := prop["default"]; ok {
			out[name] = def
			continue
		}
		if prop["type"] == "object" {
			out[name] = ScaffoldFromSchema(prop)
			continue
		}
		out[name] = nil
	}
	return out
}
