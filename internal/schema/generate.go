package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"strata/internal/model"
)

// Generate reflects a JSON Schema for the descriptor's settings type. The
// schema is fully inlined (no $ref indirection) so the diff and docs tooling
// can walk properties directly.
func Generate(desc *model.Descriptor) (map[string]any, error) {
	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	reflected := reflector.Reflect(desc.New())
	if reflected == nil {
		return nil, fmt.Errorf("reflect schema for model %q", desc.Name)
	}
	reflected.Title = desc.Name
	if desc.Doc != "" {
		reflected.Description = desc.Doc
	}

	// Round-trip through JSON so callers get plain nested maps instead of
	// the reflector's ordered-map internals.
	raw, err := json.Marshal(reflected)
	if err != nil {
		return nil, fmt.Errorf("encode schema for model %q: %w", desc.Name, err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode schema for model %q: %w", desc.Name, err)
	}
	return out, nil
}
