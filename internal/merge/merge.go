package merge

// Map is the nested mapping every configuration source produces: string keys
// with scalar, sequence, or nested Map values.
type Map = map[string]any

// Deep combines lower and higher into a new Map, higher taking precedence.
// Mappings present on both sides merge recursively; any other collision is a
// full replacement by higher's value. Neither input is mutated.
func Deep(lower, higher Map) Map {
	out := make(Map, len(lower)+len(higher))
	for k, v := range lower {
		out[k] = cloneValue(v)
	}
	for k, v := range higher {
		existing, ok := out[k]
		if ok {
			lowerChild, lowerIsMap := existing.(Map)
			higherChild, higherIsMap := v.(Map)
			if lowerIsMap && higherIsMap {
				out[k] = Deep(lowerChild, higherChild)
				continue
			}
		}
		out[k] = cloneValue(v)
	}
	return out
}

// Layers folds an ordered slice of maps, earliest first, later layers
// overriding earlier ones.
func Layers(layers ...Map) Map {
	out := Map{}
	for _, layer := range layers {
		out = Deep(out, layer)
	}
	return out
}

// Clone returns a deep copy of m.
func Clone(m Map) Map {
	if m == nil {
		return Map{}
	}
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Map:
		return Clone(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
