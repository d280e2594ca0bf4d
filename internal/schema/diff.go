package schema

import (
	"fmt"
	"sort"
)

// DiffResult separates schema changes by compatibility impact. Breaking
// changes are ones an existing valid configuration could fail under.
type DiffResult struct {
	Breaking    []string
	NonBreaking []string
}

// HasChanges reports whether the two schemas differ at all.
func (r DiffResult) HasChanges() bool {
	return len(r.Breaking) > 0 || len(r.NonBreaking) > 0
}

// Diff compares two schema documents property-by-property:
//
//   - added optional property: non-breaking
//   - removed property: breaking
//   - property became required (including a new required property): breaking
//   - property type changed: breaking
//
// Nested object properties are compared recursively with dotted prefixes.
func Diff(oldDoc, newDoc map[string]any) DiffResult {
	var result DiffResult
	diffInto(&result, "", oldDoc, newDoc)
	sort.Strings(result.Breaking)
	sort.Strings(result.NonBreaking)
	return result
}

func diffInto(result *DiffResult, prefix string, oldDoc, newDoc map[string]any) {
	oldProps := properties(oldDoc)
	newProps := properties(newDoc)
	oldRequired := requiredSet(oldDoc)
	newRequired := requiredSet(newDoc)

	for name, newProp := range newProps {
		path := joinPath(prefix, name)
		oldProp, existed := oldProps[name]
		if !existed {
			if newRequired[name] {
				result.Breaking = append(result.Breaking, fmt.Sprintf("added required property: %s", path))
			} else {
				result.NonBreaking = append(result.NonBreaking, fmt.Sprintf("added property: %s", path))
			}
			continue
		}
		oldType := propType(oldProp)
		newType := propType(newProp)
		if oldType != newType {
			result.Breaking = append(result.Breaking, fmt.Sprintf("type changed for property %s: %s -> %s", path, oldType, newType))
			continue
		}
		if !oldRequired[name] && newRequired[name] {
			result.Breaking = append(result.Breaking, fmt.Sprintf("property became required: %s", path))
		}
		if newType == "object" {
			oldChild, okOld := oldProp.(map[string]any)
			newChild, okNew := newProp.(map[string]any)
			if okOld && okNew {
				diffInto(result, path, oldChild, newChild)
			}
		}
	}

	for name := range oldProps {
		if _, still := newProps[name]; !still {
			result.Breaking = append(result.Breaking, fmt.Sprintf("removed property: %s", joinPath(prefix, name)))
		}
	}
}

func properties(doc map[string]any) map[string]any {
	props, _ := doc["properties"].(map[string]any)
	return props
}

func requiredSet(doc map[string]any) map[string]bool {
	out := map[string]bool{}
	required, _ := doc["required"].([]any)
	for _, entry := range required {
		if name, ok := entry.(string); ok {
			out[name] = true
		}
	}
	return out
}

func propType(prop any) string {
	m, ok := prop.(map[string]any)
	if !ok {
		return ""
	}
	t, _ := m["type"].(string)
	return t
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
