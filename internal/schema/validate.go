package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"strata/internal/model"
)

// ValidateDocument checks a configuration document against a schema document
// and reports failures as a model.ValidationError so schema-file validation
// and typed materialization present errors the same way.
func ValidateDocument(schemaDoc map[string]any, doc any, name string) error {
	raw, err := json.Marshal(schemaDoc)
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	// Round-trip the document through JSON so Go-native scalar types (ints
	// from YAML, for instance) validate the way a JSON document would.
	docRaw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(docRaw, &normalized); err != nil {
		return fmt.Errorf("normalize document: %w", err)
	}

	if err := compiled.Validate(normalized); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return &model.ValidationError{Model: name, Issues: schemaIssues(ve)}
		}
		return fmt.Errorf("validate document: %w", err)
	}
	return nil
}

func schemaIssues(ve *jsonschema.ValidationError) []model.Issue {
	basic := ve.BasicOutput()
	issues := make([]model.Issue, 0, len(basic.Errors))
	for _, entry := range basic.Errors {
		// The basic output interleaves aggregate markers with leaf causes;
		// only the leaves carry actionable reasons.
		if strings.HasPrefix(entry.Error, "doesn't validate with") {
			continue
		}
		issues = append(issues, model.Issue{
			Path:   instancePath(entry.InstanceLocation),
			Reason: entry.Error,
		})
	}
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		return issues[i].Reason < issues[j].Reason
	})
	return issues
}

// instancePath converts a JSON pointer (/db/port) to the dotted form used
// everywhere else (db.port).
func instancePath(pointer string) string {
	trimmed := strings.TrimPrefix(pointer, "/")
	if trimmed == "" {
		return ""
	}
	return strings.ReplaceAll(trimmed, "/", ".")
}
