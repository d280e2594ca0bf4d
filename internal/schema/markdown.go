package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Markdown renders a field reference document from a schema: one table row
// per leaf property with its dotted key path, type, required flag, default,
// and description.
func Markdown(schemaDoc map[string]any, title string) string {
	if title == "" {
		if t, ok := schemaDoc["title"].(string); ok && t != "" {
			title = t + " configuration"
		} else {
			title = "Configuration reference"
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if desc, ok := schemaDoc["description"].(string); ok && desc != "" {
		fmt.Fprintf(&b, "%s\n\n", desc)
	}

	rows := collectRows(schemaDoc, "")
	if len(rows) == 0 {
		b.WriteString("No configurable fields.\n")
		return b.String()
	}

	tw := table.NewWriter()
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{"Key", "Type", "Required", "Default", "Description"})
	for _, row := range rows {
		tw.AppendRow(table.Row{row.path, row.kind, row.required, row.def, row.description})
	}
	b.WriteString(tw.RenderMarkdown())
	b.WriteString("\n")
	return b.String()
}

type fieldRow struct {
	path        string
	kind        string
	required    string
	def         string
	description string
}

func collectRows(doc map[string]any, prefix string) []fieldRow {
	props := properties(doc)
	required := requiredSet(doc)

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var rows []fieldRow
	for _, name := range names {
		prop, ok := props[name].(map[string]any)
		path := joinPath(prefix, name)
		if !ok {
			rows = append(rows, fieldRow{path: path})
			continue
		}
		kind := propType(prop)
		if kind == "object" {
			rows = append(rows, collectRows(prop, path)...)
			continue
		}
		row := fieldRow{path: path, kind: kind, required: "no"}
		if required[name] {
			row.required = "yes"
		}
		if def, ok := prop["default"]; ok {
			row.def = fmt.Sprintf("%v", def)
		}
		if desc, ok := prop["description"].(string); ok {
			row.description = desc
		}
		rows = append(rows, row)
	}
	return rows
}
