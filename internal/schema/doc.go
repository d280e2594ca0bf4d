// Package schema provides the JSON Schema tooling around settings models:
// schema generation, config scaffolding, Markdown reference docs, schema
// diffing with breaking-change detection, and validation of standalone
// config documents against a schema.
package schema
