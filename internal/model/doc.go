// Package model turns a merged configuration mapping into a typed,
// validated settings value.
//
// Applications describe their settings as a struct with json and validate
// tags and register a Descriptor for it. Materialization decodes the mapping
// onto a defaults-populated instance (weak typing, so env-var strings coerce
// to numbers and booleans) and then runs structural validation. Failures are
// reported as a ValidationError with path-sorted issues so output is
// reproducible.
//
// The registry replaces dynamic lookup of settings types by string import
// path: callers bind concrete descriptors at build time.
package model
