// Package redact masks secret-bearing values in configuration mappings
// before they are printed or logged. Every consumer that renders a merged
// configuration (dump, watch, example output) must pass it through this
// package first.
package redact
