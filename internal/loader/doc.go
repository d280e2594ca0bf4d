// Package loader orchestrates a layered configuration load: every source is
// read fresh, overlaid in fixed precedence order, and the merged result
// materialized into a typed settings value.
//
// Precedence, lowest to highest: base config file, environment-specific
// config file, dotenv file, secrets provider, prefixed environment
// variables, programmatic overrides. The ordering is deliberate and load
// bearing; in particular environment variables outrank secrets-provider
// values, so an operator export always wins over a stored secret.
//
// A Loader carries no mutable state between loads, so concurrent loads with
// different options are safe.
package loader
