// Package keypath converts between delimited flat keys (environment-variable
// style, e.g. DB__HOST) and nested map structures.
//
// A flat key is split on a separator token into path segments; segments are
// case-folded so APP__DB__HOST and app__db__host address the same location.
// The codec is the single translation point used by the dotenv, environment
// and secrets sources, keeping their nesting rules identical.
package keypath
