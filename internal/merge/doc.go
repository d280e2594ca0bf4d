// Package merge combines nested configuration mappings by precedence.
//
// The merge is a pure key-indexed overlay: when both sides hold a mapping at
// the same key the mappings merge recursively, otherwise the higher-priority
// value replaces the lower one outright (sequences included). Merging never
// mutates its inputs and the same ordered inputs always produce the same
// result.
package merge
