// Package watch reloads configuration when files under the config directory
// change. Events are debounced so editor save bursts trigger one reload, and
// reloads are serialized: a change arriving mid-reload coalesces into one
// follow-up pass instead of stacking.
package watch
