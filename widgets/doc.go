// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing/composition helpers (tables, boxed cards, modal overlay compositor)
//
// Not allowed here:
// - key or mouse handling, drag state, app state transitions
package widgets
