// Package dragrow implements drag-to-reorder for the rows of a table.
//
// A Controller owns one drag session at a time. Hosts feed it pointer events
// that were already normalised into PointerEvent values (mouse and single-point
// touch share one shape). The Controller consults two collaborators:
//
//   - Table: the ordered rows. Position 0 is a fixed header. Each row carries
//     a control-cell label that must always equal its position.
//   - Geometry: where each row is drawn, where its control column starts,
//     and how far the page is scrolled.
//
// Allowed here:
//   - the press/move/release state machine, hit-testing, and row relocation
//
// Not allowed here:
//   - rendering, terminal or DOM specifics, persistence
package dragrow
