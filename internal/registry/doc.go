// Package registry owns the main node's EUI to node-number table.
//
// Ownership boundary:
// - binding assignment and lookup
// - sqlite-backed and in-memory implementations
//
// Assignment is idempotent per EUI: a leaf that rejoins after a reset
// gets the same node number back.
package registry
