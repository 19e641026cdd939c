// Package message owns the leaf/main wire contract.
//
// Ownership boundary:
// - message type tags and frame size constants
// - per-variant encode/decode primitives
// - debug string rendering
//
// The radio link (timing, ACK, retransmission) is not owned here; callers
// hand this package a received buffer or ask it to produce one.
package message
