// Package radio owns the frame carrier abstraction under the message codec.
//
// Ownership boundary:
// - channel configuration shape
// - the Radio send/receive interface
// - loopback and UDP tunnel carriers for bench work
//
// Channel access, acknowledgement and retransmission belong to the
// concrete RF95 driver, not here.
package radio
