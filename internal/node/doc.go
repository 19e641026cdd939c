// Package node owns the two endpoint roles of the sensor network.
//
// Ownership boundary:
// - main-node receive loop: joins, time service, telemetry intake
// - leaf-node client: join handshake, time sync, reading reports
//
// Both roles treat the codec as the contract and the radio as a dumb
// frame carrier. Malformed input is logged and dropped, never fatal.
package node
