package message

// JoinRequest is sent by a leaf node that has no assigned node number yet.
// The 64-bit EUI identifies the device until a number is bound to it.
type JoinRequest struct {
	DevEUI uint64
}

// JoinResponse assigns a node number to a joining leaf and carries the
// main node's time so the leaf can synchronize its clock.
type JoinResponse struct {
	Node     uint8 // sender (main) node number
	LeafNode uint8 // number assigned to the joining leaf
	Time     uint32
}

// TimeRequest asks the main node for the current time.
type TimeRequest struct {
	Node uint8
}

// TimeResponse is the main node's time reply.
type TimeResponse struct {
	Node uint8
	Time uint32
}

// Text is a free-form, length-prefixed message. Bodies longer than
// MaxTextLen are clipped on encode.
type Text struct {
	Node uint8
	Body []byte
}

// DataMessage is the periodic telemetry report. Battery, Temp and
// Humidity are transmitted as raw scaled integers (volts x100, degrees C
// x100, percent x100); scaling is the caller's concern, not the wire's.
type DataMessage struct {
	Node           uint8
	Message        uint32 // monotonic sequence number
	Time           uint32 // unix time
	Battery        uint16
	LastTxDuration uint16 // milliseconds
	Temp           int16
	Humidity       uint16
	Status         uint8
}
