package message

import "github.com/jgallagher59701/soil-moisture-common/internal/radio"

// Type is the tag carried in the first byte of every message.
type Type uint8

// Type tags from the wire contract. Values are fixed; both ends of the
// radio link must agree on them.
const (
	TypeJoinRequest  Type = 1
	TypeJoinResponse Type = 2
	TypeTimeRequest  Type = 3
	TypeTimeResponse Type = 4

	TypeDataMessage Type = 10
	TypeText        Type = 11

	// TypeDataPacket is the superseded untagged telemetry layout. The tag
	// is reserved so it is never reused; its layout is not decoded here.
	TypeDataPacket Type = 12
)

// Frame sizing. The text body bound is what remains of a radio frame
// after the tag, node and length bytes.
const (
	MaxFrameLen = radio.MaxFrameLen
	MaxTextLen  = MaxFrameLen - 3
)

// Encoded sizes per variant, tag byte included.
const (
	JoinRequestLen  = 9
	JoinResponseLen = 7
	TimeRequestLen  = 2
	TimeResponseLen = 6
	DataMessageLen  = 19
	textHeaderLen   = 3
)

var typeNames = map[Type]string{
	TypeJoinRequest:  "join request",
	TypeJoinResponse: "join response",
	TypeTimeRequest:  "time request",
	TypeTimeResponse: "time response",
	TypeDataMessage:  "data message",
	TypeText:         "text",
	TypeDataPacket:   "data packet",
}

// String returns the diagnostic name for a tag, "unknown" for any value
// outside the contract.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Known reports whether t is a tag defined by the contract.
func (t Type) Known() bool {
	_, ok := typeNames[t]
	return ok
}

// Classify reads the leading tag of buf without touching any other field,
// so a caller can pick the matching decode routine. Unrecognized tags are
// returned as-is; Known and String report them as unknown. The only error
// is a buffer too short to hold a tag.
func Classify(buf []byte) (Type, error) {
	if len(buf) < 1 {
		return 0, ErrShortBuffer
	}
	return Type(buf[0]), nil
}
