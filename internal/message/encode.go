package message

import "encoding/binary"

// Every multi-byte field is serialized little-endian at an explicit
// offset. Native struct layout is never used as the wire format: the leaf
// and main MCUs do not share padding rules, the serialized bytes must.

// Encode returns the wire bytes for a join request.
func (m JoinRequest) Encode() []byte {
	buf := make([]byte, JoinRequestLen)
	buf[0] = byte(TypeJoinRequest)
	binary.LittleEndian.PutUint64(buf[1:9], m.DevEUI)
	return buf
}

// Encode returns the wire bytes for a join response.
func (m JoinResponse) Encode() []byte {
	buf := make([]byte, JoinResponseLen)
	buf[0] = byte(TypeJoinResponse)
	buf[1] = m.Node
	buf[2] = m.LeafNode
	binary.LittleEndian.PutUint32(buf[3:7], m.Time)
	return buf
}

// Encode returns the wire bytes for a time request.
func (m TimeRequest) Encode() []byte {
	return []byte{byte(TypeTimeRequest), m.Node}
}

// Encode returns the wire bytes for a time response.
func (m TimeResponse) Encode() []byte {
	buf := make([]byte, TimeResponseLen)
	buf[0] = byte(TypeTimeResponse)
	buf[1] = m.Node
	binary.LittleEndian.PutUint32(buf[2:6], m.Time)
	return buf
}

// Encode returns the wire bytes for a text message together with the
// number of body bytes actually encoded. Bodies longer than MaxTextLen
// are clipped to the first MaxTextLen bytes; the second return value is
// how a caller observes that.
func (m Text) Encode() ([]byte, int) {
	n := len(m.Body)
	if n > MaxTextLen {
		n = MaxTextLen
	}
	buf := make([]byte, textHeaderLen+n)
	buf[0] = byte(TypeText)
	buf[1] = m.Node
	buf[2] = uint8(n)
	copy(buf[textHeaderLen:], m.Body[:n])
	return buf, n
}

// Encode returns the wire bytes for a telemetry report.
func (m DataMessage) Encode() []byte {
	buf := make([]byte, DataMessageLen)
	buf[0] = byte(TypeDataMessage)
	buf[1] = m.Node
	binary.LittleEndian.PutUint32(buf[2:6], m.Message)
	binary.LittleEndian.PutUint32(buf[6:10], m.Time)
	binary.LittleEndian.PutUint16(buf[10:12], m.Battery)
	binary.LittleEndian.PutUint16(buf[12:14], m.LastTxDuration)
	binary.LittleEndian.PutUint16(buf[14:16], uint16(m.Temp))
	binary.LittleEndian.PutUint16(buf[16:18], m.Humidity)
	buf[18] = m.Status
	return buf
}
