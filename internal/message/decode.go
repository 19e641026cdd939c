package message

import (
	"encoding/binary"
	"fmt"
)

// checkTag verifies buf begins with the expected tag and is long enough
// for the variant's fixed layout. A tag mismatch is an expected, local
// condition: callers routinely probe a buffer against several variants.
func checkTag(buf []byte, want Type, size int) error {
	if len(buf) < 1 {
		return fmt.Errorf("%w: empty frame", ErrShortBuffer)
	}
	if Type(buf[0]) != want {
		return fmt.Errorf("%w: want %s, have %s", ErrTypeMismatch, want, Type(buf[0]))
	}
	if len(buf) < size {
		return fmt.Errorf("%w: %s needs %d bytes, have %d", ErrShortBuffer, want, size, len(buf))
	}
	return nil
}

// DecodeJoinRequest parses a join request from buf.
func DecodeJoinRequest(buf []byte) (JoinRequest, error) {
	if err := checkTag(buf, TypeJoinRequest, JoinRequestLen); err != nil {
		return JoinRequest{}, err
	}
	return JoinRequest{
		DevEUI: binary.LittleEndian.Uint64(buf[1:9]),
	}, nil
}

// DecodeJoinResponse parses a join response from buf.
func DecodeJoinResponse(buf []byte) (JoinResponse, error) {
	if err := checkTag(buf, TypeJoinResponse, JoinResponseLen); err != nil {
		return JoinResponse{}, err
	}
	return JoinResponse{
		Node:     buf[1],
		LeafNode: buf[2],
		Time:     binary.LittleEndian.Uint32(buf[3:7]),
	}, nil
}

// DecodeTimeRequest parses a time request from buf.
func DecodeTimeRequest(buf []byte) (TimeRequest, error) {
	if err := checkTag(buf, TypeTimeRequest, TimeRequestLen); err != nil {
		return TimeRequest{}, err
	}
	return TimeRequest{Node: buf[1]}, nil
}

// DecodeTimeResponse parses a time response from buf.
func DecodeTimeResponse(buf []byte) (TimeResponse, error) {
	if err := checkTag(buf, TypeTimeResponse, TimeResponseLen); err != nil {
		return TimeResponse{}, err
	}
	return TimeResponse{
		Node: buf[1],
		Time: binary.LittleEndian.Uint32(buf[2:6]),
	}, nil
}

// DecodeText parses a text message from buf. The body is copied out, so
// the result does not alias the receive buffer.
func DecodeText(buf []byte) (Text, error) {
	if err := checkTag(buf, TypeText, textHeaderLen); err != nil {
		return Text{}, err
	}
	n := int(buf[2])
	if n > MaxTextLen {
		return Text{}, fmt.Errorf("%w: text length %d exceeds bound %d", ErrInvalidLength, n, MaxTextLen)
	}
	if len(buf) < textHeaderLen+n {
		return Text{}, fmt.Errorf("%w: text declares %d body bytes, have %d", ErrShortBuffer, n, len(buf)-textHeaderLen)
	}
	body := make([]byte, n)
	copy(body, buf[textHeaderLen:textHeaderLen+n])
	return Text{Node: buf[1], Body: body}, nil
}

// DecodeDataMessage parses a telemetry report from buf. Field values are
// decoded verbatim; range checks beyond the bit width are not this
// layer's concern.
func DecodeDataMessage(buf []byte) (DataMessage, error) {
	if err := checkTag(buf, TypeDataMessage, DataMessageLen); err != nil {
		return DataMessage{}, err
	}
	return DataMessage{
		Node:           buf[1],
		Message:        binary.LittleEndian.Uint32(buf[2:6]),
		Time:           binary.LittleEndian.Uint32(buf[6:10]),
		Battery:        binary.LittleEndian.Uint16(buf[10:12]),
		LastTxDuration: binary.LittleEndian.Uint16(buf[12:14]),
		Temp:           int16(binary.LittleEndian.Uint16(buf[14:16])),
		Humidity:       binary.LittleEndian.Uint16(buf[16:18]),
		Status:         buf[18],
	}, nil
}
