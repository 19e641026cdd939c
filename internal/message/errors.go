package message

import "errors"

var (
	ErrTypeMismatch  = errors.New("message: type tag mismatch")
	ErrShortBuffer   = errors.New("message: buffer too short")
	ErrInvalidLength = errors.New("message: invalid length field")
	ErrUnknownType   = errors.New("message: unknown type tag")
)
