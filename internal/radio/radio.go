package radio

import (
	"context"
	"errors"
)

var (
	ErrClosed       = errors.New("radio: closed")
	ErrFrameTooLong = errors.New("radio: frame exceeds maximum length")
	ErrNoPeer       = errors.New("radio: peer address unknown")
)

// MaxFrameLen is the RF95 maximum frame length. The codec's text bound is
// derived from it.
const MaxFrameLen = 251

// Config holds the LoRa channel parameters both ends of a link share.
type Config struct {
	FrequencyHz     uint32
	BandwidthHz     uint32
	SpreadingFactor uint8 // 7-12
	CodingRate      uint8 // 5-8
	TxPower         uint8 // dBm
}

func DefaultConfig() Config {
	return Config{
		FrequencyHz:     915_000_000,
		BandwidthHz:     125_000,
		SpreadingFactor: 7,
		CodingRate:      5,
		TxPower:         13,
	}
}

// Packet is one received frame plus link-quality metadata.
type Packet struct {
	Data []byte
	RSSI int
	SNR  float64
}

// Radio carries raw frames between two nodes. Implementations never
// interpret the bytes they move.
type Radio interface {
	Start() error
	Stop() error
	Send(data []byte) error
	Receive(ctx context.Context) (Packet, error)
}
