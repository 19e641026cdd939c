package radio

import (
	"context"
	"sync"
)

// Synthetic link quality reported by the loopback carrier.
const (
	loopbackRSSI = -60
	loopbackSNR  = 9.5
)

// Loopback is one end of an in-memory radio pair. It is used by tests and
// by the single-process simulator.
type Loopback struct {
	rx chan Packet
	tx chan Packet

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewLoopbackPair returns two connected radios. Frames sent on one end
// are received on the other.
func NewLoopbackPair(buffer int) (*Loopback, *Loopback) {
	ab := make(chan Packet, buffer)
	ba := make(chan Packet, buffer)
	a := &Loopback{rx: ba, tx: ab, done: make(chan struct{})}
	b := &Loopback{rx: ab, tx: ba, done: make(chan struct{})}
	return a, b
}

func (l *Loopback) Start() error { return nil }

func (l *Loopback) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.closed = true
		close(l.done)
	}
	return nil
}

// Send copies data so the caller may reuse its buffer immediately.
func (l *Loopback) Send(data []byte) error {
	if len(data) > MaxFrameLen {
		return ErrFrameTooLong
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	select {
	case <-l.done:
		return ErrClosed
	case l.tx <- Packet{Data: cp, RSSI: loopbackRSSI, SNR: loopbackSNR}:
		return nil
	}
}

func (l *Loopback) Receive(ctx context.Context) (Packet, error) {
	select {
	case <-l.done:
		return Packet{}, ErrClosed
	case <-ctx.Done():
		return Packet{}, ctx.Err()
	case pkt := <-l.rx:
		return pkt, nil
	}
}
