package registry

import (
	"context"
	"errors"
	"sync"
)

// Node number space on air. Zero is the main node itself, 255 is kept for
// broadcast, so leaves get 1..254. Numbers are never reused while a
// binding exists.
const (
	MinNode uint8 = 1
	MaxNode uint8 = 254
)

var (
	ErrFull     = errors.New("registry: no node numbers left")
	ErrNotFound = errors.New("registry: node not bound")
)

// Registry binds 64-bit device EUIs to the 8-bit node numbers used in
// every message after the join handshake.
type Registry interface {
	// Assign returns the node number bound to devEUI, creating a new
	// binding if none exists.
	Assign(ctx context.Context, devEUI uint64) (uint8, error)
	// Lookup returns the EUI bound to a node number.
	Lookup(ctx context.Context, node uint8) (uint64, error)
	Close() error
}

// Memory is the in-memory registry used by tests and the simulator.
type Memory struct {
	mu     sync.Mutex
	byEUI  map[uint64]uint8
	byNode map[uint8]uint64
	next   uint8
}

func NewMemory() *Memory {
	return &Memory{
		byEUI:  make(map[uint64]uint8),
		byNode: make(map[uint8]uint64),
		next:   MinNode,
	}
}

func (m *Memory) Assign(ctx context.Context, devEUI uint64) (uint8, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if node, ok := m.byEUI[devEUI]; ok {
		return node, nil
	}
	if m.next > MaxNode || len(m.byEUI) >= int(MaxNode-MinNode)+1 {
		return 0, ErrFull
	}
	node := m.next
	m.next++
	m.byEUI[devEUI] = node
	m.byNode[node] = devEUI
	return node, nil
}

func (m *Memory) Lookup(ctx context.Context, node uint8) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	eui, ok := m.byNode[node]
	if !ok {
		return 0, ErrNotFound
	}
	return eui, nil
}

func (m *Memory) Close() error { return nil }
