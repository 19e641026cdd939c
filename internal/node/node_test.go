package node

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jgallagher59701/soil-moisture-common/internal/message"
	"github.com/jgallagher59701/soil-moisture-common/internal/radio"
	"github.com/jgallagher59701/soil-moisture-common/internal/registry"
	"github.com/jgallagher59701/soil-moisture-common/internal/testutil/testlog"
)

type captureSink struct {
	mu      sync.Mutex
	reports []message.DataMessage
	got     chan struct{}
}

func newCaptureSink() *captureSink {
	return &captureSink{got: make(chan struct{}, 16)}
}

func (s *captureSink) Record(_ context.Context, report message.DataMessage, _ radio.Packet) error {
	s.mu.Lock()
	s.reports = append(s.reports, report)
	s.mu.Unlock()
	s.got <- struct{}{}
	return nil
}

func (s *captureSink) last(t *testing.T) message.DataMessage {
	t.Helper()
	select {
	case <-s.got:
	case <-time.After(2 * time.Second):
		t.Fatalf("no report reached the sink")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reports[len(s.reports)-1]
}

// startMain wires a main node to one end of a loopback pair and runs it
// until the test finishes.
func startMain(t *testing.T, sink Sink) *radio.Loopback {
	t.Helper()
	mainRadio, leafRadio := radio.NewLoopbackPair(8)

	m := NewMain(DefaultMainConfig(), mainRadio, registry.NewMemory(), sink, testlog.New(t))
	m.now = func() time.Time { return time.Unix(1_700_000_000, 0) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := m.Run(ctx); err != nil {
			t.Errorf("main run: %v", err)
		}
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return leafRadio
}

func TestJoinHandshake(t *testing.T) {
	leafRadio := startMain(t, nil)
	leaf := NewLeaf(0x1122334455667788, leafRadio, testlog.New(t))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := leaf.Join(ctx); err != nil {
		t.Fatalf("join: %v", err)
	}
	if leaf.Node() != registry.MinNode {
		t.Fatalf("unexpected node number: %d", leaf.Node())
	}
	// Clock synchronized to the main node's fixed time.
	if got := leaf.Time(); got < 1_700_000_000 || got > 1_700_000_010 {
		t.Fatalf("leaf time not synchronized: %d", got)
	}
}

func TestRejoinKeepsNodeNumber(t *testing.T) {
	leafRadio := startMain(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	first := NewLeaf(0xabcdef, leafRadio, testlog.New(t))
	if err := first.Join(ctx); err != nil {
		t.Fatalf("join: %v", err)
	}
	again := NewLeaf(0xabcdef, leafRadio, testlog.New(t))
	if err := again.Join(ctx); err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	if again.Node() != first.Node() {
		t.Fatalf("rejoin changed node number: %d != %d", again.Node(), first.Node())
	}
}

func TestTimeRequest(t *testing.T) {
	leafRadio := startMain(t, nil)
	leaf := NewLeaf(0x55, leafRadio, testlog.New(t))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := leaf.RequestTime(ctx); !errors.Is(err, ErrNotJoined) {
		t.Fatalf("expected ErrNotJoined, got %v", err)
	}
	if err := leaf.Join(ctx); err != nil {
		t.Fatalf("join: %v", err)
	}
	got, err := leaf.RequestTime(ctx)
	if err != nil {
		t.Fatalf("request time: %v", err)
	}
	if got != 1_700_000_000 {
		t.Fatalf("unexpected time: %d", got)
	}
}

func TestTelemetryReachesSink(t *testing.T) {
	sink := newCaptureSink()
	leafRadio := startMain(t, sink)
	leaf := NewLeaf(0x77, leafRadio, testlog.New(t))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := leaf.Join(ctx); err != nil {
		t.Fatalf("join: %v", err)
	}

	sent, err := leaf.SendReading(ctx, Reading{Battery: 405, Temp: -50, Humidity: 6123, Status: 0})
	if err != nil {
		t.Fatalf("send reading: %v", err)
	}
	if sent.Message != 1 {
		t.Fatalf("sequence should start at 1, got %d", sent.Message)
	}
	got := sink.last(t)
	if got != sent {
		t.Fatalf("sink saw %+v, leaf sent %+v", got, sent)
	}

	sent, err = leaf.SendReading(ctx, Reading{Battery: 404, Temp: -49, Humidity: 6100, Status: 1})
	if err != nil {
		t.Fatalf("send reading: %v", err)
	}
	if sent.Message != 2 {
		t.Fatalf("sequence did not advance: %d", sent.Message)
	}
	if sink.last(t) != sent {
		t.Fatalf("second report mismatch")
	}
}

func TestMainSurvivesMalformedFrames(t *testing.T) {
	leafRadio := startMain(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Unknown tag, empty frame, and a truncated join request.
	for _, junk := range [][]byte{{0x7f, 0x01}, {}, {byte(message.TypeJoinRequest), 0x01}} {
		if err := leafRadio.Send(junk); err != nil {
			t.Fatalf("send junk: %v", err)
		}
	}

	leaf := NewLeaf(0x99, leafRadio, testlog.New(t))
	if err := leaf.Join(ctx); err != nil {
		t.Fatalf("join after junk: %v", err)
	}
}

func TestLeafTextClipping(t *testing.T) {
	leafRadio := startMain(t, nil)
	leaf := NewLeaf(0x31, leafRadio, testlog.New(t))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := leaf.Join(ctx); err != nil {
		t.Fatalf("join: %v", err)
	}
	body := make([]byte, message.MaxTextLen+10)
	n, err := leaf.SendText(ctx, body)
	if err != nil {
		t.Fatalf("send text: %v", err)
	}
	if n != message.MaxTextLen {
		t.Fatalf("expected clip to %d, got %d", message.MaxTextLen, n)
	}
}
