package node

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jgallagher59701/soil-moisture-common/internal/message"
	"github.com/jgallagher59701/soil-moisture-common/internal/radio"
)

var ErrNotJoined = errors.New("node: leaf has not joined")

// Reading is one set of sensor values, already scaled for the wire
// (battery volts x100, temperature C x100, humidity percent x100).
type Reading struct {
	Battery  uint16
	Temp     int16
	Humidity uint16
	Status   uint8
}

// Leaf is the sensor-side client: it joins the main node once, keeps its
// clock offset, and reports readings with a monotonic sequence number.
type Leaf struct {
	radio  radio.Radio
	devEUI uint64
	log    zerolog.Logger
	now    func() time.Time

	mu         sync.Mutex
	node       uint8
	joined     bool
	seq        uint32
	lastTxMS   uint16
	timeOffset int64
}

func NewLeaf(devEUI uint64, r radio.Radio, logger zerolog.Logger) *Leaf {
	return &Leaf{
		radio:  r,
		devEUI: devEUI,
		log:    logger,
		now:    time.Now,
	}
}

// Node returns the assigned node number, zero before a join completes.
func (l *Leaf) Node() uint8 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.node
}

// Time returns the leaf's view of network time.
func (l *Leaf) Time() uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return uint32(l.now().Unix() + l.timeOffset)
}

// Join sends a join request and waits for the response that binds this
// leaf's EUI to a node number. Frames of other types arriving in the
// meantime are skipped, not treated as errors.
func (l *Leaf) Join(ctx context.Context) error {
	buf := message.JoinRequest{DevEUI: l.devEUI}.Encode()
	if err := l.timedSend(buf); err != nil {
		return err
	}
	for {
		pkt, err := l.radio.Receive(ctx)
		if err != nil {
			return err
		}
		resp, err := message.DecodeJoinResponse(pkt.Data)
		if err != nil {
			continue
		}
		l.mu.Lock()
		l.node = resp.LeafNode
		l.joined = true
		l.timeOffset = int64(resp.Time) - l.now().Unix()
		l.mu.Unlock()
		l.log.Info().Uint8("node", resp.LeafNode).Uint32("time", resp.Time).Msg("joined main node")
		return nil
	}
}

// RequestTime asks the main node for the time and applies the offset.
func (l *Leaf) RequestTime(ctx context.Context) (uint32, error) {
	l.mu.Lock()
	joined, node := l.joined, l.node
	l.mu.Unlock()
	if !joined {
		return 0, ErrNotJoined
	}
	if err := l.timedSend(message.TimeRequest{Node: node}.Encode()); err != nil {
		return 0, err
	}
	for {
		pkt, err := l.radio.Receive(ctx)
		if err != nil {
			return 0, err
		}
		resp, err := message.DecodeTimeResponse(pkt.Data)
		if err != nil {
			continue
		}
		l.mu.Lock()
		l.timeOffset = int64(resp.Time) - l.now().Unix()
		l.mu.Unlock()
		return resp.Time, nil
	}
}

// SendReading reports one set of sensor values and returns the message
// as it went on air, sequence number and timestamp included.
func (l *Leaf) SendReading(ctx context.Context, r Reading) (message.DataMessage, error) {
	l.mu.Lock()
	if !l.joined {
		l.mu.Unlock()
		return message.DataMessage{}, ErrNotJoined
	}
	l.seq++
	report := message.DataMessage{
		Node:           l.node,
		Message:        l.seq,
		Time:           uint32(l.now().Unix() + l.timeOffset),
		Battery:        r.Battery,
		LastTxDuration: l.lastTxMS,
		Temp:           r.Temp,
		Humidity:       r.Humidity,
		Status:         r.Status,
	}
	l.mu.Unlock()

	if err := l.timedSend(report.Encode()); err != nil {
		return message.DataMessage{}, err
	}
	l.log.Debug().Str("report", report.Format(false)).Msg("reading sent")
	return report, nil
}

// SendText sends a free-form message and returns how many body bytes
// actually went on air after clipping.
func (l *Leaf) SendText(ctx context.Context, body []byte) (int, error) {
	l.mu.Lock()
	joined, node := l.joined, l.node
	l.mu.Unlock()
	if !joined {
		return 0, ErrNotJoined
	}
	buf, n := message.Text{Node: node, Body: body}.Encode()
	if err := l.timedSend(buf); err != nil {
		return 0, err
	}
	if n < len(body) {
		l.log.Warn().Int("sent", n).Int("given", len(body)).Msg("text body clipped")
	}
	return n, nil
}

// timedSend transmits and records the duration so the next telemetry
// report can carry it, the way the embedded leaf measures its RF95 sends.
func (l *Leaf) timedSend(buf []byte) error {
	start := l.now()
	err := l.radio.Send(buf)
	elapsed := l.now().Sub(start).Milliseconds()
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > int64(^uint16(0)) {
		elapsed = int64(^uint16(0))
	}
	l.mu.Lock()
	l.lastTxMS = uint16(elapsed)
	l.mu.Unlock()
	return err
}
