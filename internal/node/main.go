package node

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/jgallagher59701/soil-moisture-common/internal/message"
	"github.com/jgallagher59701/soil-moisture-common/internal/observability"
	"github.com/jgallagher59701/soil-moisture-common/internal/radio"
	"github.com/jgallagher59701/soil-moisture-common/internal/registry"
)

// MainConfig identifies the coordinating node on air and in metrics.
type MainConfig struct {
	Name string
	Node uint8
}

func DefaultMainConfig() MainConfig {
	return MainConfig{Name: "main", Node: 0}
}

// Sink receives decoded telemetry reports. The main node does not store
// readings itself.
type Sink interface {
	Record(ctx context.Context, report message.DataMessage, pkt radio.Packet) error
}

type discardSink struct{}

func (discardSink) Record(context.Context, message.DataMessage, radio.Packet) error { return nil }

// Main is the coordinating node: it answers joins and time requests and
// forwards telemetry to its sink.
type Main struct {
	cfg   MainConfig
	radio radio.Radio
	reg   registry.Registry
	sink  Sink
	now   func() time.Time
	log   zerolog.Logger
}

func NewMain(cfg MainConfig, r radio.Radio, reg registry.Registry, sink Sink, logger zerolog.Logger) *Main {
	if sink == nil {
		sink = discardSink{}
	}
	return &Main{
		cfg:   cfg,
		radio: r,
		reg:   reg,
		sink:  sink,
		now:   time.Now,
		log:   logger,
	}
}

// Run starts the radio and serves until ctx is cancelled or the radio
// closes. Malformed and unknown frames are counted and dropped.
func (m *Main) Run(ctx context.Context) error {
	if err := m.radio.Start(); err != nil {
		return err
	}
	defer m.radio.Stop()

	m.log.Info().Uint8("node", m.cfg.Node).Msg("main node listening")
	for {
		pkt, err := m.radio.Receive(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) ||
				errors.Is(err, radio.ErrClosed) {
				return nil
			}
			return err
		}
		m.handle(ctx, pkt)
	}
}

func (m *Main) handle(ctx context.Context, pkt radio.Packet) {
	t, err := message.Classify(pkt.Data)
	if err != nil {
		observability.RecordDiscard(m.cfg.Name, "short")
		m.log.Warn().Int("len", len(pkt.Data)).Msg("frame too short to classify")
		return
	}
	if !t.Known() {
		observability.RecordDiscard(m.cfg.Name, "unknown")
		m.log.Warn().Uint8("tag", uint8(t)).Msg("unknown message tag")
		return
	}
	observability.RecordMessage(m.cfg.Name, t.String())

	switch t {
	case message.TypeJoinRequest:
		m.handleJoin(ctx, pkt)
	case message.TypeTimeRequest:
		m.handleTimeRequest(pkt)
	case message.TypeDataMessage:
		m.handleData(ctx, pkt)
	case message.TypeText:
		m.handleText(pkt)
	default:
		// Responses and the legacy data packet are not addressed to us.
		observability.RecordDiscard(m.cfg.Name, "unexpected")
		m.log.Warn().Str("type", t.String()).Msg("unexpected message type")
	}
}

func (m *Main) handleJoin(ctx context.Context, pkt radio.Packet) {
	req, err := message.DecodeJoinRequest(pkt.Data)
	if err != nil {
		m.discardMalformed(err)
		return
	}
	leaf, err := m.reg.Assign(ctx, req.DevEUI)
	if err != nil {
		m.log.Error().Err(err).Str("dev_eui", euiString(req.DevEUI)).Msg("join assignment failed")
		return
	}
	observability.RecordJoin(m.cfg.Name)
	m.log.Info().
		Str("dev_eui", euiString(req.DevEUI)).
		Uint8("leaf", leaf).
		Int("rssi", pkt.RSSI).
		Msg("leaf joined")

	resp := message.JoinResponse{
		Node:     m.cfg.Node,
		LeafNode: leaf,
		Time:     uint32(m.now().Unix()),
	}
	if err := m.radio.Send(resp.Encode()); err != nil {
		m.log.Error().Err(err).Msg("join response send failed")
	}
}

func (m *Main) handleTimeRequest(pkt radio.Packet) {
	req, err := message.DecodeTimeRequest(pkt.Data)
	if err != nil {
		m.discardMalformed(err)
		return
	}
	resp := message.TimeResponse{
		Node: m.cfg.Node,
		Time: uint32(m.now().Unix()),
	}
	m.log.Debug().Uint8("leaf", req.Node).Msg("time request")
	if err := m.radio.Send(resp.Encode()); err != nil {
		m.log.Error().Err(err).Msg("time response send failed")
	}
}

func (m *Main) handleData(ctx context.Context, pkt radio.Packet) {
	report, err := message.DecodeDataMessage(pkt.Data)
	if err != nil {
		m.discardMalformed(err)
		return
	}
	observability.RecordTxDuration(m.cfg.Name, strconv.Itoa(int(report.Node)),
		time.Duration(report.LastTxDuration)*time.Millisecond)
	m.log.Debug().Str("report", report.Format(false)).Int("rssi", pkt.RSSI).Msg("telemetry")
	if err := m.sink.Record(ctx, report, pkt); err != nil {
		m.log.Error().Err(err).Uint8("leaf", report.Node).Msg("telemetry sink failed")
	}
}

func (m *Main) handleText(pkt radio.Packet) {
	msg, err := message.DecodeText(pkt.Data)
	if err != nil {
		m.discardMalformed(err)
		return
	}
	m.log.Info().Uint8("leaf", msg.Node).Str("body", string(msg.Body)).Msg("text message")
}

func (m *Main) discardMalformed(err error) {
	observability.RecordDiscard(m.cfg.Name, "malformed")
	m.log.Warn().Err(err).Msg("malformed frame dropped")
}

func euiString(eui uint64) string {
	return "0x" + strconv.FormatUint(eui, 16)
}
