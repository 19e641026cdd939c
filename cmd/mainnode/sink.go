package main

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jgallagher59701/soil-moisture-common/internal/message"
	"github.com/jgallagher59701/soil-moisture-common/internal/radio"
)

// logSink records telemetry to the log with the scale factors removed,
// which is all the bench daemon needs. A deployment would put a time
// series store here.
type logSink struct {
	log zerolog.Logger
}

func (s logSink) Record(_ context.Context, report message.DataMessage, pkt radio.Packet) error {
	s.log.Info().
		Uint8("leaf", report.Node).
		Uint32("seq", report.Message).
		Uint32("time", report.Time).
		Float64("battery_v", float64(report.Battery)/100).
		Float64("temp_c", float64(report.Temp)/100).
		Float64("humidity_pct", float64(report.Humidity)/100).
		Uint16("last_tx_ms", report.LastTxDuration).
		Uint8("status", report.Status).
		Int("rssi", pkt.RSSI).
		Msg("reading")
	return nil
}
