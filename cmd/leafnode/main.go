package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jgallagher59701/soil-moisture-common/internal/node"
	"github.com/jgallagher59701/soil-moisture-common/internal/observability"
	"github.com/jgallagher59701/soil-moisture-common/internal/radio"
)

func main() {
	configPath := flag.String("config", "leafnode.toml", "path to leafnode config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "leafnode: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger := observability.InitLogger(cfg.Name)
	logger.Info().
		Str("main", cfg.Main).
		Str("dev_eui", fmt.Sprintf("0x%016x", cfg.DevEUI)).
		Msg("starting leaf node")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	link := radio.NewUDP(cfg.Listen, cfg.Main)
	if err := link.Start(); err != nil {
		return err
	}
	defer link.Stop()

	leaf := node.NewLeaf(cfg.DevEUI, link, logger)
	if err := leaf.Join(ctx); err != nil {
		return fmt.Errorf("join: %w", err)
	}

	ticker := time.NewTicker(cfg.ReportInterval)
	defer ticker.Stop()
	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if _, err := leaf.SendReading(ctx, syntheticReading(i)); err != nil {
			logger.Error().Err(err).Msg("reading failed")
		}
	}
}

// syntheticReading fakes a slowly discharging battery and a daily-ish
// temperature swing, enough to watch the link and the main node's sink.
func syntheticReading(i int) node.Reading {
	phase := float64(i) / 20
	return node.Reading{
		Battery:  uint16(420 - i%100),
		Temp:     int16(1800 + 600*math.Sin(phase)),
		Humidity: uint16(5200 + 800*math.Cos(phase)),
		Status:   0,
	}
}
