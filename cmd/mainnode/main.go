package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jgallagher59701/soil-moisture-common/internal/node"
	"github.com/jgallagher59701/soil-moisture-common/internal/observability"
	"github.com/jgallagher59701/soil-moisture-common/internal/radio"
	"github.com/jgallagher59701/soil-moisture-common/internal/registry"
)

func main() {
	configPath := flag.String("config", "", "path to mainnode config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "mainnode: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger := observability.InitLogger(cfg.Node.Name)
	logger.Info().
		Str("listen", cfg.Listen).
		Uint32("frequency_hz", cfg.Radio.FrequencyHz).
		Msg("starting main node")

	reg, err := registry.Open(cfg.RegistryDir)
	if err != nil {
		return err
	}
	defer reg.Close()

	if cfg.MetricsAddr != "" {
		observability.RegisterMetrics()
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Error().Err(err).Msg("metrics listener failed")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	link := radio.NewUDP(cfg.Listen, cfg.Peer)
	sink := logSink{log: logger}
	return node.NewMain(cfg.Node, link, reg, sink, logger).Run(ctx)
}
