package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jgallagher59701/soil-moisture-common/internal/node"
	"github.com/jgallagher59701/soil-moisture-common/internal/radio"
)

type fileConfig struct {
	Name        string `toml:"name"`
	Node        uint8  `toml:"node"`
	Listen      string `toml:"listen"`
	Peer        string `toml:"peer"`
	RegistryDir string `toml:"registry_dir"`
	MetricsAddr string `toml:"metrics_addr"`

	Radio fileRadio `toml:"radio"`
}

type fileRadio struct {
	FrequencyHz     uint32 `toml:"frequency_hz"`
	BandwidthHz     uint32 `toml:"bandwidth_hz"`
	SpreadingFactor uint8  `toml:"spreading_factor"`
	CodingRate      uint8  `toml:"coding_rate"`
	TxPower         uint8  `toml:"tx_power"`
}

type mainnodeConfig struct {
	Node        node.MainConfig
	Listen      string
	Peer        string
	RegistryDir string
	MetricsAddr string
	Radio       radio.Config
}

func defaultConfig() mainnodeConfig {
	return mainnodeConfig{
		Node:        node.DefaultMainConfig(),
		Listen:      "127.0.0.1:7720",
		RegistryDir: "local/mainnode",
		Radio:       radio.DefaultConfig(),
	}
}

func loadConfig(path string) (mainnodeConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return mainnodeConfig{}, fmt.Errorf("load mainnode config: %w", err)
	}

	if meta.IsDefined("name") {
		if name := strings.TrimSpace(raw.Name); name != "" {
			cfg.Node.Name = name
		}
	}
	if meta.IsDefined("node") {
		cfg.Node.Node = raw.Node
	}
	if meta.IsDefined("listen") {
		cfg.Listen = strings.TrimSpace(raw.Listen)
	}
	if meta.IsDefined("peer") {
		cfg.Peer = strings.TrimSpace(raw.Peer)
	}
	if meta.IsDefined("registry_dir") {
		cfg.RegistryDir = strings.TrimSpace(raw.RegistryDir)
	}
	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}
	applyRadio(&cfg.Radio, meta, raw.Radio)

	if cfg.Listen == "" {
		return mainnodeConfig{}, fmt.Errorf("mainnode config missing listen address")
	}
	return cfg, nil
}

func applyRadio(cfg *radio.Config, meta toml.MetaData, raw fileRadio) {
	if meta.IsDefined("radio", "frequency_hz") {
		cfg.FrequencyHz = raw.FrequencyHz
	}
	if meta.IsDefined("radio", "bandwidth_hz") {
		cfg.BandwidthHz = raw.BandwidthHz
	}
	if meta.IsDefined("radio", "spreading_factor") {
		cfg.SpreadingFactor = raw.SpreadingFactor
	}
	if meta.IsDefined("radio", "coding_rate") {
		cfg.CodingRate = raw.CodingRate
	}
	if meta.IsDefined("radio", "tx_power") {
		cfg.TxPower = raw.TxPower
	}
}
