package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jgallagher59701/soil-moisture-common/internal/radio"
)

type fileConfig struct {
	Name             string `toml:"name"`
	DevEUI           string `toml:"dev_eui"`
	Listen           string `toml:"listen"`
	Main             string `toml:"main"`
	ReportInterval   string `toml:"report_interval"`
	ReportIntervalMS int64  `toml:"report_interval_ms"`

	Radio fileRadio `toml:"radio"`
}

type fileRadio struct {
	FrequencyHz     uint32 `toml:"frequency_hz"`
	BandwidthHz     uint32 `toml:"bandwidth_hz"`
	SpreadingFactor uint8  `toml:"spreading_factor"`
	CodingRate      uint8  `toml:"coding_rate"`
	TxPower         uint8  `toml:"tx_power"`
}

type leafnodeConfig struct {
	Name           string
	DevEUI         uint64
	Listen         string
	Main           string
	ReportInterval time.Duration
	Radio          radio.Config
}

func defaultConfig() leafnodeConfig {
	return leafnodeConfig{
		Name:           "leaf",
		Listen:         "127.0.0.1:0",
		Main:           "127.0.0.1:7720",
		ReportInterval: time.Minute,
		Radio:          radio.DefaultConfig(),
	}
}

func loadConfig(path string) (leafnodeConfig, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return leafnodeConfig{}, fmt.Errorf("load leafnode config: %w", err)
	}

	if meta.IsDefined("name") {
		if name := strings.TrimSpace(raw.Name); name != "" {
			cfg.Name = name
		}
	}
	if meta.IsDefined("dev_eui") {
		eui, err := parseEUI(raw.DevEUI)
		if err != nil {
			return leafnodeConfig{}, err
		}
		cfg.DevEUI = eui
	}
	if meta.IsDefined("listen") {
		cfg.Listen = strings.TrimSpace(raw.Listen)
	}
	if meta.IsDefined("main") {
		cfg.Main = strings.TrimSpace(raw.Main)
	}
	if meta.IsDefined("report_interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ReportInterval))
		if err != nil {
			return leafnodeConfig{}, fmt.Errorf("parse report_interval: %w", err)
		}
		cfg.ReportInterval = d
	}
	if meta.IsDefined("report_interval_ms") {
		cfg.ReportInterval = time.Duration(raw.ReportIntervalMS) * time.Millisecond
	}
	applyRadio(&cfg.Radio, meta, raw.Radio)

	if cfg.DevEUI == 0 {
		return leafnodeConfig{}, fmt.Errorf("leafnode config missing dev_eui")
	}
	if cfg.Main == "" {
		return leafnodeConfig{}, fmt.Errorf("leafnode config missing main address")
	}
	return cfg, nil
}

// parseEUI accepts the hex form printed on the EUI chip, with or without
// the 0x prefix.
func parseEUI(raw string) (uint64, error) {
	s := strings.TrimPrefix(strings.TrimSpace(strings.ToLower(raw)), "0x")
	eui, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("parse dev_eui %q: %w", raw, err)
	}
	return eui, nil
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
