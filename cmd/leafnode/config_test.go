package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
name = "probe-3"
dev_eui = "0x1122334455667788"
main = "10.0.0.1:7720"
report_interval = "5m"

[radio]
tx_power = 20
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Name != "probe-3" {
		t.Fatalf("unexpected name: %q", cfg.Name)
	}
	if cfg.DevEUI != 0x1122334455667788 {
		t.Fatalf("unexpected dev_eui: %#x", cfg.DevEUI)
	}
	if cfg.Main != "10.0.0.1:7720" {
		t.Fatalf("unexpected main: %q", cfg.Main)
	}
	if cfg.ReportInterval != 5*time.Minute {
		t.Fatalf("unexpected interval: %v", cfg.ReportInterval)
	}
	if cfg.Radio.TxPower != 20 {
		t.Fatalf("unexpected tx power: %d", cfg.Radio.TxPower)
	}
	if cfg.Radio.FrequencyHz != 915_000_000 {
		t.Fatalf("radio default lost: %d", cfg.Radio.FrequencyHz)
	}
}

func TestLoadConfigIntervalMillis(t *testing.T) {
	path := writeConfig(t, `
dev_eui = "aabbccdd"
report_interval_ms = 1500
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ReportInterval != 1500*time.Millisecond {
		t.Fatalf("unexpected interval: %v", cfg.ReportInterval)
	}
}

func TestLoadConfigMissingEUI(t *testing.T) {
	path := writeConfig(t, `name = "probe"`)
	if _, err := loadConfig(path); err == nil {
		t.Fatalf("expected error for missing dev_eui")
	}
}

func TestLoadConfigBadInterval(t *testing.T) {
	path := writeConfig(t, `
dev_eui = "01"
report_interval = "soon"
`)
	if _, err := loadConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestParseEUI(t *testing.T) {
	cases := map[string]uint64{
		"0x1122334455667788": 0x1122334455667788,
		"1122334455667788":   0x1122334455667788,
		"0xAB":               0xab,
		" ab ":               0xab,
	}
	for raw, want := range cases {
		got, err := parseEUI(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: got %#x want %#x", raw, got, want)
		}
	}
	if _, err := parseEUI("not hex"); err == nil {
		t.Fatalf("expected parse error")
	}
}
