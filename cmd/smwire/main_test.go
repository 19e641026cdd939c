package main

import (
	"bytes"
	"strings"
	"testing"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	a := app()
	var out, errOut bytes.Buffer
	a.Writer = &out
	a.ErrWriter = &errOut
	err := a.Run(append([]string{"smwire"}, args...))
	return out.String(), err
}

func TestBuildThenDecodeJoinRequest(t *testing.T) {
	built, err := runApp(t, "build", "join-request", "--eui", "0x1122334455667788")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	frame := strings.TrimSpace(built)
	if frame != "018877665544332211" {
		t.Fatalf("unexpected encoding: %q", frame)
	}

	decoded, err := runApp(t, "decode", "--compact", frame)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.TrimSpace(decoded) != "join request, 0x1122334455667788" {
		t.Fatalf("unexpected decode output: %q", decoded)
	}
}

func TestBuildDataAndDecodePretty(t *testing.T) {
	built, err := runApp(t, "build", "data",
		"--node", "7", "--seq", "42", "--time", "1700000000",
		"--battery", "405", "--tx-ms", "120", "--temp", "-50",
		"--humidity", "6123", "--status", "0")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	decoded, err := runApp(t, "decode", strings.TrimSpace(built))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, want := range []string{"data message", "node: 7", "message: 42", "temperature: -50"} {
		if !strings.Contains(decoded, want) {
			t.Fatalf("decode output %q missing %q", decoded, want)
		}
	}
}

func TestDecodeRejectsUnknownTag(t *testing.T) {
	if _, err := runApp(t, "decode", "7f0102"); err == nil {
		t.Fatalf("expected error for unknown tag")
	}
}

func TestDecodeAcceptsSpacedHex(t *testing.T) {
	out, err := runApp(t, "decode", "--compact", "03 07")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.TrimSpace(out) != "time request, 7" {
		t.Fatalf("unexpected output: %q", out)
	}
}
