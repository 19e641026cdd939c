package message

import (
	"errors"
	"strings"
	"testing"
)

func TestJoinRequestCompactFormat(t *testing.T) {
	m := JoinRequest{DevEUI: 0x1122334455667788}
	got := m.Format(false)
	if got != "join request, 0x1122334455667788" {
		t.Fatalf("unexpected compact form: %q", got)
	}
}

func TestPrettyFormatCarriesEveryField(t *testing.T) {
	m := DataMessage{
		Node:           7,
		Message:        42,
		Time:           1_700_000_000,
		Battery:        405,
		LastTxDuration: 120,
		Temp:           -50,
		Humidity:       6123,
		Status:         0x02,
	}
	got := m.Format(true)
	for _, want := range []string{"data message", "node: 7", "message: 42",
		"time: 1700000000", "battery: 405", "last tx duration: 120",
		"temperature: -50", "humidity: 6123", "status: 0x02"} {
		if !strings.Contains(got, want) {
			t.Fatalf("pretty form %q missing %q", got, want)
		}
	}
}

func TestConsecutiveFormatCallsAreIndependent(t *testing.T) {
	a := JoinRequest{DevEUI: 0xaaaaaaaaaaaaaaaa}.Format(false)
	b := JoinRequest{DevEUI: 0xbbbbbbbbbbbbbbbb}.Format(false)
	if a == b {
		t.Fatalf("distinct messages rendered identically: %q", a)
	}
	if strings.Contains(a, "bbbb") {
		t.Fatalf("first result reflects second call: %q", a)
	}
	if again := (JoinRequest{DevEUI: 0xaaaaaaaaaaaaaaaa}).Format(false); again != a {
		t.Fatalf("rendering is not stable: %q != %q", again, a)
	}
}

func TestFormatBufferDispatch(t *testing.T) {
	buf := TimeResponse{Node: 3, Time: 1234}.Encode()
	got, err := Format(buf, false)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if got != "time response, 3, 1234" {
		t.Fatalf("unexpected form: %q", got)
	}
}

func TestFormatBufferUnknownTag(t *testing.T) {
	if _, err := Format([]byte{0x7f, 0x00}, true); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestFormatTextPrettyIncludesBody(t *testing.T) {
	got := Text{Node: 5, Body: []byte("pump on")}.Format(true)
	for _, want := range []string{"text", "node: 5", "length: 7", "pump on"} {
		if !strings.Contains(got, want) {
			t.Fatalf("pretty form %q missing %q", got, want)
		}
	}
}
