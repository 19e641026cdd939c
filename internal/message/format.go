package message

import "fmt"

// Debug renderings. Two modes per variant: pretty carries field labels,
// compact is the type name followed by comma-separated raw values. The
// exact text is a diagnostic aid, not part of the wire contract. Every
// call returns a freshly built string.

// Format renders a join request.
func (m JoinRequest) Format(pretty bool) string {
	if pretty {
		return fmt.Sprintf("type: %s, device EUI: 0x%016x", TypeJoinRequest, m.DevEUI)
	}
	return fmt.Sprintf("%s, 0x%016x", TypeJoinRequest, m.DevEUI)
}

// Format renders a join response.
func (m JoinResponse) Format(pretty bool) string {
	if pretty {
		return fmt.Sprintf("type: %s, node: %d, leaf node: %d, time: %d",
			TypeJoinResponse, m.Node, m.LeafNode, m.Time)
	}
	return fmt.Sprintf("%s, %d, %d, %d", TypeJoinResponse, m.Node, m.LeafNode, m.Time)
}

// Format renders a time request.
func (m TimeRequest) Format(pretty bool) string {
	if pretty {
		return fmt.Sprintf("type: %s, node: %d", TypeTimeRequest, m.Node)
	}
	return fmt.Sprintf("%s, %d", TypeTimeRequest, m.Node)
}

// Format renders a time response.
func (m TimeResponse) Format(pretty bool) string {
	if pretty {
		return fmt.Sprintf("type: %s, node: %d, time: %d", TypeTimeResponse, m.Node, m.Time)
	}
	return fmt.Sprintf("%s, %d, %d", TypeTimeResponse, m.Node, m.Time)
}

// Format renders a text message.
func (m Text) Format(pretty bool) string {
	if pretty {
		return fmt.Sprintf("type: %s, node: %d, length: %d, body: %s",
			TypeText, m.Node, len(m.Body), m.Body)
	}
	return fmt.Sprintf("%s, %d, %d, %s", TypeText, m.Node, len(m.Body), m.Body)
}

// Format renders a telemetry report. Values are the raw scaled integers
// as transmitted.
func (m DataMessage) Format(pretty bool) string {
	if pretty {
		return fmt.Sprintf(
			"type: %s, node: %d, message: %d, time: %d, battery: %d, last tx duration: %d, temperature: %d, humidity: %d, status: 0x%02x",
			TypeDataMessage, m.Node, m.Message, m.Time, m.Battery,
			m.LastTxDuration, m.Temp, m.Humidity, m.Status)
	}
	return fmt.Sprintf("%s, %d, %d, %d, %d, %d, %d, %d, 0x%02x",
		TypeDataMessage, m.Node, m.Message, m.Time, m.Battery,
		m.LastTxDuration, m.Temp, m.Humidity, m.Status)
}

// Format classifies buf, decodes the matching variant and renders it.
// Buffers with a tag outside the contract fail with ErrUnknownType.
func Format(buf []byte, pretty bool) (string, error) {
	t, err := Classify(buf)
	if err != nil {
		return "", err
	}
	switch t {
	case TypeJoinRequest:
		m, err := DecodeJoinRequest(buf)
		if err != nil {
			return "", err
		}
		return m.Format(pretty), nil
	case TypeJoinResponse:
		m, err := DecodeJoinResponse(buf)
		if err != nil {
			return "", err
		}
		return m.Format(pretty), nil
	case TypeTimeRequest:
		m, err := DecodeTimeRequest(buf)
		if err != nil {
			return "", err
		}
		return m.Format(pretty), nil
	case TypeTimeResponse:
		m, err := DecodeTimeResponse(buf)
		if err != nil {
			return "", err
		}
		return m.Format(pretty), nil
	case TypeText:
		m, err := DecodeText(buf)
		if err != nil {
			return "", err
		}
		return m.Format(pretty), nil
	case TypeDataMessage:
		m, err := DecodeDataMessage(buf)
		if err != nil {
			return "", err
		}
		return m.Format(pretty), nil
	default:
		return "", fmt.Errorf("%w: tag %d", ErrUnknownType, uint8(t))
	}
}
