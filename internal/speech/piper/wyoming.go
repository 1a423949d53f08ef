package piper

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Upper bounds for a single Wyoming frame.
const (
	maxEventJSONBytes = 1 << 20
	maxPayloadBytes   = 4 << 20
)

// event is one Wyoming protocol message. On the wire it is framed as
//
//	<json_length> <payload_length>\n
//	<json_bytes>\n
//	<payload_bytes>   (if payload_length > 0)
type event struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

func (e event) number(key string, def int) int {
	if v, ok := e.Data[key].(float64); ok {
		return int(v)
	}
	return def
}

func (e event) text(key string) string {
	s, _ := e.Data[key].(string)
	return s
}

// writeEvent frames and sends one event with an optional binary payload.
func writeEvent(w io.Writer, evt event, payload []byte) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshalling %s event: %w", evt.Type, err)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", len(body), len(payload))
	bw.Write(body)
	bw.WriteByte('\n')
	if len(payload) > 0 {
		bw.Write(payload)
	}
	return bw.Flush()
}

// readEvent reads one framed event and its payload.
func readEvent(r *bufio.Reader) (event, []byte, error) {
	header, err := r.ReadString('\n')
	if err != nil {
		return event{}, nil, fmt.Errorf("reading header: %w", err)
	}

	fields := strings.Fields(header)
	if len(fields) != 2 {
		return event{}, nil, fmt.Errorf("invalid wyoming header: %q", strings.TrimSpace(header))
	}
	jsonLen, err := strconv.Atoi(fields[0])
	if err != nil || jsonLen < 0 {
		return event{}, nil, fmt.Errorf("invalid json length %q", fields[0])
	}
	if jsonLen > maxEventJSONBytes {
		return event{}, nil, fmt.Errorf("json length %d exceeds limit of %d bytes", jsonLen, maxEventJSONBytes)
	}
	payloadLen, err := strconv.Atoi(fields[1])
	if err != nil || payloadLen < 0 {
		return event{}, nil, fmt.Errorf("invalid payload length %q", fields[1])
	}
	if payloadLen > maxPayloadBytes {
		return event{}, nil, fmt.Errorf("payload length %d exceeds limit of %d bytes", payloadLen, maxPayloadBytes)
	}

	body := make([]byte, jsonLen+1) // trailing newline
	if _, err := io.ReadFull(r, body); err != nil {
		return event{}, nil, fmt.Errorf("reading json: %w", err)
	}

	var evt event
	if err := json.Unmarshal(body[:jsonLen], &evt); err != nil {
		return event{}, nil, fmt.Errorf("unmarshalling event: %w", err)
	}

	var payload []byte
	if payloadLen > 0 {
		payload = make([]byte, payloadLen)
		if _, err := io.ReadFull(r, payload); err != nil {
			return event{}, nil, fmt.Errorf("reading payload: %w", err)
		}
	}
	return evt, payload, nil
}
