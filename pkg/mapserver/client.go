package mapserver

import (
	"encoding/json"
	"fmt"
	"net"
)

// Dial opens a TCP connection to a mapserver instance at addr. Callers are
// responsible for closing the returned connection.
func Dial(addr string) (net.Conn, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("mapserver: dial %s: %w", addr, err)
	}
	return conn, nil
}

// RequestMapFrom sends a RequestMap frame built from req over conn and
// returns the raw payload of the MapData (or Error) response.
func RequestMapFrom(conn net.Conn, req RequestMapPayload) (MessageType, []byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return 0, nil, fmt.Errorf("mapserver: encode request: %w", err)
	}
	if err := WriteFrame(conn, RequestMap, body); err != nil {
		return 0, nil, err
	}
	frame, err := ReadFrame(conn)
	if err != nil {
		return 0, nil, err
	}
	return frame.Type, frame.Payload, nil
}
