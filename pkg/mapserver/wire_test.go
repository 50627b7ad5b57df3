package mapserver

import (
	"bytes"
	"io"
	"testing"
)

func TestWriteReadFrame_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte(`{"Width":20,"Height":20}`)
	if err := WriteFrame(&buf, RequestMap, payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	frame, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if frame.Type != RequestMap {
		t.Fatalf("Type = %v, want RequestMap", frame.Type)
	}
	if !bytes.Equal(frame.Payload, payload) {
		t.Fatalf("Payload = %q, want %q", frame.Payload, payload)
	}
}

func TestWriteFrame_RejectsOversizedPayload(t *testing.T) {
	var buf bytes.Buffer
	payload := make([]byte, MaxPayloadSize+1)
	if err := WriteFrame(&buf, MapData, payload); err != ErrPayloadTooLarge {
		t.Fatalf("err = %v, want ErrPayloadTooLarge", err)
	}
}

func TestReadFrame_EOFOnEmptyStream(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader(nil))
	if err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

func TestReadFrame_TruncatedHeader(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader([]byte{1, 2, 3}))
	if err == nil {
		t.Fatal("expected error for truncated header")
	}
}

func TestMessageType_String(t *testing.T) {
	tests := map[MessageType]string{
		RequestMap:  "RequestMap",
		MapData:     "MapData",
		PlayerMove:  "PlayerMove",
		PlayerJoin:  "PlayerJoin",
		PlayerLeave: "PlayerLeave",
		ErrorMsg:    "Error",
	}
	for mt, want := range tests {
		if got := mt.String(); got != want {
			t.Errorf("MessageType(%d).String() = %q, want %q", mt, got, want)
		}
	}
}
