package redis

import (
	"bytes"
	"strings"
	"testing"
)

func TestViewCompression(t *testing.T) {
	view := []byte(`{"countries":[` + strings.Repeat(`{"id":"germany","adoption":0.1},`, 50) + `{}]}`)

	packed := viewEncoder.EncodeAll(view, nil)
	if len(packed) >= len(view) {
		t.Errorf("expected compressed view, got %d bytes from %d", len(packed), len(view))
	}
	unpacked, err := viewDecoder.DecodeAll(packed, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(unpacked, view) {
		t.Error("view changed in round trip")
	}
}

func TestViewKeys(t *testing.T) {
	if got := viewKey("abc"); got != "session:abc:view" {
		t.Errorf("unexpected view key %q", got)
	}
	if got := ownerKey("abc"); got != "session:abc:owner" {
		t.Errorf("unexpected owner key %q", got)
	}
}
