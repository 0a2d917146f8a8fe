package images

import (
	"bytes"
	"encoding/binary"
	"image"
	"testing"
)

func TestEnsureJFIFAPP0_AddsMarker(t *testing.T) {
	// Minimal JPEG without APP0
	data := []byte{0xFF, 0xD8, 0xFF, 0xDB, 0x00, 0x04}

	out, added, err := EnsureJFIFAPP0(data, DensityPerInch, 300, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !added {
		t.Fatal("expected marker to be added")
	}
	if len(out) != len(data)+18 {
		t.Fatalf("expected 18 bytes segment, got %d", len(out)-len(data))
	}
	if !bytes.Equal(out[2:4], []byte{0xFF, 0xE0}) {
		t.Fatal("expected JFIF APP0 marker at position 2-3")
	}
	if out[13] != byte(DensityPerInch) || binary.BigEndian.Uint16(out[14:16]) != 300 {
		t.Fatalf("unexpected density fields: % x", out[13:18])
	}
	if !bytes.Equal(out[20:], data[2:]) {
		t.Fatal("expected original segments preserved")
	}
}

func TestEnsureJFIFAPP0_AlreadyPresent(t *testing.T) {
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}

	out, added, err := EnsureJFIFAPP0(data, DensityPerInch, 300, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added || !bytes.Equal(out, data) {
		t.Fatal("expected data unchanged")
	}
}

func TestEnsureJFIFAPP0_NotJPEG(t *testing.T) {
	if _, _, err := EnsureJFIFAPP0([]byte("GIF89a"), DensityNone, 1, 1); err == nil {
		t.Fatal("expected error")
	}
}

func TestEncodeJPEG(t *testing.T) {
	out, err := EncodeJPEG(image.NewGray(image.Rect(0, 0, 8, 8)), 80, 150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out[2:4], []byte{0xFF, 0xE0}) || !bytes.Equal(out[6:11], []byte("JFIF\x00")) {
		t.Fatalf("expected JFIF header, got % x", out[:12])
	}
}
