package pngstash

import (
	"encoding/binary"
	"strings"
	"testing"
)

func TestParseIHDR(t *testing.T) {
	payload := make([]byte, 13)
	binary.BigEndian.PutUint32(payload[0:4], 1920)
	binary.BigEndian.PutUint32(payload[4:8], 1080)
	payload[8] = 8  // bit depth
	payload[9] = 6  // color type: RGBA
	payload[12] = 1 // interlaced

	header, err := ParseIHDR(NewChunk(IHDRType, payload))
	if err != nil {
		t.Fatalf("ParseIHDR() error = %v", err)
	}

	if header.Width != 1920 || header.Height != 1080 {
		t.Errorf("dimensions = %dx%d, want 1920x1080", header.Width, header.Height)
	}
	if header.BitDepth != 8 || header.ColorType != 6 {
		t.Errorf("bit depth/color type = %d/%d, want 8/6", header.BitDepth, header.ColorType)
	}
	if header.Interlace != 1 {
		t.Errorf("interlace = %d, want 1", header.Interlace)
	}
	if !strings.Contains(header.String(), "1920x1080") {
		t.Errorf("String() = %q, want dimensions in it", header.String())
	}
}

func TestParseIHDR_WrongLength(t *testing.T) {
	_, err := ParseIHDR(NewChunk(IHDRType, []byte("too short")))
	if code := GetErrorCode(err); code != "MALFORMED_INPUT" {
		t.Errorf("error code = %q, want MALFORMED_INPUT", code)
	}
}
