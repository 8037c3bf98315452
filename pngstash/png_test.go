package pngstash

import (
	"bytes"
	"testing"
)

func testPNG(t *testing.T) *PNG {
	t.Helper()
	return FromChunks([]*Chunk{
		NewChunk(mustChunkType(t, "FrSt"), []byte("I am the first chunk")),
		NewChunk(mustChunkType(t, "miDl"), []byte("I am another chunk")),
		NewChunk(mustChunkType(t, "LASt"), []byte("I am the last chunk")),
	})
}

func TestParsePNG(t *testing.T) {
	wire := testPNG(t).Bytes()

	png, err := ParsePNG(wire)
	if err != nil {
		t.Fatalf("ParsePNG() error = %v", err)
	}
	if len(png.Chunks()) != 3 {
		t.Fatalf("chunks = %d, want 3", len(png.Chunks()))
	}
	if png.Chunks()[0].Type.String() != "FrSt" {
		t.Errorf("first chunk type = %s, want FrSt", png.Chunks()[0].Type)
	}
}

func TestParsePNG_InvalidSignature(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{name: "empty buffer", buf: nil},
		{name: "short buffer", buf: []byte{137, 80, 78}},
		{name: "wrong first byte", buf: []byte{13, 80, 78, 71, 13, 10, 26, 10}},
		{name: "jpeg magic", buf: []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePNG(tt.buf)
			if code := GetErrorCode(err); code != "INVALID_SIGNATURE" {
				t.Errorf("error code = %q, want INVALID_SIGNATURE", code)
			}
		})
	}
}

func TestParsePNG_SignatureOnly(t *testing.T) {
	png, err := ParsePNG(Signature[:])
	if err != nil {
		t.Fatalf("ParsePNG() error = %v", err)
	}
	if len(png.Chunks()) != 0 {
		t.Errorf("chunks = %d, want 0", len(png.Chunks()))
	}
	if !bytes.Equal(png.Bytes(), Signature[:]) {
		t.Errorf("Bytes() = %v, want bare signature", png.Bytes())
	}
}

func TestParsePNG_TrailingGarbage(t *testing.T) {
	wire := append(testPNG(t).Bytes(), 1, 2, 3)

	_, err := ParsePNG(wire)
	if code := GetErrorCode(err); code != "MALFORMED_INPUT" {
		t.Errorf("error code = %q, want MALFORMED_INPUT", code)
	}
}

func TestParsePNG_TruncatedChunk(t *testing.T) {
	wire := testPNG(t).Bytes()

	// Cut the buffer in the middle of the last chunk's data.
	_, err := ParsePNG(wire[:len(wire)-10])
	if code := GetErrorCode(err); code != "MALFORMED_INPUT" {
		t.Errorf("error code = %q, want MALFORMED_INPUT", code)
	}
}

func TestParsePNG_CorruptChunkFailsWholeParse(t *testing.T) {
	wire := testPNG(t).Bytes()

	// Corrupt a data byte of the second chunk. The first chunk occupies
	// 12+20 bytes after the signature; skip the second chunk's length and
	// type fields too.
	wire[8+32+8+2] ^= 0xff

	_, err := ParsePNG(wire)
	if code := GetErrorCode(err); code != "CRC_MISMATCH" {
		t.Errorf("error code = %q, want CRC_MISMATCH", code)
	}
}

func TestPNGRoundTrip(t *testing.T) {
	original := testPNG(t)
	wire := original.Bytes()

	parsed, err := ParsePNG(wire)
	if err != nil {
		t.Fatalf("ParsePNG() error = %v", err)
	}
	if !bytes.Equal(parsed.Bytes(), wire) {
		t.Errorf("serialized bytes differ after round trip")
	}
	for i, chunk := range parsed.Chunks() {
		want := original.Chunks()[i]
		if chunk.Type != want.Type || !bytes.Equal(chunk.Data, want.Data) {
			t.Errorf("chunk %d differs after round trip", i)
		}
	}
}

func TestChunkByType(t *testing.T) {
	png := testPNG(t)

	chunk := png.ChunkByType(mustChunkType(t, "miDl"))
	if chunk == nil {
		t.Fatalf("ChunkByType() = nil, want chunk")
	}
	if string(chunk.Data) != "I am another chunk" {
		t.Errorf("data = %q", chunk.Data)
	}

	if png.ChunkByType(mustChunkType(t, "noPe")) != nil {
		t.Errorf("ChunkByType() for absent type should be nil")
	}
}

func TestChunkByType_ReturnsFirstOfDuplicates(t *testing.T) {
	teXt := mustChunkType(t, "teXt")
	png := FromChunks([]*Chunk{
		NewChunk(mustChunkType(t, "IHDR"), make([]byte, 13)),
		NewChunk(teXt, []byte("first")),
		NewChunk(teXt, []byte("second")),
	})

	chunk := png.ChunkByType(teXt)
	if chunk == nil || string(chunk.Data) != "first" {
		t.Errorf("ChunkByType() should return the first duplicate")
	}
}

func TestAppendChunk(t *testing.T) {
	png := testPNG(t)
	png.AppendChunk(NewChunk(mustChunkType(t, "TeSt"), []byte("Message?")))

	if len(png.Chunks()) != 4 {
		t.Fatalf("chunks = %d, want 4", len(png.Chunks()))
	}
	chunk := png.ChunkByType(mustChunkType(t, "TeSt"))
	if chunk == nil || string(chunk.Data) != "Message?" {
		t.Errorf("appended chunk not found")
	}
}

func TestRemoveFirstChunk(t *testing.T) {
	teXt := mustChunkType(t, "teXt")
	png := FromChunks([]*Chunk{
		NewChunk(mustChunkType(t, "IHDR"), make([]byte, 13)),
		NewChunk(teXt, []byte("first")),
		NewChunk(teXt, []byte("second")),
		NewChunk(mustChunkType(t, "IDAT"), []byte{0}),
	})

	removed, err := png.RemoveFirstChunk(teXt)
	if err != nil {
		t.Fatalf("RemoveFirstChunk() error = %v", err)
	}
	if string(removed.Data) != "first" {
		t.Errorf("removed data = %q, want %q", removed.Data, "first")
	}

	wantOrder := []string{"IHDR", "teXt", "IDAT"}
	if len(png.Chunks()) != len(wantOrder) {
		t.Fatalf("chunks = %d, want %d", len(png.Chunks()), len(wantOrder))
	}
	for i, chunk := range png.Chunks() {
		if chunk.Type.String() != wantOrder[i] {
			t.Errorf("chunk %d type = %s, want %s", i, chunk.Type, wantOrder[i])
		}
	}
	if remaining := png.ChunkByType(teXt); remaining == nil || string(remaining.Data) != "second" {
		t.Errorf("second duplicate should survive the removal")
	}
}

func TestRemoveFirstChunk_NotFound(t *testing.T) {
	png := testPNG(t)

	_, err := png.RemoveFirstChunk(mustChunkType(t, "noPe"))
	if code := GetErrorCode(err); code != "CHUNK_NOT_FOUND" {
		t.Errorf("error code = %q, want CHUNK_NOT_FOUND", code)
	}
	if len(png.Chunks()) != 3 {
		t.Errorf("failed removal should not mutate the container")
	}
}

func TestStripAncillary(t *testing.T) {
	png := FromChunks([]*Chunk{
		NewChunk(mustChunkType(t, "IHDR"), make([]byte, 13)),
		NewChunk(mustChunkType(t, "tEXt"), []byte("comment")),
		NewChunk(mustChunkType(t, "IDAT"), []byte{0}),
		NewChunk(mustChunkType(t, "tIME"), []byte("when")),
		NewChunk(mustChunkType(t, "IEND"), nil),
	})

	removed := png.StripAncillary()
	if len(removed) != 2 {
		t.Fatalf("removed = %d, want 2", len(removed))
	}
	if removed[0].Type.String() != "tEXt" || removed[1].Type.String() != "tIME" {
		t.Errorf("removed order = %s, %s", removed[0].Type, removed[1].Type)
	}

	wantOrder := []string{"IHDR", "IDAT", "IEND"}
	for i, chunk := range png.Chunks() {
		if chunk.Type.String() != wantOrder[i] {
			t.Errorf("chunk %d type = %s, want %s", i, chunk.Type, wantOrder[i])
		}
	}
}

func TestChunks_ReturnsCopy(t *testing.T) {
	png := testPNG(t)

	chunks := png.Chunks()
	chunks[0], chunks[2] = chunks[2], chunks[0]

	if png.Chunks()[0].Type.String() != "FrSt" {
		t.Errorf("mutating the returned slice changed the container")
	}
	if len(png.Chunks()) != 3 {
		t.Errorf("chunks = %d, want 3", len(png.Chunks()))
	}
}

func TestStripAncillary_NothingToStrip(t *testing.T) {
	png := FromChunks([]*Chunk{
		NewChunk(mustChunkType(t, "IHDR"), make([]byte, 13)),
		NewChunk(mustChunkType(t, "IEND"), nil),
	})

	if removed := png.StripAncillary(); len(removed) != 0 {
		t.Errorf("removed = %d, want 0", len(removed))
	}
	if len(png.Chunks()) != 2 {
		t.Errorf("critical chunks should be untouched")
	}
}
