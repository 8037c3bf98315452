package pngstash

import (
	"encoding/binary"
	"fmt"
)

// IHDRType tags the image header chunk, conventionally the first chunk of a
// PNG.
var IHDRType = ChunkType{'I', 'H', 'D', 'R'}

// ihdrLength is the fixed payload size of an IHDR chunk.
const ihdrLength = 13

// IHDR is the decoded view of an image header payload.
type IHDR struct {
	Width       uint32
	Height      uint32
	BitDepth    uint8
	ColorType   uint8
	Compression uint8
	Filter      uint8
	Interlace   uint8
}

// ParseIHDR decodes the 13-byte IHDR payload of chunk.
func ParseIHDR(chunk *Chunk) (*IHDR, error) {
	if len(chunk.Data) != ihdrLength {
		return nil, ErrMalformedInput.
			WithMessage("IHDR payload has wrong size").
			WithDetail("want", ihdrLength).
			WithDetail("got", len(chunk.Data))
	}
	return &IHDR{
		Width:       binary.BigEndian.Uint32(chunk.Data[0:4]),
		Height:      binary.BigEndian.Uint32(chunk.Data[4:8]),
		BitDepth:    chunk.Data[8],
		ColorType:   chunk.Data[9],
		Compression: chunk.Data[10],
		Filter:      chunk.Data[11],
		Interlace:   chunk.Data[12],
	}, nil
}

func (h *IHDR) String() string {
	return fmt.Sprintf("%dx%d bit_depth=%d color_type=%d compression=%d filter=%d interlace=%d",
		h.Width, h.Height, h.BitDepth, h.ColorType, h.Compression, h.Filter, h.Interlace)
}
