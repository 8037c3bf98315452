package pngstash

import "bytes"

// Signature is the fixed 8-byte header every PNG file starts with.
var Signature = [8]byte{137, 80, 78, 71, 13, 10, 26, 10}

// PNG models a PNG file body: the signature followed by an ordered chunk
// sequence. A PNG exclusively owns its chunks; concurrent mutation needs
// external synchronization.
type PNG struct {
	chunks []*Chunk
}

// FromChunks builds a PNG from an already-decoded chunk sequence.
func FromChunks(chunks []*Chunk) *PNG {
	return &PNG{chunks: chunks}
}

// ParsePNG parses a complete PNG byte buffer. The buffer must start with
// the signature and consist of nothing but well-formed chunk records after
// it; a single bad chunk fails the whole parse. A signature with zero
// chunks is legal.
func ParsePNG(buf []byte) (*PNG, error) {
	if len(buf) < len(Signature) || !bytes.Equal(buf[:len(Signature)], Signature[:]) {
		prefix := buf
		if len(prefix) > len(Signature) {
			prefix = prefix[:len(Signature)]
		}
		return nil, NewInvalidSignatureError(prefix)
	}

	png := &PNG{}
	offset := len(Signature)
	rest := buf[len(Signature):]
	for len(rest) > 0 {
		chunk, n, err := DecodeChunk(rest)
		if err != nil {
			if pngErr, ok := err.(*PngError); ok {
				return nil, pngErr.WithDetail("offset", offset)
			}
			return nil, err
		}
		png.chunks = append(png.chunks, chunk)
		rest = rest[n:]
		offset += n
	}
	return png, nil
}

// Bytes serializes the signature followed by every chunk in sequence order.
func (p *PNG) Bytes() []byte {
	size := len(Signature)
	for _, chunk := range p.chunks {
		size += chunkOverhead + len(chunk.Data)
	}

	buf := make([]byte, 0, size)
	buf = append(buf, Signature[:]...)
	for _, chunk := range p.chunks {
		buf = append(buf, chunk.Bytes()...)
	}
	return buf
}

// Chunks returns the chunk sequence in order. The slice is a copy; the
// container keeps exclusive ownership of its sequence.
func (p *PNG) Chunks() []*Chunk {
	chunks := make([]*Chunk, len(p.chunks))
	copy(chunks, p.chunks)
	return chunks
}

// ChunkByType returns the first chunk of the given type, or nil if the
// container holds none.
func (p *PNG) ChunkByType(chunkType ChunkType) *Chunk {
	for _, chunk := range p.chunks {
		if chunk.Type == chunkType {
			return chunk
		}
	}
	return nil
}

// AppendChunk adds a chunk at the end of the sequence. Duplicate types are
// allowed.
func (p *PNG) AppendChunk(chunk *Chunk) {
	p.chunks = append(p.chunks, chunk)
}

// RemoveFirstChunk removes and returns the first chunk of the given type,
// keeping the remaining chunks in order. Removes exactly one instance even
// when duplicates exist.
func (p *PNG) RemoveFirstChunk(chunkType ChunkType) (*Chunk, error) {
	for i, chunk := range p.chunks {
		if chunk.Type == chunkType {
			p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
			return chunk, nil
		}
	}
	return nil, NewChunkNotFoundError(chunkType)
}

// StripAncillary removes every ancillary chunk, returning the removed
// chunks in their original order. Critical chunks keep their positions.
func (p *PNG) StripAncillary() []*Chunk {
	var kept, removed []*Chunk
	for _, chunk := range p.chunks {
		if chunk.Type.IsAncillary() {
			removed = append(removed, chunk)
		} else {
			kept = append(kept, chunk)
		}
	}
	p.chunks = kept
	return removed
}
