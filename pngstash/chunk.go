package pngstash

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"unicode/utf8"

	"github.com/opencontainers/go-digest"
)

// chunkOverhead is the wire size of a chunk minus its data: the length,
// type and CRC fields.
const chunkOverhead = 12

// Chunk is a single PNG chunk: a type tag plus an owned data payload. The
// length and CRC fields of the wire format are derived from (type, data) on
// every encode and never stored.
type Chunk struct {
	Type ChunkType
	Data []byte
}

// NewChunk builds a chunk owning a copy of data.
func NewChunk(chunkType ChunkType, data []byte) *Chunk {
	owned := make([]byte, len(data))
	copy(owned, data)
	return &Chunk{Type: chunkType, Data: owned}
}

// Length returns the size of the data payload in bytes.
func (c *Chunk) Length() uint32 {
	return uint32(len(c.Data))
}

// CRC computes the PNG checksum over the type bytes followed by the data
// bytes. hash/crc32's IEEE table is the same polynomial and reflection the
// PNG spec requires.
func (c *Chunk) CRC() uint32 {
	h := crc32.NewIEEE()
	h.Write(c.Type[:])
	h.Write(c.Data)
	return h.Sum32()
}

// DataString returns the data payload as text. Fails when the payload is
// not valid UTF-8.
func (c *Chunk) DataString() (string, error) {
	if !utf8.Valid(c.Data) {
		return "", ErrMalformedInput.
			WithMessage("chunk data is not valid UTF-8").
			WithDetail("chunkType", c.Type.String())
	}
	return string(c.Data), nil
}

// DataDigest returns the sha256 digest of the data payload.
func (c *Chunk) DataDigest() digest.Digest {
	return digest.FromBytes(c.Data)
}

// Bytes encodes the chunk in wire order: big-endian length, type bytes,
// data, big-endian CRC.
func (c *Chunk) Bytes() []byte {
	buf := make([]byte, chunkOverhead+len(c.Data))
	binary.BigEndian.PutUint32(buf[0:4], c.Length())
	copy(buf[4:8], c.Type[:])
	copy(buf[8:], c.Data)
	binary.BigEndian.PutUint32(buf[len(buf)-4:], c.CRC())
	return buf
}

func (c *Chunk) String() string {
	return fmt.Sprintf("%s (%d bytes)", c.Type, c.Length())
}

// DecodeChunk decodes one chunk record from the front of buf, returning the
// chunk and the number of bytes consumed. It fails on a truncated field, a
// non-alphabetic type byte, or a checksum mismatch; a failed decode never
// returns a partial chunk.
func DecodeChunk(buf []byte) (*Chunk, int, error) {
	if len(buf) < 4 {
		return nil, 0, NewTruncatedInputError("length", 4, len(buf))
	}
	length := binary.BigEndian.Uint32(buf[0:4])
	rest := buf[4:]

	if len(rest) < 4 {
		return nil, 0, NewTruncatedInputError("type", 4, len(rest))
	}
	var raw [4]byte
	copy(raw[:], rest[0:4])
	chunkType, err := NewChunkType(raw)
	if err != nil {
		return nil, 0, err
	}
	rest = rest[4:]

	if uint64(len(rest)) < uint64(length) {
		return nil, 0, NewTruncatedInputError("data", int(length), len(rest))
	}
	data := rest[:length]
	rest = rest[length:]

	if len(rest) < 4 {
		return nil, 0, NewTruncatedInputError("crc", 4, len(rest))
	}
	stored := binary.BigEndian.Uint32(rest[0:4])

	chunk := NewChunk(chunkType, data)
	if computed := chunk.CRC(); computed != stored {
		return nil, 0, NewCrcMismatchError(chunkType, stored, computed)
	}
	return chunk, chunkOverhead + int(length), nil
}
