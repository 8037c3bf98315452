package pngstash

// ChunkType is the 4-byte ASCII tag identifying a chunk's role. Bit 5 of
// each byte doubles as a property flag: uppercase means the flag is off,
// lowercase means it is on.
type ChunkType [4]byte

// propertyBit selects bit 5, the case bit of an ASCII letter.
const propertyBit = 0x20

// NewChunkType builds a ChunkType from raw bytes. Every byte must be an
// ASCII letter.
func NewChunkType(b [4]byte) (ChunkType, error) {
	for _, c := range b {
		if !isAlphabetic(c) {
			return ChunkType{}, NewInvalidChunkTypeError(b[:])
		}
	}
	return ChunkType(b), nil
}

// ParseChunkType parses the string form, e.g. "tEXt".
func ParseChunkType(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, NewInvalidChunkTypeError([]byte(s))
	}
	var b [4]byte
	copy(b[:], s)
	return NewChunkType(b)
}

func isAlphabetic(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}

// IsAncillary reports whether a decoder may safely skip this chunk.
func (t ChunkType) IsAncillary() bool {
	return t[0]&propertyBit != 0
}

// IsCritical reports whether the chunk is required to render the image.
func (t ChunkType) IsCritical() bool {
	return !t.IsAncillary()
}

// IsPublic reports whether the type is registered in the public namespace.
func (t ChunkType) IsPublic() bool {
	return t[1]&propertyBit == 0
}

// IsSafeToCopy reports whether an editor may copy the chunk into a modified
// file without understanding it.
func (t ChunkType) IsSafeToCopy() bool {
	return t[3]&propertyBit != 0
}

// IsValid reports whether the reserved bit (byte 2) is clear, the one
// structural rule beyond the bytes being letters.
func (t ChunkType) IsValid() bool {
	return t[2]&propertyBit == 0
}

func (t ChunkType) String() string {
	return string(t[:])
}
