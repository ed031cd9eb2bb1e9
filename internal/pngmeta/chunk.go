package pngmeta

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"golang.org/x/text/encoding/charmap"
)

// Size of the PNG file signature.
const HeaderSize = 8

// Signature is the fixed byte sequence every PNG stream starts with.
var Signature = []byte("\x89PNG\r\n\x1a\n")

// Chunk framing sizes: 4-byte length, 4-byte type, data, 4-byte CRC.
const (
	lengthSize    = 4
	typeSize      = 4
	crcSize       = 4
	frameOverhead = lengthSize + typeSize + crcSize
)

// maxChunkLength is the largest data length the PNG framing allows.
const maxChunkLength = 1<<31 - 1

// TextType is the chunk type of an uncompressed Latin-1 text chunk.
const TextType = "tEXt"

// Indicate if buffer starts with a PNG signature.
func IsPNGHeader(buf []byte) bool {
	return len(buf) >= HeaderSize && bytes.Equal(buf[:HeaderSize], Signature)
}

// Chunk represents one framed block of a PNG stream.
type Chunk struct {
	// Type is the 4-character ASCII chunk type.
	Type string

	// Data is the chunk payload. It aliases the scanned buffer.
	Data []byte

	// Offset is the position of the length field in the stream.
	Offset int
}

// Size returns the number of bytes the chunk occupies in the stream,
// framing included.
func (c Chunk) Size() int {
	return frameOverhead + len(c.Data)
}

// Scanner walks the chunks of an in-memory PNG stream.
type Scanner struct {
	buf []byte
	pos int
}

// NewScanner creates a new Scanner and checks the PNG signature.
func NewScanner(buf []byte) (*Scanner, error) {
	if !IsPNGHeader(buf) {
		return nil, errors.New("PNG signature not found")
	}
	return &Scanner{buf: buf, pos: HeaderSize}, nil
}

// Scan returns the next chunk. It reports false at the end of the stream
// and also when the remaining bytes are too short to hold a complete
// frame; a truncated tail is treated as the end of the stream. The CRC is
// skipped without verification.
func (s *Scanner) Scan() (Chunk, bool) {
	rest := s.buf[s.pos:]
	if len(rest) < lengthSize+typeSize {
		return Chunk{}, false
	}
	length := binary.BigEndian.Uint32(rest[:lengthSize])
	if uint64(length)+frameOverhead > uint64(len(rest)) {
		return Chunk{}, false
	}
	start := lengthSize + typeSize
	chunk := Chunk{
		Type:   string(rest[lengthSize:start]),
		Data:   rest[start : start+int(length)],
		Offset: s.pos,
	}
	s.pos += chunk.Size()
	return chunk, true
}

// ReadChunks scans a whole PNG stream and returns its chunks in order.
func ReadChunks(buf []byte) ([]Chunk, error) {
	scanner, err := NewScanner(buf)
	if err != nil {
		return nil, err
	}
	chunks := make([]Chunk, 0, 8)
	for {
		chunk, ok := scanner.Scan()
		if !ok {
			return chunks, nil
		}
		chunks = append(chunks, chunk)
	}
}

// WriteChunk frames data as a chunk of the given type and writes it. The
// CRC-32 covers the type and data bytes.
func WriteChunk(writer io.Writer, chunkType string, data []byte) error {
	if len(chunkType) != typeSize {
		return fmt.Errorf("WriteChunk: chunk type %q must be %d bytes", chunkType, typeSize)
	}
	if len(data) > maxChunkLength {
		return fmt.Errorf("WriteChunk: data is too long (%d), max %d", len(data), maxChunkLength)
	}
	var head [lengthSize + typeSize]byte
	binary.BigEndian.PutUint32(head[:lengthSize], uint32(len(data)))
	copy(head[lengthSize:], chunkType)

	crc := crc32.NewIEEE()
	crc.Write(head[lengthSize:])
	crc.Write(data)
	var tail [crcSize]byte
	binary.BigEndian.PutUint32(tail[:], crc.Sum32())

	if _, err := writer.Write(head[:]); err != nil {
		return err
	}
	if _, err := writer.Write(data); err != nil {
		return err
	}
	_, err := writer.Write(tail[:])
	return err
}

// SplitText separates a tEXt payload into its keyword and text. The
// keyword is the bytes before the first zero byte, decoded as Latin-1, and
// must not be empty.
func SplitText(data []byte) (string, []byte, error) {
	raw, text, _ := bytes.Cut(data, []byte{0})
	if len(raw) == 0 {
		return "", nil, errors.New("invalid tEXt chunk encountered")
	}
	keyword, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", nil, fmt.Errorf("decoding tEXt keyword: %w", err)
	}
	return string(keyword), text, nil
}
