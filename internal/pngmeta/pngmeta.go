// Package pngmeta embeds and extracts refig metadata in PNG images. The
// metadata is carried in a single tEXt chunk with the keyword "refig",
// placed directly after the signature. Every other chunk is passed
// through untouched and in its original order.
package pngmeta

import (
	"bytes"
	"unicode/utf8"

	rerrors "github.com/refig/refig/internal/errors"
	"github.com/refig/refig/internal/record"
)

// Keyword identifies the tEXt chunk owned by refig.
const Keyword = "refig"

// Format is the container name reported in errors.
const Format = "png"

// keywordPrefix starts every refig tEXt payload: the keyword and its
// terminating zero byte. Keyword is ASCII, so its Latin-1 form is its bytes.
var keywordPrefix = append([]byte(Keyword), 0)

// Embed returns a copy of data with rec stored in a refig tEXt chunk.
// Any refig chunk already present is removed so the result carries
// exactly one.
func Embed(data []byte, rec record.Record) ([]byte, error) {
	scanner, err := NewScanner(data)
	if err != nil {
		return nil, rerrors.NewFormatError(Format, "input data does not look like a PNG image", nil)
	}

	payload, err := rec.Marshal()
	if err != nil {
		return nil, rerrors.NewFormatError(Format, "cannot serialize metadata", err)
	}
	text := make([]byte, 0, len(keywordPrefix)+len(payload))
	text = append(text, keywordPrefix...)
	text = append(text, payload...)

	var out bytes.Buffer
	out.Grow(len(data) + frameOverhead + len(text))
	out.Write(Signature)
	if err := WriteChunk(&out, TextType, text); err != nil {
		return nil, rerrors.NewFormatError(Format, "cannot build metadata chunk", err)
	}

	// Copy the original stream, skipping the byte ranges of previous
	// refig chunks. Bytes past the last complete frame are kept as-is.
	copied := HeaderSize
	for {
		chunk, ok := scanner.Scan()
		if !ok {
			break
		}
		if !isRefigChunk(chunk) {
			continue
		}
		out.Write(data[copied:chunk.Offset])
		copied = chunk.Offset + chunk.Size()
	}
	out.Write(data[copied:])

	return out.Bytes(), nil
}

// Extract returns the metadata stored in the first refig tEXt chunk.
func Extract(data []byte) (record.Record, error) {
	scanner, err := NewScanner(data)
	if err != nil {
		return nil, rerrors.NewFormatError(Format, "input data does not look like a PNG image", nil)
	}
	for {
		chunk, ok := scanner.Scan()
		if !ok {
			return nil, rerrors.NewFormatError(Format, "no refig metadata found in the provided image", nil)
		}
		if chunk.Type != TextType {
			continue
		}
		keyword, text, err := SplitText(chunk.Data)
		if err != nil {
			return nil, rerrors.NewFormatError(Format, "malformed text chunk", err)
		}
		if keyword != Keyword {
			continue
		}
		if !utf8.Valid(text) {
			return nil, rerrors.NewFormatError(Format, "metadata text is not valid UTF-8", nil)
		}
		rec, err := record.Unmarshal(text)
		if err != nil {
			return nil, rerrors.NewFormatError(Format, "invalid metadata payload", err)
		}
		return rec, nil
	}
}

// Has reports whether data is a PNG stream carrying a refig chunk.
func Has(data []byte) bool {
	scanner, err := NewScanner(data)
	if err != nil {
		return false
	}
	for {
		chunk, ok := scanner.Scan()
		if !ok {
			return false
		}
		if isRefigChunk(chunk) {
			return true
		}
	}
}

func isRefigChunk(chunk Chunk) bool {
	if chunk.Type != TextType {
		return false
	}
	keyword, _, err := SplitText(chunk.Data)
	return err == nil && keyword == Keyword
}
