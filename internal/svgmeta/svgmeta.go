// Package svgmeta embeds and extracts refig metadata in SVG documents.
//
// The metadata lives in a <metadata id="refig"> element as escaped JSON
// text. The document is edited with pattern matching rather than a full
// XML parse, so everything outside that element is preserved exactly.
package svgmeta

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	rerrors "github.com/refig/refig/internal/errors"
	"github.com/refig/refig/internal/record"
)

// ID is the id attribute value of the metadata element owned by refig.
const ID = "refig"

// Format is the container name reported in errors.
const Format = "svg"

var (
	// metadataPattern matches <metadata ... id="refig" ...>BODY</metadata>
	// with either quote style, any attribute order and a non-greedy body.
	metadataPattern = regexp2.MustCompile(
		`<metadata\b[^>]*\bid=(?<quote>['"])`+ID+`\k<quote>[^>]*>(?<body>.*?)</metadata>`,
		regexp2.IgnoreCase|regexp2.Singleline,
	)

	rootPattern = regexp2.MustCompile(`<svg\b[^>]*>`, regexp2.IgnoreCase)

	escaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
	)
)

// Embed returns a copy of data with rec stored in the refig metadata
// element. An existing element has its content replaced in place;
// otherwise a new element is inserted right after the <svg> opening tag.
func Embed(data []byte, rec record.Record) ([]byte, error) {
	text, err := decode(data)
	if err != nil {
		return nil, err
	}

	payload, err := rec.Marshal()
	if err != nil {
		return nil, rerrors.NewFormatError(Format, "cannot serialize metadata", err)
	}
	escaped := escaper.Replace(string(payload))

	// regexp2 reports positions in runes.
	runes := []rune(text)

	match, err := metadataPattern.FindRunesMatch(runes)
	if err != nil {
		return nil, rerrors.NewFormatError(Format, "scanning for metadata element", err)
	}
	if match != nil {
		body := match.GroupByName("body")
		return splice(runes, body.Index, body.Index+body.Length, escaped), nil
	}

	root, err := rootPattern.FindRunesMatch(runes)
	if err != nil {
		return nil, rerrors.NewFormatError(Format, "scanning for root element", err)
	}
	if root == nil {
		return nil, rerrors.NewFormatError(Format, "unable to locate <svg> root element in SVG document", nil)
	}
	end := root.Index + root.Length
	element := "\n  <metadata id=\"" + ID + "\">" + escaped + "</metadata>\n"
	return splice(runes, end, end, element), nil
}

// Extract returns the metadata stored in the refig metadata element.
func Extract(data []byte) (record.Record, error) {
	text, err := decode(data)
	if err != nil {
		return nil, err
	}

	match, err := metadataPattern.FindStringMatch(text)
	if err != nil {
		return nil, rerrors.NewFormatError(Format, "scanning for metadata element", err)
	}
	if match == nil {
		return nil, rerrors.NewFormatError(Format, "no refig metadata found in the provided SVG", nil)
	}

	payload := strings.TrimSpace(html.UnescapeString(match.GroupByName("body").String()))
	if payload == "" {
		return nil, rerrors.NewFormatError(Format, "refig metadata block is empty", nil)
	}

	rec, err := record.Unmarshal([]byte(payload))
	if err != nil {
		return nil, rerrors.NewFormatError(Format, "invalid metadata payload", err)
	}
	return rec, nil
}

// Count returns the number of refig metadata elements in data.
func Count(data []byte) int {
	if !utf8.Valid(data) {
		return 0
	}
	n := 0
	match, err := metadataPattern.FindStringMatch(string(data))
	for err == nil && match != nil {
		n++
		match, err = metadataPattern.FindNextMatch(match)
	}
	return n
}

func decode(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", rerrors.NewFormatError(Format, "SVG data is not valid UTF-8", nil)
	}
	return string(data), nil
}

func splice(runes []rune, start, end int, insert string) []byte {
	var b strings.Builder
	b.Grow(len(runes) + len(insert))
	b.WriteString(string(runes[:start]))
	b.WriteString(insert)
	b.WriteString(string(runes[end:]))
	return []byte(b.String())
}
