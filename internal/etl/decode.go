package etl

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

// ── Content Decoder ────────────────────────────────────────
// Government open-data exports arrive as UTF-8 (with or without BOM) or as
// CP950/Big5. Candidates are tried in order; the first clean decode wins.

var utf8BOM = []byte("\xef\xbb\xbf")

// candidate is one named decoding attempt.
type candidate struct {
	name string
	enc  encoding.Encoding // nil means strict UTF-8
}

// x/text has a single Big5 table that already carries the CP950 extensions,
// so "cp950" and "big5" are one attempt.
var candidates = []candidate{
	{name: "utf-8"},
	{name: "cp950", enc: traditionalchinese.Big5},
	{name: "latin-1", enc: charmap.ISO8859_1},
}

// DecodeContent converts raw bytes to text. It never fails: when no candidate
// decodes cleanly the payload is decoded as UTF-8 with invalid bytes dropped.
func DecodeContent(data []byte) string {
	text, _ := DecodeContentNamed(data)
	return text
}

// DecodeContentNamed is DecodeContent that also reports which encoding won
// ("utf-8-lossy" for the last-resort path).
func DecodeContentNamed(data []byte) (string, string) {
	for _, c := range candidates {
		if text, ok := tryDecode(c, data); ok {
			return text, c.name
		}
	}
	return lossyUTF8(data), "utf-8-lossy"
}

func tryDecode(c candidate, data []byte) (string, bool) {
	if c.enc == nil {
		if !utf8.Valid(data) {
			return "", false
		}
		return string(bytes.TrimPrefix(data, utf8BOM)), true
	}

	out, _, err := transform.Bytes(c.enc.NewDecoder(), data)
	if err != nil {
		return "", false
	}
	// x/text substitutes U+FFFD for undecodable input instead of erroring.
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

func lossyUTF8(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	return strings.ToValidUTF8(string(data), "")
}
