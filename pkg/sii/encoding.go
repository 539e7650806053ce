package sii

import (
	"bytes"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies how a document was stored on disk
type Encoding int

const (
	UTF8    Encoding = iota // also covers UTF-8 with a BOM, kept as plain text
	UTF16LE                 // FF FE byte order mark
	UTF16BE                 // FE FF byte order mark
)

// String returns a string representation of Encoding
func (e Encoding) String() string {
	switch e {
	case UTF16LE:
		return "utf-16le"
	case UTF16BE:
		return "utf-16be"
	default:
		return "utf-8"
	}
}

func (e Encoding) codec() encoding.Encoding {
	switch e {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		return unicode.UTF8
	}
}

// DetectEncoding looks at the byte order mark only
func DetectEncoding(raw []byte) Encoding {
	switch {
	case bytes.HasPrefix(raw, []byte{0xFF, 0xFE}):
		return UTF16LE
	case bytes.HasPrefix(raw, []byte{0xFE, 0xFF}):
		return UTF16BE
	default:
		return UTF8
	}
}

// 📥 Decode turns raw file bytes into text. UTF-8 content is returned as is,
// BOM included, so that it survives a rewrite byte for byte.
func Decode(raw []byte) (string, Encoding, error) {
	enc := DetectEncoding(raw)
	if enc == UTF8 {
		return string(raw), enc, nil
	}

	out, err := enc.codec().NewDecoder().Bytes(raw)
	if err != nil {
		return "", enc, errors.Errorf("decoding %s: %w", enc, err)
	}
	return string(out), enc, nil
}

// 📤 Encode is the inverse of Decode
func Encode(text string, enc Encoding) ([]byte, error) {
	if enc == UTF8 {
		return []byte(text), nil
	}

	out, err := enc.codec().NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, errors.Errorf("encoding %s: %w", enc, err)
	}
	return out, nil
}
