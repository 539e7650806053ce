package sii

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncode(t *testing.T) {
	tests := []struct {
		name     string
		raw      []byte
		wantText string
		wantEnc  Encoding
	}{
		{
			name:     "plain_utf8",
			raw:      []byte(`name[1]: "Bo"`),
			wantText: `name[1]: "Bo"`,
			wantEnc:  UTF8,
		},
		{
			name:     "utf8_bom_kept",
			raw:      append([]byte{0xEF, 0xBB, 0xBF}, []byte(`name[1]: "Bo"`)...),
			wantText: "\ufeff" + `name[1]: "Bo"`,
			wantEnc:  UTF8,
		},
		{
			name:     "utf16_little_endian",
			raw:      []byte{0xFF, 0xFE, 'h', 0, 'i', 0},
			wantText: "hi",
			wantEnc:  UTF16LE,
		},
		{
			name:     "utf16_big_endian",
			raw:      []byte{0xFE, 0xFF, 0, 'h', 0, 'i'},
			wantText: "hi",
			wantEnc:  UTF16BE,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, enc, err := Decode(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantEnc, enc)

			back, err := Encode(text, enc)
			require.NoError(t, err)
			assert.Equal(t, tt.raw, back, "encoding should round trip to the original bytes")
		})
	}
}

func TestEncodingString(t *testing.T) {
	assert.Equal(t, "utf-8", UTF8.String())
	assert.Equal(t, "utf-16le", UTF16LE.String())
	assert.Equal(t, "utf-16be", UTF16BE.String())
}
