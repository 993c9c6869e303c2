package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessEscapeSequences_StandardEscapes(t *testing.T) {
	assert.Equal(t, "a\nb\tc", ProcessEscapeSequences(`a\nb\tc`))
	assert.Equal(t, "\\", ProcessEscapeSequences(`\\`))
	assert.Equal(t, "\x00", ProcessEscapeSequences(`\0`))
}

func TestProcessEscapeSequences_HexEscapeConsumesAllHexDigits(t *testing.T) {
	assert.Equal(t, "A", ProcessEscapeSequences(`\x041`))
}

func TestProcessEscapeSequences_UnknownEscapePreservedAsIs(t *testing.T) {
	assert.Equal(t, `\q`, ProcessEscapeSequences(`\q`))
}

func TestParseEscapeChar_Newline(t *testing.T) {
	b, consumed, err := ParseEscapeChar(`\n`)
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), b)
	assert.Equal(t, 2, consumed)
}

func TestParseEscapeChar_HexByte(t *testing.T) {
	b, consumed, err := ParseEscapeChar(`\x41`)
	require.NoError(t, err)
	assert.Equal(t, byte('A'), b)
	assert.Equal(t, 4, consumed)
}

func TestParseEscapeChar_RejectsTruncatedEscape(t *testing.T) {
	_, _, err := ParseEscapeChar(`\`)
	assert.Error(t, err)
}

func TestParseEscapeChar_RejectsUnknownEscape(t *testing.T) {
	_, _, err := ParseEscapeChar(`\q`)
	assert.Error(t, err)
}
