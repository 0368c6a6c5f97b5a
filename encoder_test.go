package qrcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeqown/reedsolomon/binary"
)

func TestAnalyzeMode(t *testing.T) {
	assert.Equal(t, EncModeNumeric, analyzeMode([]byte("0123456789")))
	assert.Equal(t, EncModeAlphanumeric, analyzeMode([]byte("HELLO WORLD")))
	assert.Equal(t, EncModeAlphanumeric, analyzeMode([]byte("UPI://PAY")))
	assert.Equal(t, EncModeByte, analyzeMode([]byte("hello")))
	assert.Equal(t, EncModeByte, analyzeMode([]byte("upi://pay?pa=alice%40bank")))
	assert.Equal(t, EncModeByte, analyzeMode(nil))
}

func TestCoveredBy(t *testing.T) {
	assert.True(t, coveredBy([]byte("42"), EncModeNumeric))
	assert.False(t, coveredBy([]byte("4A"), EncModeNumeric))
	assert.True(t, coveredBy([]byte("AC-42 $%"), EncModeAlphanumeric))
	assert.False(t, coveredBy([]byte("ac-42"), EncModeAlphanumeric))
	assert.True(t, coveredBy([]byte{0x00, 0xFF}, EncModeByte))
}

func bitString(b *binary.Binary, n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if b.At(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func TestEncoder_numeric(t *testing.T) {
	v := loadVersion(1, ErrorCorrectionMedium)
	enc := newEncoder(EncModeNumeric, v)

	out, err := enc.Encode([]byte("01234567"))
	require.NoError(t, err)

	// mode, count of 8 in 10 bits, then 012 / 345 / 67
	want := "0001" + "0000001000" + "0000001100" + "0101011001" + "1000011"
	assert.Equal(t, want, bitString(out, len(want)))
	assert.Equal(t, v.capacityBits(), out.Len())
}

func TestEncoder_alphanumeric(t *testing.T) {
	v := loadVersion(1, ErrorCorrectionHighest)
	enc := newEncoder(EncModeAlphanumeric, v)

	out, err := enc.Encode([]byte("AC-42"))
	require.NoError(t, err)

	// mode, count of 5 in 9 bits, pairs AC and -4 in 11 bits, singleton 2 in 6
	want := "0010" + "000000101" + "00111001110" + "11100111001" + "000010"
	assert.Equal(t, want, bitString(out, len(want)))
}

func TestEncoder_byte(t *testing.T) {
	v := loadVersion(1, ErrorCorrectionMedium)
	enc := newEncoder(EncModeByte, v)

	out, err := enc.Encode([]byte{0xF0})
	require.NoError(t, err)

	want := "0100" + "00000001" + "11110000"
	assert.Equal(t, want, bitString(out, len(want)))
}

func TestEncoder_paddingFillsCapacity(t *testing.T) {
	v := loadVersion(1, ErrorCorrectionQuart)
	enc := newEncoder(EncModeByte, v)

	out, err := enc.Encode([]byte("ab"))
	require.NoError(t, err)
	require.Equal(t, v.capacityBits(), out.Len())

	// mode + count + 2 bytes + terminator lands on a codeword boundary
	// after 32 bits, so the tail alternates the two fixed pad codewords
	pads := (v.capacityBits() - 32) / 8
	for i := 0; i < pads; i++ {
		start := 32 + i*8
		want := "11101100"
		if i%2 == 1 {
			want = "00010001"
		}
		pad, err := out.Subset(start, start+8)
		require.NoError(t, err)
		assert.Equalf(t, want, bitString(pad, 8), "pad codeword %d", i)
	}
}

func TestEncoder_rejectsUncoveredPayload(t *testing.T) {
	v := loadVersion(1, ErrorCorrectionMedium)

	_, err := newEncoder(EncModeNumeric, v).Encode([]byte("12A"))
	assert.ErrorIs(t, err, ErrUnsupportedCharset)

	_, err = newEncoder(EncModeAlphanumeric, v).Encode([]byte("hello"))
	assert.ErrorIs(t, err, ErrUnsupportedCharset)
}

func TestInterleaveCodewords_workedExample(t *testing.T) {
	// "HELLO WORLD" at version 1-M is the standard worked example: 16 data
	// codewords followed by 10 error correction codewords.
	v := loadVersion(1, ErrorCorrectionMedium)

	stream, err := newEncoder(EncModeAlphanumeric, v).Encode([]byte("HELLO WORLD"))
	require.NoError(t, err)

	blocks, err := splitIntoBlocks(stream, v)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	codewords, err := interleaveCodewords(blocks, v)
	require.NoError(t, err)

	want := []byte{
		32, 91, 11, 120, 209, 114, 220, 77, 67, 64, 236, 17, 236, 17, 236, 17,
		196, 35, 39, 119, 235, 215, 231, 226, 93, 23,
	}
	assert.Equal(t, want, codewords)
}
