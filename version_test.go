package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// total codewords per version, identical across error correction levels
var totalCodewords = []int{
	26, 44, 70, 100, 134, 172, 196, 242, 292, 346,
	404, 466, 532, 581, 655, 733, 815, 901, 991, 1085,
	1156, 1258, 1364, 1474, 1588, 1706, 1828, 1921, 2051, 2185,
	2323, 2465, 2611, 2761, 2876, 3034, 3196, 3362, 3532, 3706,
}

func TestVersionTable_totals(t *testing.T) {
	require.Len(t, versions, 40*4)

	for ver := 1; ver <= 40; ver++ {
		want := totalCodewords[ver-1]
		for _, lv := range []ECLevel{ErrorCorrectionLow, ErrorCorrectionMedium, ErrorCorrectionQuart, ErrorCorrectionHighest} {
			v := loadVersion(ver, lv)
			assert.Equal(t, ver, v.ver)
			assert.Equal(t, lv, v.ecLevel)
			got := v.totalDataCodewords() + v.totalECCodewords()
			assert.Equalf(t, want, got, "version %d level %s", ver, lv)
		}
	}
}

func TestVersion_dimension(t *testing.T) {
	assert.Equal(t, 21, loadVersion(1, ErrorCorrectionMedium).dimension())
	assert.Equal(t, 25, loadVersion(2, ErrorCorrectionMedium).dimension())
	assert.Equal(t, 177, loadVersion(40, ErrorCorrectionHighest).dimension())
}

func TestVersion_charCountBits(t *testing.T) {
	v1 := loadVersion(1, ErrorCorrectionMedium)
	assert.Equal(t, 10, v1.charCountBits(EncModeNumeric))
	assert.Equal(t, 9, v1.charCountBits(EncModeAlphanumeric))
	assert.Equal(t, 8, v1.charCountBits(EncModeByte))

	v10 := loadVersion(10, ErrorCorrectionMedium)
	assert.Equal(t, 12, v10.charCountBits(EncModeNumeric))
	assert.Equal(t, 11, v10.charCountBits(EncModeAlphanumeric))
	assert.Equal(t, 16, v10.charCountBits(EncModeByte))

	v27 := loadVersion(27, ErrorCorrectionMedium)
	assert.Equal(t, 14, v27.charCountBits(EncModeNumeric))
	assert.Equal(t, 13, v27.charCountBits(EncModeAlphanumeric))
	assert.Equal(t, 16, v27.charCountBits(EncModeByte))
}

func TestBestVersion_smallestThatFits(t *testing.T) {
	// 11 alphanumeric characters need 4+9+61 = 74 bits, within version 1-M
	v, err := bestVersion(EncModeAlphanumeric, ErrorCorrectionMedium, 11)
	require.NoError(t, err)
	assert.Equal(t, 1, v.ver)

	// 50 alphanumeric characters need 4+9+275 = 288 bits, first fitting
	// at level Q is version 4 (48 data codewords)
	v, err = bestVersion(EncModeAlphanumeric, ErrorCorrectionQuart, 50)
	require.NoError(t, err)
	assert.Equal(t, 4, v.ver)
	assert.Greater(t, 288, loadVersion(3, ErrorCorrectionQuart).capacityBits())
}

func TestBestVersion_capacityExceeded(t *testing.T) {
	_, err := bestVersion(EncModeByte, ErrorCorrectionHighest, 10_000)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestAlignmentPatternLocations(t *testing.T) {
	assert.Empty(t, loadVersion(1, ErrorCorrectionLow).alignmentPatternLocations())
	assert.Equal(t, []int{6, 18}, loadVersion(2, ErrorCorrectionLow).alignmentPatternLocations())
	assert.Equal(t, []int{6, 26, 46, 66}, loadVersion(14, ErrorCorrectionLow).alignmentPatternLocations())
	assert.Equal(t, []int{6, 30, 58, 86, 114, 142, 170}, loadVersion(40, ErrorCorrectionLow).alignmentPatternLocations())
}

func TestParseErrorCorrectionLevel(t *testing.T) {
	for in, want := range map[string]ECLevel{
		"L": ErrorCorrectionLow,
		"m": ErrorCorrectionMedium,
		"":  ErrorCorrectionMedium,
		"Q": ErrorCorrectionQuart,
		"h": ErrorCorrectionHighest,
	} {
		got, err := ParseErrorCorrectionLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseErrorCorrectionLevel("X")
	assert.Error(t, err)
}
