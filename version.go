package qrcode

import (
	"fmt"
	"strings"
)

// ECLevel is one of the four standard error correction tiers. Higher tiers
// trade payload capacity for damage tolerance.
type ECLevel int

const (
	// ErrorCorrectionLow recovers about 7% of damaged codewords.
	ErrorCorrectionLow ECLevel = iota + 1
	// ErrorCorrectionMedium recovers about 15%.
	ErrorCorrectionMedium
	// ErrorCorrectionQuart recovers about 25%.
	ErrorCorrectionQuart
	// ErrorCorrectionHighest recovers about 30%.
	ErrorCorrectionHighest
)

func (l ECLevel) String() string {
	switch l {
	case ErrorCorrectionLow:
		return "L"
	case ErrorCorrectionMedium:
		return "M"
	case ErrorCorrectionQuart:
		return "Q"
	case ErrorCorrectionHighest:
		return "H"
	}
	return "unknown"
}

// formatBits returns the two-bit error correction indicator carried by the
// format information.
func (l ECLevel) formatBits() uint32 {
	switch l {
	case ErrorCorrectionLow:
		return 1
	case ErrorCorrectionMedium:
		return 0
	case ErrorCorrectionQuart:
		return 3
	default:
		return 2
	}
}

// ParseErrorCorrectionLevel maps the conventional single letters L, M, Q and
// H onto ECLevel values. It is meant for callers that receive the level as
// text, such as query parameters or CLI flags.
func ParseErrorCorrectionLevel(s string) (ECLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return ErrorCorrectionLow, nil
	case "M", "":
		return ErrorCorrectionMedium, nil
	case "Q":
		return ErrorCorrectionQuart, nil
	case "H":
		return ErrorCorrectionHighest, nil
	}
	return 0, fmt.Errorf("qrcode: unknown error correction level %q", s)
}

// group describes a run of equally sized data blocks within a version.
type group struct {
	numBlocks        int
	numDataCodewords int // per block
}

// version couples a symbol version with the block structure of one error
// correction level. The table below is constant ISO/IEC 18004 data,
// initialized once and safe for unsynchronized concurrent reads.
type version struct {
	ver                 int
	ecLevel             ECLevel
	ecCodewordsPerBlock int
	groups              []group
}

// dimension returns the side length in modules.
func (v version) dimension() int { return v.ver*4 + 17 }

func (v version) totalDataCodewords() int {
	total := 0
	for _, g := range v.groups {
		total += g.numBlocks * g.numDataCodewords
	}
	return total
}

func (v version) totalECCodewords() int {
	blocks := 0
	for _, g := range v.groups {
		blocks += g.numBlocks
	}
	return blocks * v.ecCodewordsPerBlock
}

// capacityBits is the number of data bits the version can carry at its level.
func (v version) capacityBits() int { return v.totalDataCodewords() * 8 }

// charCountBits returns the width of the character count indicator for the
// given mode at this version.
func (v version) charCountBits(mode EncMode) int {
	switch {
	case v.ver <= 9:
		switch mode {
		case EncModeNumeric:
			return 10
		case EncModeAlphanumeric:
			return 9
		default:
			return 8
		}
	case v.ver <= 26:
		switch mode {
		case EncModeNumeric:
			return 12
		case EncModeAlphanumeric:
			return 11
		default:
			return 16
		}
	default:
		switch mode {
		case EncModeNumeric:
			return 14
		case EncModeAlphanumeric:
			return 13
		default:
			return 16
		}
	}
}

// alignmentPatternLocations returns the center coordinates used on both axes.
func (v version) alignmentPatternLocations() []int {
	return alignmentLocations[v.ver]
}

func loadVersion(ver int, lv ECLevel) version {
	return versions[(ver-1)*4+int(lv-1)]
}

// bestVersion returns the smallest version whose capacity at the level can
// hold the payload.
func bestVersion(mode EncMode, lv ECLevel, charCount int) (version, error) {
	for ver := 1; ver <= 40; ver++ {
		v := loadVersion(ver, lv)
		if neededBits(mode, charCount, v) <= v.capacityBits() {
			return v, nil
		}
	}
	return version{}, ErrCapacityExceeded
}

// neededBits counts mode indicator, character count indicator and data bits.
// Terminator and padding are flexible and do not participate in the fit.
func neededBits(mode EncMode, charCount int, v version) int {
	return 4 + v.charCountBits(mode) + mode.dataBits(charCount)
}

// alignmentLocations lists alignment pattern center coordinates per version.
var alignmentLocations = map[int][]int{
	1:  {},
	2:  {6, 18},
	3:  {6, 22},
	4:  {6, 26},
	5:  {6, 30},
	6:  {6, 34},
	7:  {6, 22, 38},
	8:  {6, 24, 42},
	9:  {6, 26, 46},
	10: {6, 28, 50},
	11: {6, 30, 54},
	12: {6, 32, 58},
	13: {6, 34, 62},
	14: {6, 26, 46, 66},
	15: {6, 26, 48, 70},
	16: {6, 26, 50, 74},
	17: {6, 30, 54, 78},
	18: {6, 30, 56, 82},
	19: {6, 30, 58, 86},
	20: {6, 34, 62, 90},
	21: {6, 28, 50, 72, 94},
	22: {6, 26, 50, 74, 98},
	23: {6, 30, 54, 78, 102},
	24: {6, 28, 54, 80, 106},
	25: {6, 32, 58, 84, 110},
	26: {6, 30, 58, 86, 114},
	27: {6, 34, 62, 90, 118},
	28: {6, 26, 50, 74, 98, 122},
	29: {6, 30, 54, 78, 102, 126},
	30: {6, 26, 52, 78, 104, 130},
	31: {6, 30, 56, 82, 108, 134},
	32: {6, 34, 60, 86, 112, 138},
	33: {6, 30, 58, 86, 114, 142},
	34: {6, 34, 62, 90, 118, 146},
	35: {6, 30, 54, 78, 102, 126, 150},
	36: {6, 24, 50, 76, 102, 128, 154},
	37: {6, 28, 54, 80, 106, 132, 158},
	38: {6, 32, 58, 84, 110, 136, 162},
	39: {6, 26, 54, 82, 110, 138, 166},
	40: {6, 30, 58, 86, 114, 142, 170},
}

// versions holds the block structure for every version and level, ordered
// version-major, level-minor (L, M, Q, H).
var versions = []version{
	{1, ErrorCorrectionLow, 7, []group{{1, 19}}},
	{1, ErrorCorrectionMedium, 10, []group{{1, 16}}},
	{1, ErrorCorrectionQuart, 13, []group{{1, 13}}},
	{1, ErrorCorrectionHighest, 17, []group{{1, 9}}},
	{2, ErrorCorrectionLow, 10, []group{{1, 34}}},
	{2, ErrorCorrectionMedium, 16, []group{{1, 28}}},
	{2, ErrorCorrectionQuart, 22, []group{{1, 22}}},
	{2, ErrorCorrectionHighest, 28, []group{{1, 16}}},
	{3, ErrorCorrectionLow, 15, []group{{1, 55}}},
	{3, ErrorCorrectionMedium, 26, []group{{1, 44}}},
	{3, ErrorCorrectionQuart, 18, []group{{2, 17}}},
	{3, ErrorCorrectionHighest, 22, []group{{2, 13}}},
	{4, ErrorCorrectionLow, 20, []group{{1, 80}}},
	{4, ErrorCorrectionMedium, 18, []group{{2, 32}}},
	{4, ErrorCorrectionQuart, 26, []group{{2, 24}}},
	{4, ErrorCorrectionHighest, 16, []group{{4, 9}}},
	{5, ErrorCorrectionLow, 26, []group{{1, 108}}},
	{5, ErrorCorrectionMedium, 24, []group{{2, 43}}},
	{5, ErrorCorrectionQuart, 18, []group{{2, 15}, {2, 16}}},
	{5, ErrorCorrectionHighest, 22, []group{{2, 11}, {2, 12}}},
	{6, ErrorCorrectionLow, 18, []group{{2, 68}}},
	{6, ErrorCorrectionMedium, 16, []group{{4, 27}}},
	{6, ErrorCorrectionQuart, 24, []group{{4, 19}}},
	{6, ErrorCorrectionHighest, 28, []group{{4, 15}}},
	{7, ErrorCorrectionLow, 20, []group{{2, 78}}},
	{7, ErrorCorrectionMedium, 18, []group{{4, 31}}},
	{7, ErrorCorrectionQuart, 18, []group{{2, 14}, {4, 15}}},
	{7, ErrorCorrectionHighest, 26, []group{{4, 13}, {1, 14}}},
	{8, ErrorCorrectionLow, 24, []group{{2, 97}}},
	{8, ErrorCorrectionMedium, 22, []group{{2, 38}, {2, 39}}},
	{8, ErrorCorrectionQuart, 22, []group{{4, 18}, {2, 19}}},
	{8, ErrorCorrectionHighest, 26, []group{{4, 14}, {2, 15}}},
	{9, ErrorCorrectionLow, 30, []group{{2, 116}}},
	{9, ErrorCorrectionMedium, 22, []group{{3, 36}, {2, 37}}},
	{9, ErrorCorrectionQuart, 20, []group{{4, 16}, {4, 17}}},
	{9, ErrorCorrectionHighest, 24, []group{{4, 12}, {4, 13}}},
	{10, ErrorCorrectionLow, 18, []group{{2, 68}, {2, 69}}},
	{10, ErrorCorrectionMedium, 26, []group{{4, 43}, {1, 44}}},
	{10, ErrorCorrectionQuart, 24, []group{{6, 19}, {2, 20}}},
	{10, ErrorCorrectionHighest, 28, []group{{6, 15}, {2, 16}}},
	{11, ErrorCorrectionLow, 20, []group{{4, 81}}},
	{11, ErrorCorrectionMedium, 30, []group{{1, 50}, {4, 51}}},
	{11, ErrorCorrectionQuart, 28, []group{{4, 22}, {4, 23}}},
	{11, ErrorCorrectionHighest, 24, []group{{3, 12}, {8, 13}}},
	{12, ErrorCorrectionLow, 24, []group{{2, 92}, {2, 93}}},
	{12, ErrorCorrectionMedium, 22, []group{{6, 36}, {2, 37}}},
	{12, ErrorCorrectionQuart, 26, []group{{4, 20}, {6, 21}}},
	{12, ErrorCorrectionHighest, 28, []group{{7, 14}, {4, 15}}},
	{13, ErrorCorrectionLow, 26, []group{{4, 107}}},
	{13, ErrorCorrectionMedium, 22, []group{{8, 37}, {1, 38}}},
	{13, ErrorCorrectionQuart, 24, []group{{8, 20}, {4, 21}}},
	{13, ErrorCorrectionHighest, 22, []group{{12, 11}, {4, 12}}},
	{14, ErrorCorrectionLow, 30, []group{{3, 115}, {1, 116}}},
	{14, ErrorCorrectionMedium, 24, []group{{4, 40}, {5, 41}}},
	{14, ErrorCorrectionQuart, 20, []group{{11, 16}, {5, 17}}},
	{14, ErrorCorrectionHighest, 24, []group{{11, 12}, {5, 13}}},
	{15, ErrorCorrectionLow, 22, []group{{5, 87}, {1, 88}}},
	{15, ErrorCorrectionMedium, 24, []group{{5, 41}, {5, 42}}},
	{15, ErrorCorrectionQuart, 30, []group{{5, 24}, {7, 25}}},
	{15, ErrorCorrectionHighest, 24, []group{{11, 12}, {7, 13}}},
	{16, ErrorCorrectionLow, 24, []group{{5, 98}, {1, 99}}},
	{16, ErrorCorrectionMedium, 28, []group{{7, 45}, {3, 46}}},
	{16, ErrorCorrectionQuart, 24, []group{{15, 19}, {2, 20}}},
	{16, ErrorCorrectionHighest, 30, []group{{3, 15}, {13, 16}}},
	{17, ErrorCorrectionLow, 28, []group{{1, 107}, {5, 108}}},
	{17, ErrorCorrectionMedium, 28, []group{{10, 46}, {1, 47}}},
	{17, ErrorCorrectionQuart, 28, []group{{1, 22}, {15, 23}}},
	{17, ErrorCorrectionHighest, 28, []group{{2, 14}, {17, 15}}},
	{18, ErrorCorrectionLow, 30, []group{{5, 120}, {1, 121}}},
	{18, ErrorCorrectionMedium, 26, []group{{9, 43}, {4, 44}}},
	{18, ErrorCorrectionQuart, 28, []group{{17, 22}, {1, 23}}},
	{18, ErrorCorrectionHighest, 28, []group{{2, 14}, {19, 15}}},
	{19, ErrorCorrectionLow, 28, []group{{3, 113}, {4, 114}}},
	{19, ErrorCorrectionMedium, 26, []group{{3, 44}, {11, 45}}},
	{19, ErrorCorrectionQuart, 26, []group{{17, 21}, {4, 22}}},
	{19, ErrorCorrectionHighest, 26, []group{{9, 13}, {16, 14}}},
	{20, ErrorCorrectionLow, 28, []group{{3, 107}, {5, 108}}},
	{20, ErrorCorrectionMedium, 26, []group{{3, 41}, {13, 42}}},
	{20, ErrorCorrectionQuart, 30, []group{{15, 24}, {5, 25}}},
	{20, ErrorCorrectionHighest, 28, []group{{15, 15}, {10, 16}}},
	{21, ErrorCorrectionLow, 28, []group{{4, 116}, {4, 117}}},
	{21, ErrorCorrectionMedium, 26, []group{{17, 42}}},
	{21, ErrorCorrectionQuart, 28, []group{{17, 22}, {6, 23}}},
	{21, ErrorCorrectionHighest, 30, []group{{19, 16}, {6, 17}}},
	{22, ErrorCorrectionLow, 28, []group{{2, 111}, {7, 112}}},
	{22, ErrorCorrectionMedium, 28, []group{{17, 46}}},
	{22, ErrorCorrectionQuart, 30, []group{{7, 24}, {16, 25}}},
	{22, ErrorCorrectionHighest, 24, []group{{34, 13}}},
	{23, ErrorCorrectionLow, 30, []group{{4, 121}, {5, 122}}},
	{23, ErrorCorrectionMedium, 28, []group{{4, 47}, {14, 48}}},
	{23, ErrorCorrectionQuart, 30, []group{{11, 24}, {14, 25}}},
	{23, ErrorCorrectionHighest, 30, []group{{16, 15}, {14, 16}}},
	{24, ErrorCorrectionLow, 30, []group{{6, 117}, {4, 118}}},
	{24, ErrorCorrectionMedium, 28, []group{{6, 45}, {14, 46}}},
	{24, ErrorCorrectionQuart, 30, []group{{11, 24}, {16, 25}}},
	{24, ErrorCorrectionHighest, 30, []group{{30, 16}, {2, 17}}},
	{25, ErrorCorrectionLow, 26, []group{{8, 106}, {4, 107}}},
	{25, ErrorCorrectionMedium, 28, []group{{8, 47}, {13, 48}}},
	{25, ErrorCorrectionQuart, 30, []group{{7, 24}, {22, 25}}},
	{25, ErrorCorrectionHighest, 30, []group{{22, 15}, {13, 16}}},
	{26, ErrorCorrectionLow, 28, []group{{10, 114}, {2, 115}}},
	{26, ErrorCorrectionMedium, 28, []group{{19, 46}, {4, 47}}},
	{26, ErrorCorrectionQuart, 28, []group{{28, 22}, {6, 23}}},
	{26, ErrorCorrectionHighest, 30, []group{{33, 16}, {4, 17}}},
	{27, ErrorCorrectionLow, 30, []group{{8, 122}, {4, 123}}},
	{27, ErrorCorrectionMedium, 28, []group{{22, 45}, {3, 46}}},
	{27, ErrorCorrectionQuart, 30, []group{{8, 23}, {26, 24}}},
	{27, ErrorCorrectionHighest, 30, []group{{12, 15}, {28, 16}}},
	{28, ErrorCorrectionLow, 30, []group{{3, 117}, {10, 118}}},
	{28, ErrorCorrectionMedium, 28, []group{{3, 45}, {23, 46}}},
	{28, ErrorCorrectionQuart, 30, []group{{4, 24}, {31, 25}}},
	{28, ErrorCorrectionHighest, 30, []group{{11, 15}, {31, 16}}},
	{29, ErrorCorrectionLow, 30, []group{{7, 116}, {7, 117}}},
	{29, ErrorCorrectionMedium, 28, []group{{21, 45}, {7, 46}}},
	{29, ErrorCorrectionQuart, 30, []group{{1, 23}, {37, 24}}},
	{29, ErrorCorrectionHighest, 30, []group{{19, 15}, {26, 16}}},
	{30, ErrorCorrectionLow, 30, []group{{5, 115}, {10, 116}}},
	{30, ErrorCorrectionMedium, 28, []group{{19, 47}, {10, 48}}},
	{30, ErrorCorrectionQuart, 30, []group{{15, 24}, {25, 25}}},
	{30, ErrorCorrectionHighest, 30, []group{{23, 15}, {25, 16}}},
	{31, ErrorCorrectionLow, 30, []group{{13, 115}, {3, 116}}},
	{31, ErrorCorrectionMedium, 28, []group{{2, 46}, {29, 47}}},
	{31, ErrorCorrectionQuart, 30, []group{{42, 24}, {1, 25}}},
	{31, ErrorCorrectionHighest, 30, []group{{23, 15}, {28, 16}}},
	{32, ErrorCorrectionLow, 30, []group{{17, 115}}},
	{32, ErrorCorrectionMedium, 28, []group{{10, 46}, {23, 47}}},
	{32, ErrorCorrectionQuart, 30, []group{{10, 24}, {35, 25}}},
	{32, ErrorCorrectionHighest, 30, []group{{19, 15}, {35, 16}}},
	{33, ErrorCorrectionLow, 30, []group{{17, 115}, {1, 116}}},
	{33, ErrorCorrectionMedium, 28, []group{{14, 46}, {21, 47}}},
	{33, ErrorCorrectionQuart, 30, []group{{29, 24}, {19, 25}}},
	{33, ErrorCorrectionHighest, 30, []group{{11, 15}, {46, 16}}},
	{34, ErrorCorrectionLow, 30, []group{{13, 115}, {6, 116}}},
	{34, ErrorCorrectionMedium, 28, []group{{14, 46}, {23, 47}}},
	{34, ErrorCorrectionQuart, 30, []group{{44, 24}, {7, 25}}},
	{34, ErrorCorrectionHighest, 30, []group{{59, 16}, {1, 17}}},
	{35, ErrorCorrectionLow, 30, []group{{12, 121}, {7, 122}}},
	{35, ErrorCorrectionMedium, 28, []group{{12, 47}, {26, 48}}},
	{35, ErrorCorrectionQuart, 30, []group{{39, 24}, {14, 25}}},
	{35, ErrorCorrectionHighest, 30, []group{{22, 15}, {41, 16}}},
	{36, ErrorCorrectionLow, 30, []group{{6, 121}, {14, 122}}},
	{36, ErrorCorrectionMedium, 28, []group{{6, 47}, {34, 48}}},
	{36, ErrorCorrectionQuart, 30, []group{{46, 24}, {10, 25}}},
	{36, ErrorCorrectionHighest, 30, []group{{2, 15}, {64, 16}}},
	{37, ErrorCorrectionLow, 30, []group{{17, 122}, {4, 123}}},
	{37, ErrorCorrectionMedium, 28, []group{{29, 46}, {14, 47}}},
	{37, ErrorCorrectionQuart, 30, []group{{49, 24}, {10, 25}}},
	{37, ErrorCorrectionHighest, 30, []group{{24, 15}, {46, 16}}},
	{38, ErrorCorrectionLow, 30, []group{{4, 122}, {18, 123}}},
	{38, ErrorCorrectionMedium, 28, []group{{13, 46}, {32, 47}}},
	{38, ErrorCorrectionQuart, 30, []group{{48, 24}, {14, 25}}},
	{38, ErrorCorrectionHighest, 30, []group{{42, 15}, {32, 16}}},
	{39, ErrorCorrectionLow, 30, []group{{20, 117}, {4, 118}}},
	{39, ErrorCorrectionMedium, 28, []group{{40, 47}, {7, 48}}},
	{39, ErrorCorrectionQuart, 30, []group{{43, 24}, {22, 25}}},
	{39, ErrorCorrectionHighest, 30, []group{{10, 15}, {67, 16}}},
	{40, ErrorCorrectionLow, 30, []group{{19, 118}, {6, 119}}},
	{40, ErrorCorrectionMedium, 28, []group{{18, 47}, {31, 48}}},
	{40, ErrorCorrectionQuart, 30, []group{{34, 24}, {34, 25}}},
	{40, ErrorCorrectionHighest, 30, []group{{20, 15}, {61, 16}}},
}
