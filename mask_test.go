package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataMatrix(dim int, dark func(x, y int) bool) *Matrix {
	m := newMatrix(dim, dim)
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			m.set(x, y, QRValue{typ: QRType_DATA, set: dark(x, y)})
		}
	}
	return m
}

func TestMaskFuncs_pattern0(t *testing.T) {
	// checkerboard: flips where column plus row is even
	assert.True(t, maskFuncs[0](0, 0))
	assert.False(t, maskFuncs[0](1, 0))
	assert.False(t, maskFuncs[0](0, 1))
	assert.True(t, maskFuncs[0](1, 1))
}

func TestApplyMask_flipsOnlyDataModules(t *testing.T) {
	m := newMatrix(6, 6)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			typ := QRType_DATA
			if x == 0 {
				typ = QRType_FINDER
			}
			m.set(x, y, QRValue{typ: typ, set: false})
		}
	}

	applyMask(m, 1) // flips rows with even index

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			v := m.at(x, y)
			if x == 0 {
				assert.False(t, v.IsSet(), "function module must not flip")
				continue
			}
			assert.Equal(t, y%2 == 0, v.IsSet())
		}
	}
}

func TestApplyMask_selfInverse(t *testing.T) {
	m := dataMatrix(12, func(x, y int) bool { return (x*7+y*3)%5 < 2 })
	want := m.copyOf()

	applyMask(m, 5)
	applyMask(m, 5)

	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			assert.Equal(t, want.at(x, y).IsSet(), m.at(x, y).IsSet())
		}
	}
}

func TestPenaltyRule1_runs(t *testing.T) {
	// single row of 6 dark modules in an otherwise alternating matrix
	m := dataMatrix(6, func(x, y int) bool {
		if y == 0 {
			return true
		}
		return (x+y)%2 == 0
	})

	// row 0 scores 3+6-5 = 4; each column has a run of at most 2
	assert.Equal(t, 4, penaltyRule1(m))
}

func TestPenaltyRule2_blocks(t *testing.T) {
	m := dataMatrix(4, func(x, y int) bool { return x < 2 })

	// two stacked 2x2 dark blocks on the left, two light on the right,
	// each side contributing 3 overlapping 2x2 windows
	assert.Equal(t, 6*penaltyWeight2, penaltyRule2(m))
}

func TestPenaltyRule3_finderLikeRun(t *testing.T) {
	pattern := []bool{true, false, true, true, true, false, true, false, false, false, false}
	m := dataMatrix(11, func(x, y int) bool {
		if y != 5 {
			return (x+y)%2 == 0
		}
		return pattern[x]
	})

	assert.Equal(t, penaltyWeight3, penaltyRule3(m))
}

func TestPenaltyRule4_balance(t *testing.T) {
	balanced := dataMatrix(6, func(x, y int) bool { return x < 3 })
	assert.Equal(t, 0, penaltyRule4(balanced))

	allLight := dataMatrix(6, func(x, y int) bool { return false })
	assert.Equal(t, 90, penaltyRule4(allLight))
}

func TestBuildMatrix_picksLowestPenaltyMask(t *testing.T) {
	v := loadVersion(1, ErrorCorrectionMedium)

	stream, err := newEncoder(EncModeAlphanumeric, v).Encode([]byte("HELLO WORLD"))
	require.NoError(t, err)
	blocks, err := splitIntoBlocks(stream, v)
	require.NoError(t, err)
	codewords, err := interleaveCodewords(blocks, v)
	require.NoError(t, err)

	// Rebuild the unmasked base and score all eight candidates.
	dim := v.dimension()
	base := newMatrix(dim, dim)
	placeFinderPatterns(base)
	placeTimingPatterns(base)
	placeAlignmentPatterns(base, v)
	placeDarkModule(base)
	reserveFormatArea(base)
	fillData(base, codewords)

	candidates := make([]*Matrix, 8)
	scores := make([]int, 8)
	for mask := 0; mask < 8; mask++ {
		cand := base.copyOf()
		applyMask(cand, mask)
		drawFormatInfo(cand, v.ecLevel, mask)
		candidates[mask] = cand
		scores[mask] = penaltyScore(cand)
	}

	argmin := 0
	for mask := 1; mask < 8; mask++ {
		if scores[mask] < scores[argmin] {
			argmin = mask
		}
	}

	built := buildMatrix(v, codewords)
	assert.Equal(t, scores[argmin], penaltyScore(built))

	// the lowest index wins ties, so the built matrix must match the argmin
	// candidate cell for cell
	want := candidates[argmin]
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			require.Equalf(t, want.At(x, y).IsSet(), built.At(x, y).IsSet(), "module (%d,%d)", x, y)
		}
	}
}
