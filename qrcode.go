// Package qrcode encodes arbitrary byte payloads into QR symbol module
// matrices: mode analysis, minimal version selection, Reed-Solomon error
// correction, function pattern placement, data masking and format/version
// information. Rendering the matrix into pixels is the job of the writer
// packages.
package qrcode

import (
	"github.com/yeqown/reedsolomon"
	"github.com/yeqown/reedsolomon/binary"
)

// QRCode holds the frozen module matrix of one encoded payload. Encoding is
// deterministic: the same payload, level and version always produce a
// bit-identical matrix.
type QRCode struct {
	content string

	mode EncMode
	ecLv ECLevel
	v    version

	mat *Matrix
}

type encodingOption struct {
	mode    EncMode
	ecLevel ECLevel
	version int // 0 means choose the smallest that fits
}

func defaultEncodingOption() *encodingOption {
	return &encodingOption{
		mode:    EncModeAuto,
		ecLevel: ErrorCorrectionQuart,
	}
}

// EncodeOption tweaks how a payload is encoded.
type EncodeOption interface {
	apply(*encodingOption)
}

type encodeFuncOption func(*encodingOption)

func (f encodeFuncOption) apply(o *encodingOption) { f(o) }

// WithEncodingMode forces an encoding mode instead of automatic analysis.
// Encoding fails with ErrUnsupportedCharset if the payload does not fit the
// mode's character set.
func WithEncodingMode(mode EncMode) EncodeOption {
	return encodeFuncOption(func(o *encodingOption) {
		o.mode = mode
	})
}

// WithErrorCorrectionLevel sets the error correction level. The default is
// ErrorCorrectionQuart, which leaves room for logo overlays.
func WithErrorCorrectionLevel(lv ECLevel) EncodeOption {
	return encodeFuncOption(func(o *encodingOption) {
		if lv >= ErrorCorrectionLow && lv <= ErrorCorrectionHighest {
			o.ecLevel = lv
		}
	})
}

// WithVersion pins the symbol version instead of choosing the smallest that
// fits. Encoding fails with ErrCapacityExceeded if the payload does not fit.
func WithVersion(ver int) EncodeOption {
	return encodeFuncOption(func(o *encodingOption) {
		o.version = ver
	})
}

// New encodes text with the default options.
func New(text string) (*QRCode, error) {
	return NewWith(text)
}

// NewWith encodes text and freezes the resulting matrix.
func NewWith(text string, opts ...EncodeOption) (*QRCode, error) {
	opt := defaultEncodingOption()
	for _, o := range opts {
		o.apply(opt)
	}
	if opt.version != 0 && (opt.version < 1 || opt.version > 40) {
		return nil, ErrInvalidVersion
	}

	q := &QRCode{
		content: text,
		mode:    opt.mode,
		ecLv:    opt.ecLevel,
	}
	if err := q.init(opt.version); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *QRCode) init(preferredVersion int) error {
	raw := []byte(q.content)

	if q.mode == EncModeAuto {
		q.mode = analyzeMode(raw)
	} else if !coveredBy(raw, q.mode) {
		return ErrUnsupportedCharset
	}

	v, err := q.chooseVersion(raw, preferredVersion)
	if err != nil {
		return err
	}
	q.v = v
	debugLogf("selected version %d (%s, %s): %d data codewords",
		v.ver, q.ecLv, q.mode, v.totalDataCodewords())

	dataStream, err := newEncoder(q.mode, v).Encode(raw)
	if err != nil {
		return err
	}

	blocks, err := splitIntoBlocks(dataStream, v)
	if err != nil {
		return err
	}
	codewords, err := interleaveCodewords(blocks, v)
	if err != nil {
		return err
	}
	q.mat = buildMatrix(v, codewords)
	return nil
}

func (q *QRCode) chooseVersion(raw []byte, preferred int) (version, error) {
	if preferred == 0 {
		return bestVersion(q.mode, q.ecLv, len(raw))
	}
	v := loadVersion(preferred, q.ecLv)
	if neededBits(q.mode, len(raw), v) > v.capacityBits() {
		return version{}, ErrCapacityExceeded
	}
	return v, nil
}

// Dimension returns the side length of the symbol in modules.
func (q *QRCode) Dimension() int { return q.v.dimension() }

// Version returns the chosen symbol version, 1 to 40.
func (q *QRCode) Version() int { return q.v.ver }

// ErrorCorrectionLevel returns the level the symbol was encoded at.
func (q *QRCode) ErrorCorrectionLevel() ECLevel { return q.ecLv }

// Mode returns the encoding mode actually used.
func (q *QRCode) Mode() EncMode { return q.mode }

// Matrix returns the frozen module matrix.
func (q *QRCode) Matrix() Matrix { return *q.mat }

// Writer renders a frozen matrix into some output form.
type Writer interface {
	// Write renders the matrix. The matrix is frozen; implementations must
	// not retain mutable references past the call.
	Write(mat Matrix) error

	// Close flushes and releases any underlying resource.
	Close() error
}

// Save renders the symbol through w and closes it.
func (q *QRCode) Save(w Writer) error {
	if err := w.Write(*q.mat); err != nil {
		return err
	}
	return w.Close()
}

// dataBlock pairs one block's data codewords with its error correction
// codeword count.
type dataBlock struct {
	data       *binary.Binary
	numECBlock int
}

// splitIntoBlocks cuts the data codeword stream into the version's block
// structure, in group order.
func splitIntoBlocks(stream *binary.Binary, v version) ([]dataBlock, error) {
	blocks := make([]dataBlock, 0, 8)
	start := 0
	for _, g := range v.groups {
		for b := 0; b < g.numBlocks; b++ {
			end := start + g.numDataCodewords*8
			data, err := stream.Subset(start, end)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, dataBlock{
				data:       data,
				numECBlock: v.ecCodewordsPerBlock,
			})
			start = end
		}
	}
	return blocks, nil
}

// interleaveCodewords computes Reed-Solomon error correction codewords per
// block and interleaves data then EC codewords across blocks, yielding the
// final codeword sequence placed into the matrix.
func interleaveCodewords(blocks []dataBlock, v version) ([]byte, error) {
	ecBlocks := make([]*binary.Binary, len(blocks))
	for i, b := range blocks {
		encoded := reedsolomon.Encode(b.data, b.numECBlock)
		ec, err := encoded.Subset(b.data.Len(), encoded.Len())
		if err != nil {
			return nil, err
		}
		ecBlocks[i] = ec
	}

	out := make([]byte, 0, v.totalDataCodewords()+v.totalECCodewords())

	maxData := 0
	for _, b := range blocks {
		if n := b.data.Len() / 8; n > maxData {
			maxData = n
		}
	}
	for cw := 0; cw < maxData; cw++ {
		for _, b := range blocks {
			if cw < b.data.Len()/8 {
				out = append(out, byteAt(b.data, cw))
			}
		}
	}
	for cw := 0; cw < v.ecCodewordsPerBlock; cw++ {
		for _, ec := range ecBlocks {
			out = append(out, byteAt(ec, cw))
		}
	}
	return out, nil
}

func byteAt(b *binary.Binary, idx int) byte {
	var out byte
	for k := 0; k < 8; k++ {
		if b.At(idx*8 + k) {
			out |= 1 << (7 - k)
		}
	}
	return out
}

// buildMatrix places function patterns, fills the interleaved codewords,
// tries all eight masks and keeps the lowest-penalty candidate with its
// format (and version) information drawn in.
func buildMatrix(v version, codewords []byte) *Matrix {
	dim := v.dimension()
	base := newMatrix(dim, dim)

	placeFinderPatterns(base)
	placeTimingPatterns(base)
	placeAlignmentPatterns(base, v)
	placeDarkModule(base)
	reserveFormatArea(base)
	if v.ver >= 7 {
		reserveVersionArea(base)
	}
	fillData(base, codewords)

	var best *Matrix
	bestScore, bestMask := 0, 0
	for mask := 0; mask < 8; mask++ {
		cand := base.copyOf()
		applyMask(cand, mask)
		drawFormatInfo(cand, v.ecLevel, mask)
		if v.ver >= 7 {
			drawVersionInfo(cand, v.ver)
		}
		score := penaltyScore(cand)
		if best == nil || score < bestScore {
			best, bestScore, bestMask = cand, score, mask
		}
	}
	debugLogf("selected mask %d with penalty %d", bestMask, bestScore)
	return best
}

// placeFinderPatterns draws the three 7x7 finder patterns with their
// one-module light separators.
func placeFinderPatterns(m *Matrix) {
	dim := m.Width()
	corners := [3][2]int{{0, 0}, {dim - 7, 0}, {0, dim - 7}}

	for _, c := range corners {
		ox, oy := c[0], c[1]
		for dy := 0; dy < 7; dy++ {
			for dx := 0; dx < 7; dx++ {
				// chebyshev ring at distance 2 is light
				cx, cy := dx-3, dy-3
				if cx < 0 {
					cx = -cx
				}
				if cy < 0 {
					cy = -cy
				}
				dist := cx
				if cy > dist {
					dist = cy
				}
				m.set(ox+dx, oy+dy, QRValue{typ: QRType_FINDER, set: dist != 2})
			}
		}
		// separator strip around the finder, clipped to the symbol
		for d := -1; d <= 7; d++ {
			for _, p := range [][2]int{{ox + d, oy - 1}, {ox + d, oy + 7}, {ox - 1, oy + d}, {ox + 7, oy + d}} {
				x, y := p[0], p[1]
				if x < 0 || y < 0 || x >= dim || y >= dim {
					continue
				}
				if m.at(x, y).Type() == QRType_INIT {
					m.set(x, y, QRValue{typ: QRType_SPLITTER, set: false})
				}
			}
		}
	}
}

// placeTimingPatterns draws the alternating strips on row 6 and column 6.
func placeTimingPatterns(m *Matrix) {
	dim := m.Width()
	for i := 8; i < dim-8; i++ {
		dark := i%2 == 0
		if m.at(i, 6).Type() == QRType_INIT {
			m.set(i, 6, QRValue{typ: QRType_TIMING, set: dark})
		}
		if m.at(6, i).Type() == QRType_INIT {
			m.set(6, i, QRValue{typ: QRType_TIMING, set: dark})
		}
	}
}

// placeAlignmentPatterns draws the 5x5 alignment patterns, skipping the
// three positions that would collide with finder patterns.
func placeAlignmentPatterns(m *Matrix, v version) {
	locations := v.alignmentPatternLocations()
	if len(locations) == 0 {
		return
	}
	first, last := locations[0], locations[len(locations)-1]
	for _, cy := range locations {
		for _, cx := range locations {
			if (cx == first && cy == first) || (cx == first && cy == last) || (cx == last && cy == first) {
				continue
			}
			for dy := -2; dy <= 2; dy++ {
				for dx := -2; dx <= 2; dx++ {
					ax, ay := dx, dy
					if ax < 0 {
						ax = -ax
					}
					if ay < 0 {
						ay = -ay
					}
					dist := ax
					if ay > dist {
						dist = ay
					}
					m.set(cx+dx, cy+dy, QRValue{typ: QRType_ALIGNMENT, set: dist != 1})
				}
			}
		}
	}
}

// placeDarkModule sets the single always-dark module above the lower-left
// finder.
func placeDarkModule(m *Matrix) {
	m.set(8, m.Height()-8, QRValue{typ: QRType_DARK, set: true})
}

// reserveFormatArea marks the format information modules so data filling
// skips them; the actual bits are drawn after mask selection.
func reserveFormatArea(m *Matrix) {
	dim := m.Width()
	mark := func(x, y int) {
		if m.at(x, y).Type() == QRType_INIT {
			m.set(x, y, QRValue{typ: QRType_FORMAT, set: false})
		}
	}
	for i := 0; i < 9; i++ {
		mark(8, i)
		mark(i, 8)
	}
	for i := 0; i < 8; i++ {
		mark(dim-1-i, 8)
		mark(8, dim-1-i)
	}
}

// reserveVersionArea marks the two 6x3 version information regions.
func reserveVersionArea(m *Matrix) {
	dim := m.Width()
	for i := 0; i < 18; i++ {
		a, b := dim-11+i%3, i/3
		m.set(a, b, QRValue{typ: QRType_VERSION, set: false})
		m.set(b, a, QRValue{typ: QRType_VERSION, set: false})
	}
}

// fillData walks the canonical zig-zag over column pairs from the right
// edge, skipping column 6 and every function module, writing codeword bits
// most significant first. Cells left over once the bits run out become light
// remainder modules, still subject to masking.
func fillData(m *Matrix, codewords []byte) {
	dim := m.Width()
	i := 0
	total := len(codewords) * 8
	for right := dim - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		for vert := 0; vert < dim; vert++ {
			for j := 0; j < 2; j++ {
				x := right - j
				upward := (right+1)&2 == 0
				y := vert
				if upward {
					y = dim - 1 - vert
				}
				if m.at(x, y).Type() != QRType_INIT {
					continue
				}
				dark := false
				if i < total {
					dark = codewords[i>>3]&(1<<(7-(i&7))) != 0
					i++
				}
				m.set(x, y, QRValue{typ: QRType_DATA, set: dark})
			}
		}
	}
}

// bchFormat computes the 15-bit format sequence: 5 data bits, 10 BCH bits,
// masked with the fixed pattern.
func bchFormat(lv ECLevel, mask int) uint32 {
	data := lv.formatBits()<<3 | uint32(mask)
	rem := data
	for i := 0; i < 10; i++ {
		rem = (rem << 1) ^ ((rem >> 9) * 0x537)
	}
	return (data<<10 | rem) ^ 0x5412
}

// bchVersion computes the 18-bit version sequence: 6 data bits, 12 BCH bits.
func bchVersion(ver int) uint32 {
	rem := uint32(ver)
	for i := 0; i < 12; i++ {
		rem = (rem << 1) ^ ((rem >> 11) * 0x1F25)
	}
	return uint32(ver)<<12 | rem
}

// drawFormatInfo writes both copies of the format information.
func drawFormatInfo(m *Matrix, lv ECLevel, mask int) {
	bits := bchFormat(lv, mask)
	dim := m.Width()
	bit := func(i int) bool { return bits>>uint(i)&1 != 0 }
	put := func(x, y int, set bool) {
		m.set(x, y, QRValue{typ: QRType_FORMAT, set: set})
	}

	// first copy, around the top-left finder
	for i := 0; i <= 5; i++ {
		put(8, i, bit(i))
	}
	put(8, 7, bit(6))
	put(8, 8, bit(7))
	put(7, 8, bit(8))
	for i := 9; i < 15; i++ {
		put(14-i, 8, bit(i))
	}

	// second copy, split under the top-right and beside the lower-left finder
	for i := 0; i < 8; i++ {
		put(dim-1-i, 8, bit(i))
	}
	for i := 8; i < 15; i++ {
		put(8, dim-15+i, bit(i))
	}
}

// drawVersionInfo writes both copies of the version information for
// versions 7 and above.
func drawVersionInfo(m *Matrix, ver int) {
	bits := bchVersion(ver)
	dim := m.Width()
	for i := 0; i < 18; i++ {
		set := bits>>uint(i)&1 != 0
		a, b := dim-11+i%3, i/3
		m.set(a, b, QRValue{typ: QRType_VERSION, set: set})
		m.set(b, a, QRValue{typ: QRType_VERSION, set: set})
	}
}
