package qrcode

import (
	"github.com/yeqown/reedsolomon/binary"
)

// EncMode selects how payload characters are packed into bits. Numeric and
// alphanumeric modes pack more characters per bit than byte mode but accept
// restricted character sets.
type EncMode uint8

const (
	// EncModeAuto lets the encoder pick the most compact legal mode.
	EncModeAuto EncMode = iota
	// EncModeNumeric packs runs of ASCII digits, 10 bits per 3 digits.
	EncModeNumeric
	// EncModeAlphanumeric packs the 45-character uppercase set, 11 bits per pair.
	EncModeAlphanumeric
	// EncModeByte stores raw bytes (UTF-8 for text), 8 bits each.
	EncModeByte
)

func (m EncMode) String() string {
	switch m {
	case EncModeNumeric:
		return "numeric"
	case EncModeAlphanumeric:
		return "alphanumeric"
	case EncModeByte:
		return "byte"
	}
	return "auto"
}

// modeIndicator is the four-bit symbol identifying the mode in the stream.
func (m EncMode) modeIndicator() uint32 {
	switch m {
	case EncModeNumeric:
		return 1
	case EncModeAlphanumeric:
		return 2
	default:
		return 4
	}
}

// dataBits counts the encoded payload bits for n characters in this mode.
func (m EncMode) dataBits(n int) int {
	switch m {
	case EncModeNumeric:
		bits := 10 * (n / 3)
		switch n % 3 {
		case 1:
			bits += 4
		case 2:
			bits += 7
		}
		return bits
	case EncModeAlphanumeric:
		return 11*(n/2) + 6*(n%2)
	default:
		return 8 * n
	}
}

const alphanumericCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

var alphanumericIndex = func() map[byte]uint32 {
	idx := make(map[byte]uint32, len(alphanumericCharset))
	for i := 0; i < len(alphanumericCharset); i++ {
		idx[alphanumericCharset[i]] = uint32(i)
	}
	return idx
}()

// analyzeMode picks the most compact mode whose character set covers raw.
func analyzeMode(raw []byte) EncMode {
	mode := EncModeNumeric
	for _, c := range raw {
		if c >= '0' && c <= '9' {
			continue
		}
		if _, ok := alphanumericIndex[c]; ok {
			mode = EncModeAlphanumeric
			continue
		}
		return EncModeByte
	}
	if len(raw) == 0 {
		return EncModeByte
	}
	return mode
}

// coveredBy reports whether every byte of raw is legal in the mode.
func coveredBy(raw []byte, mode EncMode) bool {
	switch mode {
	case EncModeNumeric:
		for _, c := range raw {
			if c < '0' || c > '9' {
				return false
			}
		}
	case EncModeAlphanumeric:
		for _, c := range raw {
			if _, ok := alphanumericIndex[c]; !ok {
				return false
			}
		}
	}
	return true
}

// padding bytes alternate once the terminator and bit alignment are done.
const (
	paddingByte1 byte = 0xEC
	paddingByte2 byte = 0x11
)

// encoder turns a validated payload into the exact sequence of data
// codewords for one version and level.
type encoder struct {
	mode    EncMode
	version version

	data []byte
	dst  *binary.Binary
}

func newEncoder(mode EncMode, v version) *encoder {
	return &encoder{mode: mode, version: v}
}

// Encode produces the data codeword bitstream: mode indicator, character
// count, payload bits, terminator, byte alignment and alternating padding up
// to the version's exact data capacity.
func (e *encoder) Encode(raw []byte) (*binary.Binary, error) {
	if !coveredBy(raw, e.mode) {
		return nil, ErrUnsupportedCharset
	}

	e.data = raw
	e.dst = binary.New()

	e.dst.AppendUint32(e.mode.modeIndicator(), 4)
	e.dst.AppendUint32(uint32(len(raw)), e.version.charCountBits(e.mode))

	switch e.mode {
	case EncModeNumeric:
		e.encodeNumeric()
	case EncModeAlphanumeric:
		e.encodeAlphanumeric()
	default:
		e.encodeByte()
	}

	e.appendTerminator()
	e.appendPadding()

	debugLogf("encoded %d chars in %s mode: %d bits of %d capacity",
		len(raw), e.mode, e.dst.Len(), e.version.capacityBits())
	return e.dst, nil
}

// encodeNumeric packs digits in groups of three (10 bits), two (7 bits) or
// one (4 bits).
func (e *encoder) encodeNumeric() {
	for i := 0; i < len(e.data); i += 3 {
		rem := len(e.data) - i
		switch {
		case rem >= 3:
			e.dst.AppendUint32(digitsValue(e.data[i:i+3]), 10)
		case rem == 2:
			e.dst.AppendUint32(digitsValue(e.data[i:i+2]), 7)
		default:
			e.dst.AppendUint32(digitsValue(e.data[i:i+1]), 4)
		}
	}
}

func digitsValue(digits []byte) uint32 {
	v := uint32(0)
	for _, d := range digits {
		v = v*10 + uint32(d-'0')
	}
	return v
}

// encodeAlphanumeric packs character pairs as 45*first+second in 11 bits,
// with a trailing singleton in 6 bits.
func (e *encoder) encodeAlphanumeric() {
	for i := 0; i < len(e.data); i += 2 {
		if i+1 < len(e.data) {
			v := alphanumericIndex[e.data[i]]*45 + alphanumericIndex[e.data[i+1]]
			e.dst.AppendUint32(v, 11)
			continue
		}
		e.dst.AppendUint32(alphanumericIndex[e.data[i]], 6)
	}
}

func (e *encoder) encodeByte() {
	for _, b := range e.data {
		e.dst.AppendByte(b, 8)
	}
}

// appendTerminator writes up to four zero bits, clipped to the capacity.
func (e *encoder) appendTerminator() {
	n := e.version.capacityBits() - e.dst.Len()
	if n > 4 {
		n = 4
	}
	if n > 0 {
		e.dst.AppendUint32(0, n)
	}
}

// appendPadding aligns to a codeword boundary with zero bits, then fills the
// remaining codewords with the alternating fixed pattern.
func (e *encoder) appendPadding() {
	if rem := e.dst.Len() % 8; rem != 0 {
		e.dst.AppendUint32(0, 8-rem)
	}
	pads := (e.version.capacityBits() - e.dst.Len()) / 8
	for i := 0; i < pads; i++ {
		if i%2 == 0 {
			e.dst.AppendByte(paddingByte1, 8)
		} else {
			e.dst.AppendByte(paddingByte2, 8)
		}
	}
}
