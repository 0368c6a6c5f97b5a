package qrcode

// QRType marks the role a module plays inside the symbol. Function-pattern
// modules are placed before data and must never be overwritten by the data
// filling or masking steps.
type QRType uint8

const (
	// QRType_INIT is a module that has not been decided yet.
	QRType_INIT QRType = iota
	// QRType_DATA carries encoded payload or error-correction bits.
	QRType_DATA
	// QRType_FINDER is part of one of the three corner finder patterns.
	QRType_FINDER
	// QRType_SPLITTER is the one-module light separator around a finder.
	QRType_SPLITTER
	// QRType_TIMING belongs to the row-6 or column-6 timing strips.
	QRType_TIMING
	// QRType_ALIGNMENT belongs to an alignment pattern.
	QRType_ALIGNMENT
	// QRType_FORMAT carries format information bits.
	QRType_FORMAT
	// QRType_VERSION carries version information bits (version >= 7).
	QRType_VERSION
	// QRType_DARK is the single always-dark module beside the lower-left finder.
	QRType_DARK
)

// QRValue is one module: its role plus whether it is dark.
type QRValue struct {
	typ QRType
	set bool
}

// NewQRValue builds a module value. Writers and custom shapes normally only
// read values out of a Matrix; this is for tests and synthetic matrices.
func NewQRValue(typ QRType, set bool) QRValue {
	return QRValue{typ: typ, set: set}
}

// Type returns the role of the module.
func (v QRValue) Type() QRType { return v.typ }

// IsSet reports whether the module is dark.
func (v QRValue) IsSet() bool { return v.set }

// IsFunction reports whether the module belongs to a function pattern.
func (v QRValue) IsFunction() bool {
	return v.typ != QRType_INIT && v.typ != QRType_DATA
}

// IterDirection controls the traversal order of Matrix.Iterate.
type IterDirection uint8

const (
	// IterDirection_ROW visits modules row by row, left to right.
	IterDirection_ROW IterDirection = iota + 1
	// IterDirection_COLUMN visits modules column by column, top to bottom.
	IterDirection_COLUMN
)

// Matrix is the square module grid of a QR symbol. It is mutated only while
// the encoder constructs it; once handed out via QRCode.Save or
// QRCode.Matrix it must be treated as frozen.
type Matrix struct {
	width  int
	height int
	mat    [][]QRValue
}

func newMatrix(width, height int) *Matrix {
	mat := make([][]QRValue, height)
	for y := 0; y < height; y++ {
		mat[y] = make([]QRValue, width)
	}
	return &Matrix{width: width, height: height, mat: mat}
}

// Width returns the number of modules per row.
func (m Matrix) Width() int { return m.width }

// Height returns the number of modules per column.
func (m Matrix) Height() int { return m.height }

func (m *Matrix) set(x, y int, v QRValue) {
	m.mat[y][x] = v
}

func (m Matrix) at(x, y int) QRValue {
	return m.mat[y][x]
}

// At returns the module at column x, row y.
func (m Matrix) At(x, y int) QRValue {
	return m.mat[y][x]
}

// Iterate visits every module exactly once in the given direction.
func (m Matrix) Iterate(dir IterDirection, visit func(x, y int, v QRValue)) {
	switch dir {
	case IterDirection_COLUMN:
		for x := 0; x < m.width; x++ {
			for y := 0; y < m.height; y++ {
				visit(x, y, m.mat[y][x])
			}
		}
	default:
		for y := 0; y < m.height; y++ {
			for x := 0; x < m.width; x++ {
				visit(x, y, m.mat[y][x])
			}
		}
	}
}

// copyOf returns a deep copy, used to try out mask candidates.
func (m Matrix) copyOf() *Matrix {
	next := newMatrix(m.width, m.height)
	for y := 0; y < m.height; y++ {
		copy(next.mat[y], m.mat[y])
	}
	return next
}
