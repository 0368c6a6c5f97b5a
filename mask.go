package qrcode

// maskFuncs are the eight standard mask conditions. A data module at column
// x, row y is flipped when the condition holds.
var maskFuncs = [8]func(x, y int) bool{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (y/2+x/3)%2 == 0 },
	func(x, y int) bool { return (x*y)%2+(x*y)%3 == 0 },
	func(x, y int) bool { return ((x*y)%2+(x*y)%3)%2 == 0 },
	func(x, y int) bool { return ((x+y)%2+(x*y)%3)%2 == 0 },
}

// applyMask flips the dark bit of every data module selected by the mask.
// Function patterns are never touched.
func applyMask(m *Matrix, mask int) {
	f := maskFuncs[mask]
	m.Iterate(IterDirection_ROW, func(x, y int, v QRValue) {
		if v.Type() != QRType_DATA {
			return
		}
		if f(x, y) {
			m.set(x, y, QRValue{typ: QRType_DATA, set: !v.set})
		}
	})
}

// penalty weights of the four evaluation rules.
const (
	penaltyWeight1 = 3
	penaltyWeight2 = 3
	penaltyWeight3 = 40
	penaltyWeight4 = 10
)

// penaltyScore sums the four standard evaluation rules over the whole
// matrix, function patterns included.
func penaltyScore(m *Matrix) int {
	return penaltyRule1(m) + penaltyRule2(m) + penaltyRule3(m) + penaltyRule4(m)
}

// penaltyRule1 charges runs of five or more same-colored modules in any row
// or column: 3 points for five, one more per extra module.
func penaltyRule1(m *Matrix) int {
	score := 0
	dim := m.Width()

	scanRun := func(at func(i int) bool) {
		run := 1
		prev := at(0)
		for i := 1; i < dim; i++ {
			cur := at(i)
			if cur == prev {
				run++
				continue
			}
			if run >= 5 {
				score += penaltyWeight1 + run - 5
			}
			prev, run = cur, 1
		}
		if run >= 5 {
			score += penaltyWeight1 + run - 5
		}
	}

	for y := 0; y < dim; y++ {
		y := y
		scanRun(func(i int) bool { return m.at(i, y).IsSet() })
	}
	for x := 0; x < dim; x++ {
		x := x
		scanRun(func(i int) bool { return m.at(x, i).IsSet() })
	}
	return score
}

// penaltyRule2 charges every 2x2 block of same-colored modules.
func penaltyRule2(m *Matrix) int {
	score := 0
	dim := m.Width()
	for y := 0; y < dim-1; y++ {
		for x := 0; x < dim-1; x++ {
			c := m.at(x, y).IsSet()
			if m.at(x+1, y).IsSet() == c && m.at(x, y+1).IsSet() == c && m.at(x+1, y+1).IsSet() == c {
				score += penaltyWeight2
			}
		}
	}
	return score
}

// finder-like sequences 1011101 with four light modules on either side.
var finderLikePatterns = [2][11]bool{
	{true, false, true, true, true, false, true, false, false, false, false},
	{false, false, false, false, true, false, true, true, true, false, true},
}

// penaltyRule3 charges occurrences of a finder-like pattern in rows or
// columns.
func penaltyRule3(m *Matrix) int {
	score := 0
	dim := m.Width()

	match := func(at func(i int) bool, start int) bool {
		for _, pat := range finderLikePatterns {
			ok := true
			for i := 0; i < 11; i++ {
				if at(start+i) != pat[i] {
					ok = false
					break
				}
			}
			if ok {
				return true
			}
		}
		return false
	}

	for y := 0; y < dim; y++ {
		y := y
		at := func(i int) bool { return m.at(i, y).IsSet() }
		for x := 0; x+11 <= dim; x++ {
			if match(at, x) {
				score += penaltyWeight3
			}
		}
	}
	for x := 0; x < dim; x++ {
		x := x
		at := func(i int) bool { return m.at(x, i).IsSet() }
		for y := 0; y+11 <= dim; y++ {
			if match(at, y) {
				score += penaltyWeight3
			}
		}
	}
	return score
}

// penaltyRule4 charges imbalance between dark and light modules: 10 points
// per full 5% step away from 50%, so anything in [45%, 55%] scores zero.
func penaltyRule4(m *Matrix) int {
	dark, total := 0, m.Width()*m.Height()
	m.Iterate(IterDirection_ROW, func(x, y int, v QRValue) {
		if v.IsSet() {
			dark++
		}
	})
	deviation := dark*20 - total*10
	if deviation < 0 {
		deviation = -deviation
	}
	k := (deviation+total-1)/total - 1
	if k < 0 {
		k = 0
	}
	return penaltyWeight4 * k
}
