package sheet

import "strconv"

// Coordinate addresses one cell in the grid: a column named by base-26
// letters (A=0, Z=25, AA=26) and a zero-based row, rendered as "A0".
type Coordinate struct {
	Column int
	Row    int
}

func (c Coordinate) String() string {
	return ColumnName(c.Column) + strconv.Itoa(c.Row)
}

// ColumnName converts a zero-based column index to its letter name:
// 0 -> A, 25 -> Z, 26 -> AA and so on
func ColumnName(column int) string {
	name := ""
	n := column + 1
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}

// ParseCoordinate parses names like A0 or AB12 into a coordinate.
// Letters may be lowercase. Returns false when the name does not match
// the letters-then-digits cell pattern.
func ParseCoordinate(name string) (Coordinate, bool) {
	letterEnd := 0
	for letterEnd < len(name) && isAlpha(rune(name[letterEnd])) {
		letterEnd++
	}

	// must have at least one letter and one digit, nothing else
	if letterEnd == 0 || letterEnd == len(name) {
		return Coordinate{}, false
	}
	for i := letterEnd; i < len(name); i++ {
		if !isDigit(rune(name[i])) {
			return Coordinate{}, false
		}
	}

	column := 0
	for _, ch := range name[:letterEnd] {
		if ch >= 'a' && ch <= 'z' {
			ch -= 32
		}
		column = column*26 + int(ch-'A') + 1
	}
	column--

	row, err := strconv.Atoi(name[letterEnd:])
	if err != nil {
		return Coordinate{}, false
	}

	return Coordinate{Column: column, Row: row}, true
}
