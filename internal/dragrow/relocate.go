package dragrow

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange = errors.New("dragrow: row position out of range")
	ErrHeaderRow  = errors.New("dragrow: header row cannot move")
)

// Table is the ordered row collection a Controller reorders. Position 0 is
// the header.
type Table interface {
	// Len is the number of rows, header included.
	Len() int
	// Swap exchanges the rows at positions i and i+1 (j is always i+1),
	// carrying each row's control cell along with it.
	Swap(i, j int)
	// Label is the value shown in row i's control cell.
	Label(i int) int
	SetLabel(i, v int)
}

// Relocate moves the row at position from to position to. The rows in
// between shift by one toward the vacated slot. Each step swaps two adjacent
// rows and then swaps their control-cell labels back, so labels keep tracking
// positions without a separate renumbering pass.
func Relocate(t Table, from, to int) error {
	n := t.Len()
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("relocate %d->%d in %d rows: %w", from, to, n, ErrOutOfRange)
	}
	if from == 0 || to == 0 {
		return fmt.Errorf("relocate %d->%d: %w", from, to, ErrHeaderRow)
	}
	switch {
	case to > from:
		for i := from; i < to; i++ {
			promote(t, i)
		}
	case from > to:
		for i := from - 1; i >= to; i-- {
			promote(t, i)
		}
	}
	return nil
}

// promote moves the row at i+1 ahead of the row at i and keeps the labels
// where they were.
func promote(t Table, i int) {
	t.Swap(i, i+1)
	a, b := t.Label(i), t.Label(i+1)
	t.SetLabel(i, b)
	t.SetLabel(i+1, a)
}

// Renumber sets every data row's label to its position. It is used when a
// table is first populated; relocations keep labels aligned on their own.
func Renumber(t Table) {
	for i := 1; i < t.Len(); i++ {
		t.SetLabel(i, i)
	}
}

// LabelsConsistent reports whether labels 1..N-1 equal their positions.
func LabelsConsistent(t Table) bool {
	for i := 1; i < t.Len(); i++ {
		if t.Label(i) != i {
			return false
		}
	}
	return true
}
