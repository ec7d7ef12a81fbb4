package model

// BoardIndex identifies a cell on a board whose geometry lives outside this
// core. Only non-negativity is validated here; bounds checking belongs to the
// collaborator that defines the board.
type BoardIndex int

// Valid reports whether the index is usable (non-negative).
func (i BoardIndex) Valid() bool {
	return i >= 0
}
