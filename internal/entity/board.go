package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-p2p/internal/apperror"
)

type Mark int

const (
	MarkEmpty Mark = iota
	MarkFirst
	MarkSecond
)

const (
	BoardSize = 3

	MinMove = 1
	MaxMove = BoardSize * BoardSize
)

// WinCombos are the only lines that count: 3 rows, 3 columns, 2 diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func (that Mark) String() string {
	switch that {
	case MarkFirst:
		return "X"
	case MarkSecond:
		return "O"
	default:
		return "_"
	}
}

// Board is a 3x3 grid stored row-major; cell index = move - 1.
type Board struct {
	cells [MaxMove]Mark
}

func NewBoard() *Board {
	return &Board{}
}

// ApplyMove - places the role's mark at the cell addressed by move.
// The board is left untouched when the move is rejected.
func (that *Board) ApplyMove(move int, role Role) error {
	if move < MinMove || move > MaxMove {
		return fmt.Errorf("%w: position %d is out of range", apperror.ErrInvalidMove, move)
	}

	if that.cells[move-1] != MarkEmpty {
		return fmt.Errorf("%w: position %d is already taken", apperror.ErrInvalidMove, move)
	}

	mark := role.Mark()
	if mark == MarkEmpty {
		return fmt.Errorf("%w: no mark for role %s", apperror.ErrInvalidMove, role)
	}

	that.cells[move-1] = mark

	return nil
}

// IsFull - true iff no cell is empty.
func (that *Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell == MarkEmpty {
			return false
		}
	}

	return true
}

// HasWinner - true iff one of WinCombos is entirely the role's mark.
func (that *Board) HasWinner(role Role) bool {
	mark := role.Mark()
	if mark == MarkEmpty {
		return false
	}

	for _, combo := range WinCombos {
		if that.cells[combo[0]] == mark && that.cells[combo[1]] == mark && that.cells[combo[2]] == mark {
			return true
		}
	}

	return false
}

func (that *Board) Reset() {
	that.cells = [MaxMove]Mark{}
}

// Cell - returns the mark at zero-based row and column.
func (that *Board) Cell(row, col int) Mark {
	return that.cells[row*BoardSize+col]
}

// Rows - returns a copy of the grid for rendering.
func (that *Board) Rows() [BoardSize][BoardSize]Mark {
	var rows [BoardSize][BoardSize]Mark
	for i, cell := range that.cells {
		rows[i/BoardSize][i%BoardSize] = cell
	}

	return rows
}
