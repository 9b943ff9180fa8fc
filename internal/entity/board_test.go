package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-p2p/internal/apperror"
)

func boardFrom(t *testing.T, marks [MaxMove]Mark) *Board {
	t.Helper()

	board := NewBoard()
	board.cells = marks

	return board
}

const (
	x = MarkFirst
	o = MarkSecond
	e = MarkEmpty
)

func TestBoard_HasWinner(t *testing.T) {
	t.Run("Every winning line is detected for both roles", func(t *testing.T) {
		for _, combo := range WinCombos {
			for _, role := range []Role{RoleInitiator, RoleResponder} {
				// Given: a board with only one line filled by the role
				var marks [MaxMove]Mark
				for _, idx := range combo {
					marks[idx] = role.Mark()
				}
				board := boardFrom(t, marks)

				// Then: the role wins and its opponent does not
				assert.True(t, board.HasWinner(role), "combo %v role %s", combo, role)
				assert.False(t, board.HasWinner(role.Opponent()), "combo %v role %s", combo, role)
			}
		}
	})

	t.Run("Empty board has no winner", func(t *testing.T) {
		board := NewBoard()

		assert.False(t, board.HasWinner(RoleInitiator))
		assert.False(t, board.HasWinner(RoleResponder))
	})

	t.Run("Mixed marks on every line have no winner", func(t *testing.T) {
		// Given: a full board without three in a row
		board := boardFrom(t, [MaxMove]Mark{
			x, o, x,
			o, x, o,
			o, x, o,
		})

		// Then: nobody wins
		assert.False(t, board.HasWinner(RoleInitiator))
		assert.False(t, board.HasWinner(RoleResponder))
	})

	t.Run("Non-line adjacency does not count", func(t *testing.T) {
		// Given: an L-shape of X marks
		board := boardFrom(t, [MaxMove]Mark{
			x, e, e,
			x, e, e,
			e, x, e,
		})

		// Then: it is not a win
		assert.False(t, board.HasWinner(RoleInitiator))
	})

	t.Run("RoleNone never wins", func(t *testing.T) {
		board := NewBoard()

		assert.False(t, board.HasWinner(RoleNone))
	})
}

func TestBoard_IsFull(t *testing.T) {
	t.Run("Full board", func(t *testing.T) {
		board := boardFrom(t, [MaxMove]Mark{x, o, x, o, x, o, o, x, o})

		assert.True(t, board.IsFull())
	})

	t.Run("Any empty cell means not full", func(t *testing.T) {
		for idx := 0; idx < MaxMove; idx++ {
			marks := [MaxMove]Mark{x, x, x, x, x, x, x, x, x}
			marks[idx] = MarkEmpty

			assert.False(t, boardFrom(t, marks).IsFull(), "empty cell %d", idx)
		}
	})

	t.Run("Full board with a winning line is still full", func(t *testing.T) {
		board := boardFrom(t, [MaxMove]Mark{x, x, x, o, o, x, x, o, o})

		assert.True(t, board.IsFull())
		assert.True(t, board.HasWinner(RoleInitiator))
	})
}

func TestBoard_ApplyMove(t *testing.T) {
	t.Run("Places the role mark in row-major order", func(t *testing.T) {
		// Given: a new board
		board := NewBoard()

		// When: each corner and the center are played
		require.NoError(t, board.ApplyMove(1, RoleInitiator))
		require.NoError(t, board.ApplyMove(3, RoleResponder))
		require.NoError(t, board.ApplyMove(5, RoleInitiator))
		require.NoError(t, board.ApplyMove(7, RoleResponder))
		require.NoError(t, board.ApplyMove(9, RoleInitiator))

		// Then: the marks are at the expected rows and columns
		assert.Equal(t, MarkFirst, board.Cell(0, 0))
		assert.Equal(t, MarkSecond, board.Cell(0, 2))
		assert.Equal(t, MarkFirst, board.Cell(1, 1))
		assert.Equal(t, MarkSecond, board.Cell(2, 0))
		assert.Equal(t, MarkFirst, board.Cell(2, 2))
	})

	t.Run("Error on occupied cell leaves board unchanged", func(t *testing.T) {
		// Given: a board with position 5 taken
		board := NewBoard()
		require.NoError(t, board.ApplyMove(5, RoleInitiator))
		before := *board

		// When: either role plays position 5 again
		errSame := board.ApplyMove(5, RoleInitiator)
		errOther := board.ApplyMove(5, RoleResponder)

		// Then: both are rejected and nothing changed
		require.ErrorIs(t, errSame, apperror.ErrInvalidMove)
		require.ErrorIs(t, errOther, apperror.ErrInvalidMove)
		assert.Equal(t, before, *board)
	})

	t.Run("Error on out of range positions", func(t *testing.T) {
		board := NewBoard()

		for _, move := range []int{-1, 0, 10, 100} {
			err := board.ApplyMove(move, RoleInitiator)

			assert.ErrorIs(t, err, apperror.ErrInvalidMove, "move %d", move)
		}
		assert.Equal(t, *NewBoard(), *board)
	})

	t.Run("Error for RoleNone", func(t *testing.T) {
		board := NewBoard()

		err := board.ApplyMove(1, RoleNone)

		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, MarkEmpty, board.Cell(0, 0))
	})
}

func TestBoard_ResetThenTie(t *testing.T) {
	// Given: a board that already has marks
	board := NewBoard()
	require.NoError(t, board.ApplyMove(1, RoleInitiator))
	require.NoError(t, board.ApplyMove(2, RoleResponder))

	// When: it is reset and a drawn game is played
	board.Reset()
	assert.Equal(t, *NewBoard(), *board)

	moves := []int{1, 2, 3, 5, 4, 6, 8, 7, 9}
	role := RoleInitiator
	for _, move := range moves {
		require.NoError(t, board.ApplyMove(move, role))
		role = role.Opponent()
	}

	// Then: the board is full with no winner
	assert.True(t, board.IsFull())
	assert.False(t, board.HasWinner(RoleInitiator))
	assert.False(t, board.HasWinner(RoleResponder))
}

func TestBoard_Rows(t *testing.T) {
	board := boardFrom(t, [MaxMove]Mark{x, e, e, e, o, e, e, e, x})

	rows := board.Rows()

	assert.Equal(t, [BoardSize][BoardSize]Mark{{x, e, e}, {e, o, e}, {e, e, x}}, rows)
	assert.Equal(t, "X", rows[0][0].String())
	assert.Equal(t, "O", rows[1][1].String())
	assert.Equal(t, "_", rows[0][1].String())
}
