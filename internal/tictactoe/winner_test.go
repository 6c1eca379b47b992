package tictactoe

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/team-black-box/tici-taca-toey-server/internal/entity"
)

func place(board entity.Board, id string, cells ...entity.Coordinate) {
	for _, at := range cells {
		board[at.X][at.Y] = id
	}
}

func line(from entity.Coordinate, dx, dy, length int) []entity.Coordinate {
	cells := make([]entity.Coordinate, 0, length)
	for i := 0; i < length; i++ {
		cells = append(cells, entity.Coordinate{X: from.X + i*dx, Y: from.Y + i*dy})
	}

	return cells
}

func TestNewBoard(t *testing.T) {
	// Given: a 3x3 board
	board := NewBoard(3)

	// Then: every cell is empty
	require.Len(t, board, 3)
	for _, row := range board {
		assert.Equal(t, []string{entity.EmptyCell, entity.EmptyCell, entity.EmptyCell}, row)
	}
	assert.False(t, IsDraw(board))
}

func TestIsDraw(t *testing.T) {
	// Given: a full board without a line
	board := entity.Board{
		{"a", "b", "a"},
		{"a", "b", "b"},
		{"b", "a", "a"},
	}

	// Then: it is a draw, and stops being one once a cell is emptied
	assert.True(t, IsDraw(board))
	board[1][1] = entity.EmptyCell
	assert.False(t, IsDraw(board))
}

func TestCalculateWinner_EveryOrientation(t *testing.T) {
	orientations := []struct {
		name   string
		dx, dy int
		start  func(size, k int) entity.Coordinate
	}{
		{"row", 0, 1, func(size, k int) entity.Coordinate { return entity.Coordinate{X: size / 2, Y: size - k} }},
		{"column", 1, 0, func(size, k int) entity.Coordinate { return entity.Coordinate{X: 0, Y: size / 2} }},
		{"main diagonal", 1, 1, func(size, k int) entity.Coordinate { return entity.Coordinate{X: size - k, Y: 0} }},
		{"anti diagonal", 1, -1, func(size, k int) entity.Coordinate { return entity.Coordinate{X: 0, Y: size - 1} }},
	}

	for size := 2; size <= 6; size++ {
		for k := 2; k <= size; k++ {
			for _, orientation := range orientations {
				cells := line(orientation.start(size, k), orientation.dx, orientation.dy, k)

				for lastIdx := range cells {
					name := fmt.Sprintf("%s size=%d k=%d last=%d", orientation.name, size, k, lastIdx)
					t.Run(name, func(t *testing.T) {
						// Given: k marks of one player along the line
						board := NewBoard(size)
						place(board, "a", cells...)

						// When: the winner is calculated around any cell of the run
						result, ok := CalculateWinner(board, k, "a", cells[lastIdx])

						// Then: the player wins with exactly that run
						require.True(t, ok)
						assert.Equal(t, "a", result.Winner)
						assert.Len(t, result.Sequence, k)
						assert.Contains(t, result.Sequence, cells[lastIdx])
						assert.ElementsMatch(t, cells, result.Sequence)
					})
				}
			}
		}
	}
}

func TestCalculateWinner_NoWinner(t *testing.T) {
	t.Run("run broken by opponent", func(t *testing.T) {
		// Given: a row a,a,b,a on a 4x4 board needing 3
		board := NewBoard(4)
		place(board, "a", entity.Coordinate{X: 0, Y: 0}, entity.Coordinate{X: 0, Y: 1}, entity.Coordinate{X: 0, Y: 3})
		place(board, "b", entity.Coordinate{X: 0, Y: 2})

		// When: the winner is calculated around the last a
		_, ok := CalculateWinner(board, 3, "a", entity.Coordinate{X: 0, Y: 3})

		// Then: there is no winner
		assert.False(t, ok)
	})

	t.Run("run elsewhere on the board", func(t *testing.T) {
		// Given: a complete row that does not pass through the last move
		board := NewBoard(3)
		place(board, "a", line(entity.Coordinate{X: 2, Y: 0}, 0, 1, 3)...)
		place(board, "a", entity.Coordinate{X: 0, Y: 1})

		// When: the winner is calculated around the isolated mark
		_, ok := CalculateWinner(board, 3, "a", entity.Coordinate{X: 0, Y: 1})

		// Then: only lines through the last move count
		assert.False(t, ok)
	})

	t.Run("anti diagonal too short", func(t *testing.T) {
		// Given: two marks on the anti diagonal of a 3x3 board
		board := NewBoard(3)
		place(board, "a", entity.Coordinate{X: 0, Y: 2}, entity.Coordinate{X: 1, Y: 1})

		// When: the winner is calculated
		_, ok := CalculateWinner(board, 3, "a", entity.Coordinate{X: 1, Y: 1})

		// Then: there is no winner
		assert.False(t, ok)
	})
}

func TestCalculateWinner_SequenceOrder(t *testing.T) {
	// Given: a longer run than needed on a gomoku-style board
	board := NewBoard(7)
	place(board, "a", line(entity.Coordinate{X: 3, Y: 0}, 0, 1, 6)...)

	// When: the winner is calculated around the middle of the run
	result, ok := CalculateWinner(board, 5, "a", entity.Coordinate{X: 3, Y: 2})

	// Then: exactly five ordered cells are returned
	require.True(t, ok)
	assert.Equal(t, line(entity.Coordinate{X: 3, Y: 0}, 0, 1, 5), result.Sequence)
}

func TestCalculateWinner_ClassicScenario(t *testing.T) {
	// Given: A holds the top row of a 3x3 board and B is interleaved below
	board := NewBoard(3)
	place(board, "A", entity.Coordinate{X: 0, Y: 0}, entity.Coordinate{X: 0, Y: 1}, entity.Coordinate{X: 0, Y: 2})
	place(board, "B", entity.Coordinate{X: 1, Y: 0}, entity.Coordinate{X: 1, Y: 1})

	// When: the winner is calculated around A's last move
	result, ok := CalculateWinner(board, 3, "A", entity.Coordinate{X: 0, Y: 2})

	// Then: A wins with the top row in order
	require.True(t, ok)
	assert.Equal(t, Result{
		Winner:   "A",
		Sequence: []entity.Coordinate{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}},
	}, result)
}
