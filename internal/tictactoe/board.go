package tictactoe

import "github.com/team-black-box/tici-taca-toey-server/internal/entity"

// NewBoard returns a size x size board of empty cells.
func NewBoard(size int) entity.Board {
	board := make(entity.Board, size)
	for x := range board {
		board[x] = make([]string, size)
		for y := range board[x] {
			board[x][y] = entity.EmptyCell
		}
	}

	return board
}

// IsDraw reports whether no empty cell remains.
func IsDraw(board entity.Board) bool {
	for _, row := range board {
		for _, cell := range row {
			if cell == entity.EmptyCell {
				return false
			}
		}
	}

	return true
}
