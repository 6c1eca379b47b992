package tictactoe

import (
	"slices"

	"github.com/team-black-box/tici-taca-toey-server/internal/entity"
)

type Result struct {
	Winner   string
	Sequence []entity.Coordinate
}

// direction is a unit step along one of the four lines through a cell.
type direction struct {
	dx, dy int
}

var (
	row          = direction{dx: 0, dy: 1}
	column       = direction{dx: 1, dy: 0}
	mainDiagonal = direction{dx: 1, dy: 1}
	antiDiagonal = direction{dx: 1, dy: -1}
)

// CalculateWinner looks for a run of runLength cells owned by mover through last.
// Only the four lines crossing last are inspected.
func CalculateWinner(board entity.Board, runLength int, mover string, last entity.Coordinate) (Result, bool) {
	if runLength <= 0 || !board.Contains(last) || board[last.X][last.Y] != mover {
		return Result{}, false
	}

	for _, line := range []direction{row, column} {
		if sequence, ok := scanWindow(board, runLength, mover, last, line); ok {
			return Result{Winner: mover, Sequence: sequence}, true
		}
	}

	for _, line := range []direction{mainDiagonal, antiDiagonal} {
		if sequence, ok := walkOutward(board, runLength, mover, last, line); ok {
			return Result{Winner: mover, Sequence: sequence}, true
		}
	}

	return Result{}, false
}

// scanWindow scans the clipped window of up to 2*runLength-1 cells centred on
// last and returns the first contiguous run of runLength.
func scanWindow(board entity.Board, runLength int, mover string, last entity.Coordinate, line direction) ([]entity.Coordinate, bool) {
	reach := runLength - 1
	sequence := make([]entity.Coordinate, 0, runLength)

	for offset := -reach; offset <= reach; offset++ {
		at := entity.Coordinate{X: last.X + offset*line.dx, Y: last.Y + offset*line.dy}
		if !board.Contains(at) {
			continue
		}

		if board[at.X][at.Y] != mover {
			sequence = sequence[:0]
			continue
		}

		sequence = append(sequence, at)
		if len(sequence) == runLength {
			return sequence, true
		}
	}

	return nil, false
}

// walkOutward extends from last in both senses of line until the run breaks.
func walkOutward(board entity.Board, runLength int, mover string, last entity.Coordinate, line direction) ([]entity.Coordinate, bool) {
	var backward []entity.Coordinate
	for at := step(last, line, -1); len(backward)+1 < runLength && owns(board, at, mover); at = step(at, line, -1) {
		backward = append(backward, at)
	}

	var forward []entity.Coordinate
	for at := step(last, line, 1); len(backward)+len(forward)+1 < runLength && owns(board, at, mover); at = step(at, line, 1) {
		forward = append(forward, at)
	}

	if len(backward)+len(forward)+1 < runLength {
		return nil, false
	}

	slices.Reverse(backward)
	sequence := append(backward, last)

	return append(sequence, forward...), true
}

func step(at entity.Coordinate, line direction, sense int) entity.Coordinate {
	return entity.Coordinate{X: at.X + sense*line.dx, Y: at.Y + sense*line.dy}
}

func owns(board entity.Board, at entity.Coordinate, mover string) bool {
	return board.Contains(at) && board[at.X][at.Y] == mover
}
