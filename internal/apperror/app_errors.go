package apperror

import "errors"

// Code is the wire value of a user-facing error.
type Code string

const (
	CodeGameNotFound                Code = "GAME_NOT_FOUND"
	CodePlayerAlreadyPartOfGame     Code = "PLAYER_ALREADY_PART_OF_GAME"
	CodeGameAlreadyInProgress       Code = "GAME_ALREADY_IN_PROGRESS"
	CodeMoveOutOfTurn               Code = "MOVE_OUT_OF_TURN"
	CodeInvalidMove                 Code = "INVALID_MOVE"
	CodePlayerTimeOut               Code = "PLAYER_TIME_OUT"
	CodeBoardSizeLessThan2          Code = "BOARD_SIZE_LESS_THAN_2"
	CodeBoardSizeGreaterThan12      Code = "BOARD_SIZE_CANNOT_BE_GREATER_THAN_12"
	CodePlayerCountLessThan2        Code = "PLAYER_COUNT_LESS_THAN_2"
	CodePlayerCountGreaterThan10    Code = "PLAYER_COUNT_CANNOT_BE_GREATER_THAN_10"
	CodePlayerCountNotLessThanBoard Code = "PLAYER_COUNT_MUST_BE_LESS_THAN_BOARD_SIZE"
	CodeWinSequenceLongerThanBoard  Code = "WIN_SEQUENCE_LENGTH_MUST_BE_LESS_THAN_OR_EQUAL_TO_BOARD_SIZE"
	CodeSpectatorCountOverCapacity  Code = "SPECTATOR_COUNT_CANNOT_BE_GREATER_THAN_10"
	CodeBadRequest                  Code = "BAD_REQUEST"
)

// Error is a rejection reported back to the participant that sent the intent.
type Error struct {
	Code    Code
	Message string
}

func (that *Error) Error() string {
	return that.Message
}

func newError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

var (
	ErrGameNotFound            = newError(CodeGameNotFound, "game not found")
	ErrPlayerAlreadyInGame     = newError(CodePlayerAlreadyPartOfGame, "player is already part of the game")
	ErrGameAlreadyInProgress   = newError(CodeGameAlreadyInProgress, "game is already in progress")
	ErrMoveOutOfTurn           = newError(CodeMoveOutOfTurn, "it's not your turn")
	ErrInvalidMove             = newError(CodeInvalidMove, "cell is occupied or out of the board")
	ErrPlayerTimeOut           = newError(CodePlayerTimeOut, "player has no time left")
	ErrBoardSizeTooSmall       = newError(CodeBoardSizeLessThan2, "board size is less than 2")
	ErrBoardSizeTooLarge       = newError(CodeBoardSizeGreaterThan12, "board size is greater than 12")
	ErrPlayerCountTooSmall     = newError(CodePlayerCountLessThan2, "player count is less than 2")
	ErrPlayerCountTooLarge     = newError(CodePlayerCountGreaterThan10, "player count is greater than 10")
	ErrPlayerCountNotLessBoard = newError(CodePlayerCountNotLessThanBoard, "player count must be less than board size")
	ErrWinSequenceTooLong      = newError(CodeWinSequenceLongerThanBoard, "winning sequence is longer than the board")
	ErrSpectatorsFull          = newError(CodeSpectatorCountOverCapacity, "spectator capacity reached")
	ErrBadRequest              = newError(CodeBadRequest, "bad request")
)

// CodeOf returns the wire code carried by err, BAD_REQUEST when err has none.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	return CodeBadRequest
}
