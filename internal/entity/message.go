package entity

import "github.com/team-black-box/tici-taca-toey-server/internal/apperror"

// GameState is broadcast to players and spectators after every match transition.
type GameState struct {
	MessageType MessageType        `json:"type"`
	Game        MatchView          `json:"game"`
	Players     map[string]Profile `json:"players"`
	Spectators  map[string]Profile `json:"spectators"`
}

// Retag returns a copy of the state carrying a different message type.
func (that GameState) Retag(messageType MessageType) GameState {
	that.MessageType = messageType

	return that
}

type RegisterResponse struct {
	MessageType MessageType `json:"type"`
	PlayerID    string      `json:"playerId"`
	Name        string      `json:"name"`
}

// ErrorResponse echoes the rejected intent; the connection is never serialised.
type ErrorResponse struct {
	MessageType MessageType   `json:"type"`
	Error       apperror.Code `json:"error"`
	Message     any           `json:"message"`
}

func NewErrorResponse(code apperror.Code, message any) ErrorResponse {
	return ErrorResponse{
		MessageType: TypeError,
		Error:       code,
		Message:     message,
	}
}
