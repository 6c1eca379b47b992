package websocket

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/team-black-box/tici-taca-toey-server/internal/entity"
)

var ErrMalformedMessage = errors.New("malformed message")

type decoder func(data []byte, envelope entity.Envelope) (entity.Intent, error)

// decoders covers what a client may send. Clock-originated and disconnect
// intents are produced by the server only.
var decoders = map[entity.MessageType]decoder{
	entity.TypeRegisterPlayer: func(data []byte, envelope entity.Envelope) (entity.Intent, error) {
		var intent entity.RegisterPlayer
		err := json.Unmarshal(data, &intent)
		intent.Envelope = envelope

		return intent, err
	},
	entity.TypeRegisterRobot: func(data []byte, envelope entity.Envelope) (entity.Intent, error) {
		var intent entity.RegisterRobot
		err := json.Unmarshal(data, &intent)
		intent.Envelope = envelope

		return intent, err
	},
	entity.TypeStartGame: func(data []byte, envelope entity.Envelope) (entity.Intent, error) {
		var intent entity.StartGame
		err := json.Unmarshal(data, &intent)
		intent.Envelope = envelope

		if intent.GameID == "" {
			intent.GameID = uuid.NewString()
		}

		return intent, err
	},
	entity.TypeJoinGame: func(data []byte, envelope entity.Envelope) (entity.Intent, error) {
		var intent entity.JoinGame
		err := json.Unmarshal(data, &intent)
		intent.Envelope = envelope

		return intent, err
	},
	entity.TypeSpectateGame: func(data []byte, envelope entity.Envelope) (entity.Intent, error) {
		var intent entity.SpectateGame
		err := json.Unmarshal(data, &intent)
		intent.Envelope = envelope

		return intent, err
	},
	entity.TypeMakeMove: func(data []byte, envelope entity.Envelope) (entity.Intent, error) {
		var intent entity.MakeMove
		err := json.Unmarshal(data, &intent)
		intent.Envelope = envelope

		return intent, err
	},
}

// decode parses a client frame and stamps it with the sender's identity.
func decode(data []byte, conn *connection) (entity.Intent, error) {
	var header struct {
		Type entity.MessageType `json:"type"`
	}

	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	envelope := entity.Envelope{MessageType: header.Type, PlayerID: conn.id, Conn: conn}

	decodeFn, ok := decoders[header.Type]
	if !ok {
		return entity.Unknown{Envelope: envelope}, nil
	}

	intent, err := decodeFn(data, envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	return intent, nil
}
