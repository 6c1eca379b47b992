package usecase

import (
	"github.com/team-black-box/tici-taca-toey-server/internal/apperror"
	"github.com/team-black-box/tici-taca-toey-server/internal/entity"
)

func (that *GameManager) notify(intent entity.Intent, affected []*entity.Match) {
	switch register := intent.(type) {
	case entity.RegisterPlayer:
		that.send(register.Connection(), entity.RegisterResponse{
			MessageType: entity.TypeRegisterPlayer,
			PlayerID:    register.Requester(),
			Name:        register.Name,
		})

		return
	case entity.RegisterRobot:
		that.send(register.Connection(), entity.RegisterResponse{
			MessageType: entity.TypeRegisterRobot,
			PlayerID:    register.Requester(),
			Name:        register.Name,
		})

		return
	}

	for _, match := range affected {
		messageType := intent.Type()
		if match.IsTerminal() {
			messageType = entity.TypeGameComplete
		}

		state, players, spectators := that.gameState(match, messageType)
		for _, participant := range players {
			that.send(participant.Conn, state)
		}

		spectatorState := state.Retag(entity.TypeSpectateGame)
		for _, participant := range spectators {
			that.send(participant.Conn, spectatorState)
		}
	}
}

// gameState builds the snapshot for a match and the connected participants to deliver it to.
func (that *GameManager) gameState(match *entity.Match, messageType entity.MessageType) (entity.GameState, []*entity.Participant, []*entity.Participant) {
	players := that.connected(match.Players)
	spectators := that.connected(match.Spectators)

	return entity.GameState{
		MessageType: messageType,
		Game:        match.View(),
		Players:     profiles(players),
		Spectators:  profiles(spectators),
	}, players, spectators
}

func (that *GameManager) connected(ids []string) []*entity.Participant {
	participants := make([]*entity.Participant, 0, len(ids))
	for _, id := range ids {
		if participant, ok := that.roster[id]; ok {
			participants = append(participants, participant)
		}
	}

	return participants
}

// notifyError answers the requester only.
func (that *GameManager) notifyError(intent entity.Intent, err error) {
	conn := intent.Connection()
	if conn == nil {
		if participant, ok := that.roster[intent.Requester()]; ok {
			conn = participant.Conn
		}
	}

	that.send(conn, entity.NewErrorResponse(apperror.CodeOf(err), intent))
}

// send never blocks and never escalates; a broken connection is reaped by the transport.
func (that *GameManager) send(conn entity.Connection, msg any) {
	if conn == nil {
		return
	}

	if err := conn.Send(msg); err != nil {
		that.logger.Warn("failed to send message", "method", "send", "error", err)
	}
}

func profiles(participants []*entity.Participant) map[string]entity.Profile {
	result := make(map[string]entity.Profile, len(participants))
	for _, participant := range participants {
		result[participant.PlayerID] = participant.Profile
	}

	return result
}
