package usecase

import (
	"fmt"

	"github.com/team-black-box/tici-taca-toey-server/internal/apperror"
	"github.com/team-black-box/tici-taca-toey-server/internal/entity"
)

// validate is read-only; the first failing rule wins.
func (that *GameManager) validate(intent entity.Intent) error {
	switch intent := intent.(type) {
	case entity.RegisterPlayer, entity.PlayerDisconnect, entity.PlayerTimeout, entity.NotifyTime:
		return nil
	case entity.RegisterRobot:
		if intent.MaxGames < 0 {
			return fmt.Errorf("%w: max games cannot be negative", apperror.ErrBadRequest)
		}
		return nil
	case entity.StartGame:
		if err := that.validateStart(intent); err != nil {
			return err
		}
		return that.validateGameLimit(intent.Requester())
	case entity.JoinGame:
		if err := that.validateJoin(intent); err != nil {
			return err
		}
		return that.validateGameLimit(intent.Requester())
	case entity.SpectateGame:
		return that.validateSpectate(intent)
	case entity.MakeMove:
		return that.validateMove(intent)
	default:
		return apperror.ErrBadRequest
	}
}

func (that *GameManager) validateStart(intent entity.StartGame) error {
	switch {
	case intent.BoardSize < entity.MinBoardSize:
		return apperror.ErrBoardSizeTooSmall
	case intent.PlayerCount < entity.MinPlayerCount:
		return apperror.ErrPlayerCountTooSmall
	case intent.PlayerCount >= intent.BoardSize:
		return apperror.ErrPlayerCountNotLessBoard
	case intent.BoardSize > entity.MaxBoardSize:
		return apperror.ErrBoardSizeTooLarge
	case intent.PlayerCount > entity.MaxPlayerCount:
		return apperror.ErrPlayerCountTooLarge
	case intent.WinningSequenceLength > intent.BoardSize:
		return apperror.ErrWinSequenceTooLong
	}

	if intent.TimePerPlayer > entity.MaxTimePerPlayer.Milliseconds() ||
		intent.IncrementPerPlayer > entity.MaxIncrementPerPlayer.Milliseconds() {
		return fmt.Errorf("%w: time control out of range", apperror.ErrBadRequest)
	}

	if intent.GameID == "" {
		return fmt.Errorf("%w: game id is required", apperror.ErrBadRequest)
	}

	if _, ok := that.matches[intent.GameID]; ok {
		return fmt.Errorf("%w: game %s already exists", apperror.ErrBadRequest, intent.GameID)
	}

	return nil
}

func (that *GameManager) validateJoin(intent entity.JoinGame) error {
	match, ok := that.matches[intent.GameID]
	switch {
	case !ok:
		return apperror.ErrGameNotFound
	case match.HasPlayer(intent.Requester()):
		return apperror.ErrPlayerAlreadyInGame
	case !match.IsWaiting():
		return apperror.ErrGameAlreadyInProgress
	}

	return nil
}

func (that *GameManager) validateSpectate(intent entity.SpectateGame) error {
	match, ok := that.matches[intent.GameID]
	switch {
	case !ok || !(match.IsWaiting() || match.IsInProgress()):
		return apperror.ErrGameNotFound
	case match.HasPlayer(intent.Requester()):
		return apperror.ErrPlayerAlreadyInGame
	case !match.HasSpectator(intent.Requester()) && len(match.Spectators) >= entity.MaxSpectatorSize:
		return apperror.ErrSpectatorsFull
	}

	return nil
}

func (that *GameManager) validateMove(intent entity.MakeMove) error {
	match, ok := that.matches[intent.GameID]
	at := entity.Coordinate{X: intent.CoordinateX, Y: intent.CoordinateY}

	switch {
	case !ok || !match.IsInProgress():
		return apperror.ErrGameNotFound
	case match.Turn != intent.Requester():
		return apperror.ErrMoveOutOfTurn
	case !match.Positions.Contains(at) || match.Positions[at.X][at.Y] != entity.EmptyCell:
		return apperror.ErrInvalidMove
	case !match.HasTimeLeft(intent.Requester()):
		return apperror.ErrPlayerTimeOut
	}

	return nil
}

func (that *GameManager) validateGameLimit(playerID string) error {
	participant, ok := that.roster[playerID]
	if !ok || !participant.AtGameLimit(that.activeMatches(playerID)) {
		return nil
	}

	return fmt.Errorf("%w: robot plays its maximum of %d games", apperror.ErrBadRequest, participant.MaxGames)
}

// activeMatches counts unfinished matches the player is seated in.
func (that *GameManager) activeMatches(playerID string) int {
	active := 0
	for _, match := range that.matches {
		if !match.IsTerminal() && match.HasPlayer(playerID) {
			active++
		}
	}

	return active
}
