package usecase

import (
	"sort"
	"time"

	"github.com/team-black-box/tici-taca-toey-server/internal/entity"
	"github.com/team-black-box/tici-taca-toey-server/internal/tictactoe"
	"github.com/team-black-box/tici-taca-toey-server/internal/timer"
)

// transition applies a validated intent and returns the matches it touched.
func (that *GameManager) transition(intent entity.Intent) []*entity.Match {
	switch intent := intent.(type) {
	case entity.RegisterPlayer:
		that.roster[intent.Requester()] = entity.NewParticipant(intent.Requester(), intent.Name, intent.Connection())
		return nil
	case entity.RegisterRobot:
		that.roster[intent.Requester()] = entity.NewRobot(intent.Requester(), intent.Name, intent.MaxGames, intent.Connection())
		return nil
	case entity.StartGame:
		return that.startGame(intent)
	case entity.JoinGame:
		return that.joinGame(intent)
	case entity.SpectateGame:
		return that.spectateGame(intent)
	case entity.MakeMove:
		return that.makeMove(intent)
	case entity.PlayerTimeout:
		return that.playerTimeout(intent)
	case entity.PlayerDisconnect:
		return that.playerDisconnect(intent)
	case entity.NotifyTime:
		if match, ok := that.matches[intent.GameID]; ok && !match.IsTerminal() {
			return []*entity.Match{match}
		}
		return nil
	default:
		return nil
	}
}

func (that *GameManager) startGame(intent entity.StartGame) []*entity.Match {
	that.ensureParticipant(intent)

	runLength := intent.WinningSequenceLength
	if runLength <= 0 {
		runLength = intent.BoardSize
	}

	match := &entity.Match{
		ID:                    intent.GameID,
		Name:                  intent.Name,
		BoardSize:             intent.BoardSize,
		Positions:             tictactoe.NewBoard(intent.BoardSize),
		PlayerCount:           intent.PlayerCount,
		Players:               []string{intent.Requester()},
		Spectators:            []string{},
		WinningSequenceLength: runLength,
		Status:                entity.StatusWaiting,
		TimePerPlayer:         millisOr(intent.TimePerPlayer, that.options.TimePerPlayer),
		IncrementPerPlayer:    millisOr(intent.IncrementPerPlayer, that.options.IncrementPerPlayer),
		Timers:                make(map[string]*timer.Timer),
		CreatedAt:             that.options.Clock.Now(),
	}
	match.Timers[intent.Requester()] = that.newTimer(match, intent.Requester())

	that.matches[match.ID] = match
	that.logger.Info("match created", "game_id", match.ID, "board_size", match.BoardSize, "player_count", match.PlayerCount)

	return []*entity.Match{match}
}

func (that *GameManager) joinGame(intent entity.JoinGame) []*entity.Match {
	that.ensureParticipant(intent)

	match := that.matches[intent.GameID]
	playerID := intent.Requester()

	match.RemoveSpectator(playerID)
	match.Players = append(match.Players, playerID)
	match.Timers[playerID] = that.newTimer(match, playerID)

	if len(match.Players) == match.PlayerCount {
		match.Status = entity.StatusInProgress
		match.Turn = match.Players[0]
		that.startClock(match, match.Turn)
		that.logger.Info("match started", "game_id", match.ID)
	}

	return []*entity.Match{match}
}

func (that *GameManager) spectateGame(intent entity.SpectateGame) []*entity.Match {
	that.ensureParticipant(intent)

	match := that.matches[intent.GameID]
	match.AddSpectator(intent.Requester())

	return []*entity.Match{match}
}

func (that *GameManager) makeMove(intent entity.MakeMove) []*entity.Match {
	match := that.matches[intent.GameID]
	mover := intent.Requester()
	at := entity.Coordinate{X: intent.CoordinateX, Y: intent.CoordinateY}

	match.Timers[mover].Stop(match.IncrementPerPlayer)
	match.Positions[at.X][at.Y] = mover

	if result, won := tictactoe.CalculateWinner(match.Positions, match.WinningSequenceLength, mover, at); won {
		match.Winner = result.Winner
		match.WinningSequence = result.Sequence
		that.finish(match, entity.StatusWon)

		return []*entity.Match{match}
	}

	if tictactoe.IsDraw(match.Positions) {
		that.finish(match, entity.StatusDraw)

		return []*entity.Match{match}
	}

	next := match.NextTurn(mover)
	if next == "" {
		that.finish(match, entity.StatusDraw)

		return []*entity.Match{match}
	}

	match.Turn = next
	that.startClock(match, next)

	return []*entity.Match{match}
}

// playerTimeout ignores stale events: the clock must belong to the player to
// move in a running match and must really be exhausted.
func (that *GameManager) playerTimeout(intent entity.PlayerTimeout) []*entity.Match {
	match, ok := that.matches[intent.GameID]
	if !ok || !match.IsInProgress() || match.Turn != intent.Requester() || match.HasTimeLeft(intent.Requester()) {
		return nil
	}

	remaining := match.PlayersWithTime()
	switch len(remaining) {
	case 0:
		that.finish(match, entity.StatusDraw)
	case 1:
		match.Winner = remaining[0]
		that.finish(match, entity.StatusWonByTimeout)
	default:
		match.Turn = match.NextTurn(intent.Requester())
		that.startClock(match, match.Turn)
	}

	return []*entity.Match{match}
}

func (that *GameManager) playerDisconnect(intent entity.PlayerDisconnect) []*entity.Match {
	playerID := intent.Requester()
	delete(that.roster, playerID)

	var affected []*entity.Match
	for _, match := range that.matches {
		switch {
		case match.HasPlayer(playerID):
			if !match.IsTerminal() {
				that.finish(match, entity.StatusAbandoned)
			}
			affected = append(affected, match)
		case match.HasSpectator(playerID) && !match.IsTerminal():
			match.RemoveSpectator(playerID)
			affected = append(affected, match)
		}
	}

	sort.Slice(affected, func(i, j int) bool { return affected[i].ID < affected[j].ID })

	return affected
}

func (that *GameManager) finish(match *entity.Match, status entity.Status) {
	match.Finish(status, that.options.Clock.Now())
	that.logger.Info("match finished", "game_id", match.ID, "status", status, "winner", match.Winner)
}

func millisOr(millis int64, fallback time.Duration) time.Duration {
	if millis <= 0 {
		return fallback
	}

	return time.Duration(millis) * time.Millisecond
}
