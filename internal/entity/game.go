package entity

import (
	"slices"
	"time"

	"github.com/team-black-box/tici-taca-toey-server/internal/timer"
)

type Status string

const (
	StatusWaiting      Status = "WAITING_FOR_PLAYERS"
	StatusInProgress   Status = "GAME_IN_PROGRESS"
	StatusWon          Status = "GAME_WON"
	StatusDraw         Status = "GAME_ENDS_IN_A_DRAW"
	StatusWonByTimeout Status = "GAME_WON_BY_TIMEOUT"
	StatusAbandoned    Status = "GAME_ABANDONED"
)

const (
	EmptyCell = "-"

	MaxBoardSize     = 12
	MinBoardSize     = 2
	MaxPlayerCount   = 10
	MinPlayerCount   = 2
	MaxSpectatorSize = 15

	MaxTimePerPlayer      = 24 * time.Hour
	MaxIncrementPerPlayer = time.Hour
)

func (that Status) IsTerminal() bool {
	switch that {
	case StatusWon, StatusDraw, StatusWonByTimeout, StatusAbandoned:
		return true
	default:
		return false
	}
}

// Board is indexed [x][y]; every cell holds EmptyCell or a player id.
type Board [][]string

func (that Board) Size() int {
	return len(that)
}

func (that Board) Contains(at Coordinate) bool {
	return at.X >= 0 && at.X < len(that) && at.Y >= 0 && at.Y < len(that[at.X])
}

func (that Board) Clone() Board {
	board := make(Board, len(that))
	for i, row := range that {
		board[i] = slices.Clone(row)
	}

	return board
}

type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Match is one game with its board, seats, spectators and clocks.
type Match struct {
	ID                    string
	Name                  string
	BoardSize             int
	Positions             Board
	PlayerCount           int
	Players               []string
	Spectators            []string
	Winner                string
	WinningSequence       []Coordinate
	WinningSequenceLength int
	Status                Status
	Turn                  string
	TimePerPlayer         time.Duration
	IncrementPerPlayer    time.Duration
	Timers                map[string]*timer.Timer
	CreatedAt             time.Time
	FinishedAt            time.Time
}

func (that *Match) IsTerminal() bool {
	return that.Status.IsTerminal()
}

func (that *Match) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Match) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that *Match) HasPlayer(id string) bool {
	return slices.Contains(that.Players, id)
}

func (that *Match) HasSpectator(id string) bool {
	return slices.Contains(that.Spectators, id)
}

func (that *Match) AddSpectator(id string) {
	if that.HasSpectator(id) {
		return
	}

	that.Spectators = append(that.Spectators, id)
}

func (that *Match) RemoveSpectator(id string) bool {
	idx := slices.Index(that.Spectators, id)
	if idx < 0 {
		return false
	}

	that.Spectators = slices.Delete(that.Spectators, idx, idx+1)

	return true
}

// HasTimeLeft reports whether the player's clock is not exhausted.
func (that *Match) HasTimeLeft(id string) bool {
	clock, ok := that.Timers[id]

	return ok && !clock.Exhausted()
}

// PlayersWithTime returns seated players whose clock still has time, in seating order.
func (that *Match) PlayersWithTime() []string {
	var players []string
	for _, id := range that.Players {
		if that.HasTimeLeft(id) {
			players = append(players, id)
		}
	}

	return players
}

// NextTurn returns the first seated player after from, in seating order,
// whose clock has time left. It returns "" when nobody has time.
func (that *Match) NextTurn(from string) string {
	count := len(that.Players)
	start := slices.Index(that.Players, from)

	for step := 1; step <= count; step++ {
		candidate := that.Players[(start+step)%count]
		if that.HasTimeLeft(candidate) {
			return candidate
		}
	}

	return ""
}

// Finish moves the match into a terminal status, clears the turn and stops every clock.
func (that *Match) Finish(status Status, now time.Time) {
	that.Status = status
	that.Turn = ""
	that.FinishedAt = now
	that.StopTimers()
}

func (that *Match) StopTimers() {
	for _, clock := range that.Timers {
		clock.Stop(0)
	}
}

// View renders a detached copy of the match that is safe to marshal off the engine lock.
func (that *Match) View() MatchView {
	timers := make(map[string]TimerView, len(that.Timers))
	for id, clock := range that.Timers {
		snapshot := clock.Snapshot()
		timers[id] = TimerView{
			IsRunning: snapshot.IsRunning,
			TimeLeft:  snapshot.TimeLeft.Milliseconds(),
		}
	}

	view := MatchView{
		GameID:                that.ID,
		Name:                  that.Name,
		BoardSize:             that.BoardSize,
		Positions:             that.Positions.Clone(),
		PlayerCount:           that.PlayerCount,
		Players:               slices.Clone(that.Players),
		Spectators:            slices.Clone(that.Spectators),
		Winner:                that.Winner,
		WinningSequence:       slices.Clone(that.WinningSequence),
		WinningSequenceLength: that.WinningSequenceLength,
		Status:                that.Status,
		Turn:                  that.Turn,
		TimePerPlayer:         that.TimePerPlayer.Milliseconds(),
		IncrementPerPlayer:    that.IncrementPerPlayer.Milliseconds(),
		Timers:                timers,
		CreatedAt:             that.CreatedAt,
	}

	if !that.FinishedAt.IsZero() {
		finishedAt := that.FinishedAt
		view.FinishedAt = &finishedAt
	}

	if view.Players == nil {
		view.Players = []string{}
	}

	if view.Spectators == nil {
		view.Spectators = []string{}
	}

	if view.WinningSequence == nil {
		view.WinningSequence = []Coordinate{}
	}

	return view
}

type TimerView struct {
	IsRunning bool  `json:"isRunning"`
	TimeLeft  int64 `json:"timeLeft"`
}

// MatchView is the wire and archive representation of a Match.
type MatchView struct {
	GameID                string               `json:"gameId"`
	Name                  string               `json:"name"`
	BoardSize             int                  `json:"boardSize"`
	Positions             Board                `json:"positions"`
	PlayerCount           int                  `json:"playerCount"`
	Players               []string             `json:"players"`
	Spectators            []string             `json:"spectators"`
	Winner                string               `json:"winner"`
	WinningSequence       []Coordinate         `json:"winningSequence"`
	WinningSequenceLength int                  `json:"winningSequenceLength"`
	Status                Status               `json:"status"`
	Turn                  string               `json:"turn"`
	TimePerPlayer         int64                `json:"timePerPlayer"`
	IncrementPerPlayer    int64                `json:"incrementPerPlayer"`
	Timers                map[string]TimerView `json:"timers"`
	CreatedAt             time.Time            `json:"createdAt"`
	FinishedAt            *time.Time           `json:"finishedAt,omitempty"`
}
