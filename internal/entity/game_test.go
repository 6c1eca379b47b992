package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/team-black-box/tici-taca-toey-server/internal/apperror"
	"github.com/team-black-box/tici-taca-toey-server/internal/timer"
)

type nopConn struct{}

func (nopConn) Send(any) error { return nil }

func newTestMatch(budgets map[string]time.Duration, order ...string) (*Match, *clock.Mock) {
	mock := clock.NewMock()
	match := &Match{
		ID:          "g1",
		BoardSize:   3,
		PlayerCount: len(order),
		Players:     order,
		Status:      StatusInProgress,
		Timers:      map[string]*timer.Timer{},
	}

	for _, id := range order {
		match.Timers[id] = timer.New(mock, id, match.ID, budgets[id], time.Hour, timer.Hooks{})
	}

	return match, mock
}

func TestMatch_NextTurn(t *testing.T) {
	t.Run("follows seating order", func(t *testing.T) {
		// Given: three seated players with time
		match, _ := newTestMatch(map[string]time.Duration{"a": time.Second, "b": time.Second, "c": time.Second}, "a", "b", "c")

		// Then: the turn wraps around the seats
		assert.Equal(t, "b", match.NextTurn("a"))
		assert.Equal(t, "a", match.NextTurn("c"))
	})

	t.Run("skips exhausted clocks", func(t *testing.T) {
		// Given: player b has no time left
		match, _ := newTestMatch(map[string]time.Duration{"a": time.Second, "b": 0, "c": time.Second}, "a", "b", "c")

		// Then: b is skipped
		assert.Equal(t, "c", match.NextTurn("a"))
		assert.Equal(t, []string{"a", "c"}, match.PlayersWithTime())
	})

	t.Run("nobody has time", func(t *testing.T) {
		// Given: every clock is exhausted
		match, _ := newTestMatch(map[string]time.Duration{}, "a", "b")

		// Then: there is no next player
		assert.Empty(t, match.NextTurn("a"))
	})
}

func TestMatch_Finish(t *testing.T) {
	// Given: a match with a running clock
	match, _ := newTestMatch(map[string]time.Duration{"a": time.Second, "b": time.Second}, "a", "b")
	match.Turn = "a"
	require.NoError(t, match.Timers["a"].Start())

	// When: the match is finished
	match.Finish(StatusDraw, time.Unix(100, 0))

	// Then: it is terminal, the turn is cleared and the clock is stopped
	assert.True(t, match.IsTerminal())
	assert.Empty(t, match.Turn)
	assert.False(t, match.Timers["a"].IsRunning())
	assert.Equal(t, time.Unix(100, 0), match.FinishedAt)
}

func TestMatch_Spectators(t *testing.T) {
	// Given: a match without spectators
	match := &Match{}

	// When: the same spectator is added twice and another is removed
	match.AddSpectator("s1")
	match.AddSpectator("s1")
	removed := match.RemoveSpectator("s2")

	// Then: the set is deduplicated and unknown ids are ignored
	assert.Equal(t, []string{"s1"}, match.Spectators)
	assert.False(t, removed)
	assert.True(t, match.RemoveSpectator("s1"))
	assert.Empty(t, match.Spectators)
}

func TestMatch_View(t *testing.T) {
	// Given: a match with a 5s clock for one player
	match, _ := newTestMatch(map[string]time.Duration{"a": 5 * time.Second, "b": 5 * time.Second}, "a", "b")
	match.Positions = Board{{"a", EmptyCell}, {EmptyCell, EmptyCell}}

	// When: the view is rendered and the match changes afterwards
	view := match.View()
	match.Positions[0][1] = "b"

	// Then: the view is detached and timers are reduced to isRunning/timeLeft
	assert.Equal(t, EmptyCell, view.Positions[0][1])
	assert.Equal(t, TimerView{IsRunning: false, TimeLeft: 5000}, view.Timers["a"])

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.JSONEq(t, `{"isRunning":false,"timeLeft":5000}`, string(mustField(t, raw, "timers", "b")))
}

func TestErrorResponse_Marshal(t *testing.T) {
	// Given: a rejected move carrying a connection
	intent := NewMakeMove("p1", "g1", 1, 2, nopConn{})

	// When: it is wrapped in an error response
	raw, err := json.Marshal(NewErrorResponse(apperror.CodeInvalidMove, intent))
	require.NoError(t, err)

	// Then: the original intent is echoed without the connection
	assert.JSONEq(t, `{
		"type": "ERROR",
		"error": "INVALID_MOVE",
		"message": {"type": "MAKE_MOVE", "playerId": "p1", "gameId": "g1", "coordinateX": 1, "coordinateY": 2}
	}`, string(raw))
}

func mustField(t *testing.T, raw []byte, path ...string) json.RawMessage {
	t.Helper()

	current := json.RawMessage(raw)
	for _, key := range path {
		var fields map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(current, &fields))
		current = fields[key]
	}

	return current
}
