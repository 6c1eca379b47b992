package websocket

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/team-black-box/tici-taca-toey-server/internal/entity"
	"github.com/team-black-box/tici-taca-toey-server/internal/usecase"
)

type message map[string]any

func newTestServer(t *testing.T, options Options) string {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := usecase.NewGameManager(logger, nil, usecase.Options{
		TimePerPlayer:      time.Minute,
		IncrementPerPlayer: time.Second,
		TickInterval:       time.Hour,
	})
	t.Cleanup(engine.Close)

	srv := httptest.NewServer(New(logger, engine, options).Handler())
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(ctx context.Context, t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "") })

	return conn
}

func send(ctx context.Context, t *testing.T, conn *websocket.Conn, msg message) {
	t.Helper()

	require.NoError(t, wsjson.Write(ctx, conn, msg))
}

func receive(ctx context.Context, t *testing.T, conn *websocket.Conn) message {
	t.Helper()

	var msg message
	require.NoError(t, wsjson.Read(ctx, conn, &msg))

	return msg
}

// receiveType skips messages until one of the wanted type arrives.
func receiveType(ctx context.Context, t *testing.T, conn *websocket.Conn, want string) message {
	t.Helper()

	for {
		msg := receive(ctx, t, conn)
		if msg["type"] == want {
			return msg
		}
	}
}

func register(ctx context.Context, t *testing.T, conn *websocket.Conn, name string) string {
	t.Helper()

	send(ctx, t, conn, message{"type": "REGISTER_PLAYER", "name": name})
	response := receive(ctx, t, conn)
	require.Equal(t, "REGISTER_PLAYER", response["type"])
	require.Equal(t, name, response["name"])

	playerID, ok := response["playerId"].(string)
	require.True(t, ok)
	require.NotEmpty(t, playerID)

	return playerID
}

func TestServer_Register(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Given: a running server
	url := newTestServer(t, Options{})
	conn := dial(ctx, t, url)

	// When: the client registers, ignoring any id it sends
	send(ctx, t, conn, message{"type": "REGISTER_PLAYER", "name": "alice", "playerId": "forged"})
	response := receive(ctx, t, conn)

	// Then: a server-assigned id is returned
	assert.Equal(t, "REGISTER_PLAYER", response["type"])
	assert.Equal(t, "alice", response["name"])
	assert.NotEqual(t, "forged", response["playerId"])
}

func TestServer_MalformedInput(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Given: a registered client
	url := newTestServer(t, Options{})
	conn := dial(ctx, t, url)
	register(ctx, t, conn, "alice")

	// When: it sends something that is not JSON
	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte("{not json")))

	// Then: it gets a bad request and the connection stays usable
	response := receive(ctx, t, conn)
	assert.Equal(t, "ERROR", response["type"])
	assert.Equal(t, "BAD_REQUEST", response["error"])

	send(ctx, t, conn, message{"type": "JOIN_GAME", "gameId": "missing"})
	response = receive(ctx, t, conn)
	assert.Equal(t, "GAME_NOT_FOUND", response["error"])
}

func TestServer_UnknownType(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Given: a registered client
	url := newTestServer(t, Options{})
	conn := dial(ctx, t, url)
	register(ctx, t, conn, "alice")

	// When: it tries to forge a clock event
	send(ctx, t, conn, message{"type": "PLAYER_TIMEOUT", "gameId": "g1"})

	// Then: the engine rejects it and echoes the request
	response := receive(ctx, t, conn)
	assert.Equal(t, "BAD_REQUEST", response["error"])
	assert.Equal(t, "PLAYER_TIMEOUT", response["message"].(map[string]any)["type"])
}

func TestServer_Match(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Given: two registered clients
	url := newTestServer(t, Options{})
	alice := dial(ctx, t, url)
	bob := dial(ctx, t, url)
	aliceID := register(ctx, t, alice, "alice")
	bobID := register(ctx, t, bob, "bob")

	// When: alice starts a match without an id and bob joins it
	send(ctx, t, alice, message{"type": "START_GAME", "name": "duel", "boardSize": 3, "playerCount": 2})
	started := receiveType(ctx, t, alice, "START_GAME")
	game := started["game"].(map[string]any)
	gameID, ok := game["gameId"].(string)
	require.True(t, ok)
	require.NotEmpty(t, gameID)

	send(ctx, t, bob, message{"type": "JOIN_GAME", "gameId": gameID})
	joined := receiveType(ctx, t, bob, "JOIN_GAME")

	// Then: the match runs with alice to move and both players listed
	game = joined["game"].(map[string]any)
	assert.Equal(t, "GAME_IN_PROGRESS", game["status"])
	assert.Equal(t, aliceID, game["turn"])
	assert.Len(t, joined["players"], 2)
	assert.Contains(t, game["timers"], bobID)

	// When: alice moves and then bob disconnects
	send(ctx, t, alice, message{"type": "MAKE_MOVE", "gameId": gameID, "coordinateX": 1, "coordinateY": 1})
	moved := receiveType(ctx, t, bob, "MAKE_MOVE")
	assert.Equal(t, aliceID, moved["game"].(map[string]any)["positions"].([]any)[1].([]any)[1])

	require.NoError(t, bob.Close(websocket.StatusNormalClosure, "bye"))

	// Then: alice is told the match was abandoned
	complete := receiveType(ctx, t, alice, "GAME_COMPLETE")
	assert.Equal(t, "GAME_ABANDONED", complete["game"].(map[string]any)["status"])
}

func TestServer_RegisterTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Given: a server that expects registration within 50ms
	url := newTestServer(t, Options{RegisterTimeout: 50 * time.Millisecond})
	conn := dial(ctx, t, url)

	// When: the client stays silent
	_, _, err := conn.Read(ctx)

	// Then: the server closes the connection
	require.Error(t, err)
	assert.Equal(t, websocket.StatusPolicyViolation, websocket.CloseStatus(err))
}

func TestDecode(t *testing.T) {
	conn := &connection{id: "p1"}

	t.Run("start game gets an id", func(t *testing.T) {
		// When: a start without gameId is decoded
		intent, err := decode([]byte(`{"type":"START_GAME","boardSize":3,"playerCount":2}`), conn)

		// Then: the sender and a fresh game id are filled in
		require.NoError(t, err)
		assert.Equal(t, "p1", intent.Requester())
		start, ok := intent.(entity.StartGame)
		require.True(t, ok)
		assert.NotEmpty(t, start.GameID)
		assert.Equal(t, 3, start.BoardSize)
	})

	t.Run("robot registration", func(t *testing.T) {
		// When: a robot registration is decoded
		intent, err := decode([]byte(`{"type":"REGISTER_ROBOT","name":"bot","maxGames":2}`), conn)

		// Then: it keeps its game limit
		require.NoError(t, err)
		robot, ok := intent.(entity.RegisterRobot)
		require.True(t, ok)
		assert.Equal(t, "bot", robot.Name)
		assert.Equal(t, 2, robot.MaxGames)
	})

	t.Run("wrong field type", func(t *testing.T) {
		// When: a move carries a non-numeric coordinate
		_, err := decode([]byte(`{"type":"MAKE_MOVE","coordinateX":"a"}`), conn)

		// Then: it is malformed
		require.ErrorIs(t, err, ErrMalformedMessage)
	})
}
